package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/enzan-lang/enzan-lang/internal/eval"
)

const (
	historyFile = ".enzan_history"
	prompt      = "=> "
)

// runRepl starts an interactive session. Bindings persist across lines
// because every line is evaluated against the same evaluator.
func runRepl(_ []string) int {
	fmt.Println("enzan repl — Ctrl+C cancels input, Ctrl+D exits.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ev := eval.New()

	for {
		line, err := ln.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D
			fmt.Println()
			return 0
		}
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		program, derr := parseSource(line, "")
		if derr != nil {
			report(derr, line)
			continue
		}

		result, rerr := ev.Eval(program)
		if rerr != nil {
			report(rerr, line)
			continue
		}

		fmt.Println(result)
	}
}
