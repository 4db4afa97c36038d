package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/codegen"
	"github.com/enzan-lang/enzan-lang/internal/diag"
	"github.com/enzan-lang/enzan-lang/internal/eval"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
	"github.com/enzan-lang/enzan-lang/internal/parser"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: enzan <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  run [file]       Evaluate a source file (stdin when omitted)\n")
		fmt.Fprintf(os.Stderr, "  build <file>     Compile a source file to assembly\n")
		fmt.Fprintf(os.Stderr, "  repl             Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "\nNote: a 'for' loop without a condition never runs its body\n")
		fmt.Fprintf(os.Stderr, "and yields 0.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "run":
		os.Exit(runRun(args))
	case "build":
		os.Exit(runBuild(args))
	case "repl":
		os.Exit(runRepl(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

// diagnosable is satisfied by every stage's error type.
type diagnosable interface {
	ToDiagnostic() diag.Diagnostic
}

// report pretty-prints a diagnostic with its source snippet to stderr.
func report(err diagnosable, source string) {
	f := diag.NewFormatter()
	fmt.Fprint(os.Stderr, f.Format(err.ToDiagnostic(), source))
}

// parseSource runs the front half of the pipeline: source text to Program.
func parseSource(source, filename string) (*ast.Program, diagnosable) {
	lx := lexer.New(source)
	if filename != "" {
		lx.SetFilename(filename)
	}

	tokens, lerr := lx.Lex()
	if lerr != nil {
		return nil, lerr
	}

	program, perr := parser.New(tokens).Parse()
	if perr != nil {
		return nil, perr
	}

	return program, nil
}

// readSource loads the program text from a file argument, the -e flag, or
// stdin when neither is given.
func readSource(fs *flag.FlagSet, expr string) (source, name string, err error) {
	if expr != "" {
		return expr, "", nil
	}
	if fs.NArg() >= 1 {
		file := fs.Arg(0)
		data, rerr := os.ReadFile(file)
		if rerr != nil {
			return "", "", rerr
		}
		return string(data), file, nil
	}

	data, rerr := io.ReadAll(os.Stdin)
	if rerr != nil {
		return "", "", rerr
	}
	return string(data), "", nil
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	expr := fs.String("e", "", "evaluate the given program text instead of a file")
	fs.Parse(args)

	source, filename, err := readSource(fs, *expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enzan: %v\n", err)
		return 1
	}

	program, derr := parseSource(source, filename)
	if derr != nil {
		report(derr, source)
		return 1
	}

	result, rerr := eval.New().Eval(program)
	if rerr != nil {
		report(rerr, source)
		return 1
	}

	fmt.Println(result)
	return 0
}

func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "output path for the generated assembly")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: enzan build <file> [-o out.s]\n")
		return 1
	}

	file := fs.Arg(0)
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enzan: %v\n", err)
		return 1
	}
	source := string(data)

	program, derr := parseSource(source, file)
	if derr != nil {
		report(derr, source)
		return 1
	}

	asm, gerr := codegen.New().Generate(program)
	if gerr != nil {
		if d, ok := gerr.(diagnosable); ok {
			report(d, source)
		} else {
			fmt.Fprintf(os.Stderr, "enzan: %v\n", gerr)
		}
		return 1
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(file, ".zn") + ".s"
	}

	if err := os.WriteFile(out, []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "enzan: %v\n", err)
		return 1
	}

	// Assembling and linking the output is the caller's job, e.g.
	// cc out.s -o prog
	return 0
}
