package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

const cliToolVersion = "lox 0.1.0"

const usage = `lox

Usage:
  lox [--trace=LEVEL] [SCRIPT]
  lox [--trace=LEVEL] --print-ast SCRIPT
  lox -h | --help
  lox --version

Arguments:
  SCRIPT  Path to a Lox script. Without it, lox runs the project described
          by the nearest lox.yml, or reads the program from stdin.

Options:
  --trace=LEVEL  Trace level of the pipeline stages: Debug, Info or Error.
  --print-ast    Print the parsed program instead of running it.
  -h, --help     Display this help.
  --version      Print the lox version.

If stdin is a terminal and no script or project is given, lox starts an
interactive prompt. Quit with <ctrl>D.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	script   string
	trace    string
	printAST bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, done := parseOptions(args, stdout, stderr)
	if done {
		return code
	}
	level := opts.trace
	if level == "" {
		level = "Error"
	}
	if err := driver.ConfigureTracing(level); err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusUsage)
	}

	switch {
	case opts.printAST:
		return printAST(opts.script, stdout, stderr)
	case opts.script != "":
		return runScript(opts.script, stdout, stderr)
	}

	manifestPath, err := driver.FindManifest(".")
	switch {
	case err == nil:
		return runProject(manifestPath, opts, stdout, stderr)
	case !errors.Is(err, driver.ErrNoManifest):
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}

	if isTerminal(stdin) {
		return runREPL(stdout, stderr)
	}
	return runStdin(stdin, stdout, stderr)
}

func parseOptions(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	if args == nil {
		args = []string{}
	}
	parser := &docopt.Parser{
		HelpHandler: func(err error, text string) {
			done = true
			if err != nil {
				fmt.Fprintln(stderr, text)
				code = int(driver.StatusUsage)
				return
			}
			fmt.Fprintln(stdout, text)
		},
	}
	parsed, err := parser.ParseArgs(usage, args, cliToolVersion)
	if done {
		return opts, code, true
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return opts, int(driver.StatusUsage), true
	}
	opts.script, _ = parsed["SCRIPT"].(string)
	opts.trace, _ = parsed["--trace"].(string)
	opts.printAST, _ = parsed.Bool("--print-ast")
	return opts, 0, false
}

func newSession(reporter *driver.Reporter, stdout io.Writer) (*driver.Session, error) {
	return driver.NewSession(reporter, interpreter.WithOutput(stdout))
}

func runScript(path string, stdout, stderr io.Writer) int {
	session, err := newSession(driver.NewReporter(stderr), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}
	status, err := session.RunFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	return int(status)
}

func runProject(manifestPath string, opts options, stdout, stderr io.Writer) int {
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusUsage)
	}
	if opts.trace == "" && manifest.Trace != "" {
		if err := driver.ConfigureTracing(manifest.Trace); err != nil {
			fmt.Fprintln(stderr, err)
			return int(driver.StatusUsage)
		}
	}
	session, err := newSession(driver.NewReporter(stderr), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}
	status, err := session.RunProject(manifest)
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	return int(status)
}

func runStdin(stdin io.Reader, stdout, stderr io.Writer) int {
	source, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "read stdin: %v\n", err)
		return int(driver.StatusIOError)
	}
	session, err := newSession(driver.NewReporter(stderr), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}
	return int(session.Run(string(source)))
}

func printAST(path string, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "read %s: %v\n", path, err)
		return int(driver.StatusIOError)
	}
	session, err := newSession(driver.NewReporter(stderr), io.Discard)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(driver.StatusIOError)
	}
	stmts, ok := session.Parse(string(source))
	if !ok {
		return int(driver.StatusStaticError)
	}
	fmt.Fprint(stdout, ast.FormatProgram(stmts))
	return int(driver.StatusOK)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
