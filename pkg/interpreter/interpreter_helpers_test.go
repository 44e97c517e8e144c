package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

// staticErrors collects scanner, parser and resolver complaints for tests.
type staticErrors struct {
	messages []string
}

func (s *staticErrors) ErrorAtLine(line int, message string) {
	s.messages = append(s.messages, fmt.Sprintf("[line %d] Error: %s", line, message))
}

func (s *staticErrors) ErrorAtToken(tok token.Token, message string) {
	s.messages = append(s.messages, fmt.Sprintf("[line %d] Error at '%s': %s", tok.Line, tok.Lexeme, message))
}

// compile scans, parses and resolves source into interp, failing the test on
// any static error.
func compile(t *testing.T, interp *Interpreter, source string) []ast.Stmt {
	t.Helper()
	errs := &staticErrors{}
	sc, err := scanner.New(errs)
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}
	stmts := parser.New(sc.Scan(source), errs).Parse()
	locals := resolver.New(errs, interp.GlobalEnvironment().Keys()...).Resolve(stmts)
	if len(errs.messages) > 0 {
		t.Fatalf("static errors: %s", strings.Join(errs.messages, "; "))
	}
	interp.Resolve(locals)
	return stmts
}

// run executes source in a fresh interpreter and returns the printed lines
// and the runtime error, if any.
func run(t *testing.T, source string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(WithOutput(&out))
	err := interp.Interpret(compile(t, interp, source))
	return lines(out.String()), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func expectOutput(t *testing.T, source string, want ...string) {
	t.Helper()
	got, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("expected output %q, got %q", want, got)
	}
}

func expectRuntimeError(t *testing.T, source string, line int, message string) []string {
	t.Helper()
	got, err := run(t, source)
	var rt *runtime.RuntimeError
	if !errors.As(err, &rt) {
		t.Fatalf("expected runtime error %q, got %v", message, err)
	}
	if rt.Message != message || rt.Line() != line {
		t.Fatalf("expected %q on line %d, got %q on line %d", message, line, rt.Message, rt.Line())
	}
	return got
}
