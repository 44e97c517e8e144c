package driver

import (
	"fmt"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// Status is the outcome of running a program, doubling as process exit code.
type Status int

const (
	StatusOK           Status = 0
	StatusUsage        Status = 64
	StatusStaticError  Status = 65
	StatusRuntimeError Status = 70
	StatusIOError      Status = 74
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUsage:
		return "usage error"
	case StatusStaticError:
		return "static error"
	case StatusRuntimeError:
		return "runtime error"
	case StatusIOError:
		return "i/o error"
	default:
		return fmt.Sprintf("status_%d", int(s))
	}
}

// Session runs successive programs against one interpreter, so globals
// defined by one run are visible to the next. The REPL and project preludes
// rely on this.
type Session struct {
	reporter *Reporter
	scanner  *scanner.Scanner
	interp   *interpreter.Interpreter
}

// NewSession wires a fresh interpreter to reporter.
func NewSession(reporter *Reporter, opts ...interpreter.Option) (*Session, error) {
	sc, err := scanner.New(reporter)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		reporter: reporter,
		scanner:  sc,
		interp:   interpreter.New(opts...),
	}, nil
}

// Reporter returns the session's reporter.
func (s *Session) Reporter() *Reporter { return s.reporter }

// Parse scans and parses source. ok is false when a syntax error was
// reported.
func (s *Session) Parse(source string) (stmts []ast.Stmt, ok bool) {
	s.reporter.setStage(KindSyntax)
	tokens := s.scanner.Scan(source)
	stmts = parser.New(tokens, s.reporter).Parse()
	return stmts, !s.reporter.HadError()
}

// Run pushes source through scan, parse, resolve and interpret. Static
// errors stop the pipeline before anything executes.
func (s *Session) Run(source string) Status {
	stmts, ok := s.Parse(source)
	if !ok {
		return StatusStaticError
	}
	if !s.resolve(stmts) {
		return StatusStaticError
	}
	if err := s.interp.Interpret(stmts); err != nil {
		s.reporter.RuntimeError(err)
		return StatusRuntimeError
	}
	tracer().Debugf("run finished, globals: %v", s.interp.GlobalEnvironment().Keys())
	return StatusOK
}

// RunFile runs the script at path. Unreadable files are an error, not a
// status.
func (s *Session) RunFile(path string) (Status, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return StatusIOError, fmt.Errorf("read %s: %w", path, err)
	}
	tracer().Infof("running %s", path)
	return s.Run(string(source)), nil
}

// RunProject runs the manifest's prelude scripts and then its main script,
// stopping at the first that fails.
func (s *Session) RunProject(m *Manifest) (Status, error) {
	for _, script := range m.Scripts() {
		status, err := s.RunFile(script)
		if err != nil || status != StatusOK {
			return status, err
		}
	}
	return StatusOK, nil
}

// Echo handles one REPL line. A bare expression without a trailing
// semicolon is evaluated and its value returned with echoed set; anything
// else runs as a program.
func (s *Session) Echo(line string) (value runtime.Value, echoed bool, status Status) {
	quiet := NewReporterFunc(nil)
	qs, err := scanner.New(quiet)
	if err == nil {
		tokens := qs.Scan(line)
		if expr, ok := parser.New(tokens, quiet).ParseExpression(); ok && !quiet.HadError() {
			if !s.resolve([]ast.Stmt{ast.NewExpressionStmt(expr)}) {
				return nil, false, StatusStaticError
			}
			v, err := s.interp.Evaluate(expr)
			if err != nil {
				s.reporter.RuntimeError(err)
				return nil, false, StatusRuntimeError
			}
			return v, true, StatusOK
		}
	}
	return nil, false, s.Run(line)
}

func (s *Session) resolve(stmts []ast.Stmt) bool {
	s.reporter.setStage(KindStatic)
	r := resolver.New(s.reporter, s.interp.GlobalEnvironment().Keys()...)
	locals := r.Resolve(stmts)
	if s.reporter.HadError() {
		return false
	}
	s.interp.Resolve(locals)
	return true
}
