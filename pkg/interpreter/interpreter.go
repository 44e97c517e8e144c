package interpreter

import (
	"io"
	"os"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
)

// tracer traces with key 'lox.interpreter'.
func tracer() tracing.Trace {
	return tracing.Select("lox.interpreter")
}

// MaxCallDepth bounds nested calls; deeper recursion is a runtime error.
const MaxCallDepth = 4096

// Interpreter drives evaluation of resolved Lox syntax trees.
type Interpreter struct {
	global *runtime.Environment
	locals resolver.Locals
	out    io.Writer
	now    func() time.Time
	depth  int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput redirects print statements (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithClock replaces the time source behind the `clock` built-in.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New returns an interpreter whose global environment holds the built-ins.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		locals: resolver.Locals{},
		out:    os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.global.Define("clock", runtime.Clock(i.now))
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Resolve merges a resolution table into the interpreter's side table.
func (i *Interpreter) Resolve(locals resolver.Locals) {
	for expr, distance := range locals {
		i.locals[expr] = distance
	}
}

// Interpret executes top-level statements in order. The first runtime error
// stops execution and is returned as a *runtime.RuntimeError; output printed
// before it stays printed.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := i.evaluateStatement(stmt, i.global); err != nil {
			tracer().Debugf("run aborted: %v", err)
			return err
		}
	}
	return nil
}

// Evaluate computes a single resolved expression in the global environment.
func (i *Interpreter) Evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.evaluateExpression(expr, i.global)
}

// ExecuteBody runs a function body in env; it makes the interpreter a
// runtime.Executor.
func (i *Interpreter) ExecuteBody(body []ast.Stmt, env *runtime.Environment) (runtime.Value, bool, error) {
	c, err := i.executeBlock(body, env)
	if err != nil {
		return nil, false, err
	}
	return c.value, c.kind == completionReturn, nil
}
