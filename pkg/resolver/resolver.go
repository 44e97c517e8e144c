// Package resolver performs the static pass between parsing and
// interpretation. It binds every local variable reference to the number of
// scopes between the use and its declaration and reports scoping mistakes.
package resolver

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// tracer traces with key 'lox.resolver'.
func tracer() tracing.Trace {
	return tracing.Select("lox.resolver")
}

// ErrorReporter receives static errors located at a token.
type ErrorReporter interface {
	ErrorAtToken(tok token.Token, message string)
}

// Locals maps a variable-referencing expression to the distance of the scope
// declaring it. Expressions without an entry are globals.
type Locals map[ast.Expr]int

type FunctionKind int

const (
	FunctionNone FunctionKind = iota
	FunctionPlain
	FunctionMethod
	FunctionInitializer
)

type ClassKind int

const (
	ClassNone ClassKind = iota
	ClassPlain
	ClassSub
)

// scope maps a name to whether its initializer has finished resolving.
type scope map[string]bool

type Resolver struct {
	scopes          *arraystack.Stack
	locals          Locals
	globals         map[string]bool
	currentFunction FunctionKind
	currentClass    ClassKind
	report          ErrorReporter
	errors          int
}

// New returns a resolver. globals names bindings that already exist in the
// outermost environment, such as native functions.
func New(report ErrorReporter, globals ...string) *Resolver {
	r := &Resolver{
		scopes:  arraystack.New(),
		locals:  Locals{},
		globals: map[string]bool{},
		report:  report,
	}
	for _, name := range globals {
		r.globals[name] = true
	}
	return r
}

// Resolve walks stmts as top-level code and returns the resolution table.
// All static errors are reported; none stops the walk. A resolver may be fed
// successive programs sharing one global environment; the table accumulates.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveStatements(stmts)
	tracer().Debugf("resolved %d local references, %d static errors", len(r.locals), r.errors)
	return r.locals
}

// ErrorCount reports how many static errors were found.
func (r *Resolver) ErrorCount() int { return r.errors }

func (r *Resolver) resolveStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStmt:
		// defined eagerly so the body can recurse
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, FunctionPlain)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpression(s.Expression)
	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.ReturnStmt:
		if r.currentFunction == FunctionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == FunctionInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ClassPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = ClassSub
		r.resolveExpression(s.Superclass)
		r.beginScope()
		r.peek()["super"] = true
	}

	r.beginScope()
	r.peek()["this"] = true
	for _, method := range s.Methods {
		kind := FunctionMethod
		if method.Name.Lexeme == "init" {
			kind = FunctionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind FunctionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()
	r.currentFunction = enclosing
}

func (r *Resolver) resolveExpression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if !r.scopes.Empty() {
			if ready, declared := r.peek()[e.Name.Lexeme]; declared && !ready {
				r.resolveShadowed(e)
				return
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.Unary:
		r.resolveExpression(e.Right)
	case *ast.Grouping:
		r.resolveExpression(e.Expression)
	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(e.Object)
	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.This:
		if r.currentClass == ClassNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case ClassNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
		case ClassPlain:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Literal:
	}
}

func (r *Resolver) beginScope() {
	r.scopes.Push(scope{})
}

func (r *Resolver) endScope() {
	r.scopes.Pop()
}

func (r *Resolver) peek() scope {
	top, _ := r.scopes.Peek()
	return top.(scope)
}

func (r *Resolver) declare(name token.Token) {
	if r.scopes.Empty() {
		return
	}
	current := r.peek()
	if _, exists := current[name.Lexeme]; exists {
		r.error(name, "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if r.scopes.Empty() {
		r.globals[name.Lexeme] = true
		return
	}
	r.peek()[name.Lexeme] = true
}

// resolveLocal records the distance to the innermost scope declaring name.
// The stack iterator runs from the top, so the index is the distance.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	it := r.scopes.Iterator()
	for it.Next() {
		if _, ok := it.Value().(scope)[name.Lexeme]; ok {
			r.locals[expr] = it.Index()
			return
		}
	}
}

// resolveShadowed handles a reference to a name whose declaration in the
// innermost scope is still initializing, as in `var a = a + 1;`. The
// reference binds to the enclosing declaration when there is one.
func (r *Resolver) resolveShadowed(e *ast.Variable) {
	it := r.scopes.Iterator()
	it.Next()
	for it.Next() {
		if _, ok := it.Value().(scope)[e.Name.Lexeme]; ok {
			r.locals[e] = it.Index()
			return
		}
	}
	if r.globals[e.Name.Lexeme] {
		return
	}
	r.error(e.Name, "Can't read local variable in its own initializer.")
}

func (r *Resolver) error(tok token.Token, message string) {
	r.errors++
	tracer().Debugf("static error at line %d: %s", tok.Line, message)
	if r.report != nil {
		r.report.ErrorAtToken(tok, message)
	}
}
