package ast

import "lox/interpreter-go/pkg/token"

type ExpressionStmt struct {
	nodeImpl
	stmtMarker

	Expression Expr `json:"expression"`
}

func NewExpressionStmt(expression Expr) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expression: expression}
}

type PrintStmt struct {
	nodeImpl
	stmtMarker

	Expression Expr `json:"expression"`
}

func NewPrintStmt(expression Expr) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expression: expression}
}

// VarStmt declares a variable. Initializer is nil when absent.
type VarStmt struct {
	nodeImpl
	stmtMarker

	Name        token.Token `json:"name"`
	Initializer Expr        `json:"initializer,omitempty"`
}

func NewVarStmt(name token.Token, initializer Expr) *VarStmt {
	return &VarStmt{nodeImpl: newNodeImpl(NodeVarStmt), Name: name, Initializer: initializer}
}

type BlockStmt struct {
	nodeImpl
	stmtMarker

	Statements []Stmt `json:"statements"`
}

func NewBlockStmt(statements []Stmt) *BlockStmt {
	return &BlockStmt{nodeImpl: newNodeImpl(NodeBlockStmt), Statements: statements}
}

type IfStmt struct {
	nodeImpl
	stmtMarker

	Condition  Expr `json:"condition"`
	ThenBranch Stmt `json:"thenBranch"`
	ElseBranch Stmt `json:"elseBranch,omitempty"`
}

func NewIfStmt(condition Expr, thenBranch, elseBranch Stmt) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type WhileStmt struct {
	nodeImpl
	stmtMarker

	Condition Expr `json:"condition"`
	Body      Stmt `json:"body"`
}

func NewWhileStmt(condition Expr, body Stmt) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Condition: condition, Body: body}
}

// FunctionStmt is both a `fun` declaration and a method inside a class body.
type FunctionStmt struct {
	nodeImpl
	stmtMarker

	Name   token.Token   `json:"name"`
	Params []token.Token `json:"params"`
	Body   []Stmt        `json:"body"`
}

func NewFunctionStmt(name token.Token, params []token.Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{nodeImpl: newNodeImpl(NodeFunctionStmt), Name: name, Params: params, Body: body}
}

// ReturnStmt keeps the keyword for error locations. Value is nil for a bare
// `return;`.
type ReturnStmt struct {
	nodeImpl
	stmtMarker

	Keyword token.Token `json:"keyword"`
	Value   Expr        `json:"value,omitempty"`
}

func NewReturnStmt(keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Value: value}
}

type ClassStmt struct {
	nodeImpl
	stmtMarker

	Name       token.Token     `json:"name"`
	Superclass *Variable       `json:"superclass,omitempty"`
	Methods    []*FunctionStmt `json:"methods"`
}

func NewClassStmt(name token.Token, superclass *Variable, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{nodeImpl: newNodeImpl(NodeClassStmt), Name: name, Superclass: superclass, Methods: methods}
}
