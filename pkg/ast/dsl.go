package ast

import "lox/interpreter-go/pkg/token"

// Builder helpers. Synthesised tokens all sit on line 1.

func ID(name string) token.Token {
	return token.Ident(name, 1)
}

func Op(lexeme string) token.Token {
	if kind, ok := token.Operators[lexeme]; ok {
		return token.New(kind, lexeme, nil, 1)
	}
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.New(kind, lexeme, nil, 1)
	}
	panic("ast: unknown operator " + lexeme)
}

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func Group(inner Expr) *Grouping {
	return NewGrouping(inner)
}

func Un(op string, right Expr) *Unary {
	return NewUnary(Op(op), right)
}

func Bin(left Expr, op string, right Expr) *Binary {
	return NewBinary(left, Op(op), right)
}

func And(left, right Expr) *Logical {
	return NewLogical(left, Op("and"), right)
}

func Or(left, right Expr) *Logical {
	return NewLogical(left, Op("or"), right)
}

func Var(name string) *Variable {
	return NewVariable(ID(name))
}

func Assn(name string, value Expr) *Assign {
	return NewAssign(ID(name), value)
}

func CallExpr(callee Expr, args ...Expr) *Call {
	return NewCall(callee, Op(")"), args)
}

func Prop(object Expr, name string) *Get {
	return NewGet(object, ID(name))
}

func SetProp(object Expr, name string, value Expr) *Set {
	return NewSet(object, ID(name), value)
}

func Self() *This {
	return NewThis(Op("this"))
}

func SuperCall(method string) *Super {
	return NewSuper(Op("super"), ID(method))
}

// Statement helpers.

func ExprSt(expression Expr) *ExpressionStmt {
	return NewExpressionStmt(expression)
}

func PrintSt(expression Expr) *PrintStmt {
	return NewPrintStmt(expression)
}

func VarDecl(name string, initializer Expr) *VarStmt {
	return NewVarStmt(ID(name), initializer)
}

func Block(statements ...Stmt) *BlockStmt {
	return NewBlockStmt(statements)
}

func If(condition Expr, thenBranch, elseBranch Stmt) *IfStmt {
	return NewIfStmt(condition, thenBranch, elseBranch)
}

func While(condition Expr, body Stmt) *WhileStmt {
	return NewWhileStmt(condition, body)
}

func Fun(name string, params []string, body ...Stmt) *FunctionStmt {
	tokens := make([]token.Token, len(params))
	for i, p := range params {
		tokens[i] = ID(p)
	}
	return NewFunctionStmt(ID(name), tokens, body)
}

func Ret(value Expr) *ReturnStmt {
	return NewReturnStmt(Op("return"), value)
}

// ClassDecl builds a class; superclass may be empty.
func ClassDecl(name, superclass string, methods ...*FunctionStmt) *ClassStmt {
	var super *Variable
	if superclass != "" {
		super = Var(superclass)
	}
	return NewClassStmt(ID(name), super, methods)
}
