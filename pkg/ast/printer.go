package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Binding strength of expression forms, loosest first.
const (
	precAssignment = iota + 1
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// Format renders a node as Lox source. Parentheses are added only where the
// tree shape would otherwise not survive reparsing; Grouping nodes always
// print their parentheses, so a parsed program formats back into source that
// parses to the same tree.
func Format(node Node) string {
	p := &printer{}
	switch n := node.(type) {
	case Expr:
		p.expr(n, precAssignment)
	case Stmt:
		p.stmt(n)
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("ast: cannot format %T", node))
	}
	return strings.TrimSuffix(p.out.String(), "\n")
}

// FormatProgram renders a statement list, one top-level statement per line.
func FormatProgram(stmts []Stmt) string {
	p := &printer{}
	for _, s := range stmts {
		p.stmt(s)
	}
	return p.out.String()
}

type printer struct {
	out    strings.Builder
	indent int
}

func (p *printer) write(s string) { p.out.WriteString(s) }

func (p *printer) line(s string) {
	p.out.WriteString(strings.Repeat("  ", p.indent))
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func binaryPrecedence(lexeme string) int {
	switch lexeme {
	case "==", "!=":
		return precEquality
	case ">", ">=", "<", "<=":
		return precComparison
	case "+", "-":
		return precTerm
	default:
		return precFactor
	}
}

func (p *printer) expr(e Expr, min int) {
	prec := exprPrecedence(e)
	if prec < min {
		p.write("(")
		defer p.write(")")
	}
	switch n := e.(type) {
	case *Literal:
		p.write(FormatLiteral(n.Value))
	case *Grouping:
		p.write("(")
		p.expr(n.Expression, precAssignment)
		p.write(")")
	case *Unary:
		p.write(n.Operator.Lexeme)
		p.expr(n.Right, precUnary)
	case *Binary:
		p.expr(n.Left, prec)
		p.write(" " + n.Operator.Lexeme + " ")
		p.expr(n.Right, prec+1)
	case *Logical:
		p.expr(n.Left, prec)
		p.write(" " + n.Operator.Lexeme + " ")
		p.expr(n.Right, prec+1)
	case *Variable:
		p.write(n.Name.Lexeme)
	case *Assign:
		p.write(n.Name.Lexeme + " = ")
		p.expr(n.Value, precAssignment)
	case *Call:
		p.expr(n.Callee, precCall)
		p.write("(")
		for i, arg := range n.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.expr(arg, precAssignment)
		}
		p.write(")")
	case *Get:
		p.expr(n.Object, precCall)
		p.write("." + n.Name.Lexeme)
	case *Set:
		p.expr(n.Object, precCall)
		p.write("." + n.Name.Lexeme + " = ")
		p.expr(n.Value, precAssignment)
	case *This:
		p.write("this")
	case *Super:
		p.write("super." + n.Method.Lexeme)
	default:
		panic(fmt.Sprintf("ast: unknown expression %T", e))
	}
}

func exprPrecedence(e Expr) int {
	switch n := e.(type) {
	case *Assign, *Set:
		return precAssignment
	case *Logical:
		if n.Operator.Lexeme == "or" {
			return precOr
		}
		return precAnd
	case *Binary:
		return binaryPrecedence(n.Operator.Lexeme)
	case *Unary:
		return precUnary
	case *Call, *Get:
		return precCall
	default:
		return precPrimary
	}
}

// FormatLiteral renders a literal value the way it is written in source.
func FormatLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return `"` + v + `"`
	default:
		return fmt.Sprint(v)
	}
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *ExpressionStmt:
		p.line(p.sub(n.Expression) + ";")
	case *PrintStmt:
		p.line("print " + p.sub(n.Expression) + ";")
	case *VarStmt:
		if n.Initializer == nil {
			p.line("var " + n.Name.Lexeme + ";")
		} else {
			p.line("var " + n.Name.Lexeme + " = " + p.sub(n.Initializer) + ";")
		}
	case *BlockStmt:
		p.line("{")
		p.body(n.Statements)
		p.line("}")
	case *IfStmt:
		p.line("if (" + p.sub(n.Condition) + ")")
		p.nested(n.ThenBranch)
		if n.ElseBranch != nil {
			p.line("else")
			p.nested(n.ElseBranch)
		}
	case *WhileStmt:
		p.line("while (" + p.sub(n.Condition) + ")")
		p.nested(n.Body)
	case *FunctionStmt:
		p.function("fun ", n)
	case *ReturnStmt:
		if n.Value == nil {
			p.line("return;")
		} else {
			p.line("return " + p.sub(n.Value) + ";")
		}
	case *ClassStmt:
		header := "class " + n.Name.Lexeme
		if n.Superclass != nil {
			header += " < " + n.Superclass.Name.Lexeme
		}
		p.line(header + " {")
		p.indent++
		for _, m := range n.Methods {
			p.function("", m)
		}
		p.indent--
		p.line("}")
	default:
		panic(fmt.Sprintf("ast: unknown statement %T", s))
	}
}

func (p *printer) sub(e Expr) string {
	inner := &printer{}
	inner.expr(e, precAssignment)
	return inner.out.String()
}

func (p *printer) body(stmts []Stmt) {
	p.indent++
	for _, s := range stmts {
		p.stmt(s)
	}
	p.indent--
}

// nested prints a branch or loop body: blocks at the current depth, single
// statements one level deeper.
func (p *printer) nested(s Stmt) {
	if _, ok := s.(*BlockStmt); ok {
		p.stmt(s)
		return
	}
	p.indent++
	p.stmt(s)
	p.indent--
}

func (p *printer) function(keyword string, fn *FunctionStmt) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Lexeme
	}
	p.line(keyword + fn.Name.Lexeme + "(" + strings.Join(params, ", ") + ") {")
	p.body(fn.Body)
	p.line("}")
}
