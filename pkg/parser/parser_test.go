package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

type collector struct {
	errors []string
}

func (c *collector) ErrorAtLine(line int, message string) {
	c.errors = append(c.errors, fmt.Sprintf("[line %d] Error: %s", line, message))
}

func (c *collector) ErrorAtToken(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	c.errors = append(c.errors, fmt.Sprintf("[line %d] Error%s: %s", tok.Line, where, message))
}

func parseSource(t *testing.T, source string) ([]ast.Stmt, *collector) {
	t.Helper()
	c := &collector{}
	sc, err := scanner.New(c)
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}
	stmts := New(sc.Scan(source), c).Parse()
	return stmts, c
}

func mustParse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, c := parseSource(t, source)
	if len(c.errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", c.errors)
	}
	return stmts
}

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lox.parser")
	defer teardown()

	stmts := mustParse(t, "print 1 + 2 * 3 - 4;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	ps, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected print statement, got %T", stmts[0])
	}
	minus, ok := ps.Expression.(*ast.Binary)
	if !ok || minus.Operator.Kind != token.Minus {
		t.Fatalf("expected '-' at the root, got %s", ast.Format(ps.Expression))
	}
	plus, ok := minus.Left.(*ast.Binary)
	if !ok || plus.Operator.Kind != token.Plus {
		t.Fatalf("expected '+' as left operand, got %s", ast.Format(minus.Left))
	}
	if times, ok := plus.Right.(*ast.Binary); !ok || times.Operator.Kind != token.Star {
		t.Fatalf("expected '*' nested under '+', got %s", ast.Format(plus.Right))
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	stmts := mustParse(t, "a = b = c; obj.field = 1;")
	outer := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Assign)
	if outer.Name.Lexeme != "a" {
		t.Fatalf("expected a as outer target, got %s", outer.Name.Lexeme)
	}
	if inner, ok := outer.Value.(*ast.Assign); !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("expected nested assignment to b, got %s", ast.Format(outer.Value))
	}
	set, ok := stmts[1].(*ast.ExpressionStmt).Expression.(*ast.Set)
	if !ok || set.Name.Lexeme != "field" {
		t.Fatalf("expected property set, got %s", ast.Format(stmts[1]))
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	stmts, c := parseSource(t, "1 + 2 = 3;\nprint 4;")
	if len(c.errors) != 1 || c.errors[0] != "[line 1] Error at '=': Invalid assignment target." {
		t.Fatalf("unexpected errors %v", c.errors)
	}
	if len(stmts) != 2 {
		t.Fatalf("invalid target should not abort the statement, got %d statements", len(stmts))
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok || len(outer.Statements) != 2 {
		t.Fatalf("expected initializer block, got %s", ast.Format(stmts[0]))
	}
	if _, ok := outer.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected var initializer, got %T", outer.Statements[0])
	}
	loop, ok := outer.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected while loop, got %T", outer.Statements[1])
	}
	body, ok := loop.Body.(*ast.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected body plus increment, got %s", ast.Format(loop.Body))
	}
	if _, ok := body.Statements[1].(*ast.ExpressionStmt); !ok {
		t.Fatalf("expected increment statement last, got %T", body.Statements[1])
	}

	stmts = mustParse(t, "for (;;) print 1;")
	loop, ok = stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("bare for should be a plain while, got %T", stmts[0])
	}
	if lit, ok := loop.Condition.(*ast.Literal); !ok || lit.Value != true {
		t.Fatalf("missing condition should default to true, got %s", ast.Format(loop.Condition))
	}
}

func TestParseClassDeclaration(t *testing.T) {
	stmts := mustParse(t, `
class Doughnut < Pastry {
  init(filling) { this.filling = filling; }
  cook() { super.cook(); print "Fry until golden brown."; }
}`)
	class, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected class, got %T", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "Pastry" {
		t.Fatalf("expected superclass Pastry")
	}
	if len(class.Methods) != 2 || class.Methods[0].Name.Lexeme != "init" || len(class.Methods[0].Params) != 1 {
		t.Fatalf("unexpected methods: %s", ast.Format(class))
	}
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	stmts := mustParse(t, "if (a) if (b) print 1; else print 2;")
	outer := stmts[0].(*ast.IfStmt)
	if outer.ElseBranch != nil {
		t.Fatalf("else should bind to the inner if")
	}
	if inner := outer.ThenBranch.(*ast.IfStmt); inner.ElseBranch == nil {
		t.Fatalf("inner if lost its else")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	source := `
var a = 1;
fun add(x, y) { return x + y; }
class A { method() { return this; } }
class B < A { method() { return super.method(); } }
for (var i = 0; i < 10; i = i + 1) { if (i == 3 or !(i > 5) and a) print -i; else a = a * (2 - i); }
while (a != nil) a = nil;
print add(1, 2)(3).field.other = "s";
`
	first := ast.FormatProgram(mustParse(t, source))
	second := ast.FormatProgram(mustParse(t, first))
	if first != second {
		t.Fatalf("round trip changed the program:\n%s\n---\n%s", first, second)
	}
}

func params(n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	return strings.Join(names, ", ")
}

func TestParseParameterLimit(t *testing.T) {
	stmts := mustParse(t, "fun f("+params(255)+") {}")
	if fn := stmts[0].(*ast.FunctionStmt); len(fn.Params) != 255 {
		t.Fatalf("expected 255 parameters, got %d", len(fn.Params))
	}

	stmts, c := parseSource(t, "fun g("+params(256)+") {}")
	if len(c.errors) != 1 || !strings.HasSuffix(c.errors[0], "Error at 'p255': Can't have more than 255 parameters.") {
		t.Fatalf("unexpected errors %v", c.errors)
	}
	if len(stmts) != 1 {
		t.Fatalf("over-long parameter list should still parse, got %d statements", len(stmts))
	}
	if fn := stmts[0].(*ast.FunctionStmt); len(fn.Params) != 256 {
		t.Fatalf("expected all 256 parameters kept, got %d", len(fn.Params))
	}
}

func TestParseArgumentLimit(t *testing.T) {
	args := strings.Repeat("1, ", 255) + "1"
	_, c := parseSource(t, "f("+args+");")
	if len(c.errors) != 1 || !strings.HasSuffix(c.errors[0], "Can't have more than 255 arguments.") {
		t.Fatalf("unexpected errors %v", c.errors)
	}
	_ = mustParse(t, "f("+strings.Repeat("1, ", 254)+"1);")
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	stmts, c := parseSource(t, "var = 1;\nprint 2;\nvar x = ;\nprint 3;\nprint 4")
	want := []string{
		"[line 1] Error at '=': Expect variable name.",
		"[line 3] Error at ';': Expect expression.",
		"[line 5] Error at end: Expect ';' after value.",
	}
	if len(c.errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), c.errors)
	}
	for i := range want {
		if c.errors[i] != want[i] {
			t.Fatalf("error %d: expected %q, got %q", i, want[i], c.errors[i])
		}
	}
	if len(stmts) != 2 {
		t.Fatalf("expected the two good print statements, got %d", len(stmts))
	}
	for _, stmt := range stmts {
		if _, ok := stmt.(*ast.PrintStmt); !ok {
			t.Fatalf("expected print statements only, got %T", stmt)
		}
	}
}

func TestParseExpressionForRepl(t *testing.T) {
	c := &collector{}
	sc, _ := scanner.New(c)
	expr, ok := New(sc.Scan("1 + 2"), c).ParseExpression()
	if !ok || ast.Format(expr) != "1 + 2" {
		t.Fatalf("expected bare expression, got %v", expr)
	}
	if _, ok := New(sc.Scan("print 1;"), c).ParseExpression(); ok {
		t.Fatalf("statement should not parse as expression")
	}
}
