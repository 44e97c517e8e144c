// Package parser builds a syntax tree from a token stream by recursive
// descent. Syntax errors are reported once and parsing resumes at the next
// statement boundary.
package parser

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// tracer traces with key 'lox.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lox.parser")
}

// MaxArgs caps both call arguments and function parameters.
const MaxArgs = 255

// ErrorReporter receives syntax errors located at a token.
type ErrorReporter interface {
	ErrorAtToken(tok token.Token, message string)
}

// errSyntax unwinds the current declaration after the error has been
// reported.
var errSyntax = errors.New("parser: syntax error")

type Parser struct {
	tokens  []token.Token
	current int
	report  ErrorReporter
	errors  int
}

// New returns a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token, report ErrorReporter) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, token.New(token.EOF, "", nil, line))
	}
	return &Parser{tokens: tokens, report: report}
}

// Parse consumes the whole token stream. Declarations that failed to parse
// are left out of the result.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declarationOrRecover(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	tracer().Debugf("parsed %d top-level statements, %d syntax errors", len(stmts), p.errors)
	return stmts
}

// ParseExpression parses a single expression followed by end of input. The
// REPL uses it to echo bare expressions.
func (p *Parser) ParseExpression() (ast.Expr, bool) {
	expr, err := p.expression()
	if err != nil || !p.isAtEnd() {
		return nil, false
	}
	return expr, true
}

// ErrorCount reports how many syntax errors were found so far.
func (p *Parser) ErrorCount() int { return p.errors }

func (p *Parser) declarationOrRecover() ast.Stmt {
	stmt, err := p.declaration()
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.fail(p.peek(), message)
}

// fail reports an error and returns the sentinel that unwinds to the
// enclosing declaration.
func (p *Parser) fail(tok token.Token, message string) error {
	p.errorAt(tok, message)
	return errSyntax
}

// errorAt reports without unwinding.
func (p *Parser) errorAt(tok token.Token, message string) {
	p.errors++
	tracer().Debugf("syntax error at line %d near %q: %s", tok.Line, tok.Lexeme, message)
	if p.report != nil {
		p.report.ErrorAtToken(tok, message)
	}
}

// synchronize discards tokens until just past a semicolon or just before a
// token that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If,
			token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
