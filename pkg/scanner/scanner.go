// Package scanner turns Lox source text into the token stream consumed by the
// parser. The DFA is built with lexmachine and compiled once per process.
package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"lox/interpreter-go/pkg/token"
)

// tracer traces with key 'lox.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lox.scanner")
}

// ErrorReporter receives lexical errors. Scanning always continues past them.
type ErrorReporter interface {
	ErrorAtLine(line int, message string)
}

// unterminated marks the pseudo token produced for a string literal that
// runs into the end of input.
const unterminated = -1

var (
	compileOnce sync.Once
	compiled    *lexmachine.Lexer
	compileErr  error
)

func lexer() (*lexmachine.Lexer, error) {
	compileOnce.Do(func() {
		lex := lexmachine.NewLexer()
		lex.Add([]byte(`//[^\n]*`), skip)
		lex.Add([]byte(`( |\t|\r|\n)+`), skip)
		lex.Add([]byte(`"[^"]*"`), stringLiteral)
		lex.Add([]byte(`"[^"]*`), makeToken(unterminated))
		lex.Add([]byte(`[0-9]+(\.[0-9]+)?`), numberLiteral)
		lex.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), identifier)
		for lit, kind := range token.Operators {
			pattern := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lex.Add([]byte(pattern), makeToken(int(kind)))
		}
		if err := lex.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			compileErr = fmt.Errorf("scanner: compile: %w", err)
			return
		}
		compiled = lex
	})
	return compiled, compileErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, nil, m), nil
	}
}

func stringLiteral(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	text := string(m.Bytes)
	return s.Token(int(token.String), text[1:len(text)-1], m), nil
}

func numberLiteral(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	value, err := strconv.ParseFloat(string(m.Bytes), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", m.Bytes, err)
	}
	return s.Token(int(token.Number), value, m), nil
}

func identifier(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	kind, ok := token.Keywords[string(m.Bytes)]
	if !ok {
		kind = token.Identifier
	}
	return s.Token(int(kind), nil, m), nil
}

// Scanner produces tokens for one or more sources.
type Scanner struct {
	lexer  *lexmachine.Lexer
	report ErrorReporter
}

// New returns a scanner reporting lexical errors to report.
func New(report ErrorReporter) (*Scanner, error) {
	lex, err := lexer()
	if err != nil {
		return nil, err
	}
	return &Scanner{lexer: lex, report: report}, nil
}

// Scan tokenizes source. The result always ends with an EOF token, even when
// errors were reported.
func (s *Scanner) Scan(source string) []token.Token {
	lastLine := strings.Count(source, "\n") + 1
	var tokens []token.Token
	sc, err := s.lexer.Scanner([]byte(source))
	if err != nil {
		s.error(1, err.Error())
		return append(tokens, token.New(token.EOF, "", nil, lastLine))
	}
	for tok, err, eof := sc.Next(); !eof; tok, err, eof = sc.Next() {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			s.error(ui.StartLine, "Unexpected character.")
			next := ui.FailTC
			if next <= ui.StartTC {
				next = ui.StartTC + 1
			}
			sc.TC = next
			continue
		}
		if err != nil {
			s.error(lastLine, err.Error())
			break
		}
		lt, ok := tok.(*lexmachine.Token)
		if !ok || lt == nil {
			continue
		}
		if lt.Type == unterminated {
			s.error(lt.StartLine, "Unterminated string.")
			continue
		}
		tokens = append(tokens, token.New(token.Kind(lt.Type), string(lt.Lexeme), lt.Value, lt.StartLine))
	}
	tokens = append(tokens, token.New(token.EOF, "", nil, lastLine))
	tracer().Debugf("scanned %d tokens", len(tokens))
	return tokens
}

func (s *Scanner) error(line int, message string) {
	if s.report == nil {
		tracer().Errorf("[line %d] Error: %s", line, message)
		return
	}
	s.report.ErrorAtLine(line, message)
}
