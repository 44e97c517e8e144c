package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// RuntimeError aborts the current run. Token locates the offending source.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

// Line is the source line of the offending token.
func (e *RuntimeError) Line() int { return e.Token.Line }
