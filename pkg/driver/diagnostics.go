package driver

import (
	"errors"
	"fmt"
	"io"

	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// DiagnosticKind tells which stage produced a diagnostic.
type DiagnosticKind string

const (
	KindSyntax  DiagnosticKind = "syntax"
	KindStatic  DiagnosticKind = "static"
	KindRuntime DiagnosticKind = "runtime"
)

// Diagnostic is one reported error.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Where   string // " at 'x'", " at end" or empty
	Message string
}

// String formats the diagnostic for CLI output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter collects diagnostics from every stage and forwards each one to a
// sink as it arrives. It satisfies the error reporter interfaces of the
// scanner, parser and resolver.
type Reporter struct {
	sink            func(Diagnostic)
	stage           DiagnosticKind
	diagnostics     []Diagnostic
	hadError        bool
	hadRuntimeError bool
}

// NewReporter writes each diagnostic as a line to out.
func NewReporter(out io.Writer) *Reporter {
	return NewReporterFunc(func(d Diagnostic) {
		fmt.Fprintln(out, d.String())
	})
}

// NewReporterFunc hands each diagnostic to sink.
func NewReporterFunc(sink func(Diagnostic)) *Reporter {
	if sink == nil {
		sink = func(Diagnostic) {}
	}
	return &Reporter{sink: sink, stage: KindSyntax}
}

// ErrorAtLine reports an error that has no token, such as a lexical error.
func (r *Reporter) ErrorAtLine(line int, message string) {
	r.add(Diagnostic{Kind: r.stage, Line: line, Message: message})
}

// ErrorAtToken reports an error located at tok.
func (r *Reporter) ErrorAtToken(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	r.add(Diagnostic{Kind: r.stage, Line: tok.Line, Where: where, Message: message})
}

// RuntimeError reports the error that aborted a run. Errors that are not
// runtime errors are reported without a line.
func (r *Reporter) RuntimeError(err error) {
	d := Diagnostic{Kind: KindRuntime, Message: err.Error()}
	var rt *runtime.RuntimeError
	if errors.As(err, &rt) {
		d.Line = rt.Line()
		d.Message = rt.Message
	}
	r.diagnostics = append(r.diagnostics, d)
	r.hadRuntimeError = true
	r.sink(d)
}

func (r *Reporter) add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	r.hadError = true
	r.sink(d)
}

func (r *Reporter) setStage(kind DiagnosticKind) { r.stage = kind }

// HadError reports whether a syntax or static error occurred.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a run was aborted.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Diagnostics returns everything reported since the last Reset.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// Reset clears the error state; the REPL calls it between lines.
func (r *Reporter) Reset() {
	r.diagnostics = nil
	r.hadError = false
	r.hadRuntimeError = false
	r.stage = KindSyntax
}
