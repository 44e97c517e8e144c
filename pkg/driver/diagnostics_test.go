package driver

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func TestReporterFormatsLocations(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)
	r.ErrorAtLine(3, "Unexpected character.")
	r.ErrorAtToken(token.New(token.Identifier, "foo", nil, 4), "Expect ';' after value.")
	r.ErrorAtToken(token.New(token.EOF, "", nil, 5), "Expect expression.")

	want := "[line 3] Error: Unexpected character.\n" +
		"[line 4] Error at 'foo': Expect ';' after value.\n" +
		"[line 5] Error at end: Expect expression.\n"
	if out.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out.String(), want)
	}
	if !r.HadError() || r.HadRuntimeError() {
		t.Fatalf("static errors must set only HadError")
	}
}

func TestReporterRuntimeErrors(t *testing.T) {
	r := NewReporterFunc(nil)
	op := token.New(token.Minus, "-", nil, 7)
	r.RuntimeError(fmt.Errorf("wrapped: %w", runtime.NewRuntimeError(op, "Operands must be numbers.")))
	r.RuntimeError(errors.New("disk on fire"))

	diags := r.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %d", len(diags))
	}
	if got := diags[0].String(); got != "[line 7] Error: Operands must be numbers." {
		t.Fatalf("unexpected runtime diagnostic %q", got)
	}
	if diags[0].Kind != KindRuntime || diags[1].Message != "disk on fire" {
		t.Fatalf("unexpected diagnostics %#v", diags)
	}
	if r.HadError() || !r.HadRuntimeError() {
		t.Fatalf("runtime errors must set only HadRuntimeError")
	}
}

func TestReporterStagesAndReset(t *testing.T) {
	r := NewReporterFunc(nil)
	r.ErrorAtLine(1, "syntax")
	r.setStage(KindStatic)
	r.ErrorAtToken(token.Ident("x", 2), "static")
	if r.Diagnostics()[0].Kind != KindSyntax || r.Diagnostics()[1].Kind != KindStatic {
		t.Fatalf("stages not recorded: %#v", r.Diagnostics())
	}
	r.Reset()
	if r.HadError() || len(r.Diagnostics()) != 0 {
		t.Fatalf("Reset must clear state")
	}
	r.ErrorAtLine(1, "again")
	if r.Diagnostics()[0].Kind != KindSyntax {
		t.Fatalf("Reset must restore the syntax stage")
	}
}

func TestParseTraceLevel(t *testing.T) {
	for _, level := range []string{"Debug", "info", " ERROR "} {
		if _, err := ParseTraceLevel(level); err != nil {
			t.Fatalf("ParseTraceLevel(%q) failed: %v", level, err)
		}
	}
	if _, err := ParseTraceLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if err := ConfigureTracing("Error"); err != nil {
		t.Fatalf("ConfigureTracing: %v", err)
	}
}
