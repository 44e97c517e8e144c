package driver

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lox.driver'.
func tracer() tracing.Trace {
	return tracing.Select("lox.driver")
}

// TraceKeys lists the tracers of all pipeline stages.
var TraceKeys = []string{
	"lox.scanner",
	"lox.parser",
	"lox.resolver",
	"lox.interpreter",
	"lox.driver",
}

// ParseTraceLevel accepts Debug, Info or Error in any case.
func ParseTraceLevel(level string) (tracing.TraceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q (want Debug, Info or Error)", level)
}

// ConfigureTracing sets every pipeline tracer to level.
func ConfigureTracing(level string) error {
	l, err := ParseTraceLevel(level)
	if err != nil {
		return err
	}
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	return nil
}
