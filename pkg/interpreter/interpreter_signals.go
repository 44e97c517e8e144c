package interpreter

import "lox/interpreter-go/pkg/runtime"

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
)

// completion is what a statement leaves behind. A return travels up through
// every enclosing statement executor until a function call consumes it.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normal = completion{kind: completionNormal}

func returning(value runtime.Value) completion {
	return completion{kind: completionReturn, value: value}
}

func (c completion) returned() bool { return c.kind == completionReturn }
