package runtime

import (
	"errors"
	"testing"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func TestEnvironmentDefineGetAssign(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NumberValue{Val: 1})
	inner := NewEnvironment(NewEnvironment(global))

	v, err := inner.Get(token.Ident("a", 1))
	if err != nil || v != (NumberValue{Val: 1}) {
		t.Fatalf("expected 1 from outer frame, got %#v (%v)", v, err)
	}
	if err := inner.Assign(token.Ident("a", 1), StringValue{Val: "x"}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if v, _ := global.Get(token.Ident("a", 1)); v != (StringValue{Val: "x"}) {
		t.Fatalf("assignment should land in the declaring frame, got %#v", v)
	}
	if keys := global.Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestEnvironmentUndefinedVariable(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(token.Ident("ghost", 7))
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if rt.Message != "Undefined variable 'ghost'." || rt.Line() != 7 {
		t.Fatalf("unexpected error %q on line %d", rt.Message, rt.Line())
	}
	if err := env.Assign(token.Ident("ghost", 8), Nil); err == nil {
		t.Fatalf("assigning an undeclared name must fail")
	}
}

func TestEnvironmentDistanceAccessIsPinned(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue{Val: 1})
	block := NewEnvironment(global)
	// a later shadowing definition must not affect distance-based access
	block.Define("x", NumberValue{Val: 2})

	if v := block.GetAt(1, "x"); v != (NumberValue{Val: 1}) {
		t.Fatalf("expected pinned outer x, got %#v", v)
	}
	block.AssignAt(1, "x", NumberValue{Val: 3})
	if v := global.GetAt(0, "x"); v != (NumberValue{Val: 3}) {
		t.Fatalf("expected outer x updated, got %#v", v)
	}
	if v := block.GetAt(0, "x"); v != (NumberValue{Val: 2}) {
		t.Fatalf("inner x must be untouched, got %#v", v)
	}
	if block.Ancestor(1) != global || block.Ancestor(0) != block {
		t.Fatalf("ancestor walk is wrong")
	}
}

func TestTruthinessAndEquality(t *testing.T) {
	if IsTruthy(Nil) || IsTruthy(BoolValue{Val: false}) {
		t.Fatalf("nil and false must be falsey")
	}
	for _, v := range []Value{BoolValue{Val: true}, NumberValue{Val: 0}, StringValue{Val: ""}, NewInstance(NewClass("A", nil, nil))} {
		if !IsTruthy(v) {
			t.Fatalf("%s should be truthy", v.Kind())
		}
	}
	if !Equal(Nil, Nil) || !Equal(NumberValue{Val: 2}, NumberValue{Val: 2}) || !Equal(StringValue{Val: "a"}, StringValue{Val: "a"}) {
		t.Fatalf("equal scalars compare equal")
	}
	if Equal(NumberValue{Val: 1}, StringValue{Val: "1"}) || Equal(Nil, BoolValue{Val: false}) {
		t.Fatalf("different kinds are never equal")
	}
	a, b := NewInstance(NewClass("A", nil, nil)), NewInstance(NewClass("A", nil, nil))
	if Equal(a, b) || !Equal(a, a) {
		t.Fatalf("instances compare by identity")
	}
}

type stubExecutor struct {
	calls int
}

func (s *stubExecutor) ExecuteBody(_ []ast.Stmt, env *Environment) (Value, bool, error) {
	s.calls++
	return StringValue{Val: "early"}, true, nil
}

func TestClassArityAndMethodLookup(t *testing.T) {
	base := NewClass("Base", nil, map[string]*FunctionValue{
		"init": NewFunction(ast.Fun("init", []string{"a", "b"}), nil, true),
		"m":    NewFunction(ast.Fun("m", nil), nil, false),
	})
	derived := NewClass("Derived", base, map[string]*FunctionValue{})
	if derived.Arity() != 2 {
		t.Fatalf("arity should come from the inherited init, got %d", derived.Arity())
	}
	if NewClass("Empty", nil, nil).Arity() != 0 {
		t.Fatalf("class without init takes no arguments")
	}
	if _, ok := derived.FindMethod("m"); !ok {
		t.Fatalf("inherited method not found")
	}

	exec := &stubExecutor{}
	v, err := derived.Call(exec, []Value{Nil, Nil})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	instance, ok := v.(*InstanceValue)
	if !ok || instance.Class != derived || exec.calls != 1 {
		t.Fatalf("expected Derived instance after running init, got %#v", v)
	}
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	class := NewClass("A", nil, map[string]*FunctionValue{
		"m": NewFunction(ast.Fun("m", nil), NewEnvironment(nil), false),
	})
	instance := NewInstance(class)
	v, err := instance.Get(token.Ident("m", 1))
	if err != nil {
		t.Fatalf("method lookup failed: %v", err)
	}
	bound, ok := v.(*FunctionValue)
	if !ok || bound.Closure.GetAt(0, "this") != instance {
		t.Fatalf("method should be bound to the instance")
	}
	instance.Set(token.Ident("m", 1), NumberValue{Val: 4})
	if v, _ := instance.Get(token.Ident("m", 1)); v != (NumberValue{Val: 4}) {
		t.Fatalf("field should shadow method, got %#v", v)
	}
	if _, err := instance.Get(token.Ident("missing", 3)); err == nil || err.(*RuntimeError).Message != "Undefined property 'missing'." {
		t.Fatalf("expected undefined property error, got %v", err)
	}
}

func TestInitializerAlwaysReturnsThis(t *testing.T) {
	class := NewClass("A", nil, nil)
	init := NewFunction(ast.Fun("init", nil), NewEnvironment(nil), true)
	instance := NewInstance(class)
	v, err := init.Bind(instance).Call(&stubExecutor{}, nil)
	if err != nil || v != instance {
		t.Fatalf("initializer should yield the instance, got %#v (%v)", v, err)
	}
}

func TestClock(t *testing.T) {
	clock := Clock(func() time.Time { return time.Unix(90, 500000000) })
	v, err := clock.Call(nil, nil)
	if err != nil || v != (NumberValue{Val: 90.5}) {
		t.Fatalf("expected 90.5 seconds, got %#v (%v)", v, err)
	}
	if clock.Arity() != 0 {
		t.Fatalf("clock takes no arguments")
	}
}
