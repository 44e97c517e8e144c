package runtime

import (
	"fmt"
	"time"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Scalars are plain
// comparable structs; callables and instances are pointers, so == on two
// Values is Lox equality.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// Nil is the single absent value.
var Nil Value = NilValue{}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// FromLiteral converts a literal carried by a token or syntax tree node.
func FromLiteral(v any) Value {
	switch v := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue{Val: v}
	case float64:
		return NumberValue{Val: v}
	case string:
		return StringValue{Val: v}
	default:
		panic(fmt.Sprintf("runtime: unsupported literal %T", v))
	}
}

// IsTruthy treats nil and false as false and everything else as true.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return v.Val
	default:
		return true
	}
}

// Equal never fails: values of different kinds are simply unequal.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	return a == b
}

//-----------------------------------------------------------------------------
// Natives
//-----------------------------------------------------------------------------

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	arity int
	Impl  NativeFunc
}

func NewNativeFunction(name string, arity int, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, arity: arity, Impl: impl}
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.arity }

func (v *NativeFunctionValue) Call(_ Executor, args []Value) (Value, error) {
	return v.Impl(args)
}

// Clock returns the `clock` built-in: seconds since the Unix epoch.
func Clock(now func() time.Time) *NativeFunctionValue {
	if now == nil {
		now = time.Now
	}
	return NewNativeFunction("clock", 0, func([]Value) (Value, error) {
		return NumberValue{Val: float64(now().UnixNano()) / float64(time.Second)}, nil
	})
}
