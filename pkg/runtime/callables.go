package runtime

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Executor runs a function body in a prepared environment. returned reports
// whether a return statement ended the body.
type Executor interface {
	ExecuteBody(body []ast.Stmt, env *Environment) (value Value, returned bool, err error)
}

// Callable is implemented by functions, natives and classes.
type Callable interface {
	Value
	Arity() int
	Call(exec Executor, args []Value) (Value, error)
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *FunctionValue) Kind() Kind { return KindFunction }

func (f *FunctionValue) Name() string { return f.Declaration.Name.Lexeme }

func (f *FunctionValue) Arity() int { return len(f.Declaration.Params) }

// Bind returns a copy of the method whose closure has `this` set to instance.
func (f *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return NewFunction(f.Declaration, env, f.IsInitializer)
}

// Call binds arguments in a fresh frame under the closure. Initializers
// always yield the bound instance, even after a bare `return;`.
func (f *FunctionValue) Call(exec Executor, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	value, returned, err := exec.ExecuteBody(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	if returned && value != nil {
		return value, nil
	}
	return Nil, nil
}

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue) *ClassValue {
	return &ClassValue{Name: name, Superclass: superclass, Methods: methods}
}

func (c *ClassValue) Kind() Kind { return KindClass }

// FindMethod looks up name on the class, then up the superclass chain.
func (c *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (c *ClassValue) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs an instance and runs `init` on it when present.
func (c *ClassValue) Call(exec Executor, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(exec, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

type InstanceValue struct {
	Class  *ClassValue
	fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, fields: make(map[string]Value)}
}

func (i *InstanceValue) Kind() Kind { return KindInstance }

// Get reads a field, falling back to a method bound to this instance.
// Fields shadow methods.
func (i *InstanceValue) Get(name token.Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set always writes a field, creating it if needed.
func (i *InstanceValue) Set(name token.Token, value Value) {
	i.fields[name.Lexeme] = value
}
