package interpreter

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateFunctionCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		v, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtime.NewRuntimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if i.depth >= MaxCallDepth {
		return nil, runtime.NewRuntimeError(n.Paren, "Stack overflow.")
	}
	i.depth++
	defer func() { i.depth-- }()
	return fn.Call(i, args)
}

func (i *Interpreter) evaluateGetExpression(n *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Name, "Only instances have properties.")
	}
	return instance.Get(n.Name)
}

// evaluateSetExpression checks the target before evaluating the new value.
func (i *Interpreter) evaluateSetExpression(n *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Name, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(n.Name, value)
	return value, nil
}

// evaluateSuperExpression finds the method on the superclass stored at the
// resolved distance; `this` always lives one frame closer.
func (i *Interpreter) evaluateSuperExpression(n *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[n]
	if !ok {
		return nil, runtime.NewRuntimeError(n.Keyword, "Can't use 'super' outside of a class.")
	}
	superclass, ok := env.GetAt(distance, "super").(*runtime.ClassValue)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Keyword, "Superclass must be a class.")
	}
	object, ok := env.GetAt(distance-1, "this").(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Keyword, "Can't use 'super' outside of a class.")
	}
	method, ok := superclass.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, runtime.NewRuntimeError(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(object), nil
}
