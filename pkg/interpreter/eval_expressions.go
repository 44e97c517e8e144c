package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return runtime.FromLiteral(n.Value), nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnaryExpression(n, env)
	case *ast.Binary:
		return i.evaluateBinaryExpression(n, env)
	case *ast.Logical:
		return i.evaluateLogicalExpression(n, env)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssignmentExpression(n, env)
	case *ast.Call:
		return i.evaluateFunctionCall(n, env)
	case *ast.Get:
		return i.evaluateGetExpression(n, env)
	case *ast.Set:
		return i.evaluateSetExpression(n, env)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.Super:
		return i.evaluateSuperExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

// lookUpVariable reads a resolved local at its exact distance, or a global.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return env.GetAt(distance, name.Lexeme), nil
	}
	return i.global.Get(name)
}

func (i *Interpreter) evaluateAssignmentExpression(n *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[n]; ok {
		env.AssignAt(distance, n.Name.Lexeme, value)
		return value, nil
	}
	if err := i.global.Assign(n.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateUnaryExpression(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(right)}, nil
	case token.Minus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtime.NewRuntimeError(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	}
	return nil, fmt.Errorf("unsupported unary operator %s", n.Operator.Lexeme)
}

// evaluateBinaryExpression evaluates the left operand before the right one.
func (i *Interpreter) evaluateBinaryExpression(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		if l, ok := left.(runtime.NumberValue); ok {
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		}
		if l, ok := left.(runtime.StringValue); ok {
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, runtime.NewRuntimeError(n.Operator, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtime.NewRuntimeError(n.Operator, "Operands must be numbers.")
	}
	switch n.Operator.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case token.Star:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case token.Slash:
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case token.Less:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	}
	return nil, fmt.Errorf("unsupported binary operator %s", n.Operator.Lexeme)
}

// evaluateLogicalExpression short-circuits and yields an operand value, not
// a coerced bool.
func (i *Interpreter) evaluateLogicalExpression(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(n.Right, env)
}
