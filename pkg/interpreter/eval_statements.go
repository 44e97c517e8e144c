package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Stmt, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluateExpression(n.Expression, env)
		return normal, err
	case *ast.PrintStmt:
		return normal, i.evaluatePrintStatement(n, env)
	case *ast.VarStmt:
		return normal, i.evaluateVarStatement(n, env)
	case *ast.BlockStmt:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.IfStmt:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileStmt:
		return i.evaluateWhileLoop(n, env)
	case *ast.FunctionStmt:
		env.Define(n.Name.Lexeme, runtime.NewFunction(n, env, false))
		return normal, nil
	case *ast.ReturnStmt:
		return i.evaluateReturnStatement(n, env)
	case *ast.ClassStmt:
		return normal, i.evaluateClassDefinition(n, env)
	default:
		return normal, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// executeBlock runs stmts in env, stopping early on a return completion.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *runtime.Environment) (completion, error) {
	for _, stmt := range stmts {
		c, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return normal, err
		}
		if c.returned() {
			return c, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluatePrintStatement(n *ast.PrintStmt, env *runtime.Environment) error {
	value, err := i.evaluateExpression(n.Expression, env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(i.out, Stringify(value))
	return err
}

func (i *Interpreter) evaluateVarStatement(n *ast.VarStmt, env *runtime.Environment) error {
	value := runtime.Nil
	if n.Initializer != nil {
		v, err := i.evaluateExpression(n.Initializer, env)
		if err != nil {
			return err
		}
		value = v
	}
	env.Define(n.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) evaluateIfStatement(n *ast.IfStmt, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateExpression(n.Condition, env)
	if err != nil {
		return normal, err
	}
	if runtime.IsTruthy(cond) {
		return i.evaluateStatement(n.ThenBranch, env)
	}
	if n.ElseBranch != nil {
		return i.evaluateStatement(n.ElseBranch, env)
	}
	return normal, nil
}

func (i *Interpreter) evaluateWhileLoop(n *ast.WhileStmt, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return normal, err
		}
		if !runtime.IsTruthy(cond) {
			return normal, nil
		}
		c, err := i.evaluateStatement(n.Body, env)
		if err != nil || c.returned() {
			return c, err
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(n *ast.ReturnStmt, env *runtime.Environment) (completion, error) {
	value := runtime.Nil
	if n.Value != nil {
		v, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return normal, err
		}
		value = v
	}
	return returning(value), nil
}

// evaluateClassDefinition binds the class name first so methods can refer to
// it. With a superclass, methods close over an extra frame holding `super`.
func (i *Interpreter) evaluateClassDefinition(n *ast.ClassStmt, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if n.Superclass != nil {
		v, err := i.evaluateExpression(n.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := v.(*runtime.ClassValue)
		if !ok {
			return runtime.NewRuntimeError(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	env.Define(n.Name.Lexeme, runtime.Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}
	methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = runtime.NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	env.Define(n.Name.Lexeme, runtime.NewClass(n.Name.Lexeme, superclass, methods))
	tracer().Debugf("defined class %s with %d methods", n.Name.Lexeme, len(methods))
	return nil
}
