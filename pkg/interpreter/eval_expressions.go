package interpreter

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

func (i *Interpreter) evaluateInteger(node ast.Expression, scope runtime.Scope, context string) (runtime.IntegerValue, error) {
	val, err := i.evaluateExpression(node, scope)
	if err != nil {
		return runtime.IntegerValue{}, err
	}
	iv, ok := val.(runtime.IntegerValue)
	if !ok {
		return runtime.IntegerValue{}, runtime.TypeMismatch(context, val)
	}
	return iv, nil
}

func (i *Interpreter) evaluateUnaryOperation(expr *ast.UnaryOperation, scope runtime.Scope) (runtime.Value, error) {
	if !expr.Operator.Valid() {
		return nil, runtime.UnknownOperator(string(expr.Operator))
	}
	operand, err := i.evaluateInteger(expr.Operand, scope, fmt.Sprintf("unary %s", expr.Operator))
	if err != nil {
		return nil, err
	}
	return ApplyUnaryOperator(expr.Operator, operand)
}

// Both operands are always evaluated, left first.
func (i *Interpreter) evaluateBinaryOperation(expr *ast.BinaryOperation, scope runtime.Scope) (runtime.Value, error) {
	if !expr.Operator.Valid() {
		return nil, runtime.UnknownOperator(string(expr.Operator))
	}
	context := fmt.Sprintf("operator %s", expr.Operator)
	left, err := i.evaluateInteger(expr.Left, scope, context)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateInteger(expr.Right, scope, context)
	if err != nil {
		return nil, err
	}
	return ApplyBinaryOperator(expr.Operator, left, right)
}

func (i *Interpreter) evaluateSequence(seq *ast.ExpressionSequence, scope runtime.Scope) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	if seq == nil {
		return result, nil
	}
	for _, expr := range seq.Body {
		val, err := i.evaluateExpression(expr, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateConditional(expr *ast.Conditional, scope runtime.Scope) (runtime.Value, error) {
	cond, err := i.evaluateInteger(expr.Condition, scope, "condition")
	if err != nil {
		return nil, err
	}
	if !cond.IsZero() {
		return i.evaluateSequence(expr.IfTrue, scope)
	}
	return i.evaluateSequence(expr.IfFalse, scope)
}

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, scope runtime.Scope) (runtime.Value, error) {
	if def.Function == nil {
		return nil, fmt.Errorf("function definition %s has no function", def.Name)
	}
	fn := &runtime.FunctionValue{Declaration: def.Function, Name: def.Name}
	i.env.Define(scope, def.Name, fn)
	return fn, nil
}

// The callee frame's parent is the caller's scope, so free names resolve
// dynamically. Extra arguments are evaluated and dropped; missing ones stay
// unbound.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, scope runtime.Scope) (runtime.Value, error) {
	calleeVal, err := i.evaluateExpression(call.Callee, scope)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*runtime.FunctionValue)
	if !ok || fn.Declaration == nil {
		return nil, runtime.NotCallable(calleeVal)
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return nil, runtime.CallDepthExceeded(i.maxDepth)
	}

	callScope := i.env.Push(scope)
	i.depth++
	defer func() {
		i.depth--
		i.env.Pop(callScope)
	}()

	params := fn.Declaration.Params
	bound := min(len(params), len(args))
	for idx := 0; idx < bound; idx++ {
		i.env.Define(callScope, params[idx], args[idx])
	}
	i.logger.Debug("call",
		"function", runtime.Describe(fn),
		"args", len(args),
		"bound", i.env.Keys(callScope),
		"depth", i.depth,
		"frames", i.env.Depth(callScope),
	)
	return i.evaluateSequence(fn.Declaration.Body, callScope)
}

func (i *Interpreter) evaluatePrint(stmt *ast.PrintStatement, scope runtime.Scope) (runtime.Value, error) {
	val, err := i.evaluateInteger(stmt.Expression, scope, "print")
	if err != nil {
		return nil, err
	}
	if err := i.console.WriteLine(val.String()); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return val, nil
}

func (i *Interpreter) evaluateRead(stmt *ast.ReadStatement, scope runtime.Scope) (runtime.Value, error) {
	line, err := i.console.ReadLine()
	if err != nil {
		return nil, runtime.InputFormat("read %s: no input available: %v", stmt.Name, err)
	}
	val, err := ParseInteger(line)
	if err != nil {
		return nil, err
	}
	i.env.Define(scope, stmt.Name, val)
	i.logger.Debug("read", "name", stmt.Name, "value", val.String())
	return val, nil
}

// ParseInteger accepts an optionally signed decimal integer surrounded by
// whitespace.
func ParseInteger(text string) (runtime.IntegerValue, error) {
	trimmed := strings.TrimSpace(text)
	digits := strings.TrimLeft(trimmed, "+-")
	if digits == "" || len(trimmed)-len(digits) > 1 {
		return runtime.IntegerValue{}, runtime.InputFormat("invalid integer %q", text)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return runtime.IntegerValue{}, runtime.InputFormat("invalid integer %q", text)
		}
	}
	v, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return runtime.IntegerValue{}, runtime.InputFormat("invalid integer %q", text)
	}
	return runtime.IntegerValue{Val: v}, nil
}
