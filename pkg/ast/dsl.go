package ast

import "math/big"

// Literal and reference helpers.

func Num(value int64) *Number {
	return NewNumber(big.NewInt(value))
}

func NumBig(value *big.Int) *Number {
	return NewNumber(value)
}

func Ref(name string) *Reference {
	return NewReference(name)
}

// Operation helpers.

func Un(operator UnaryOperator, operand Expression) *UnaryOperation {
	return NewUnaryOperation(operator, operand)
}

func Neg(operand Expression) *UnaryOperation {
	return NewUnaryOperation(UnaryOperatorNegate, operand)
}

func Not(operand Expression) *UnaryOperation {
	return NewUnaryOperation(UnaryOperatorNot, operand)
}

func Bin(operator BinaryOperator, left, right Expression) *BinaryOperation {
	return NewBinaryOperation(left, operator, right)
}

// Control helpers.

func Seq(body ...Expression) *ExpressionSequence {
	return NewExpressionSequence(body)
}

func If(condition Expression, ifTrue []Expression, ifFalse []Expression) *Conditional {
	return NewConditional(condition, ifTrue, ifFalse)
}

func Block(body ...Expression) []Expression {
	return body
}

// Function helpers.

func Fn(params []string, body ...Expression) *Function {
	return NewFunction(params, body)
}

func Params(names ...string) []string {
	return names
}

func Def(name string, params []string, body ...Expression) *FunctionDefinition {
	return NewFunctionDefinition(name, NewFunction(params, body))
}

func DefFn(name string, fn *Function) *FunctionDefinition {
	return NewFunctionDefinition(name, fn)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(Ref(name), args)
}

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// Console helpers.

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Read(name string) *ReadStatement {
	return NewReadStatement(name)
}
