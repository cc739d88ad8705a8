package ast

import "reflect"

// Equal reports whether two trees have the same shape, operators, names and
// integer values. Numbers compare by value. A nil pointer wrapped in a Node
// counts as an absent node.
func Equal(a, b Node) bool {
	if isNilNode(a) || isNilNode(b) {
		return isNilNode(a) && isNilNode(b)
	}
	if a.NodeType() != b.NodeType() {
		return false
	}
	switch x := a.(type) {
	case *Number:
		return x.Equal(b.(*Number))
	case *Reference:
		return x.Name == b.(*Reference).Name
	case *UnaryOperation:
		y := b.(*UnaryOperation)
		return x.Operator == y.Operator && Equal(x.Operand, y.Operand)
	case *BinaryOperation:
		y := b.(*BinaryOperation)
		return x.Operator == y.Operator && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *ExpressionSequence:
		return sequencesEqual(x, b.(*ExpressionSequence))
	case *Conditional:
		y := b.(*Conditional)
		return Equal(x.Condition, y.Condition) && sequencesEqual(x.IfTrue, y.IfTrue) && sequencesEqual(x.IfFalse, y.IfFalse)
	case *Function:
		return functionsEqual(x, b.(*Function))
	case *FunctionDefinition:
		y := b.(*FunctionDefinition)
		return x.Name == y.Name && functionsEqual(x.Function, y.Function)
	case *FunctionCall:
		y := b.(*FunctionCall)
		return Equal(x.Callee, y.Callee) && expressionsEqual(x.Arguments, y.Arguments)
	case *PrintStatement:
		return Equal(x.Expression, b.(*PrintStatement).Expression)
	case *ReadStatement:
		return x.Name == b.(*ReadStatement).Name
	default:
		return false
	}
}

func sequencesEqual(a, b *ExpressionSequence) bool {
	if a.Empty() || b.Empty() {
		return a.Empty() && b.Empty()
	}
	return expressionsEqual(a.Body, b.Body)
}

func functionsEqual(a, b *Function) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for idx := range a.Params {
		if a.Params[idx] != b.Params[idx] {
			return false
		}
	}
	return sequencesEqual(a.Body, b.Body)
}

func expressionsEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !Equal(a[idx], b[idx]) {
			return false
		}
	}
	return true
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
