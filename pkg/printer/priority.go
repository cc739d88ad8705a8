package printer

import (
	"fmt"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

const (
	// PriorityStatement is used by forms that are always parenthesized when
	// they appear as an operand.
	PriorityStatement = -1
	PriorityUnary     = 6
	PriorityAtom      = 7
)

var operatorPriorities = map[ast.BinaryOperator]int{
	ast.BinaryOperatorMul: 5,
	ast.BinaryOperatorDiv: 5,
	ast.BinaryOperatorMod: 5,
	ast.BinaryOperatorAdd: 4,
	ast.BinaryOperatorSub: 4,
	ast.BinaryOperatorLt:  3,
	ast.BinaryOperatorGt:  3,
	ast.BinaryOperatorLe:  3,
	ast.BinaryOperatorGe:  3,
	ast.BinaryOperatorEq:  2,
	ast.BinaryOperatorNe:  2,
	ast.BinaryOperatorAnd: 1,
	ast.BinaryOperatorOr:  0,
}

// OperatorPriority reports the binding strength of a binary operator.
func OperatorPriority(op ast.BinaryOperator) (int, bool) {
	p, ok := operatorPriorities[op]
	return p, ok
}

// Priority reports how tightly node binds when it appears as an operand.
// Negative literals bind like unary minus.
func Priority(node ast.Expression) (int, error) {
	switch n := node.(type) {
	case *ast.Number:
		if n.Value.Sign() < 0 {
			return PriorityUnary, nil
		}
		return PriorityAtom, nil
	case *ast.Reference, *ast.FunctionCall:
		return PriorityAtom, nil
	case *ast.UnaryOperation:
		if !n.Operator.Valid() {
			return 0, runtime.UnknownOperator(string(n.Operator))
		}
		return PriorityUnary, nil
	case *ast.BinaryOperation:
		p, ok := OperatorPriority(n.Operator)
		if !ok {
			return 0, runtime.UnknownOperator(string(n.Operator))
		}
		return p, nil
	case *ast.PrintStatement, *ast.ReadStatement, *ast.Conditional,
		*ast.FunctionDefinition, *ast.Function, *ast.ExpressionSequence:
		return PriorityStatement, nil
	default:
		return 0, fmt.Errorf("priority: unsupported expression type: %T", node)
	}
}
