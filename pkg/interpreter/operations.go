package interpreter

import (
	"math/big"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

func boolToInteger(b bool) runtime.IntegerValue {
	if b {
		return runtime.NewInteger(1)
	}
	return runtime.NewInteger(0)
}

// ApplyBinaryOperator combines two integers. Logical operators return one of
// their operands unchanged rather than a normalized 0/1.
func ApplyBinaryOperator(op ast.BinaryOperator, left, right runtime.IntegerValue) (runtime.IntegerValue, error) {
	l := left.Val
	r := right.Val
	if l == nil {
		l = bigZero
	}
	if r == nil {
		r = bigZero
	}
	switch op {
	case ast.BinaryOperatorAdd:
		return runtime.IntegerValue{Val: new(big.Int).Add(l, r)}, nil
	case ast.BinaryOperatorSub:
		return runtime.IntegerValue{Val: new(big.Int).Sub(l, r)}, nil
	case ast.BinaryOperatorMul:
		return runtime.IntegerValue{Val: new(big.Int).Mul(l, r)}, nil
	case ast.BinaryOperatorDiv, ast.BinaryOperatorMod:
		if r.Sign() == 0 {
			return runtime.IntegerValue{}, runtime.DivisionByZero(string(op))
		}
		q, m := floorDivMod(l, r)
		if op == ast.BinaryOperatorDiv {
			return runtime.IntegerValue{Val: q}, nil
		}
		return runtime.IntegerValue{Val: m}, nil
	case ast.BinaryOperatorEq:
		return boolToInteger(l.Cmp(r) == 0), nil
	case ast.BinaryOperatorNe:
		return boolToInteger(l.Cmp(r) != 0), nil
	case ast.BinaryOperatorLt:
		return boolToInteger(l.Cmp(r) < 0), nil
	case ast.BinaryOperatorGt:
		return boolToInteger(l.Cmp(r) > 0), nil
	case ast.BinaryOperatorLe:
		return boolToInteger(l.Cmp(r) <= 0), nil
	case ast.BinaryOperatorGe:
		return boolToInteger(l.Cmp(r) >= 0), nil
	case ast.BinaryOperatorAnd:
		if l.Sign() == 0 {
			return runtime.IntegerValue{Val: runtime.CloneBigInt(l)}, nil
		}
		return runtime.IntegerValue{Val: runtime.CloneBigInt(r)}, nil
	case ast.BinaryOperatorOr:
		if l.Sign() != 0 {
			return runtime.IntegerValue{Val: runtime.CloneBigInt(l)}, nil
		}
		return runtime.IntegerValue{Val: runtime.CloneBigInt(r)}, nil
	default:
		return runtime.IntegerValue{}, runtime.UnknownOperator(string(op))
	}
}

// ApplyUnaryOperator negates or logically inverts an integer.
func ApplyUnaryOperator(op ast.UnaryOperator, operand runtime.IntegerValue) (runtime.IntegerValue, error) {
	v := operand.Val
	if v == nil {
		v = bigZero
	}
	switch op {
	case ast.UnaryOperatorNegate:
		return runtime.IntegerValue{Val: new(big.Int).Neg(v)}, nil
	case ast.UnaryOperatorNot:
		return boolToInteger(v.Sign() == 0), nil
	default:
		return runtime.IntegerValue{}, runtime.UnknownOperator(string(op))
	}
}

// floorDivMod rounds the quotient toward negative infinity; the remainder
// takes the sign of the divisor. b must be non-zero.
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, m := new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, bigOne)
		m.Add(m, b)
	}
	return q, m
}
