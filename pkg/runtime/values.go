package runtime

import (
	"fmt"
	"math/big"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// NilValue is the result of an empty expression sequence.
type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// IntegerValue is the runtime form of a number. Equality is by value.
type IntegerValue struct {
	Val *big.Int
}

func (IntegerValue) Kind() Kind { return KindInteger }

func NewInteger(v int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(v)}
}

// IntegerFromNumber converts a literal into its runtime value.
func IntegerFromNumber(n *ast.Number) IntegerValue {
	return IntegerValue{Val: n.Int()}
}

// Number converts the value back into a literal node.
func (v IntegerValue) Number() *ast.Number {
	return ast.NumBig(v.Val)
}

func (v IntegerValue) Equal(other IntegerValue) bool {
	return v.Val.Cmp(other.Val) == 0
}

// IsZero reports whether the value counts as false.
func (v IntegerValue) IsZero() bool {
	return v.Val == nil || v.Val.Sign() == 0
}

func (v IntegerValue) String() string {
	if v.Val == nil {
		return "0"
	}
	return v.Val.String()
}

// FunctionValue wraps a function node. It captures no environment.
type FunctionValue struct {
	Declaration *ast.Function
	Name        string
}

func (*FunctionValue) Kind() Kind { return KindFunction }

// CloneBigInt returns a defensive copy.
func CloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// Describe renders a value for diagnostics.
func Describe(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case NilValue:
		return "nil"
	case IntegerValue:
		return val.String()
	case *FunctionValue:
		if val.Name != "" {
			return fmt.Sprintf("<function %s/%d>", val.Name, len(val.Declaration.Params))
		}
		return fmt.Sprintf("<function/%d>", len(val.Declaration.Params))
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
