package ast

import (
	"math/big"
	"testing"
)

func TestNumberEqualityIsByValue(t *testing.T) {
	a := Num(42)
	b := NumBig(big.NewInt(42))
	if a == b {
		t.Fatalf("expected distinct instances")
	}
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Fatalf("expected %s and %s to be interchangeable", a.Key(), b.Key())
	}
	if a.Equal(Num(-42)) {
		t.Fatalf("numbers with different values compared equal")
	}
}

func TestNumberCopiesItsInput(t *testing.T) {
	src := big.NewInt(7)
	n := NumBig(src)
	src.SetInt64(8)
	if n.Value.Int64() != 7 {
		t.Fatalf("number mutated through constructor argument: %s", n.Value)
	}
	out := n.Int()
	out.SetInt64(9)
	if n.Value.Int64() != 7 {
		t.Fatalf("number mutated through Int(): %s", n.Value)
	}
}

func TestConstructorsCopySlices(t *testing.T) {
	args := []Expression{Num(1), Num(2)}
	call := CallExpr(Ref("f"), args...)
	args[0] = Num(99)
	if !Equal(call.Arguments[0], Num(1)) {
		t.Fatalf("call arguments aliased caller slice")
	}

	params := []string{"a", "b"}
	fn := Fn(params, Ref("a"))
	params[0] = "z"
	if fn.Params[0] != "a" {
		t.Fatalf("function params aliased caller slice")
	}
}

func TestConditionalNilBranchesBecomeEmptySequences(t *testing.T) {
	cond := If(Not(Num(0)), nil, nil)
	if cond.IfTrue == nil || cond.IfFalse == nil {
		t.Fatalf("expected non-nil branch sequences")
	}
	if !cond.IfTrue.Empty() || !cond.IfFalse.Empty() {
		t.Fatalf("expected empty branches")
	}
}

func TestEqualComparesStructure(t *testing.T) {
	build := func(name string) Expression {
		return Def("fact", Params("n"),
			If(Bin(">", Ref("n"), Num(1)),
				Block(Bin("*", Ref("n"), Call(name, Bin("-", Ref("n"), Num(1))))),
				Block(Num(1)),
			),
		)
	}
	if !Equal(build("fact"), build("fact")) {
		t.Fatalf("identical trees compared unequal")
	}
	if Equal(build("fact"), build("other")) {
		t.Fatalf("different trees compared equal")
	}
	if Equal(Print(Num(1)), Read("x")) {
		t.Fatalf("different node kinds compared equal")
	}
	if !Equal(nil, nil) || Equal(Num(1), nil) {
		t.Fatalf("nil handling is wrong")
	}
}

func TestEqualTreatsTypedNilAsAbsent(t *testing.T) {
	var num *Number
	var call *FunctionCall
	if Equal(num, Num(1)) || Equal(Ref("x"), call) {
		t.Fatalf("typed nil compared equal to a node")
	}
	if !Equal(num, nil) || !Equal(num, call) {
		t.Fatalf("typed nils should compare as absent")
	}
	if Equal(Print(num), Print(Num(0))) {
		t.Fatalf("nested typed nil compared equal to a node")
	}
}

func TestOperatorSets(t *testing.T) {
	for _, op := range BinaryOperators {
		if !op.Valid() {
			t.Fatalf("operator %q should be valid", op)
		}
	}
	if BinaryOperator("**").Valid() || BinaryOperator("").Valid() {
		t.Fatalf("unexpected operator accepted")
	}
	if !UnaryOperatorNegate.Valid() || !UnaryOperatorNot.Valid() || UnaryOperator("~").Valid() {
		t.Fatalf("unary operator set is wrong")
	}
}

func TestNodeTypesAreDistinct(t *testing.T) {
	seen := make(map[NodeType]bool, len(NodeTypes))
	for _, nt := range NodeTypes {
		if seen[nt] {
			t.Fatalf("duplicate node type %s", nt)
		}
		seen[nt] = true
	}
	nodes := []Node{Num(0), Ref("x"), Neg(Num(1)), Bin("+", Num(1), Num(2)), Seq(), If(Num(1), nil, nil), Fn(nil), Def("f", nil), Call("f"), Print(Num(1)), Read("x")}
	if len(nodes) != len(NodeTypes) {
		t.Fatalf("expected one sample per node type")
	}
	for idx, n := range nodes {
		if n.NodeType() != NodeTypes[idx] {
			t.Fatalf("node %d: expected %s, got %s", idx, NodeTypes[idx], n.NodeType())
		}
	}
}
