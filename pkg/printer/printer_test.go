package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/folder"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

func mustRender(t *testing.T, node ast.Expression) string {
	t.Helper()
	out, err := Render(node)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func expectRender(t *testing.T, node ast.Expression, want string) {
	t.Helper()
	if got := mustRender(t, node); got != want {
		t.Fatalf("unexpected rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestPriorityTable(t *testing.T) {
	cases := []struct {
		node ast.Expression
		want int
	}{
		{ast.Num(3), 7},
		{ast.Num(0), 7},
		{ast.Num(-3), 6},
		{ast.Ref("x"), 7},
		{ast.Call("f"), 7},
		{ast.Neg(ast.Ref("x")), 6},
		{ast.Bin(ast.BinaryOperatorMod, ast.Num(1), ast.Num(2)), 5},
		{ast.Bin(ast.BinaryOperatorSub, ast.Num(1), ast.Num(2)), 4},
		{ast.Bin(ast.BinaryOperatorGe, ast.Num(1), ast.Num(2)), 3},
		{ast.Bin(ast.BinaryOperatorNe, ast.Num(1), ast.Num(2)), 2},
		{ast.Bin(ast.BinaryOperatorAnd, ast.Num(1), ast.Num(2)), 1},
		{ast.Bin(ast.BinaryOperatorOr, ast.Num(1), ast.Num(2)), 0},
		{ast.Print(ast.Num(1)), -1},
		{ast.Read("x"), -1},
		{ast.If(ast.Num(1), nil, nil), -1},
		{ast.Def("f", nil), -1},
		{ast.Fn(nil), -1},
		{ast.Seq(), -1},
	}
	for _, tc := range cases {
		got, err := Priority(tc.node)
		if err != nil {
			t.Fatalf("priority of %#v failed: %v", tc.node, err)
		}
		if got != tc.want {
			t.Fatalf("priority of %#v: expected %d, got %d", tc.node, tc.want, got)
		}
	}
	for _, op := range ast.BinaryOperators {
		if _, ok := OperatorPriority(op); !ok {
			t.Fatalf("operator %s has no priority", op)
		}
	}
	if _, err := Priority(ast.Bin(ast.BinaryOperator("^"), ast.Num(1), ast.Num(2))); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}

func TestMinimalParentheses(t *testing.T) {
	x := ast.Ref("x")
	cases := []struct {
		node ast.Expression
		want string
	}{
		{ast.Bin(ast.BinaryOperatorMul, ast.Bin(ast.BinaryOperatorAdd, ast.Num(1), ast.Num(2)), x), "(1 + 2) * x;\n"},
		{ast.Bin(ast.BinaryOperatorAdd, ast.Num(1), ast.Bin(ast.BinaryOperatorMul, ast.Num(2), x)), "1 + 2 * x;\n"},
		{ast.Bin(ast.BinaryOperatorSub, ast.Num(1), ast.Bin(ast.BinaryOperatorSub, ast.Num(2), x)), "1 - (2 - x);\n"},
		{ast.Bin(ast.BinaryOperatorSub, ast.Bin(ast.BinaryOperatorSub, ast.Num(1), ast.Num(2)), x), "1 - 2 - x;\n"},
		{ast.Not(ast.Num(1)), "!1;\n"},
		{ast.Not(ast.Num(-1)), "!(-1);\n"},
		{ast.Not(ast.Neg(ast.Num(-1))), "!(-(-1));\n"},
		{ast.Neg(ast.Bin(ast.BinaryOperatorDiv, ast.Ref("b"), ast.Ref("a"))), "-(b / a);\n"},
		{ast.Bin(ast.BinaryOperatorMul, ast.Num(30), ast.Neg(ast.Num(59))), "30 * -59;\n"},
		{ast.Bin(ast.BinaryOperatorAdd, ast.Num(-2), ast.Num(3)), "-2 + 3;\n"},
		{ast.Print(ast.Bin(ast.BinaryOperatorAdd, ast.Num(1), ast.Num(2))), "print 1 + 2;\n"},
	}
	for _, tc := range cases {
		expectRender(t, tc.node, tc.want)
	}
}

func TestMixedPriorityExpression(t *testing.T) {
	first := ast.Bin(ast.BinaryOperatorGt, ast.Ref("a"), ast.Ref("b"))
	second := ast.Bin(ast.BinaryOperatorDiv, ast.Ref("b"), ast.Bin(ast.BinaryOperatorEq, ast.Ref("a"), ast.Num(3)))
	third := ast.Bin(ast.BinaryOperatorEq, second, ast.Ref("c"))
	fourth := ast.Bin(ast.BinaryOperatorOr, first, third)
	fifth := ast.Bin(ast.BinaryOperatorMod, ast.Ref("b"), ast.Read("d"))
	sixth := ast.Bin(ast.BinaryOperatorNe, fifth, ast.Call("fact", ast.Num(10)))
	expectRender(t, ast.Bin(ast.BinaryOperatorAnd, fourth, sixth),
		"(a > b || b / (a == 3) == c) && b % (read d) != fact(10);\n")
}

func TestRenderFactorial(t *testing.T) {
	def := ast.Def("fact", ast.Params("n"),
		ast.If(
			ast.Bin(ast.BinaryOperatorGt, ast.Ref("n"), ast.Num(1)),
			ast.Block(ast.Bin(ast.BinaryOperatorMul,
				ast.Ref("n"),
				ast.Call("fact", ast.Bin(ast.BinaryOperatorSub, ast.Ref("n"), ast.Num(1))),
			)),
			ast.Block(ast.Num(1)),
		),
	)
	expectRender(t, ast.Seq(def, ast.Call("fact", ast.Num(10))), "def fact(n) {\n"+
		"\tif (n > 1) {\n"+
		"\t\tn * fact(n - 1);\n"+
		"\t} else {\n"+
		"\t\t1;\n"+
		"\t};\n"+
		"};\n"+
		"fact(10);\n")
}

func TestRenderMultiArgumentFunction(t *testing.T) {
	def := ast.Def("compute", ast.Params("a", "b", "c"),
		ast.Bin(ast.BinaryOperatorSub, ast.Bin(ast.BinaryOperatorDiv, ast.Ref("b"), ast.Ref("a")), ast.Ref("c")),
	)
	expectRender(t, def, "def compute(a, b, c) {\n\tb / a - c;\n};\n")
	expectRender(t, ast.Call("compute", ast.Num(3), ast.Num(1000), ast.Num(30)), "compute(3, 1000, 30);\n")
}

func TestRenderEmptyConditionals(t *testing.T) {
	expectRender(t, ast.If(ast.Not(ast.Num(0)), nil, nil), "if (!0) {\n};\n")
	expectRender(t, ast.If(ast.Not(ast.Num(1)), nil, nil), "if (!1) {\n};\n")
	expectRender(t, ast.If(ast.Num(1), nil, ast.Block(ast.Num(2))), "if (1) {\n} else {\n\t2;\n};\n")
}

func TestRenderLinearSolve(t *testing.T) {
	def := ast.Def("linear_solve", nil,
		ast.Read("a"),
		ast.Read("b"),
		ast.If(
			ast.Bin(ast.BinaryOperatorNe, ast.Ref("a"), ast.Num(0)),
			ast.Block(ast.Print(ast.Neg(ast.Bin(ast.BinaryOperatorDiv, ast.Ref("b"), ast.Ref("a"))))),
			nil,
		),
	)
	expectRender(t, def, "def linear_solve() {\n"+
		"\tread a;\n"+
		"\tread b;\n"+
		"\tif (a != 0) {\n"+
		"\t\tprint -(b / a);\n"+
		"\t};\n"+
		"};\n")
}

func TestRenderFunctionsAndBlocks(t *testing.T) {
	fn := ast.Fn(ast.Params("x"), ast.Ref("x"))
	expectRender(t, ast.CallExpr(fn, ast.Num(4)), "def (x) {\n\tx;\n}(4);\n")
	expectRender(t, ast.Def("nothing", nil), "def nothing() {\n};\n")
	expectRender(t, ast.Seq(), "")
	expectRender(t, ast.Print(ast.Seq(ast.Num(1))), "print {\n\t1;\n};\n")
	expectRender(t, ast.Bin(ast.BinaryOperatorAdd, ast.Num(1), ast.If(ast.Num(1), ast.Block(ast.Num(2)), nil)),
		"1 + (if (1) {\n\t2;\n});\n")
}

func TestRenderFoldedTrash(t *testing.T) {
	sub := ast.Bin(ast.BinaryOperatorSub, ast.Ref("some_name"), ast.Ref("some_name"))
	null := ast.Bin(ast.BinaryOperatorMul, ast.Ref("another_name"), ast.Num(0))
	def := ast.Def("trash", ast.Params("n"),
		ast.If(sub,
			ast.Block(
				ast.Bin(ast.BinaryOperatorAdd, ast.Ref("another_name"), ast.Num(0)),
				null,
				ast.Neg(ast.Bin(ast.BinaryOperatorEq, sub, null)),
				ast.Read("x"),
			),
			ast.Block(
				ast.Bin(ast.BinaryOperatorSub, ast.Ref("some_name"), ast.Ref("another_name")),
				ast.Neg(ast.Num(-100)),
				ast.Bin(ast.BinaryOperatorMul, ast.Num(30), ast.Neg(ast.Num(59))),
				ast.Print(ast.Ref("y")),
			),
		),
	)
	expectRender(t, def, "def trash(n) {\n"+
		"\tif (some_name - some_name) {\n"+
		"\t\tanother_name + 0;\n"+
		"\t\tanother_name * 0;\n"+
		"\t\t-(some_name - some_name == another_name * 0);\n"+
		"\t\tread x;\n"+
		"\t} else {\n"+
		"\t\tsome_name - another_name;\n"+
		"\t\t-(-100);\n"+
		"\t\t30 * -59;\n"+
		"\t\tprint y;\n"+
		"\t};\n"+
		"};\n")

	folded, err := folder.Fold(def)
	if err != nil {
		t.Fatalf("fold failed: %v", err)
	}
	expectRender(t, folded, "def trash(n) {\n"+
		"\tif (0) {\n"+
		"\t\tanother_name + 0;\n"+
		"\t\t0;\n"+
		"\t\t-1;\n"+
		"\t\tread x;\n"+
		"\t} else {\n"+
		"\t\tsome_name - another_name;\n"+
		"\t\t100;\n"+
		"\t\t-1770;\n"+
		"\t\tprint y;\n"+
		"\t};\n"+
		"};\n")
}

func TestFoldedOutputRendersLikeHandBuiltTree(t *testing.T) {
	folded, err := folder.Fold(ast.Bin(ast.BinaryOperatorMul,
		ast.Bin(ast.BinaryOperatorAdd, ast.Ref("x"), ast.Bin(ast.BinaryOperatorSub, ast.Num(1), ast.Num(3))),
		ast.Ref("y"),
	))
	if err != nil {
		t.Fatalf("fold failed: %v", err)
	}
	hand := ast.Bin(ast.BinaryOperatorMul, ast.Bin(ast.BinaryOperatorAdd, ast.Ref("x"), ast.Num(-2)), ast.Ref("y"))
	if mustRender(t, folded) != mustRender(t, hand) {
		t.Fatalf("folded %q differs from hand-built %q", mustRender(t, folded), mustRender(t, hand))
	}
}

func TestFprintAndErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, ast.Read("n")); err != nil {
		t.Fatalf("fprint failed: %v", err)
	}
	if buf.String() != "read n;\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if _, err := Render(ast.Bin(ast.BinaryOperator("^"), ast.Num(1), ast.Num(2))); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
	if _, err := Render(ast.Un(ast.UnaryOperatorNegate, ast.Bin(ast.BinaryOperator("^"), ast.Num(1), ast.Num(2)))); err == nil {
		t.Fatalf("expected error for nested unknown operator")
	}
}

func TestUnknownOperatorsAreReported(t *testing.T) {
	nodes := []ast.Expression{
		ast.Un(ast.UnaryOperator("~"), ast.Ref("x")),
		ast.Print(ast.Un(ast.UnaryOperator("+"), ast.Num(1))),
		ast.Bin(ast.BinaryOperatorAdd, ast.Num(1), ast.Un(ast.UnaryOperator("~"), ast.Ref("x"))),
		ast.Bin(ast.BinaryOperator("**"), ast.Ref("a"), ast.Ref("b")),
	}
	for _, node := range nodes {
		out, err := Render(node)
		if !errors.Is(err, runtime.ErrUnknownOperator) {
			t.Fatalf("expected UnknownOperator for %#v, got %q, %v", node, out, err)
		}
	}
	if _, err := Priority(ast.Un(ast.UnaryOperator("~"), ast.Ref("x"))); !errors.Is(err, runtime.ErrUnknownOperator) {
		t.Fatalf("expected UnknownOperator priority error, got %v", err)
	}
}

func TestPrinterReuse(t *testing.T) {
	p := NewPrinter()
	if err := p.PrintStatement(ast.Num(1)); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	p.Reset()
	if err := p.PrintStatement(ast.Ref("y")); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if p.String() != "y;\n" {
		t.Fatalf("expected reset printer output, got %q", p.String())
	}
}
