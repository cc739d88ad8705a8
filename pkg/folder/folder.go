// Package folder rewrites yat trees by evaluating constant subexpressions
// and a couple of algebraic identities.
package folder

import (
	"fmt"
	"log/slog"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/config"
	"github.com/isomethane/au-paradigms-2017/pkg/interpreter"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

// Stats tracks what a Folder did across its Fold calls.
type Stats struct {
	NodesVisited     int
	ConstantsFolded  int
	MultipliedByZero int
	SelfSubtracted   int
}

func (s Stats) String() string {
	return fmt.Sprintf("visited: %d, constants: %d, zero products: %d, self subtractions: %d",
		s.NodesVisited, s.ConstantsFolded, s.MultipliedByZero, s.SelfSubtracted)
}

// Transformed is the number of nodes replaced by a literal.
func (s Stats) Transformed() int {
	return s.ConstantsFolded + s.MultipliedByZero + s.SelfSubtracted
}

// Folder performs a post-order rewrite. Input trees are never modified.
type Folder struct {
	logger *slog.Logger
	stats  Stats
}

// New creates a folder. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Folder {
	if logger == nil {
		logger = config.DiscardLogger()
	}
	return &Folder{logger: logger}
}

// Fold folds node with a fresh Folder.
func Fold(node ast.Expression) (ast.Expression, error) {
	return New(nil).Fold(node)
}

// Stats returns the counters accumulated so far.
func (f *Folder) Stats() Stats {
	return f.stats
}

// Fold returns the folded tree. Evaluation errors hit while folding constant
// operands, such as division by zero, are returned unchanged.
func (f *Folder) Fold(node ast.Expression) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("fold: nil node")
	}
	return f.foldExpression(node)
}

func (f *Folder) foldExpression(node ast.Expression) (ast.Expression, error) {
	f.stats.NodesVisited++
	switch n := node.(type) {
	case *ast.Number, *ast.Reference, *ast.ReadStatement:
		return n, nil
	case *ast.UnaryOperation:
		return f.foldUnary(n)
	case *ast.BinaryOperation:
		return f.foldBinary(n)
	case *ast.ExpressionSequence:
		body, err := f.foldSequence(n)
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionSequence(body), nil
	case *ast.Conditional:
		cond, err := f.foldExpression(n.Condition)
		if err != nil {
			return nil, err
		}
		ifTrue, err := f.foldSequence(n.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := f.foldSequence(n.IfFalse)
		if err != nil {
			return nil, err
		}
		return ast.NewConditional(cond, ifTrue, ifFalse), nil
	case *ast.Function:
		return f.foldFunction(n)
	case *ast.FunctionDefinition:
		if n.Function == nil {
			return nil, fmt.Errorf("fold: function definition %s has no function", n.Name)
		}
		fn, err := f.foldFunction(n.Function)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(n.Name, fn), nil
	case *ast.FunctionCall:
		callee, err := f.foldExpression(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expression, 0, len(n.Arguments))
		for _, arg := range n.Arguments {
			folded, err := f.foldExpression(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, folded)
		}
		return ast.NewFunctionCall(callee, args), nil
	case *ast.PrintStatement:
		expr, err := f.foldExpression(n.Expression)
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(expr), nil
	default:
		return nil, fmt.Errorf("fold: unsupported expression type: %T", node)
	}
}

func (f *Folder) foldSequence(seq *ast.ExpressionSequence) ([]ast.Expression, error) {
	if seq == nil {
		return nil, nil
	}
	body := make([]ast.Expression, 0, len(seq.Body))
	for _, expr := range seq.Body {
		folded, err := f.foldExpression(expr)
		if err != nil {
			return nil, err
		}
		body = append(body, folded)
	}
	return body, nil
}

func (f *Folder) foldFunction(fn *ast.Function) (*ast.Function, error) {
	body, err := f.foldSequence(fn.Body)
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(fn.Params, body), nil
}

func (f *Folder) foldUnary(expr *ast.UnaryOperation) (ast.Expression, error) {
	operand, err := f.foldExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	rebuilt := ast.NewUnaryOperation(expr.Operator, operand)
	if _, ok := operand.(*ast.Number); !ok {
		return rebuilt, nil
	}
	folded, err := evaluateConstant(rebuilt)
	if err != nil {
		return nil, err
	}
	f.stats.ConstantsFolded++
	f.logger.Debug("fold", "rule", "constant", "operator", string(expr.Operator), "result", folded.Key())
	return folded, nil
}

func (f *Folder) foldBinary(expr *ast.BinaryOperation) (ast.Expression, error) {
	left, err := f.foldExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := f.foldExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	rebuilt := ast.NewBinaryOperation(left, expr.Operator, right)

	leftNum, leftIsNum := left.(*ast.Number)
	rightNum, rightIsNum := right.(*ast.Number)
	leftRef, leftIsRef := left.(*ast.Reference)
	rightRef, rightIsRef := right.(*ast.Reference)

	switch {
	case leftIsNum && rightIsNum:
		folded, err := evaluateConstant(rebuilt)
		if err != nil {
			return nil, err
		}
		f.stats.ConstantsFolded++
		f.logger.Debug("fold", "rule", "constant", "operator", string(expr.Operator), "result", folded.Key())
		return folded, nil
	case expr.Operator == ast.BinaryOperatorMul &&
		(leftIsNum && leftNum.IsZero() && rightIsRef || rightIsNum && rightNum.IsZero() && leftIsRef):
		f.stats.MultipliedByZero++
		f.logger.Debug("fold", "rule", "multiply_by_zero")
		return ast.Num(0), nil
	case expr.Operator == ast.BinaryOperatorSub && leftIsRef && rightIsRef && leftRef.Name == rightRef.Name:
		f.stats.SelfSubtracted++
		f.logger.Debug("fold", "rule", "self_subtraction", "name", leftRef.Name)
		return ast.Num(0), nil
	default:
		return rebuilt, nil
	}
}

// evaluateConstant runs node against an empty environment. Constant operands
// never reach the console.
func evaluateConstant(node ast.Expression) (*ast.Number, error) {
	interp := interpreter.New()
	interp.SetConsole(interpreter.NewBufferedConsole())
	val, err := interp.Evaluate(node)
	if err != nil {
		return nil, err
	}
	iv, ok := val.(runtime.IntegerValue)
	if !ok {
		return nil, runtime.TypeMismatch("constant folding", val)
	}
	return iv.Number(), nil
}
