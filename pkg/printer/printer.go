// Package printer renders yat trees as source text with the fewest
// parentheses the operator priorities allow.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

const IndentString = "\t"

// Printer manages formatting state and output.
type Printer struct {
	output strings.Builder
	indent int
}

func NewPrinter() *Printer {
	return &Printer{}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

// Reset clears the printer state for reuse.
func (p *Printer) Reset() {
	p.output.Reset()
	p.indent = 0
}

// Render formats node as a program. A sequence root prints one top-level
// statement per element.
func Render(node ast.Expression) (string, error) {
	p := NewPrinter()
	if err := p.PrintProgram(node); err != nil {
		return "", err
	}
	return p.String(), nil
}

// Fprint writes the rendering of node to w.
func Fprint(w io.Writer, node ast.Expression) error {
	text, err := Render(node)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// PrintProgram appends node at the current indentation.
func (p *Printer) PrintProgram(node ast.Expression) error {
	if seq, ok := node.(*ast.ExpressionSequence); ok {
		for _, stmt := range seq.Body {
			if err := p.PrintStatement(stmt); err != nil {
				return err
			}
		}
		return nil
	}
	return p.PrintStatement(node)
}

// PrintStatement appends one indented statement terminated by ";\n".
func (p *Printer) PrintStatement(node ast.Expression) error {
	p.writeIndent()
	if err := p.printExpression(node); err != nil {
		return err
	}
	p.write(";\n")
	return nil
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat(IndentString, p.indent))
}

func (p *Printer) indentInc() {
	p.indent++
}

func (p *Printer) indentDec() {
	if p.indent > 0 {
		p.indent--
	}
}

// printBlock writes "{", the statements one level deeper, then the closing
// brace at the current indentation.
func (p *Printer) printBlock(seq *ast.ExpressionSequence) error {
	p.write("{\n")
	p.indentInc()
	if seq != nil {
		for _, stmt := range seq.Body {
			if err := p.PrintStatement(stmt); err != nil {
				p.indentDec()
				return err
			}
		}
	}
	p.indentDec()
	p.writeIndent()
	p.write("}")
	return nil
}

func (p *Printer) printExpression(node ast.Expression) error {
	switch n := node.(type) {
	case *ast.Number:
		p.write(n.Value.String())
	case *ast.Reference:
		p.write(n.Name)
	case *ast.UnaryOperation:
		return p.printUnary(n)
	case *ast.BinaryOperation:
		return p.printBinary(n)
	case *ast.ExpressionSequence:
		return p.printBlock(n)
	case *ast.Conditional:
		return p.printConditional(n)
	case *ast.Function:
		return p.printFunction("", n)
	case *ast.FunctionDefinition:
		if n.Function == nil {
			return fmt.Errorf("print: function definition %s has no function", n.Name)
		}
		return p.printFunction(n.Name, n.Function)
	case *ast.FunctionCall:
		return p.printCall(n)
	case *ast.PrintStatement:
		p.write("print ")
		return p.printExpression(n.Expression)
	case *ast.ReadStatement:
		p.write("read ")
		p.write(n.Name)
	default:
		return fmt.Errorf("print: unsupported expression type: %T", node)
	}
	return nil
}

func (p *Printer) printOperand(node ast.Expression, wrap bool) error {
	if !wrap {
		return p.printExpression(node)
	}
	p.write("(")
	if err := p.printExpression(node); err != nil {
		return err
	}
	p.write(")")
	return nil
}

// Left operands are wrapped when they bind looser than the operator, right
// operands also when they bind equally, so "1 - (2 - x)" keeps its
// parentheses and "1 - 2 - x" needs none.
func (p *Printer) printBinary(expr *ast.BinaryOperation) error {
	prio, ok := OperatorPriority(expr.Operator)
	if !ok {
		return runtime.UnknownOperator(string(expr.Operator))
	}
	leftPrio, err := Priority(expr.Left)
	if err != nil {
		return err
	}
	rightPrio, err := Priority(expr.Right)
	if err != nil {
		return err
	}
	if err := p.printOperand(expr.Left, leftPrio < prio); err != nil {
		return err
	}
	p.write(" ")
	p.write(string(expr.Operator))
	p.write(" ")
	return p.printOperand(expr.Right, rightPrio <= prio)
}

func (p *Printer) printUnary(expr *ast.UnaryOperation) error {
	if !expr.Operator.Valid() {
		return runtime.UnknownOperator(string(expr.Operator))
	}
	operandPrio, err := Priority(expr.Operand)
	if err != nil {
		return err
	}
	p.write(string(expr.Operator))
	return p.printOperand(expr.Operand, operandPrio <= PriorityUnary)
}

func (p *Printer) printConditional(expr *ast.Conditional) error {
	p.write("if (")
	if err := p.printExpression(expr.Condition); err != nil {
		return err
	}
	p.write(") ")
	if err := p.printBlock(expr.IfTrue); err != nil {
		return err
	}
	if expr.IfFalse.Empty() {
		return nil
	}
	p.write(" else ")
	return p.printBlock(expr.IfFalse)
}

// An empty name renders an anonymous function.
func (p *Printer) printFunction(name string, fn *ast.Function) error {
	p.write("def ")
	if name != "" {
		p.write(name)
	}
	p.write("(")
	p.write(strings.Join(fn.Params, ", "))
	p.write(") ")
	return p.printBlock(fn.Body)
}

func (p *Printer) printCall(call *ast.FunctionCall) error {
	if err := p.printExpression(call.Callee); err != nil {
		return err
	}
	p.write("(")
	for idx, arg := range call.Arguments {
		if idx > 0 {
			p.write(", ")
		}
		if err := p.printExpression(arg); err != nil {
			return err
		}
	}
	p.write(")")
	return nil
}
