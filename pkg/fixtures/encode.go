package fixtures

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
)

// Encode writes node as a YAML document that Decode reads back.
func Encode(w io.Writer, node ast.Expression) error {
	raw, err := EncodeNode(node)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// EncodeNode converts node into the generic mapping form. Integers that do
// not fit in int64 are written as decimal strings.
func EncodeNode(node ast.Expression) (map[string]any, error) {
	switch n := node.(type) {
	case *ast.Number:
		var value any = n.Value.String()
		if n.Value.IsInt64() {
			value = n.Value.Int64()
		}
		return map[string]any{"type": string(ast.NodeNumber), "value": value}, nil
	case *ast.Reference:
		return map[string]any{"type": string(ast.NodeReference), "name": n.Name}, nil
	case *ast.UnaryOperation:
		operand, err := EncodeNode(n.Operand)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":     string(ast.NodeUnaryOperation),
			"operator": string(n.Operator),
			"operand":  operand,
		}, nil
	case *ast.BinaryOperation:
		left, err := EncodeNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := EncodeNode(n.Right)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":     string(ast.NodeBinaryOperation),
			"operator": string(n.Operator),
			"left":     left,
			"right":    right,
		}, nil
	case *ast.ExpressionSequence:
		body, err := encodeSequence(n)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": string(ast.NodeExpressionSequence), "body": body}, nil
	case *ast.Conditional:
		cond, err := EncodeNode(n.Condition)
		if err != nil {
			return nil, err
		}
		ifTrue, err := encodeSequence(n.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := encodeSequence(n.IfFalse)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":      string(ast.NodeConditional),
			"condition": cond,
			"ifTrue":    ifTrue,
			"ifFalse":   ifFalse,
		}, nil
	case *ast.Function:
		return encodeFunction(n)
	case *ast.FunctionDefinition:
		if n.Function == nil {
			return nil, fmt.Errorf("encode: function definition %s has no function", n.Name)
		}
		fn, err := encodeFunction(n.Function)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":     string(ast.NodeFunctionDefinition),
			"name":     n.Name,
			"function": fn,
		}, nil
	case *ast.FunctionCall:
		callee, err := EncodeNode(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := encodeExpressions(n.Arguments)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":      string(ast.NodeFunctionCall),
			"callee":    callee,
			"arguments": args,
		}, nil
	case *ast.PrintStatement:
		expr, err := EncodeNode(n.Expression)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": string(ast.NodePrint), "expression": expr}, nil
	case *ast.ReadStatement:
		return map[string]any{"type": string(ast.NodeRead), "name": n.Name}, nil
	default:
		return nil, fmt.Errorf("encode: unsupported expression type: %T", node)
	}
}

func encodeFunction(fn *ast.Function) (map[string]any, error) {
	body, err := encodeSequence(fn.Body)
	if err != nil {
		return nil, err
	}
	params := make([]any, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p)
	}
	return map[string]any{
		"type":   string(ast.NodeFunction),
		"params": params,
		"body":   body,
	}, nil
}

func encodeSequence(seq *ast.ExpressionSequence) ([]any, error) {
	if seq == nil {
		return []any{}, nil
	}
	return encodeExpressions(seq.Body)
}

func encodeExpressions(exprs []ast.Expression) ([]any, error) {
	out := make([]any, 0, len(exprs))
	for _, expr := range exprs {
		raw, err := EncodeNode(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}
