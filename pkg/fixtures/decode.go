// Package fixtures moves yat trees in and out of YAML/JSON documents and
// replays golden fixture directories against the evaluator, folder and
// printer.
package fixtures

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
)

// Decode reads one node document. JSON input is accepted as YAML.
func Decode(r io.Reader) (ast.Expression, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode: empty document")
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	generic, err := plainValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	raw, ok := generic.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode: document is not a node mapping")
	}
	return DecodeNode(raw)
}

var integerLiteral = regexp.MustCompile(`^[-+]?[0-9]+$`)

// plainValue mirrors yaml's generic decoding, except that integer literals
// too wide for int64 keep their source text instead of rounding to float64.
func plainValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return plainValue(node.Content[0])
	case yaml.AliasNode:
		return plainValue(node.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := plainValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[node.Content[i].Value] = val
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	}
	if node.ShortTag() == "!!float" && integerLiteral.MatchString(node.Value) {
		return node.Value, nil
	}
	var val any
	if err := node.Decode(&val); err != nil {
		return nil, err
	}
	return val, nil
}

// ReadProgram decodes the node document stored at path.
func ReadProgram(path string) (ast.Expression, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	defer file.Close()
	node, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	return node, nil
}

// DecodeNode converts a generic mapping into a node.
func DecodeNode(node map[string]any) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("decode: missing node")
	}
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeNumber:
		value, err := parseBigInt(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(value), nil
	case ast.NodeReference:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewReference(name), nil
	case ast.NodeUnaryOperation:
		op, err := stringField(node, "operator")
		if err != nil {
			return nil, err
		}
		operand, err := expressionField(node, "operand")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOperation(ast.UnaryOperator(op), operand), nil
	case ast.NodeBinaryOperation:
		op, err := stringField(node, "operator")
		if err != nil {
			return nil, err
		}
		left, err := expressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := expressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOperation(left, ast.BinaryOperator(op), right), nil
	case ast.NodeExpressionSequence:
		body, err := expressionList(node, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionSequence(body), nil
	case ast.NodeConditional:
		cond, err := expressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		ifTrue, err := expressionList(node, "ifTrue")
		if err != nil {
			return nil, err
		}
		ifFalse, err := expressionList(node, "ifFalse")
		if err != nil {
			return nil, err
		}
		return ast.NewConditional(cond, ifTrue, ifFalse), nil
	case ast.NodeFunction:
		return decodeFunction(node)
	case ast.NodeFunctionDefinition:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		raw, ok := node["function"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: function definition %s missing function", name)
		}
		fn, err := decodeFunction(raw)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(name, fn), nil
	case ast.NodeFunctionCall:
		callee, err := expressionField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := expressionList(node, "arguments")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(callee, args), nil
	case ast.NodePrint:
		expr, err := expressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(expr), nil
	case ast.NodeRead:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewReadStatement(name), nil
	default:
		return nil, fmt.Errorf("decode: unsupported node type %q", typ)
	}
}

// decodeFunction also accepts a mapping without a type tag, as found under
// a definition's function field.
func decodeFunction(node map[string]any) (*ast.Function, error) {
	if typ, ok := node["type"].(string); ok && ast.NodeType(typ) != ast.NodeFunction {
		return nil, fmt.Errorf("decode: expected Function, got %q", typ)
	}
	params, err := stringList(node, "params")
	if err != nil {
		return nil, err
	}
	body, err := expressionList(node, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(params, body), nil
}

func stringField(node map[string]any, key string) (string, error) {
	val, ok := node[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("decode: %v node requires string field %q", node["type"], key)
	}
	return val, nil
}

func expressionField(node map[string]any, key string) (ast.Expression, error) {
	raw, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode: %v node requires node field %q", node["type"], key)
	}
	return DecodeNode(raw)
}

// expressionList treats a missing key as an empty list.
func expressionList(node map[string]any, key string) ([]ast.Expression, error) {
	rawVal, present := node[key]
	if !present || rawVal == nil {
		return nil, nil
	}
	items, ok := rawVal.([]any)
	if !ok {
		return nil, fmt.Errorf("decode: field %q must be a list, got %T", key, rawVal)
	}
	exprs := make([]ast.Expression, 0, len(items))
	for idx, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode: %s[%d] must be a node, got %T", key, idx, item)
		}
		expr, err := DecodeNode(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func stringList(node map[string]any, key string) ([]string, error) {
	rawVal, present := node[key]
	if !present || rawVal == nil {
		return nil, nil
	}
	items, ok := rawVal.([]any)
	if !ok {
		return nil, fmt.Errorf("decode: field %q must be a list, got %T", key, rawVal)
	}
	out := make([]string, 0, len(items))
	for idx, item := range items {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("decode: %s[%d] must be a name, got %v", key, idx, item)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("decode: number value %v is not an integer", v)
		}
		if math.Abs(v) >= 1<<53 {
			return nil, fmt.Errorf("decode: number value %v is not exact, write it as a decimal string", v)
		}
		bi, _ := big.NewFloat(v).Int(nil)
		return bi, nil
	case string:
		if bi, ok := new(big.Int).SetString(v, 10); ok {
			return bi, nil
		}
		return nil, fmt.Errorf("decode: number value %q is not a decimal integer", v)
	case nil:
		return nil, fmt.Errorf("decode: Number node requires field \"value\"")
	default:
		return nil, fmt.Errorf("decode: unsupported number value %T", value)
	}
}
