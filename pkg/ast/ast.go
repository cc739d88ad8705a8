package ast

import "math/big"

type NodeType string

const (
	NodeNumber             NodeType = "Number"
	NodeReference          NodeType = "Reference"
	NodeUnaryOperation     NodeType = "UnaryOperation"
	NodeBinaryOperation    NodeType = "BinaryOperation"
	NodeExpressionSequence NodeType = "ExpressionSequence"
	NodeConditional        NodeType = "Conditional"
	NodeFunction           NodeType = "Function"
	NodeFunctionDefinition NodeType = "FunctionDefinition"
	NodeFunctionCall       NodeType = "FunctionCall"
	NodePrint              NodeType = "Print"
	NodeRead               NodeType = "Read"
)

// NodeTypes lists every node kind in declaration order.
var NodeTypes = []NodeType{
	NodeNumber,
	NodeReference,
	NodeUnaryOperation,
	NodeBinaryOperation,
	NodeExpressionSequence,
	NodeConditional,
	NodeFunction,
	NodeFunctionDefinition,
	NodeFunctionCall,
	NodePrint,
	NodeRead,
}

// Node is implemented only by the types in this package, so a type switch
// over the concrete node types is exhaustive.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Operators

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "!"
)

// Valid reports whether op belongs to the fixed unary operator set.
func (op UnaryOperator) Valid() bool {
	switch op {
	case UnaryOperatorNegate, UnaryOperatorNot:
		return true
	default:
		return false
	}
}

type BinaryOperator string

const (
	BinaryOperatorAdd BinaryOperator = "+"
	BinaryOperatorSub BinaryOperator = "-"
	BinaryOperatorMul BinaryOperator = "*"
	BinaryOperatorDiv BinaryOperator = "/"
	BinaryOperatorMod BinaryOperator = "%"
	BinaryOperatorEq  BinaryOperator = "=="
	BinaryOperatorNe  BinaryOperator = "!="
	BinaryOperatorLt  BinaryOperator = "<"
	BinaryOperatorGt  BinaryOperator = ">"
	BinaryOperatorLe  BinaryOperator = "<="
	BinaryOperatorGe  BinaryOperator = ">="
	BinaryOperatorAnd BinaryOperator = "&&"
	BinaryOperatorOr  BinaryOperator = "||"
)

// BinaryOperators lists the fixed binary operator set.
var BinaryOperators = []BinaryOperator{
	BinaryOperatorAdd,
	BinaryOperatorSub,
	BinaryOperatorMul,
	BinaryOperatorDiv,
	BinaryOperatorMod,
	BinaryOperatorEq,
	BinaryOperatorNe,
	BinaryOperatorLt,
	BinaryOperatorGt,
	BinaryOperatorLe,
	BinaryOperatorGe,
	BinaryOperatorAnd,
	BinaryOperatorOr,
}

// Valid reports whether op belongs to the fixed binary operator set.
func (op BinaryOperator) Valid() bool {
	for _, candidate := range BinaryOperators {
		if op == candidate {
			return true
		}
	}
	return false
}

// Literals

// Number wraps one integer. The wrapped value is private to the node; callers
// receive copies.
type Number struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value"`
}

func NewNumber(value *big.Int) *Number {
	v := new(big.Int)
	if value != nil {
		v.Set(value)
	}
	return &Number{nodeImpl: newNodeImpl(NodeNumber), Value: v}
}

// Int returns a copy of the wrapped integer.
func (n *Number) Int() *big.Int {
	return new(big.Int).Set(n.Value)
}

// Equal compares numbers by value.
func (n *Number) Equal(other *Number) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Value.Cmp(other.Value) == 0
}

// Key is a hashable form of the number; equal numbers share a key.
func (n *Number) Key() string {
	return n.Value.String()
}

// IsZero reports whether the number is 0.
func (n *Number) IsZero() bool {
	return n.Value.Sign() == 0
}

// Expressions

type Reference struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewReference(name string) *Reference {
	return &Reference{nodeImpl: newNodeImpl(NodeReference), Name: name}
}

type UnaryOperation struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryOperation(operator UnaryOperator, operand Expression) *UnaryOperation {
	return &UnaryOperation{nodeImpl: newNodeImpl(NodeUnaryOperation), Operator: operator, Operand: operand}
}

type BinaryOperation struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryOperation(left Expression, operator BinaryOperator, right Expression) *BinaryOperation {
	return &BinaryOperation{nodeImpl: newNodeImpl(NodeBinaryOperation), Operator: operator, Left: left, Right: right}
}

type ExpressionSequence struct {
	nodeImpl
	expressionMarker

	Body []Expression `json:"body"`
}

func NewExpressionSequence(body []Expression) *ExpressionSequence {
	return &ExpressionSequence{nodeImpl: newNodeImpl(NodeExpressionSequence), Body: copyExpressions(body)}
}

// Empty reports whether the sequence has no expressions.
func (s *ExpressionSequence) Empty() bool {
	return s == nil || len(s.Body) == 0
}

type Conditional struct {
	nodeImpl
	expressionMarker

	Condition Expression          `json:"condition"`
	IfTrue    *ExpressionSequence `json:"ifTrue"`
	IfFalse   *ExpressionSequence `json:"ifFalse"`
}

// NewConditional wraps the branches into sequences; a nil branch becomes an
// empty sequence.
func NewConditional(condition Expression, ifTrue, ifFalse []Expression) *Conditional {
	return &Conditional{
		nodeImpl:  newNodeImpl(NodeConditional),
		Condition: condition,
		IfTrue:    NewExpressionSequence(ifTrue),
		IfFalse:   NewExpressionSequence(ifFalse),
	}
}

// Functions

// Function is a pure syntactic value: parameter names and a body. It carries
// no environment.
type Function struct {
	nodeImpl
	expressionMarker

	Params []string            `json:"params"`
	Body   *ExpressionSequence `json:"body"`
}

func NewFunction(params []string, body []Expression) *Function {
	ps := make([]string, len(params))
	copy(ps, params)
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Params: ps, Body: NewExpressionSequence(body)}
}

type FunctionDefinition struct {
	nodeImpl
	expressionMarker

	Name     string    `json:"name"`
	Function *Function `json:"function"`
}

func NewFunctionDefinition(name string, function *Function) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Function: function}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: copyExpressions(args)}
}

// Console statements

type PrintStatement struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrint), Expression: expr}
}

type ReadStatement struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewReadStatement(name string) *ReadStatement {
	return &ReadStatement{nodeImpl: newNodeImpl(NodeRead), Name: name}
}

func copyExpressions(in []Expression) []Expression {
	out := make([]Expression, len(in))
	copy(out, in)
	return out
}
