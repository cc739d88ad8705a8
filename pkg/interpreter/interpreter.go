package interpreter

import (
	"fmt"
	"log/slog"

	"github.com/isomethane/au-paradigms-2017/pkg/ast"
	"github.com/isomethane/au-paradigms-2017/pkg/config"
	"github.com/isomethane/au-paradigms-2017/pkg/runtime"
)

// Interpreter evaluates yat AST nodes. It is single-threaded: one evaluation
// at a time per interpreter.
type Interpreter struct {
	env      *runtime.Environment
	console  Console
	logger   *slog.Logger
	maxDepth int
	depth    int
}

// New returns an interpreter with an empty global environment, bound to the
// process console.
func New() *Interpreter {
	return &Interpreter{
		env:      runtime.NewEnvironment(),
		console:  NewStdConsole(),
		logger:   config.DiscardLogger(),
		maxDepth: config.DefaultMaxCallDepth,
	}
}

// NewWithConfig applies cfg. A nil console or logger keeps the defaults.
func NewWithConfig(cfg *config.Config, console Console, logger *slog.Logger) *Interpreter {
	i := New()
	if cfg != nil {
		i.maxDepth = cfg.Interpreter.MaxCallDepth
	}
	if console != nil {
		i.console = console
	}
	if logger != nil {
		i.logger = logger
	}
	return i
}

// SetConsole replaces the I/O port used by print and read.
func (i *Interpreter) SetConsole(c Console) {
	i.console = c
}

// SetLogger replaces the diagnostic logger.
func (i *Interpreter) SetLogger(l *slog.Logger) {
	if l == nil {
		l = config.DiscardLogger()
	}
	i.logger = l
}

// SetMaxCallDepth bounds nested calls; 0 disables the limit.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	i.maxDepth = depth
}

// GlobalEnvironment returns the interpreter’s environment arena.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.env
}

// GlobalScope returns the scope top-level evaluation runs in.
func (i *Interpreter) GlobalScope() runtime.Scope {
	return i.env.Global()
}

// Evaluate runs node in the global scope and returns its value.
func (i *Interpreter) Evaluate(node ast.Expression) (runtime.Value, error) {
	return i.EvaluateIn(node, i.env.Global())
}

// EvaluateIn runs node in a specific live scope.
func (i *Interpreter) EvaluateIn(node ast.Expression, scope runtime.Scope) (runtime.Value, error) {
	if node == nil {
		return nil, fmt.Errorf("evaluate: nil node")
	}
	if !i.env.Valid(scope) {
		return nil, fmt.Errorf("evaluate: scope %d is not live", scope)
	}
	return i.evaluateExpression(node, scope)
}

// evaluateExpression dispatches on the node kind.
func (i *Interpreter) evaluateExpression(node ast.Expression, scope runtime.Scope) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Number:
		return runtime.IntegerFromNumber(n), nil
	case *ast.Reference:
		return i.env.Get(scope, n.Name)
	case *ast.UnaryOperation:
		return i.evaluateUnaryOperation(n, scope)
	case *ast.BinaryOperation:
		return i.evaluateBinaryOperation(n, scope)
	case *ast.ExpressionSequence:
		return i.evaluateSequence(n, scope)
	case *ast.Conditional:
		return i.evaluateConditional(n, scope)
	case *ast.Function:
		return &runtime.FunctionValue{Declaration: n}, nil
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, scope)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, scope)
	case *ast.PrintStatement:
		return i.evaluatePrint(n, scope)
	case *ast.ReadStatement:
		return i.evaluateRead(n, scope)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", node)
	}
}
