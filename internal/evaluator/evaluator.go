package evaluator

import (
	"io"
	"log/slog"
	"os"

	"monkey-lang/impl/internal/parser"
)

// Evaluator walks an AST against an Environment. It holds no program state
// of its own; everything a program binds lives in the Environment passed to
// Eval, so one Evaluator can serve many environments one at a time.
type Evaluator struct {
	out    io.Writer
	logger *slog.Logger
	exit   func(int)
	depth  int
}

type Option func(*Evaluator)

// WithOutput sets the writer used by puts, print and println.
func WithOutput(w io.Writer) Option { return func(ev *Evaluator) { ev.out = w } }

func WithLogger(l *slog.Logger) Option { return func(ev *Evaluator) { ev.logger = l } }

// WithExit replaces os.Exit as the target of the exit builtin.
func WithExit(fn func(int)) Option { return func(ev *Evaluator) { ev.exit = fn } }

func New(opts ...Option) *Evaluator {
	ev := &Evaluator{
		out:    os.Stdout,
		logger: slog.New(slog.DiscardHandler),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Format produces the printed representation of an evaluation result; a nil
// result (a program ending in let, say) prints as nothing.
func Format(v Object) string {
	if v == nil {
		return ""
	}
	return v.Inspect()
}

// Eval evaluates node in env. The result is nil when the node produces no
// value, which only happens for let statements and sequences ending in one.
func (ev *Evaluator) Eval(node parser.Node, env *Environment) Object {
	switch n := node.(type) {
	case *parser.Program:
		return ev.evalProgram(n, env)
	case parser.Block:
		return ev.evalBlock(n, env)
	case parser.Statement:
		return ev.evalStatement(n, env)
	case parser.Expression:
		return ev.evalExpression(n, env)
	default:
		return newError("cannot evaluate %T", node)
	}
}

// evalProgram stops at the first return or error and unwraps the return.
func (ev *Evaluator) evalProgram(prog *parser.Program, env *Environment) Object {
	var result Object
	for _, st := range prog.Statements {
		result = ev.evalStatement(st, env)
		switch r := result.(type) {
		case ReturnValue:
			return r.Value
		case Error:
			return r
		}
	}
	return result
}

// evalBlock stops at the first return or error but leaves the return marker
// in place so enclosing blocks stop too.
func (ev *Evaluator) evalBlock(block parser.Block, env *Environment) Object {
	var result Object
	for _, st := range block.Statements {
		result = ev.evalStatement(st, env)
		switch result.(type) {
		case ReturnValue, Error:
			return result
		}
	}
	return result
}

func (ev *Evaluator) evalStatement(st parser.Statement, env *Environment) Object {
	switch s := st.(type) {
	case parser.ExpressionStmt:
		return ev.evalExpression(s.Value, env)
	case parser.ReturnStmt:
		val := ev.evalExpression(s.Value, env)
		if isError(val) {
			return val
		}
		return ReturnValue{Value: val}
	case parser.LetStmt:
		val := ev.evalExpression(s.Value, env)
		if isError(val) {
			return val
		}
		env.Set(s.Name, val)
		return nil
	default:
		return newError("unknown statement %T", st)
	}
}

func (ev *Evaluator) evalExpression(e parser.Expression, env *Environment) Object {
	switch ex := e.(type) {
	case parser.IntegerLit:
		return Integer{Value: ex.Value}
	case parser.BooleanLit:
		return nativeBool(ex.Value)
	case parser.StringLit:
		return String{Value: ex.Value}
	case parser.Identifier:
		return ev.evalIdentifier(ex.Name, env)
	case parser.PrefixExpr:
		operand := ev.evalExpression(ex.Operand, env)
		if isError(operand) {
			return operand
		}
		return evalPrefix(ex.Operator, operand)
	case parser.InfixExpr:
		left := ev.evalExpression(ex.Left, env)
		if isError(left) {
			return left
		}
		right := ev.evalExpression(ex.Right, env)
		if isError(right) {
			return right
		}
		return evalInfix(ex.Operator, left, right)
	case parser.IfExpr:
		return ev.evalIf(ex, env)
	case parser.FunctionLit:
		return &Function{Parameters: ex.Parameters, Env: env.Snapshot(), Body: ex.Body}
	case parser.CallExpr:
		return ev.evalCall(ex, env)
	case parser.ArrayLit:
		elems, errObj := ev.evalExpressions(ex.Elements, env)
		if errObj != nil {
			return errObj
		}
		return Array{Elements: elems}
	case parser.IndexExpr:
		left := ev.evalExpression(ex.Left, env)
		if isError(left) {
			return left
		}
		idx := ev.evalExpression(ex.Index, env)
		if isError(idx) {
			return idx
		}
		return evalIndex(left, idx)
	case parser.HashLit:
		return ev.evalHash(ex, env)
	default:
		return newError("unknown expression %T", e)
	}
}

func (ev *Evaluator) evalIdentifier(name string, env *Environment) Object {
	if v, ok := env.Get(name); ok {
		return v
	}
	if b, ok := lookupBuiltin(name); ok {
		return b
	}
	return newError("identifier not found: %s", name)
}

// evalExpressions evaluates left to right and stops at the first error,
// which is returned as the second value.
func (ev *Evaluator) evalExpressions(exprs []parser.Expression, env *Environment) ([]Object, Object) {
	out := make([]Object, 0, len(exprs))
	for _, e := range exprs {
		v := ev.evalExpression(e, env)
		if isError(v) {
			return nil, v
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalIf(ex parser.IfExpr, env *Environment) Object {
	cond := ev.evalExpression(ex.Condition, env)
	if isError(cond) {
		return cond
	}
	var result Object
	switch {
	case isTruthy(cond):
		result = ev.evalBlock(ex.Consequence, env)
	case ex.Alternative != nil:
		result = ev.evalBlock(*ex.Alternative, env)
	}
	if result == nil {
		return NullValue
	}
	return result
}

func (ev *Evaluator) evalCall(ex parser.CallExpr, env *Environment) Object {
	var callee Object
	var name string
	if id, ok := ex.Callee.(parser.Identifier); ok {
		name = id.Name
		callee = ev.evalIdentifier(name, env)
	} else {
		callee = ev.evalExpression(ex.Callee, env)
	}
	if isError(callee) {
		return callee
	}

	args, errObj := ev.evalExpressions(ex.Arguments, env)
	if errObj != nil {
		return errObj
	}
	return ev.apply(callee, name, args)
}

// apply calls fn with already evaluated arguments. name is the identifier the
// callee was reached through, if any; a user function called by name also
// sees itself under that name, which is what lets a closure whose snapshot
// predates its own let binding recurse.
func (ev *Evaluator) apply(fn Object, name string, args []Object) Object {
	switch f := fn.(type) {
	case *Function:
		if len(args) != len(f.Parameters) {
			return newError("wrong number of arguments: want=%d, got=%d", len(f.Parameters), len(args))
		}
		callEnv := f.Env.NewChild()
		if name != "" {
			callEnv.Set(name, f)
		}
		for i, p := range f.Parameters {
			callEnv.Set(p, args[i])
		}

		ev.depth++
		ev.logger.Debug("call", "function", name, "args", len(args), "depth", ev.depth)
		result := ev.evalBlock(f.Body, callEnv)
		ev.depth--

		if r, ok := result.(ReturnValue); ok {
			return r.Value
		}
		if result == nil {
			return NullValue
		}
		return result
	case Builtin:
		ev.logger.Debug("builtin", "name", f.Name, "args", len(args), "depth", ev.depth)
		return f.Fn(ev, args...)
	default:
		return newError("not a function: %s", fn.Kind())
	}
}

func isTruthy(o Object) bool {
	switch v := o.(type) {
	case Null:
		return false
	case Boolean:
		return v.Value
	default:
		return true
	}
}

func evalPrefix(op string, operand Object) Object {
	switch op {
	case "!":
		return nativeBool(!isTruthy(operand))
	case "-":
		if i, ok := operand.(Integer); ok {
			return Integer{Value: -i.Value}
		}
	case "+":
		if i, ok := operand.(Integer); ok {
			return i
		}
	}
	return newError("unknown operator: %s%s", op, operand.Kind())
}

// evalInfix dispatches on the runtime kinds of both operands.
func evalInfix(op string, left, right Object) Object {
	switch l := left.(type) {
	case Integer:
		if r, ok := right.(Integer); ok {
			return evalIntegerInfix(op, l.Value, r.Value)
		}
	case Boolean:
		if r, ok := right.(Boolean); ok {
			switch op {
			case "==":
				return nativeBool(l.Value == r.Value)
			case "!=":
				return nativeBool(l.Value != r.Value)
			}
		}
	case String:
		if r, ok := right.(String); ok && op == "+" {
			return String{Value: l.Value + r.Value}
		}
	}
	if left.Kind() != right.Kind() {
		return newError("type mismatch: %s %s %s", left.Kind(), op, right.Kind())
	}
	return newError("unknown operator: %s %s %s", left.Kind(), op, right.Kind())
}

func evalIntegerInfix(op string, l, r int64) Object {
	switch op {
	case "+":
		return Integer{Value: l + r}
	case "-":
		return Integer{Value: l - r}
	case "*":
		return Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError("division by zero")
		}
		return Integer{Value: l / r}
	case "<":
		return nativeBool(l < r)
	case ">":
		return nativeBool(l > r)
	case "==":
		return nativeBool(l == r)
	case "!=":
		return nativeBool(l != r)
	default:
		return newError("unknown operator: %s %s %s", INTEGER, op, INTEGER)
	}
}

func evalIndex(left, idx Object) Object {
	switch l := left.(type) {
	case Array:
		i, ok := idx.(Integer)
		if !ok {
			break
		}
		if i.Value < 0 || i.Value >= int64(len(l.Elements)) {
			return NullValue
		}
		return l.Elements[i.Value]
	case *Hash:
		if _, ok := hashKeyOf(idx); !ok {
			return newError("unusable as hash key: %s", idx.Kind())
		}
		if v, ok := l.Get(idx); ok {
			return v
		}
		return NullValue
	}
	return newError("index operator not supported: %s[%s]", left.Kind(), idx.Kind())
}

func (ev *Evaluator) evalHash(ex parser.HashLit, env *Environment) Object {
	h := NewHash()
	for _, p := range ex.Pairs {
		key := ev.evalExpression(p.Key, env)
		if isError(key) {
			return key
		}
		if _, ok := hashKeyOf(key); !ok {
			return newError("unusable as hash key: %s", key.Kind())
		}
		val := ev.evalExpression(p.Value, env)
		if isError(val) {
			return val
		}
		h.Put(key, val)
	}
	return h
}
