package parser

import (
	"strconv"
	"strings"
)

// Node is implemented by every AST node. String returns the canonical,
// fully parenthesized rendering used in diagnostics and tests.
type Node interface {
	String() string
}

// Program is the root AST node.
type Program struct {
	Statements []Statement `json:"statements"`
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
	}
	return b.String()
}

// Statement is a closed set: only the types in this file implement it.
type Statement interface {
	Node
	isStatement()
}

type LetStmt struct {
	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func (LetStmt) isStatement() {}
func (s LetStmt) String() string {
	return "let " + s.Name + " = " + s.Value.String() + ";"
}

type ReturnStmt struct {
	Value Expression `json:"value"`
}

func (ReturnStmt) isStatement() {}
func (s ReturnStmt) String() string { return "return " + s.Value.String() + ";" }

type ExpressionStmt struct {
	Value Expression `json:"value"`
}

func (ExpressionStmt) isStatement() {}
func (s ExpressionStmt) String() string { return s.Value.String() }

// Block is an ordered statement sequence; the body of if and fn.
type Block struct {
	Statements []Statement `json:"statements"`
}

func (b Block) String() string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Expression is a closed set: only the types in this file implement it.
type Expression interface {
	Node
	isExpression()
}

type IntegerLit struct {
	Value int64 `json:"value"`
}

func (IntegerLit) isExpression()    {}
func (e IntegerLit) String() string { return strconv.FormatInt(e.Value, 10) }

type Identifier struct {
	Name string `json:"name"`
}

func (Identifier) isExpression()    {}
func (e Identifier) String() string { return e.Name }

type BooleanLit struct {
	Value bool `json:"value"`
}

func (BooleanLit) isExpression()    {}
func (e BooleanLit) String() string { return strconv.FormatBool(e.Value) }

type StringLit struct {
	Value string `json:"value"`
}

func (StringLit) isExpression()    {}
func (e StringLit) String() string { return `"` + e.Value + `"` }

type PrefixExpr struct {
	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func (PrefixExpr) isExpression() {}
func (e PrefixExpr) String() string {
	return "(" + e.Operator + e.Operand.String() + ")"
}

type InfixExpr struct {
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (InfixExpr) isExpression() {}
func (e InfixExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

type CallExpr struct {
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func (CallExpr) isExpression() {}
func (e CallExpr) String() string {
	return e.Callee.String() + "(" + joinExprs(e.Arguments) + ")"
}

// IfExpr has an optional else branch; Alternative is nil when absent.
type IfExpr struct {
	Condition   Expression `json:"condition"`
	Consequence Block      `json:"consequence"`
	Alternative *Block     `json:"alternative"`
}

func (IfExpr) isExpression() {}
func (e IfExpr) String() string {
	s := "if (" + e.Condition.String() + ") {" + e.Consequence.String() + "}"
	if e.Alternative != nil {
		s += " else {" + e.Alternative.String() + "}"
	}
	return s
}

type FunctionLit struct {
	Parameters []string `json:"parameters"`
	Body       Block    `json:"body"`
}

func (FunctionLit) isExpression() {}
func (e FunctionLit) String() string {
	return "fn(" + strings.Join(e.Parameters, ", ") + ") {" + e.Body.String() + "}"
}

type ArrayLit struct {
	Elements []Expression `json:"elements"`
}

func (ArrayLit) isExpression()    {}
func (e ArrayLit) String() string { return "[" + joinExprs(e.Elements) + "]" }

type IndexExpr struct {
	Left  Expression `json:"left"`
	Index Expression `json:"index"`
}

func (IndexExpr) isExpression() {}
func (e IndexExpr) String() string {
	return "(" + e.Left.String() + "[" + e.Index.String() + "])"
}

// HashEntry is one key/value pair of a hash literal.
type HashEntry struct {
	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

// HashLit keeps its pairs in source order.
type HashLit struct {
	Pairs []HashEntry `json:"pairs"`
}

func (HashLit) isExpression() {}
func (e HashLit) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range e.Pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.String())
		b.WriteString(": ")
		b.WriteString(p.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}

func joinExprs(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
