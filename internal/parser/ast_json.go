package parser

import "encoding/json"

// JSON export tags every node with a "kind" field so a consumer can rebuild
// the variant without knowing Go type names.

func (p *Program) MarshalJSON() ([]byte, error) {
	type alias Program
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"program", (*alias)(p)})
}

func (s LetStmt) MarshalJSON() ([]byte, error) {
	type alias LetStmt
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"let", alias(s)})
}

func (s ReturnStmt) MarshalJSON() ([]byte, error) {
	type alias ReturnStmt
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"return", alias(s)})
}

func (s ExpressionStmt) MarshalJSON() ([]byte, error) {
	type alias ExpressionStmt
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"expression", alias(s)})
}

func (e IntegerLit) MarshalJSON() ([]byte, error) {
	type alias IntegerLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"integer", alias(e)})
}

func (e Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"identifier", alias(e)})
}

func (e BooleanLit) MarshalJSON() ([]byte, error) {
	type alias BooleanLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"boolean", alias(e)})
}

func (e StringLit) MarshalJSON() ([]byte, error) {
	type alias StringLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"string", alias(e)})
}

func (e PrefixExpr) MarshalJSON() ([]byte, error) {
	type alias PrefixExpr
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"prefix_operator", alias(e)})
}

func (e InfixExpr) MarshalJSON() ([]byte, error) {
	type alias InfixExpr
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"infix_operator", alias(e)})
}

func (e CallExpr) MarshalJSON() ([]byte, error) {
	type alias CallExpr
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"function_call", alias(e)})
}

func (e IfExpr) MarshalJSON() ([]byte, error) {
	type alias IfExpr
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"if", alias(e)})
}

func (e FunctionLit) MarshalJSON() ([]byte, error) {
	type alias FunctionLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"function", alias(e)})
}

func (e ArrayLit) MarshalJSON() ([]byte, error) {
	type alias ArrayLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"array", alias(e)})
}

func (e IndexExpr) MarshalJSON() ([]byte, error) {
	type alias IndexExpr
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"index", alias(e)})
}

func (e HashLit) MarshalJSON() ([]byte, error) {
	type alias HashLit
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{"hash_literal", alias(e)})
}
