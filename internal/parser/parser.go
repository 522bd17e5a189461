package parser

import (
	"fmt"
	"strconv"
	"strings"

	"monkey-lang/impl/internal/lexer"
)

// Parser turns a token stream into a Program. It never aborts: a malformed
// statement records a diagnostic, yields no node and parsing resumes with
// the next token.
type Parser struct {
	toks   []lexer.Token
	i      int
	errors []string
}

// New creates a parser over toks. A missing trailing EOF is supplied.
func New(toks []lexer.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Type != lexer.EOF {
		toks = append(toks[:len(toks):len(toks)], lexer.Token{Type: lexer.EOF})
	}
	return &Parser{toks: toks}
}

// Parse lexes and parses src in one step. The program is returned even when
// the error is non-nil so callers can inspect the partial tree.
func Parse(src string) (*Program, error) {
	p := New(lexer.Lex(src))
	prog := p.ParseProgram()
	return prog, p.Err()
}

// Errors returns the diagnostics collected so far.
func (p *Parser) Errors() []string { return p.errors }

// Err wraps the collected diagnostics, or returns nil when there are none.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return &ParseError{Diagnostics: append([]string(nil), p.errors...)}
}

// ParseError aggregates parser diagnostics.
type ParseError struct {
	Diagnostics []string
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 1 {
		return "parse error: " + e.Diagnostics[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d parse errors:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n\t")
		b.WriteString(d)
	}
	return b.String()
}

func (p *Parser) cur() lexer.Token { return p.toks[p.i] }

func (p *Parser) peek() lexer.Token {
	if p.i+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+1]
}

// next advances one token; it stays put on the trailing EOF.
func (p *Parser) next() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

// expectPeek advances when the next token has type typ, otherwise it
// records a diagnostic and leaves the cursor untouched.
func (p *Parser) expectPeek(typ lexer.TokenType) bool {
	if p.peek().Type == typ {
		p.next()
		return true
	}
	p.errorf("expected next token to be %s, got %s", typ, describe(p.peek()))
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func describe(t lexer.Token) string {
	switch t.Type {
	case lexer.ILLEGAL:
		return fmt.Sprintf("ILLEGAL %q", t.Lit)
	case lexer.IDENT, lexer.INT:
		return fmt.Sprintf("%s %s", t.Type, t.Lit)
	case lexer.STRING:
		return fmt.Sprintf("%s %q", t.Type, t.Lit)
	default:
		return string(t.Type)
	}
}

// Precedence values (higher binds tighter)
const (
	precLowest = iota
	precEquals
	precCompare
	precSum
	precProduct
	precPrefix
	precCall
	precIndex
)

func precedence(typ lexer.TokenType) int {
	switch typ {
	case lexer.EQ, lexer.NOT_EQ:
		return precEquals
	case lexer.LT, lexer.GT:
		return precCompare
	case lexer.PLUS, lexer.MINUS:
		return precSum
	case lexer.ASTERISK, lexer.SLASH:
		return precProduct
	case lexer.LPAREN:
		return precCall
	case lexer.LBRACKET:
		return precIndex
	default:
		return precLowest
	}
}

func (p *Parser) ParseProgram() *Program {
	prog := &Program{Statements: []Statement{}}
	for p.cur().Type != lexer.EOF {
		if st := p.parseStatement(); st != nil {
			prog.Statements = append(prog.Statements, st)
		}
		p.next()
	}
	return prog
}

func (p *Parser) parseStatement() Statement {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.RETURN:
		return p.parseReturn()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseLet() Statement {
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.cur().Lit
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.next()
	val := p.parseExpression(precLowest)
	if val == nil {
		return nil
	}
	if p.peek().Type == lexer.SEMICOLON {
		p.next()
	}
	return LetStmt{Name: name, Value: val}
}

func (p *Parser) parseReturn() Statement {
	p.next()
	val := p.parseExpression(precLowest)
	if val == nil {
		return nil
	}
	if p.peek().Type == lexer.SEMICOLON {
		p.next()
	}
	return ReturnStmt{Value: val}
}

func (p *Parser) parseExpressionStmt() Statement {
	val := p.parseExpression(precLowest)
	if val == nil {
		return nil
	}
	if p.peek().Type == lexer.SEMICOLON {
		p.next()
	}
	return ExpressionStmt{Value: val}
}

// parseExpression parses a prefix form at the current token, then folds in
// infix constructs for as long as the next token binds tighter than minPrec.
// Infix operands recurse at the operator's own precedence, so chains of equal
// precedence group to the left.
func (p *Parser) parseExpression(minPrec int) Expression {
	left := p.parsePrefix()
	for left != nil && p.peek().Type != lexer.SEMICOLON && minPrec < precedence(p.peek().Type) {
		p.next()
		switch p.cur().Type {
		case lexer.LPAREN:
			left = p.parseCall(left)
		case lexer.LBRACKET:
			left = p.parseIndex(left)
		default:
			left = p.parseInfix(left)
		}
	}
	return left
}

func (p *Parser) parsePrefix() Expression {
	t := p.cur()
	switch t.Type {
	case lexer.INT:
		v, err := strconv.ParseInt(t.Lit, 10, 64)
		if err != nil {
			p.errorf("could not parse %q as integer", t.Lit)
			return nil
		}
		return IntegerLit{Value: v}
	case lexer.IDENT:
		return Identifier{Name: t.Lit}
	case lexer.STRING:
		return StringLit{Value: t.Lit}
	case lexer.TRUE:
		return BooleanLit{Value: true}
	case lexer.FALSE:
		return BooleanLit{Value: false}
	case lexer.BANG, lexer.MINUS, lexer.PLUS:
		p.next()
		operand := p.parseExpression(precPrefix)
		if operand == nil {
			return nil
		}
		return PrefixExpr{Operator: t.Lit, Operand: operand}
	case lexer.LPAREN:
		p.next()
		e := p.parseExpression(precLowest)
		if e == nil || !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return e
	case lexer.LBRACKET:
		elems, ok := p.parseExpressionList(lexer.RBRACKET)
		if !ok {
			return nil
		}
		return ArrayLit{Elements: elems}
	case lexer.LBRACE:
		return p.parseHash()
	case lexer.IF:
		return p.parseIf()
	case lexer.FUNCTION:
		return p.parseFunction()
	default:
		p.errorf("no prefix parse function for %s found", describe(t))
		return nil
	}
}

func (p *Parser) parseInfix(left Expression) Expression {
	op := p.cur()
	prec := precedence(op.Type)
	p.next()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return InfixExpr{Operator: op.Lit, Left: left, Right: right}
}

func (p *Parser) parseCall(callee Expression) Expression {
	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		return nil
	}
	return CallExpr{Callee: callee, Arguments: args}
}

func (p *Parser) parseIndex(left Expression) Expression {
	p.next()
	idx := p.parseExpression(precLowest)
	if idx == nil || !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return IndexExpr{Left: left, Index: idx}
}

// parseExpressionList parses a comma separated list whose opening token is
// current, up to and including end.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]Expression, bool) {
	list := []Expression{}
	if p.peek().Type == end {
		p.next()
		return list, true
	}
	p.next()
	e := p.parseExpression(precLowest)
	if e == nil {
		return nil, false
	}
	list = append(list, e)
	for p.peek().Type == lexer.COMMA {
		p.next()
		p.next()
		if e = p.parseExpression(precLowest); e == nil {
			return nil, false
		}
		list = append(list, e)
	}
	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseHash() Expression {
	pairs := []HashEntry{}
	for p.peek().Type != lexer.RBRACE {
		p.next()
		key := p.parseExpression(precLowest)
		if key == nil || !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.next()
		val := p.parseExpression(precLowest)
		if val == nil {
			return nil
		}
		pairs = append(pairs, HashEntry{Key: key, Value: val})
		if p.peek().Type != lexer.RBRACE && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.next()
	return HashLit{Pairs: pairs}
}

func (p *Parser) parseIf() Expression {
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.next()
	cond := p.parseExpression(precLowest)
	if cond == nil || !p.expectPeek(lexer.RPAREN) || !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	cons, ok := p.parseBlock()
	if !ok {
		return nil
	}
	expr := IfExpr{Condition: cond, Consequence: cons}
	if p.peek().Type == lexer.ELSE {
		p.next()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		alt, ok := p.parseBlock()
		if !ok {
			return nil
		}
		expr.Alternative = &alt
	}
	return expr
}

func (p *Parser) parseFunction() Expression {
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok || !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return FunctionLit{Parameters: params, Body: body}
}

func (p *Parser) parseParameters() ([]string, bool) {
	params := []string{}
	if p.peek().Type == lexer.RPAREN {
		p.next()
		return params, true
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil, false
	}
	params = append(params, p.cur().Lit)
	for p.peek().Type == lexer.COMMA {
		p.next()
		if !p.expectPeek(lexer.IDENT) {
			return nil, false
		}
		params = append(params, p.cur().Lit)
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseBlock parses statements after the current '{' and leaves the cursor
// on the closing '}'.
func (p *Parser) parseBlock() (Block, bool) {
	block := Block{Statements: []Statement{}}
	p.next()
	for p.cur().Type != lexer.RBRACE {
		if p.cur().Type == lexer.EOF {
			p.errorf("expected %s to close block, got EOF", lexer.RBRACE)
			return Block{}, false
		}
		if st := p.parseStatement(); st != nil {
			block.Statements = append(block.Statements, st)
		}
		p.next()
	}
	return block, true
}
