package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports a malformed expression. Col is the 1-based position
// of the offending token.
type SyntaxError struct {
	Col int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("col %d: %s", e.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Parser parses filter expression tokens into a tree.
//
//	expr       := and ( ("||" | "or") and )*
//	and        := not ( ("&&" | "and") not )*
//	not        := ("!" | "not") not | comparison
//	comparison := operand ( op operand | "in" "(" literal ("," literal)* ")" )?
//	operand    := ident | literal | "(" expr ")"
type Parser struct {
	tokens []Token
	pos    int
	err    *SyntaxError
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the whole token stream as one expression.
func (p *Parser) Parse() (Node, error) {
	if p.check(TokenEOF) {
		return nil, &SyntaxError{Col: p.peek().Col, Msg: "empty expression"}
	}
	n := p.parseOr()
	if p.err == nil && !p.check(TokenEOF) {
		p.error(fmt.Sprintf("unexpected %v", p.peek()))
	}
	if p.err != nil {
		return nil, p.err
	}
	return n, nil
}

// Parse tokenizes and parses src.
func Parse(src string) (Node, error) {
	return NewParser(NewLexer(src).Tokenize()).Parse()
}

func (p *Parser) parseOr() Node {
	left := p.parseAnd()

	for p.err == nil && p.check(TokenOr) {
		p.advance()
		right := p.parseAnd()
		left = &BinaryExpr{Left: left, Op: TokenOr, Right: right}
	}

	return left
}

func (p *Parser) parseAnd() Node {
	left := p.parseNot()

	for p.err == nil && p.check(TokenAnd) {
		p.advance()
		right := p.parseNot()
		left = &BinaryExpr{Left: left, Op: TokenAnd, Right: right}
	}

	return left
}

func (p *Parser) parseNot() Node {
	if p.check(TokenNot) {
		p.advance()
		return &NotExpr{Cond: p.parseNot()}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() Node {
	left := p.parseOperand()
	if p.err != nil {
		return nil
	}

	switch p.peek().Type {
	case TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE:
		op := p.advance().Type
		right := p.parseOperand()
		return &BinaryExpr{Left: left, Op: op, Right: right}

	case TokenIn:
		in := p.advance()
		ident, ok := left.(*Ident)
		if !ok {
			p.errorAt(in, "left side of in must be a column")
			return nil
		}
		return p.parseIn(ident)
	}

	return left
}

func (p *Parser) parseIn(col *Ident) Node {
	p.expect(TokenLParen)

	in := &InExpr{Column: col}
	for p.err == nil && !p.check(TokenRParen) {
		v := p.parseLiteral()
		if v == nil {
			return nil
		}
		in.Values = append(in.Values, v)

		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	closing := p.expect(TokenRParen)
	if p.err == nil && len(in.Values) == 0 {
		p.errorAt(closing, "in needs at least one value")
	}
	return in
}

func (p *Parser) parseOperand() Node {
	switch {
	case p.check(TokenIdent):
		return &Ident{Name: p.advance().Value}

	case p.check(TokenLParen):
		p.advance()
		n := p.parseOr()
		p.expect(TokenRParen)
		return n

	default:
		return p.parseLiteral()
	}
}

func (p *Parser) parseLiteral() Node {
	tok := p.peek()
	switch tok.Type {
	case TokenInt:
		p.advance()
		val, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			p.errorAt(tok, fmt.Sprintf("invalid integer %s", tok.Value))
			return nil
		}
		return &IntLit{Value: val}

	case TokenFloat:
		p.advance()
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.errorAt(tok, fmt.Sprintf("invalid number %s", tok.Value))
			return nil
		}
		return &FloatLit{Value: val}

	case TokenString:
		p.advance()
		return &StringLit{Value: tok.Value}

	case TokenIllegal:
		p.error(tok.Value)
		return nil

	case TokenEOF:
		p.error("unexpected end of expression")
		return nil

	default:
		p.error(fmt.Sprintf("unexpected token: %v", tok))
		return nil
	}
}

// Helper methods

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t TokenType) Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(fmt.Sprintf("expected %v, got %v", t, p.peek().Type))
	return Token{}
}

func (p *Parser) error(msg string) {
	p.errorAt(p.peek(), msg)
}

// errorAt records the first error only.
func (p *Parser) errorAt(tok Token, msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Col: tok.Col, Msg: msg}
	}
}
