package expr

import "fmt"

// TokenType represents the type of a filter expression token.
type TokenType uint8

const (
	TokenEOF     TokenType = iota
	TokenIllegal           // unexpected character or unterminated string
	TokenIdent             // column names
	TokenInt               // integer literals
	TokenFloat             // float literals
	TokenString            // "quoted strings"

	// Operators
	TokenEQ  // ==
	TokenNE  // !=
	TokenLT  // <
	TokenLE  // <=
	TokenGT  // >
	TokenGE  // >=
	TokenAnd // and, &&
	TokenOr  // or, ||
	TokenNot // not, !
	TokenIn  // in

	// Delimiters
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,
)

// String returns the string representation of a token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenIdent:
		return "IDENT"
	case TokenInt:
		return "INT"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenEQ:
		return "=="
	case TokenNE:
		return "!="
	case TokenLT:
		return "<"
	case TokenLE:
		return "<="
	case TokenGT:
		return ">"
	case TokenGE:
		return ">="
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenIn:
		return "IN"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenComma:
		return ","
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token. Col is the 1-based byte offset of its
// first character.
type Token struct {
	Type  TokenType
	Value string
	Col   int
}

// String returns a human-readable representation of the token for debugging.
func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%s)@%d", t.Type, t.Value, t.Col)
	}
	return fmt.Sprintf("%s@%d", t.Type, t.Col)
}

var keywords = map[string]TokenType{
	"and": TokenAnd,
	"or":  TokenOr,
	"not": TokenNot,
	"in":  TokenIn,
}

// LookupIdent returns the token type for an identifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
