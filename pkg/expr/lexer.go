package expr

import (
	"strings"
	"unicode"
)

// Lexer tokenizes a filter expression.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize tokenizes the entire input. Problems are reported as
// TokenIllegal tokens for the parser to reject.
func (l *Lexer) Tokenize() []Token {
	for l.pos < len(l.input) {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}

		ch := l.peek()
		switch {
		case ch == '"' || ch == '\'':
			l.scanString(ch)

		case ch == '`':
			l.scanQuotedIdent()

		case ch == '|':
			if l.peekNext() == '|' {
				l.emit(TokenOr, "||", 2)
			} else {
				l.emit(TokenIllegal, "|", 1)
			}

		case ch == '&':
			if l.peekNext() == '&' {
				l.emit(TokenAnd, "&&", 2)
			} else {
				l.emit(TokenIllegal, "&", 1)
			}

		case ch == '=':
			// a single '=' is accepted as equality
			if l.peekNext() == '=' {
				l.emit(TokenEQ, "==", 2)
			} else {
				l.emit(TokenEQ, "=", 1)
			}

		case ch == '!':
			if l.peekNext() == '=' {
				l.emit(TokenNE, "!=", 2)
			} else {
				l.emit(TokenNot, "!", 1)
			}

		case ch == '<':
			if l.peekNext() == '=' {
				l.emit(TokenLE, "<=", 2)
			} else {
				l.emit(TokenLT, "<", 1)
			}

		case ch == '>':
			if l.peekNext() == '=' {
				l.emit(TokenGE, ">=", 2)
			} else {
				l.emit(TokenGT, ">", 1)
			}

		case ch == '-' || ch == '+':
			if isDigit(l.peekNext()) || (l.peekNext() == '.' && isDigit(l.peekAt(2))) {
				l.scanNumber()
			} else {
				l.emit(TokenIllegal, string(ch), 1)
			}

		case ch == '(':
			l.emit(TokenLParen, "(", 1)

		case ch == ')':
			l.emit(TokenRParen, ")", 1)

		case ch == ',':
			l.emit(TokenComma, ",", 1)

		case isDigit(ch) || (ch == '.' && isDigit(l.peekNext())):
			l.scanNumber()

		case unicode.IsLetter(rune(ch)) || ch == '_':
			l.scanIdentifier()

		default:
			l.emit(TokenIllegal, string(ch), 1)
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Col: l.pos + 1})
	return l.tokens
}

func (l *Lexer) emit(t TokenType, value string, width int) {
	l.tokens = append(l.tokens, Token{Type: t, Value: value, Col: l.pos + 1})
	l.pos += width
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekNext() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// scanString reads a quoted string. A backslash escapes the next byte.
func (l *Lexer) scanString(quote byte) {
	startCol := l.pos + 1
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) && l.input[l.pos] != quote {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.pos++
		}
		sb.WriteByte(l.input[l.pos])
		l.pos++
	}

	if l.pos >= len(l.input) {
		l.tokens = append(l.tokens, Token{Type: TokenIllegal, Value: "unterminated string", Col: startCol})
		return
	}
	l.pos++ // closing quote
	l.tokens = append(l.tokens, Token{Type: TokenString, Value: sb.String(), Col: startCol})
}

// scanQuotedIdent reads a `backtick quoted` column name.
func (l *Lexer) scanQuotedIdent() {
	startCol := l.pos + 1
	end := strings.IndexByte(l.input[l.pos+1:], '`')
	if end < 0 {
		l.tokens = append(l.tokens, Token{Type: TokenIllegal, Value: "unterminated column name", Col: startCol})
		l.pos = len(l.input)
		return
	}
	name := l.input[l.pos+1 : l.pos+1+end]
	l.tokens = append(l.tokens, Token{Type: TokenIdent, Value: name, Col: startCol})
	l.pos += end + 2
}

func (l *Lexer) scanNumber() {
	startCol := l.pos + 1
	start := l.pos
	isFloat := false

	if l.peek() == '-' || l.peek() == '+' {
		l.pos++
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		next := l.peekNext()
		if isDigit(next) || ((next == '-' || next == '+') && isDigit(l.peekAt(2))) {
			isFloat = true
			l.pos += 2
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	value := l.input[start:l.pos]
	if isFloat {
		l.tokens = append(l.tokens, Token{Type: TokenFloat, Value: value, Col: startCol})
	} else {
		l.tokens = append(l.tokens, Token{Type: TokenInt, Value: value, Col: startCol})
	}
}

// scanIdentifier reads a column name or keyword. Column names may contain
// interior dots and hyphens (emp.var.rate, day-of-week).
func (l *Lexer) scanIdentifier() {
	startCol := l.pos + 1
	start := l.pos
	l.pos++

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsLetter(rune(ch)) || isDigit(ch) || ch == '_' {
			l.pos++
			continue
		}
		if (ch == '.' || ch == '-') && isIdentByte(l.peekNext()) {
			l.pos++
			continue
		}
		break
	}

	value := l.input[start:l.pos]
	tokenType := LookupIdent(strings.ToLower(value))
	l.tokens = append(l.tokens, Token{Type: tokenType, Value: value, Col: startCol})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentByte(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || isDigit(ch) || ch == '_'
}
