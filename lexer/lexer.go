package lexer

import (
	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

type Lexer struct {
	name         string
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	curr         rune // current rune under examination
	line         int
	column       int
}

func New(name, input string) *Lexer {
	l := &Lexer{name: name, input: []rune(input), line: 1}
	l.readRune()
	return l
}

// NextToken scans and returns the next token. Once the input is exhausted it
// keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	tok := token.Token{FileName: l.name, Line: l.line, Column: l.column}
	if l.atEOF() {
		tok.Type = token.EOF
		return tok
	}

	switch l.curr {
	case '=':
		tok = l.oneOrTwo(tok, '=', token.ASSIGN, token.EQL)
	case '!':
		tok = l.oneOrTwo(tok, '=', token.NOT, token.NEQ)
	case '<':
		tok = l.oneOrTwo(tok, '=', token.LSS, token.LEQ)
	case '>':
		tok = l.oneOrTwo(tok, '=', token.GTR, token.GEQ)
	case '&':
		tok = l.oneOrTwo(tok, '&', token.ILLEGAL, token.LAND)
	case '|':
		tok = l.oneOrTwo(tok, '|', token.ILLEGAL, token.LOR)
	case '+':
		tok = l.single(tok, token.ADD)
	case '-':
		tok = l.single(tok, token.SUB)
	case '*':
		tok = l.single(tok, token.MUL)
	case '/':
		tok = l.single(tok, token.QUO)
	case '(':
		tok = l.single(tok, token.LPAREN)
	case ')':
		tok = l.single(tok, token.RPAREN)
	case '{':
		tok = l.single(tok, token.LBRACE)
	case '}':
		tok = l.single(tok, token.RBRACE)
	case ';':
		tok = l.single(tok, token.SEMI)
	default:
		if IsLetter(l.curr) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			if types.IsReservedTypeName(tok.Literal) {
				tok.Type = token.BASIC
			}
			return tok
		}
		if IsDigit(l.curr) {
			tok.Literal, tok.Type = l.readNumber()
			return tok
		}
		tok = l.single(tok, token.ILLEGAL)
	}

	return tok
}

func (l *Lexer) single(tok token.Token, tt token.TokenType) token.Token {
	tok.Type = tt
	tok.Literal = string(l.curr)
	l.readRune()
	return tok
}

// oneOrTwo scans either a one-rune operator or, when the next rune is second,
// the two-rune operator.
func (l *Lexer) oneOrTwo(tok token.Token, second rune, one, two token.TokenType) token.Token {
	if l.peekRune() != second {
		return l.single(tok, one)
	}
	first := l.curr
	l.readRune()
	tok.Type = two
	tok.Literal = string(first) + string(l.curr)
	l.readRune()
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r':
			l.readRune()
		case l.curr == '/' && l.peekRune() == '/':
			for l.curr != '\n' && !l.atEOF() {
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readRune() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// atEOF reports whether the input is exhausted. A NUL inside the input is an
// ordinary (illegal) character, not the end.
func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for IsLetterOrDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readNumber scans an integer literal, or a real literal when a '.' followed
// by at least one digit trails the integer part.
func (l *Lexer) readNumber() (string, token.TokenType) {
	position := l.position
	for IsDigit(l.curr) {
		l.readRune()
	}
	if l.curr != '.' || !IsDigit(l.peekRune()) {
		return string(l.input[position:l.position]), token.INT
	}
	l.readRune()
	for IsDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position]), token.FLOAT
}

func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsLetterOrDigit(ch rune) bool {
	return IsLetter(ch) || IsDigit(ch)
}
