package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	literal_beg
	// Identifiers + literals
	IDENT // a, count, x1
	INT   // 1343456
	FLOAT // 123.45
	literal_end

	keyword_beg
	BASIC // int, float, char, bool
	IF
	ELSE
	WHILE
	DO
	BREAK
	TRUE
	FALSE
	keyword_end

	operator_beg
	// Operators and delimiters
	ASSIGN // =
	NOT    // !

	ADD // +
	SUB // -
	MUL // *
	QUO // /

	LAND // &&
	LOR  // ||

	LPAREN // (
	LBRACE // {
	RPAREN // )
	RBRACE // }
	SEMI   // ;
	operator_end

	comparison_beg
	EQL // ==
	LSS // <
	GTR // >

	NEQ // !=
	LEQ // <=
	GEQ // >=
	comparison_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT: "IDENT",
	INT:   "INT",
	FLOAT: "FLOAT",

	BASIC: "BASIC",
	IF:    "if",
	ELSE:  "else",
	WHILE: "while",
	DO:    "do",
	BREAK: "break",
	TRUE:  "true",
	FALSE: "false",

	ASSIGN: "=",
	NOT:    "!",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",

	LAND: "&&",
	LOR:  "||",

	LPAREN: "(",
	LBRACE: "{",
	RPAREN: ")",
	RBRACE: "}",
	SEMI:   ";",

	EQL: "==",
	LSS: "<",
	GTR: ">",

	NEQ: "!=",
	LEQ: "<=",
	GEQ: ">=",
}

var keywords = map[string]TokenType{
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"do":    DO,
	"break": BREAK,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent maps reserved words to their token type. Basic type names are
// classified by the lexer, which owns the type table.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	Type     TokenType
	Literal  string
	FileName string
	Line     int
	Column   int
}

func (t Token) IsComparison() bool {
	return comparison_beg < t.Type && comparison_end > t.Type
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && literal_end > t.Type
}

func (t Token) String() string {
	if t.Type == IDENT || t.IsLiteral() || t.Type == BASIC {
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
