package ast

import (
	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// All expression nodes implement this. The set of implementations is closed:
// Constant, Id, Temp, Arith, Unary, And, Or, Not and Rel.
type Expression interface {
	Node
	Type() types.Type
	expressionNode()
}

// All statement nodes implement this. The set of implementations is closed:
// Null, Break, Seq, Assign, If, IfElse, While and DoWhile.
type Statement interface {
	Node
	statementNode()
}

// LoopID names a loop statement while it is still being parsed, so a Break in
// its body can refer to it before the loop's guard and body exist.
type LoopID int

// Program is a translated top-level block together with the frame layout of
// every variable it declares.
type Program struct {
	Body      Statement
	Decls     []*Id // in declaration order
	FrameSize int   // bytes reserved by all declarations
}

func (p *Program) Tok() token.Token {
	return p.Body.Tok()
}

func (p *Program) String() string {
	return p.Body.String()
}

// newError builds a compile error attributed to tok.
func newError(kind token.ErrorKind, tok token.Token, msg string) *token.CompileError {
	return &token.CompileError{Kind: kind, Token: tok, Msg: msg}
}
