package ast

import (
	"fmt"

	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

// MinusOp is how unary negation renders in three-address code.
const MinusOp = "minus"

type Constant struct {
	Token token.Token // the literal token
	T     types.Type
}

// NewConstant types a literal token: INT is int, FLOAT is float, TRUE and
// FALSE are bool.
func NewConstant(tok token.Token) (*Constant, *token.CompileError) {
	switch tok.Type {
	case token.INT:
		return &Constant{Token: tok, T: types.Int}, nil
	case token.FLOAT:
		return &Constant{Token: tok, T: types.Float}, nil
	case token.TRUE, token.FALSE:
		return &Constant{Token: tok, T: types.Bool}, nil
	}
	return nil, newError(token.SyntaxError, tok, fmt.Sprintf("%s is not a literal", tok))
}

// NewBool returns the constant true or false.
func NewBool(v bool) *Constant {
	if v {
		return &Constant{Token: token.Token{Type: token.TRUE, Literal: "true"}, T: types.Bool}
	}
	return &Constant{Token: token.Token{Type: token.FALSE, Literal: "false"}, T: types.Bool}
}

// NewInt returns an int constant with the given decimal value.
func NewInt(v int) *Constant {
	return &Constant{Token: token.Token{Type: token.INT, Literal: fmt.Sprint(v)}, T: types.Int}
}

func (c *Constant) expressionNode()  {}
func (c *Constant) Tok() token.Token { return c.Token }
func (c *Constant) Type() types.Type { return c.T }
func (c *Constant) String() string   { return c.Token.Literal }

// IsTrue reports whether c is the literal true.
func (c *Constant) IsTrue() bool { return c.Token.Type == token.TRUE }

// IsFalse reports whether c is the literal false.
func (c *Constant) IsFalse() bool { return c.Token.Type == token.FALSE }

// Id is both a declared variable and its use inside expressions.
type Id struct {
	Token  token.Token // the token.IDENT token of the declaration
	Name   string
	T      types.Type
	Offset int // frame offset, recorded after reserving the variable's slot
}

func (i *Id) expressionNode()  {}
func (i *Id) Tok() token.Token { return i.Token }
func (i *Id) Type() types.Type { return i.T }
func (i *Id) String() string   { return i.Name }

// Temp is a compiler-introduced variable holding an intermediate value.
type Temp struct {
	Number int
	T      types.Type
}

func (t *Temp) expressionNode()  {}
func (t *Temp) Tok() token.Token { return token.Token{} }
func (t *Temp) Type() types.Type { return t.T }
func (t *Temp) String() string   { return fmt.Sprintf("t%d", t.Number) }

type Arith struct {
	Token token.Token // The operator token, e.g. +
	Op    string
	Left  Expression
	Right Expression
	T     types.Type
}

// NewArith builds left op right, typed by promotion of both operand types.
func NewArith(tok token.Token, left, right Expression) (*Arith, *token.CompileError) {
	t, ok := types.Max(left.Type(), right.Type())
	if !ok {
		msg := fmt.Sprintf("operands of %q must be numeric, got %s and %s", tok.Literal, left.Type(), right.Type())
		return nil, newError(token.TypeError, tok, msg)
	}
	return &Arith{Token: tok, Op: tok.Literal, Left: left, Right: right, T: t}, nil
}

func (a *Arith) expressionNode()  {}
func (a *Arith) Tok() token.Token { return a.Token }
func (a *Arith) Type() types.Type { return a.T }
func (a *Arith) String() string {
	return a.Left.String() + " " + a.Op + " " + a.Right.String()
}

type Unary struct {
	Token   token.Token // The prefix token, e.g. -
	Op      string
	Operand Expression
	T       types.Type
}

// NewUnary builds a negation. The result is at least int, so negating a char
// yields int.
func NewUnary(tok token.Token, operand Expression) (*Unary, *token.CompileError) {
	t, ok := types.Max(types.Int, operand.Type())
	if !ok {
		msg := fmt.Sprintf("operand of unary %q must be numeric, got %s", tok.Literal, operand.Type())
		return nil, newError(token.TypeError, tok, msg)
	}
	return &Unary{Token: tok, Op: MinusOp, Operand: operand, T: t}, nil
}

func (u *Unary) expressionNode()  {}
func (u *Unary) Tok() token.Token { return u.Token }
func (u *Unary) Type() types.Type { return u.T }
func (u *Unary) String() string   { return u.Op + " " + u.Operand.String() }

// And is short-circuit conjunction.
type And struct {
	Token token.Token // the && token
	Left  Expression
	Right Expression
}

func NewAnd(tok token.Token, left, right Expression) (*And, *token.CompileError) {
	if err := checkBoolOperands(tok, left, right); err != nil {
		return nil, err
	}
	return &And{Token: tok, Left: left, Right: right}, nil
}

func (a *And) expressionNode()  {}
func (a *And) Tok() token.Token { return a.Token }
func (a *And) Type() types.Type { return types.Bool }
func (a *And) String() string {
	return a.Left.String() + " && " + a.Right.String()
}

// Or is short-circuit disjunction.
type Or struct {
	Token token.Token // the || token
	Left  Expression
	Right Expression
}

func NewOr(tok token.Token, left, right Expression) (*Or, *token.CompileError) {
	if err := checkBoolOperands(tok, left, right); err != nil {
		return nil, err
	}
	return &Or{Token: tok, Left: left, Right: right}, nil
}

func (o *Or) expressionNode()  {}
func (o *Or) Tok() token.Token { return o.Token }
func (o *Or) Type() types.Type { return types.Bool }
func (o *Or) String() string {
	return o.Left.String() + " || " + o.Right.String()
}

type Not struct {
	Token   token.Token // the ! token
	Operand Expression
}

func NewNot(tok token.Token, operand Expression) (*Not, *token.CompileError) {
	if operand.Type() != types.Bool {
		msg := fmt.Sprintf("operand of %q must be bool, got %s", tok.Literal, operand.Type())
		return nil, newError(token.TypeError, tok, msg)
	}
	return &Not{Token: tok, Operand: operand}, nil
}

func (n *Not) expressionNode()  {}
func (n *Not) Tok() token.Token { return n.Token }
func (n *Not) Type() types.Type { return types.Bool }
func (n *Not) String() string   { return "! " + n.Operand.String() }

// Rel is a comparison. Both operands must have the same type.
type Rel struct {
	Token token.Token // the comparison token, e.g. <
	Op    string
	Left  Expression
	Right Expression
}

func NewRel(tok token.Token, left, right Expression) (*Rel, *token.CompileError) {
	if left.Type() != right.Type() {
		msg := fmt.Sprintf("operands of %q must have the same type, got %s and %s", tok.Literal, left.Type(), right.Type())
		return nil, newError(token.TypeError, tok, msg)
	}
	return &Rel{Token: tok, Op: tok.Literal, Left: left, Right: right}, nil
}

func (r *Rel) expressionNode()  {}
func (r *Rel) Tok() token.Token { return r.Token }
func (r *Rel) Type() types.Type { return types.Bool }
func (r *Rel) String() string {
	return r.Left.String() + " " + r.Op + " " + r.Right.String()
}

func checkBoolOperands(tok token.Token, left, right Expression) *token.CompileError {
	if left.Type() == types.Bool && right.Type() == types.Bool {
		return nil
	}
	msg := fmt.Sprintf("operands of %q must be bool, got %s and %s", tok.Literal, left.Type(), right.Type())
	return newError(token.TypeError, tok, msg)
}
