package ast

import (
	"fmt"

	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

// Null is the empty statement.
type Null struct{}

func (n *Null) statementNode()   {}
func (n *Null) Tok() token.Token { return token.Token{} }
func (n *Null) String() string   { return ";" }

// IsNull reports whether s is the empty statement.
func IsNull(s Statement) bool {
	_, ok := s.(*Null)
	return ok
}

// Break leaves the loop named by Loop.
type Break struct {
	Token token.Token // the break token
	Loop  LoopID
}

func (b *Break) statementNode()   {}
func (b *Break) Tok() token.Token { return b.Token }
func (b *Break) String() string   { return "break;" }

// Seq runs First then Second.
type Seq struct {
	First  Statement
	Second Statement
}

func (s *Seq) statementNode() {}
func (s *Seq) Tok() token.Token {
	if IsNull(s.First) {
		return s.Second.Tok()
	}
	return s.First.Tok()
}
func (s *Seq) String() string {
	switch {
	case IsNull(s.First):
		return s.Second.String()
	case IsNull(s.Second):
		return s.First.String()
	}
	return s.First.String() + " " + s.Second.String()
}

type Assign struct {
	Token  token.Token // the = token
	Target *Id
	Value  Expression
}

// NewAssign checks that value may be stored into target: numeric to numeric
// or bool to bool.
func NewAssign(tok token.Token, target *Id, value Expression) (*Assign, *token.CompileError) {
	if !types.Assignable(target.Type(), value.Type()) {
		msg := fmt.Sprintf("cannot assign %s to %q of type %s", value.Type(), target.Name, target.Type())
		return nil, newError(token.TypeError, tok, msg)
	}
	return &Assign{Token: tok, Target: target, Value: value}, nil
}

func (a *Assign) statementNode()   {}
func (a *Assign) Tok() token.Token { return a.Token }
func (a *Assign) String() string {
	return a.Target.String() + " = " + a.Value.String() + ";"
}

type If struct {
	Token token.Token // the if token
	Cond  Expression
	Body  Statement
}

func NewIf(tok token.Token, cond Expression, body Statement) (*If, *token.CompileError) {
	if err := checkGuard(tok, cond); err != nil {
		return nil, err
	}
	return &If{Token: tok, Cond: cond, Body: body}, nil
}

func (i *If) statementNode()   {}
func (i *If) Tok() token.Token { return i.Token }
func (i *If) String() string {
	return "if (" + i.Cond.String() + ") " + i.Body.String()
}

type IfElse struct {
	Token token.Token // the if token
	Cond  Expression
	Then  Statement
	Else  Statement
}

func NewIfElse(tok token.Token, cond Expression, then, els Statement) (*IfElse, *token.CompileError) {
	if err := checkGuard(tok, cond); err != nil {
		return nil, err
	}
	return &IfElse{Token: tok, Cond: cond, Then: then, Else: els}, nil
}

func (ie *IfElse) statementNode()   {}
func (ie *IfElse) Tok() token.Token { return ie.Token }
func (ie *IfElse) String() string {
	return "if (" + ie.Cond.String() + ") " + ie.Then.String() + " else " + ie.Else.String()
}

// While is built in two phases: NewWhile before its body is parsed, Init once
// the guard and body exist.
type While struct {
	Token token.Token // the while token
	Loop  LoopID
	Cond  Expression
	Body  Statement
	ready bool
}

func NewWhile(tok token.Token, id LoopID) *While {
	return &While{Token: tok, Loop: id}
}

// Init stores the guard and body. It may be called once.
func (w *While) Init(cond Expression, body Statement) *token.CompileError {
	if w.ready {
		panic(fmt.Sprintf("while loop %d initialized twice", w.Loop))
	}
	if err := checkGuard(w.Token, cond); err != nil {
		return err
	}
	w.Cond = cond
	w.Body = body
	w.ready = true
	return nil
}

// Ready reports whether Init has completed.
func (w *While) Ready() bool { return w.ready }

func (w *While) statementNode()   {}
func (w *While) Tok() token.Token { return w.Token }
func (w *While) String() string {
	if !w.ready {
		return "while (?) ?"
	}
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}

// DoWhile runs Body at least once and repeats while Cond holds. It is built
// in two phases like While.
type DoWhile struct {
	Token token.Token // the do token
	Loop  LoopID
	Body  Statement
	Cond  Expression
	ready bool
}

func NewDoWhile(tok token.Token, id LoopID) *DoWhile {
	return &DoWhile{Token: tok, Loop: id}
}

// Init stores the body and guard. It may be called once.
func (d *DoWhile) Init(body Statement, cond Expression) *token.CompileError {
	if d.ready {
		panic(fmt.Sprintf("do loop %d initialized twice", d.Loop))
	}
	if err := checkGuard(d.Token, cond); err != nil {
		return err
	}
	d.Body = body
	d.Cond = cond
	d.ready = true
	return nil
}

// Ready reports whether Init has completed.
func (d *DoWhile) Ready() bool { return d.ready }

func (d *DoWhile) statementNode()   {}
func (d *DoWhile) Tok() token.Token { return d.Token }
func (d *DoWhile) String() string {
	if !d.ready {
		return "do ? while (?);"
	}
	return "do " + d.Body.String() + " while (" + d.Cond.String() + ");"
}

func checkGuard(tok token.Token, cond Expression) *token.CompileError {
	if cond.Type() == types.Bool {
		return nil
	}
	msg := fmt.Sprintf("%s condition must be bool, got %s", tok.Literal, cond.Type())
	return newError(token.TypeError, tok, msg)
}
