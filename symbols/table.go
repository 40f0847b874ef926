package symbols

import (
	"fmt"

	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

// Table is the scope chain of one function frame. The frame offset only
// grows: leaving a block does not release the slots its variables used.
type Table struct {
	scopes []Scope[*ast.Id]
	decls  []*ast.Id
	used   int
}

// New returns a table whose outermost scope is the function scope.
func New() *Table {
	return &Table{
		scopes: []Scope[*ast.Id]{NewScope[*ast.Id](FuncScope)},
	}
}

// Enter pushes the scope of a nested block.
func (t *Table) Enter() {
	PushScope(&t.scopes, BlockScope)
}

// Leave pops the innermost block scope, restoring its parent.
func (t *Table) Leave() {
	PopScope(&t.scopes)
}

// Depth is the number of scopes currently open.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Put inserts id into the innermost scope under name.
func (t *Table) Put(name string, id *ast.Id) {
	Put(t.scopes, name, id)
}

// Get finds name in the innermost scope declaring it.
func (t *Table) Get(name string) (*ast.Id, bool) {
	return Get(t.scopes, name)
}

// Declare reserves a slot of typ's width for the identifier in tok and puts
// it in the innermost scope. The recorded offset is the running frame size
// after the reservation.
func (t *Table) Declare(tok token.Token, typ types.Type) (*ast.Id, *token.CompileError) {
	if _, ok := Lookup(t.scopes, tok.Literal); ok {
		return nil, &token.CompileError{
			Kind:  token.SyntaxError,
			Token: tok,
			Msg:   fmt.Sprintf("%q redeclared in this block", tok.Literal),
		}
	}
	t.used += typ.Width()
	id := &ast.Id{Token: tok, Name: tok.Literal, T: typ, Offset: t.used}
	t.Put(id.Name, id)
	t.decls = append(t.decls, id)
	return id, nil
}

// Decls returns every declaration in declaration order, including those of
// blocks already left.
func (t *Table) Decls() []*ast.Id {
	return append([]*ast.Id(nil), t.decls...)
}

// FrameSize is the number of bytes reserved so far.
func (t *Table) FrameSize() int {
	return t.used
}
