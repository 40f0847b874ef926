package compiler

import (
	"fmt"

	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/types"
)

// Gen returns an expression equivalent to e whose operands are all simple,
// emitting whatever code that takes. Boolean operators are materialized into
// a temporary.
func (c *Compiler) Gen(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.Constant, *ast.Id, *ast.Temp:
		return e
	case *ast.Arith:
		return &ast.Arith{Token: e.Token, Op: e.Op, Left: c.Reduce(e.Left), Right: c.Reduce(e.Right), T: e.T}
	case *ast.Unary:
		return &ast.Unary{Token: e.Token, Op: e.Op, Operand: c.Reduce(e.Operand), T: e.T}
	case *ast.And, *ast.Or, *ast.Not, *ast.Rel:
		return c.materialize(e)
	default:
		panic(fmt.Sprintf("Gen: unhandled expression type %T", e))
	}
}

// Reduce forces e into a single simple operand, assigning it to a fresh
// temporary if it is not one already.
func (c *Compiler) Reduce(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case *ast.Constant, *ast.Id, *ast.Temp:
		return e
	case *ast.Arith, *ast.Unary:
		x := c.Gen(e)
		t := c.alloc.NewTemp(e.Type())
		c.out.Emit(t.String() + " = " + x.String())
		return t
	case *ast.And, *ast.Or, *ast.Not, *ast.Rel:
		return c.materialize(e)
	default:
		panic(fmt.Sprintf("Reduce: unhandled expression type %T", e))
	}
}

// Jumping emits code that transfers control to t when e is true and to f
// when it is false. Either label may be NoLabel, meaning control falls
// through in that case.
func (c *Compiler) Jumping(e ast.Expression, t, f Label) {
	switch e := e.(type) {
	case *ast.Constant:
		switch {
		case e.IsTrue():
			if t != NoLabel {
				c.out.Emit("goto " + t.String())
			}
		case e.IsFalse():
			if f != NoLabel {
				c.out.Emit("goto " + f.String())
			}
		default:
			c.emitJumps(e.String(), t, f)
		}
	case *ast.Id, *ast.Temp, *ast.Arith, *ast.Unary:
		c.emitJumps(e.String(), t, f)
	case *ast.And:
		label := f
		if f == NoLabel {
			label = c.alloc.NewLabel()
		}
		c.Jumping(e.Left, NoLabel, label)
		c.Jumping(e.Right, t, f)
		if f == NoLabel {
			c.out.EmitLabel(label)
		}
	case *ast.Or:
		label := t
		if t == NoLabel {
			label = c.alloc.NewLabel()
		}
		c.Jumping(e.Left, label, NoLabel)
		c.Jumping(e.Right, t, f)
		if t == NoLabel {
			c.out.EmitLabel(label)
		}
	case *ast.Not:
		c.Jumping(e.Operand, f, t)
	case *ast.Rel:
		a := c.Reduce(e.Left)
		b := c.Reduce(e.Right)
		c.emitJumps(a.String()+" "+e.Op+" "+b.String(), t, f)
	default:
		panic(fmt.Sprintf("Jumping: unhandled expression type %T", e))
	}
}

// emitJumps branches on an already rendered test.
func (c *Compiler) emitJumps(test string, t, f Label) {
	switch {
	case t != NoLabel && f != NoLabel:
		c.out.Emit("if " + test + " goto " + t.String())
		c.out.Emit("goto " + f.String())
	case t != NoLabel:
		c.out.Emit("if " + test + " goto " + t.String())
	case f != NoLabel:
		c.out.Emit("iffalse " + test + " goto " + f.String())
	}
}

// materialize computes the value of a boolean expression into a temporary.
// Jumping(e, NoLabel, f) falls through exactly when e is true.
func (c *Compiler) materialize(e ast.Expression) ast.Expression {
	f := c.alloc.NewLabel()
	a := c.alloc.NewLabel()
	t := c.alloc.NewTemp(types.Bool)
	c.Jumping(e, NoLabel, f)
	c.out.Emit(t.String() + " = true")
	c.out.Emit("goto " + a.String())
	c.out.EmitLabel(f)
	c.out.Emit(t.String() + " = false")
	c.out.EmitLabel(a)
	return t
}
