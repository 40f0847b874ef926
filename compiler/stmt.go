package compiler

import (
	"fmt"

	"github.com/thiremani/tac/ast"
)

// GenStmt emits code for s. Control reaches s at begin, whose definition the
// caller has already emitted, and must leave through after, either by
// falling through or by an explicit jump. brk is the exit of the innermost
// enclosing loop.
func (c *Compiler) GenStmt(s ast.Statement, begin, after, brk Label) {
	switch s := s.(type) {
	case *ast.Null:
	case *ast.Break:
		c.out.Emit("goto " + c.breakTarget(s, brk).String())
	case *ast.Seq:
		c.genSeq(s, begin, after, brk)
	case *ast.Assign:
		c.out.Emit(s.Target.String() + " = " + c.Gen(s.Value).String())
	case *ast.If:
		label := c.alloc.NewLabel()
		c.Jumping(s.Cond, NoLabel, after)
		c.out.EmitLabel(label)
		c.GenStmt(s.Body, label, after, brk)
	case *ast.IfElse:
		thenLabel := c.alloc.NewLabel()
		elseLabel := c.alloc.NewLabel()
		c.Jumping(s.Cond, NoLabel, elseLabel)
		c.out.EmitLabel(thenLabel)
		c.GenStmt(s.Then, thenLabel, after, brk)
		c.out.Emit("goto " + after.String())
		c.out.EmitLabel(elseLabel)
		c.GenStmt(s.Else, elseLabel, after, brk)
	case *ast.While:
		c.genWhile(s, begin, after)
	case *ast.DoWhile:
		c.genDoWhile(s, begin, after)
	default:
		panic(fmt.Sprintf("Cannot handle statement type %T", s))
	}
}

func (c *Compiler) genSeq(s *ast.Seq, begin, after, brk Label) {
	switch {
	case ast.IsNull(s.First):
		c.GenStmt(s.Second, begin, after, brk)
	case ast.IsNull(s.Second):
		c.GenStmt(s.First, begin, after, brk)
	default:
		label := c.alloc.NewLabel()
		c.GenStmt(s.First, begin, label, brk)
		c.out.EmitLabel(label)
		c.GenStmt(s.Second, label, after, brk)
	}
}

// genWhile tests the guard at begin, runs one iteration of the body and jumps
// back to begin. A break in the body leaves through after.
func (c *Compiler) genWhile(s *ast.While, begin, after Label) {
	if !s.Ready() {
		panic(fmt.Sprintf("while loop %d generated before Init", s.Loop))
	}
	c.loopExits[s.Loop] = after
	c.Jumping(s.Cond, NoLabel, after)
	body := c.alloc.NewLabel()
	c.out.EmitLabel(body)
	c.GenStmt(s.Body, body, begin, after)
	c.out.Emit("goto " + begin.String())
}

// genDoWhile runs the body from begin, then tests the guard and jumps back to
// begin while it holds.
func (c *Compiler) genDoWhile(s *ast.DoWhile, begin, after Label) {
	if !s.Ready() {
		panic(fmt.Sprintf("do loop %d generated before Init", s.Loop))
	}
	c.loopExits[s.Loop] = after
	guard := c.alloc.NewLabel()
	c.GenStmt(s.Body, begin, guard, after)
	c.out.EmitLabel(guard)
	c.Jumping(s.Cond, begin, NoLabel)
}

// breakTarget resolves the loop a break names to that loop's after-label.
func (c *Compiler) breakTarget(s *ast.Break, brk Label) Label {
	exit, ok := c.loopExits[s.Loop]
	if !ok {
		panic(fmt.Sprintf("break refers to loop %d, which is not being generated", s.Loop))
	}
	if exit != brk {
		panic(fmt.Sprintf("break of loop %d resolves to %s but the innermost loop exits at %s", s.Loop, exit, brk))
	}
	return exit
}
