package compiler

import (
	"github.com/thiremani/tac/ast"
)

// Compiler lowers checked expression and statement trees to three-address
// code. The allocator and emitter are explicit so several compilers can share
// one id space when needed.
type Compiler struct {
	alloc     *Allocator
	out       *Emitter
	loopExits map[ast.LoopID]Label // after-label of every loop being generated
}

func NewCompiler(alloc *Allocator, out *Emitter) *Compiler {
	return &Compiler{
		alloc:     alloc,
		out:       out,
		loopExits: make(map[ast.LoopID]Label),
	}
}

func (c *Compiler) Allocator() *Allocator { return c.alloc }
func (c *Compiler) Emitter() *Emitter     { return c.out }

// CompileProgram brackets the program body with a begin and an after label:
// control enters at begin and leaves through after.
func (c *Compiler) CompileProgram(prog *ast.Program) {
	begin := c.alloc.NewLabel()
	after := c.alloc.NewLabel()
	c.out.EmitLabel(begin)
	c.GenStmt(prog.Body, begin, after, NoLabel)
	c.out.EmitLabel(after)
}
