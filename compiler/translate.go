package compiler

import (
	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/lexer"
	"github.com/thiremani/tac/parser"
)

// Result is the output of translating one program.
type Result struct {
	Program *ast.Program
	Code    *Emitter
}

// Translate parses src and lowers it to three-address code in one pass. It
// stops at the first error, which is a *token.CompileError.
func Translate(name, src string) (*Result, error) {
	p := parser.New(lexer.New(name, src))
	prog := p.ParseProgram()
	if cerr := p.Err(); cerr != nil {
		return nil, cerr
	}

	c := NewCompiler(NewAllocator(), NewEmitter())
	c.CompileProgram(prog)
	return &Result{Program: prog, Code: c.Emitter()}, nil
}
