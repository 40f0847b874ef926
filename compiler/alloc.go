package compiler

import (
	"fmt"

	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/types"
)

// Label names a position in the instruction stream.
type Label uint32

// NoLabel is the "fall through" sentinel. It is never allocated.
const NoLabel Label = 0

func (l Label) String() string {
	return fmt.Sprintf("L%d", uint32(l))
}

// Allocator hands out program-wide unique label and temporary ids. One
// Allocator is shared by every node generated in a run; ids start at 1.
type Allocator struct {
	labels uint32
	temps  int
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) NewLabel() Label {
	a.labels++
	if a.labels == 0 {
		panic("label ids exhausted")
	}
	return Label(a.labels)
}

func (a *Allocator) NewTemp(t types.Type) *ast.Temp {
	a.temps++
	return &ast.Temp{Number: a.temps, T: t}
}

// Labels is the number of labels allocated so far.
func (a *Allocator) Labels() int {
	return int(a.labels)
}

// Temps is the number of temporaries allocated so far.
func (a *Allocator) Temps() int {
	return a.temps
}
