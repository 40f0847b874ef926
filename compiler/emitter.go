package compiler

import "strings"

// Instr is one line of three-address output: either a label definition or an
// instruction.
type Instr struct {
	Label Label  // set for a label definition
	Text  string // set for an instruction
}

func (in Instr) IsLabel() bool {
	return in.Label != NoLabel
}

func (in Instr) String() string {
	if in.IsLabel() {
		return in.Label.String() + ":"
	}
	return "\t" + in.Text
}

// Emitter is an append-only sink for instructions. Forward jumps name a label
// whose definition is emitted later; nothing already emitted is rewritten.
type Emitter struct {
	instrs []Instr
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Emit(text string) {
	e.instrs = append(e.instrs, Instr{Text: text})
}

func (e *Emitter) EmitLabel(l Label) {
	if l == NoLabel {
		panic("cannot define the sentinel label")
	}
	e.instrs = append(e.instrs, Instr{Label: l})
}

// Instrs returns a copy of everything emitted so far.
func (e *Emitter) Instrs() []Instr {
	return append([]Instr(nil), e.instrs...)
}

func (e *Emitter) Len() int {
	return len(e.instrs)
}

// Lines renders each emitted entry without indentation.
func (e *Emitter) Lines() []string {
	lines := make([]string, len(e.instrs))
	for i, in := range e.instrs {
		if in.IsLabel() {
			lines[i] = in.String()
		} else {
			lines[i] = in.Text
		}
	}
	return lines
}

func (e *Emitter) String() string {
	var sb strings.Builder
	for _, in := range e.instrs {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
