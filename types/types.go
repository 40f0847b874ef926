package types

import "fmt"

type Kind int

const (
	IntKind Kind = iota
	FloatKind
	CharKind
	BoolKind
)

// Type is a primitive semantic type. Two types are equal when their kinds are.
type Type struct {
	Kind Kind
}

// Common singletons for readability.
var (
	Int   = Type{Kind: IntKind}
	Float = Type{Kind: FloatKind}
	Char  = Type{Kind: CharKind}
	Bool  = Type{Kind: BoolKind}
)

func (t Type) String() string {
	switch t.Kind {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case CharKind:
		return "char"
	case BoolKind:
		return "bool"
	default:
		return fmt.Sprintf("type(%d)", int(t.Kind))
	}
}

// Width is the number of bytes a variable of this type occupies in a frame.
func (t Type) Width() int {
	switch t.Kind {
	case IntKind:
		return 4
	case FloatKind:
		return 8
	case CharKind, BoolKind:
		return 1
	default:
		panic(fmt.Sprintf("Width: unhandled kind %v", t.Kind))
	}
}

func (t Type) Numeric() bool {
	return t.Kind == IntKind || t.Kind == FloatKind || t.Kind == CharKind
}

// Max returns the promoted type of an arithmetic operation over a and b.
// ok is false when either operand is not numeric.
func Max(a, b Type) (t Type, ok bool) {
	switch {
	case !a.Numeric() || !b.Numeric():
		return Type{}, false
	case a == Float || b == Float:
		return Float, true
	case a == Int || b == Int:
		return Int, true
	default:
		return Char, true
	}
}

// Assignable reports whether a value of type src may be stored into dst.
func Assignable(dst, src Type) bool {
	if dst.Numeric() && src.Numeric() {
		return true
	}
	return dst == Bool && src == Bool
}
