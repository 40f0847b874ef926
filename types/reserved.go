package types

var reservedTypeNames = []string{
	"int",
	"float",
	"char",
	"bool",
}

var reservedTypeSet = func() map[string]Type {
	m := make(map[string]Type, len(reservedTypeNames))
	for _, t := range []Type{Int, Float, Char, Bool} {
		m[t.String()] = t
	}
	return m
}()

// ReservedTypeNames returns a copy of source-level basic type names.
func ReservedTypeNames() []string {
	return append([]string(nil), reservedTypeNames...)
}

// IsReservedTypeName reports whether name is a basic type keyword.
func IsReservedTypeName(name string) bool {
	_, ok := reservedTypeSet[name]
	return ok
}

// Lookup returns the basic type spelled name.
func Lookup(name string) (Type, bool) {
	t, ok := reservedTypeSet[name]
	return t, ok
}
