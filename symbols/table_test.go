package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

func ident(name string, line int) token.Token {
	return token.Token{Type: token.IDENT, Literal: name, Line: line}
}

func TestDeclareOffsets(t *testing.T) {
	st := New()

	a, err := st.Declare(ident("a", 1), types.Int)
	require.Nil(t, err)
	b, err := st.Declare(ident("b", 1), types.Float)
	require.Nil(t, err)

	assert.Equal(t, 4, a.Offset)
	assert.Equal(t, 12, b.Offset)
	assert.Equal(t, 12, st.FrameSize())
}

func TestShadowing(t *testing.T) {
	st := New()
	outer, err := st.Declare(ident("x", 1), types.Int)
	require.Nil(t, err)

	st.Enter()
	inner, err := st.Declare(ident("x", 2), types.Char)
	require.Nil(t, err)

	got, ok := st.Get("x")
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.Equal(t, 5, inner.Offset)

	st.Leave()
	got, ok = st.Get("x")
	require.True(t, ok)
	assert.Same(t, outer, got)

	// Slots of a left block stay reserved.
	assert.Equal(t, 5, st.FrameSize())
	require.Len(t, st.Decls(), 2)
	assert.Equal(t, []string{"x", "x"}, []string{st.Decls()[0].Name, st.Decls()[1].Name})
}

func TestGetSearchesParents(t *testing.T) {
	st := New()
	_, err := st.Declare(ident("a", 1), types.Bool)
	require.Nil(t, err)

	st.Enter()
	st.Enter()
	require.Equal(t, 3, st.Depth())

	got, ok := st.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.Bool, got.Type())

	_, ok = st.Get("missing")
	assert.False(t, ok)
}

func TestRedeclaration(t *testing.T) {
	st := New()
	_, err := st.Declare(ident("a", 1), types.Int)
	require.Nil(t, err)

	_, err = st.Declare(ident("a", 3), types.Float)
	require.NotNil(t, err)
	assert.Equal(t, token.SyntaxError, err.Kind)
	assert.Equal(t, 3, err.Token.Line)
	assert.Equal(t, 4, st.FrameSize(), "failed declaration must not reserve a slot")
}

func TestPopGlobalScopePanics(t *testing.T) {
	st := New()
	assert.Panics(t, func() { st.Leave() })
}

func TestGenericScopes(t *testing.T) {
	scopes := []Scope[int]{NewScope[int](FuncScope)}
	Put(scopes, "x", 1)
	PushScope(&scopes, BlockScope)
	Put(scopes, "y", 2)

	v, ok := Get(scopes, "x")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = Lookup(scopes, "x")
	assert.False(t, ok)

	PopScope(&scopes)
	_, ok = Get(scopes, "y")
	assert.False(t, ok)
}

func TestPutOverwritesInnermost(t *testing.T) {
	st := New()
	first := &ast.Id{Name: "z", T: types.Int}
	second := &ast.Id{Name: "z", T: types.Float}
	st.Put("z", first)
	st.Put("z", second)
	got, ok := st.Get("z")
	require.True(t, ok)
	assert.Same(t, second, got)
}
