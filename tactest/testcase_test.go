package tactest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fence = "```"

func TestExtractTestCases(t *testing.T) {
	markdown := `# Assignments

Some prose that is not a test.

## Test: nested arithmetic
` + fence + `tac
{ int a; a = 1 + 2 * 3; }
` + fence + `
` + fence + `3ac
L1:
	t1 = 2 * 3
	a = 1 + t1
L2:
` + fence + `

## Test: undeclared
` + fence + `tac
{ a = 1; }
` + fence + `
` + fence + `error
1: undeclared identifier
` + fence + `
`

	cases, err := ExtractTestCases(markdown)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	tc := cases[0]
	assert.Equal(t, "nested arithmetic", tc.Name)
	assert.Equal(t, 5, tc.Line)
	assert.Equal(t, "{ int a; a = 1 + 2 * 3; }", tc.Source)
	assert.Equal(t, "L1:\nt1 = 2 * 3\na = 1 + t1\nL2:", tc.Code)
	assert.False(t, tc.WantsError())

	tc = cases[1]
	assert.Equal(t, "undeclared", tc.Name)
	assert.Equal(t, "{ a = 1; }", tc.Source)
	assert.Equal(t, "1: undeclared identifier", tc.Error)
	assert.True(t, tc.WantsError())
}

func TestExtractTestCasesErrors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "fence outside case",
			markdown: fence + "tac\n{ }\n" + fence + "\n",
			want:     "outside of a test case",
		},
		{
			name:     "unknown fence",
			markdown: "## Test: x\n" + fence + "tac\n{ }\n" + fence + "\n" + fence + "go\nx\n" + fence + "\n",
			want:     "unknown fence language",
		},
		{
			name:     "missing source",
			markdown: "## Test: x\n" + fence + "3ac\nL1:\n" + fence + "\n",
			want:     "has no tac fence",
		},
		{
			name:     "missing expectation",
			markdown: "## Test: x\n" + fence + "tac\n{ }\n" + fence + "\n",
			want:     "needs a 3ac or an error fence",
		},
		{
			name:     "both expectations",
			markdown: "## Test: x\n" + fence + "tac\n{ }\n" + fence + "\n" + fence + "3ac\nL1:\n" + fence + "\n" + fence + "error\n1: syntax error\n" + fence + "\n",
			want:     "both",
		},
		{
			name:     "duplicate source",
			markdown: "## Test: x\n" + fence + "tac\n{ }\n" + fence + "\n" + fence + "tac\n{ }\n" + fence + "\n",
			want:     "second tac fence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases(tt.markdown)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlainCodeBlocksAreIgnored(t *testing.T) {
	markdown := fence + "\nnot a test\n" + fence + "\n\n## Other heading\n"
	cases, err := ExtractTestCases(markdown)
	require.NoError(t, err)
	assert.Empty(t, cases)
}
