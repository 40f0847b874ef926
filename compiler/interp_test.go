package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes rendered three-address lines and returns the final value of
// every variable assigned. Numbers are float64 and booleans are bool; integer
// division is not modelled.
func run(t *testing.T, lines []string) map[string]any {
	t.Helper()

	labels := map[string]int{}
	for i, line := range lines {
		if strings.HasSuffix(line, ":") {
			labels[strings.TrimSuffix(line, ":")] = i
		}
	}

	env := map[string]any{}
	pc := 0
	for steps := 0; pc < len(lines); steps++ {
		require.Less(t, steps, 10000, "program did not terminate")
		f := strings.Fields(lines[pc])
		pc++
		switch {
		case len(f) == 1 && strings.HasSuffix(f[0], ":"):
		case f[0] == "goto":
			pc = target(t, labels, f[1])
		case f[0] == "if" || f[0] == "iffalse":
			n := len(f)
			require.Equal(t, "goto", f[n-2], lines[pc-1])
			cond := truth(t, eval(t, env, f[1:n-2]))
			if cond == (f[0] == "if") {
				pc = target(t, labels, f[n-1])
			}
		default:
			require.Equal(t, "=", f[1], lines[pc-1])
			env[f[0]] = eval(t, env, f[2:])
		}
	}
	return env
}

func target(t *testing.T, labels map[string]int, name string) int {
	t.Helper()
	pc, ok := labels[name]
	require.True(t, ok, "undefined label %s", name)
	return pc
}

func operand(t *testing.T, env map[string]any, s string) any {
	t.Helper()
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	v, ok := env[s]
	require.True(t, ok, "%s read before it was assigned", s)
	return v
}

func eval(t *testing.T, env map[string]any, f []string) any {
	t.Helper()
	switch len(f) {
	case 1:
		return operand(t, env, f[0])
	case 2:
		require.Equal(t, "minus", f[0])
		return -operand(t, env, f[1]).(float64)
	case 3:
	default:
		t.Fatalf("cannot evaluate %q", strings.Join(f, " "))
	}

	a, b := operand(t, env, f[0]), operand(t, env, f[2])
	switch f[1] {
	case "==":
		return a == b
	case "!=":
		return a != b
	}
	x, y := a.(float64), b.(float64)
	switch f[1] {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	case ">=":
		return x >= y
	}
	panic(fmt.Sprintf("unknown operator %q", f[1]))
}

func truth(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	}
	t.Fatalf("cannot test %v", v)
	return false
}
