// Package tactest reads translation test cases out of Markdown documents.
//
// A case starts at a heading "Test: <name>" and holds one tac fence with the
// source program and either a 3ac fence with the expected code or an error
// fence with the expected failure.
package tactest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	FenceSource = "tac"
	FenceCode   = "3ac"
	FenceError  = "error"
)

type TestCase struct {
	Name   string
	Line   int    // line of the heading in the document
	Source string // contents of the tac fence
	Code   string // expected three-address code, one trimmed instruction per line
	Error  string // expected error, if the case must fail
}

// WantsError reports whether the case expects translation to fail.
func (tc TestCase) WantsError() bool {
	return tc.Error != ""
}

// ExtractTestCases parses a Markdown document and returns its test cases in
// order.
func ExtractTestCases(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var cur *TestCase
	finish := func() error {
		if cur == nil {
			return nil
		}
		if err := validate(cur); err != nil {
			return err
		}
		cases = append(cases, *cur)
		cur = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			cur = &TestCase{
				Name: strings.TrimSpace(strings.TrimPrefix(heading, "Test: ")),
				Line: lineOf(n, source),
			}

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			line := lineOf(n, source)
			if cur == nil {
				if lang == "" {
					return ast.WalkContinue, nil
				}
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, lang)
			}

			content := strings.TrimRight(fenceContent(n, source), "\n")
			switch lang {
			case FenceSource:
				if cur.Source != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, lang, cur.Name)
				}
				cur.Source = content
			case FenceCode:
				if cur.Code != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, lang, cur.Name)
				}
				cur.Code = trimLines(content)
			case FenceError:
				if cur.Error != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, lang, cur.Name)
				}
				cur.Error = strings.TrimSpace(content)
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, cur.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(tc *TestCase) error {
	switch {
	case tc.Source == "":
		return fmt.Errorf("test %q has no %s fence", tc.Name, FenceSource)
	case tc.Code == "" && tc.Error == "":
		return fmt.Errorf("test %q needs a %s or an %s fence", tc.Name, FenceCode, FenceError)
	case tc.Code != "" && tc.Error != "":
		return fmt.Errorf("test %q has both a %s and an %s fence", tc.Name, FenceCode, FenceError)
	}
	return nil
}

// trimLines strips indentation so expected code may be written either flat or
// with tab-indented instructions.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based document line where node's content starts.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
