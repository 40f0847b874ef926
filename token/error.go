package token

import "fmt"

type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	UndeclaredIdentifier
	TypeError
	UnenclosedBreak
)

var errorKinds = [...]string{
	LexicalError:         "lexical error",
	SyntaxError:          "syntax error",
	UndeclaredIdentifier: "undeclared identifier",
	TypeError:            "type error",
	UnenclosedBreak:      "unenclosed break",
}

func (k ErrorKind) String() string {
	if 0 <= k && int(k) < len(errorKinds) {
		return errorKinds[k]
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// CompileError is a single line-tagged translation failure. Translation stops
// at the first one.
type CompileError struct {
	Kind  ErrorKind
	Token Token
	Msg   string
}

func (ce *CompileError) Error() string {
	if ce.Token.FileName != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", ce.Token.FileName, ce.Token.Line, ce.Token.Column, ce.Kind, ce.Msg)
	}
	return fmt.Sprintf("near line %d: %s: %s", ce.Token.Line, ce.Kind, ce.Msg)
}
