// Package lexer splits JSON text into tokens that reference the caller's
// buffer without copying it.
package lexer

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Colon
	Comma
	String
	Int
	Float
	Scientific
	Bool
	Null
)

var kindNames = [...]string{
	Invalid:      "invalid",
	EOF:          "end of input",
	LeftBrace:    "'{'",
	RightBrace:   "'}'",
	LeftBracket:  "'['",
	RightBracket: "']'",
	Colon:        "':'",
	Comma:        "','",
	String:       "string",
	Int:          "integer",
	Float:        "float",
	Scientific:   "scientific number",
	Bool:         "boolean",
	Null:         "null",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is a classified span of the source buffer. Text aliases the source
// and is only valid while the source is; string tokens keep their quotes.
type Token struct {
	Kind Kind
	Pos  int
	Text []byte
}

// Contents returns the bytes between the quotes of a string token.
func (t Token) Contents() []byte {
	if t.Kind != String || len(t.Text) < 2 {
		return nil
	}
	return t.Text[1 : len(t.Text)-1]
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q at offset %d", t.Kind, t.Text, t.Pos)
}
