package lexer

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid token")

// Lexer produces tokens from a byte buffer one at a time.
type Lexer struct {
	src []byte
	pos int
}

// New returns a lexer reading src.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token and whether more tokens may follow.
// It reports false at the end of input (with an EOF token) and after an
// Invalid token, at which point the caller should stop.
func (l *Lexer) Next() (Token, bool) {
	l.skipWhitespace()

	start := l.pos
	if start >= len(l.src) {
		return Token{Kind: EOF, Pos: start}, false
	}

	var kind Kind
	switch c := l.src[start]; {
	case c == '{':
		kind, l.pos = LeftBrace, start+1
	case c == '}':
		kind, l.pos = RightBrace, start+1
	case c == '[':
		kind, l.pos = LeftBracket, start+1
	case c == ']':
		kind, l.pos = RightBracket, start+1
	case c == ':':
		kind, l.pos = Colon, start+1
	case c == ',':
		kind, l.pos = Comma, start+1
	case c == '"':
		kind = l.readString()
	case c == '-' || isDigit(c):
		kind = l.readNumber()
	default:
		kind = l.readKeyword()
	}

	tok := Token{Kind: kind, Pos: start, Text: l.src[start:l.pos:l.pos]}
	return tok, kind != Invalid
}

// Tokenize lexes the whole buffer. On success the returned slice ends with
// an EOF token. On failure it returns the tokens read so far, the Invalid
// token last, together with an error wrapping ErrInvalidToken.
func Tokenize(src []byte) ([]Token, error) {
	tokens := make([]Token, 0, len(src)/2+1)
	l := New(src)

	for {
		tok, more := l.Next()
		tokens = append(tokens, tok)
		if more {
			continue
		}
		if tok.Kind == Invalid {
			return tokens, fmt.Errorf("%w: %q at offset %d", ErrInvalidToken, tok.Text, tok.Pos)
		}
		return tokens, nil
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.pos++
	}
}

// readString scans to the closing quote. A backslash always escapes the next
// byte; escapes are validated by the parser.
func (l *Lexer) readString() Kind {
	escaping := false
	for i := l.pos + 1; i < len(l.src); i++ {
		switch c := l.src[i]; {
		case escaping:
			escaping = false
		case c == '\\':
			escaping = true
		case c == '"':
			l.pos = i + 1
			return String
		}
	}
	l.pos = len(l.src)
	return Invalid
}

// readNumber classifies a number literal. Malformed literals still consume
// up to the next whitespace or delimiter.
func (l *Lexer) readNumber() Kind {
	i := l.pos
	if l.src[i] == '-' {
		i++
	}
	digitsStart := i

	var (
		kind      = Int
		sawDot    bool
		sawExp    bool
		lastDigit = false
	)

	if i+1 < len(l.src) && l.src[i] == '0' && isDigit(l.src[i+1]) {
		kind = Invalid
	}

	for ; i < len(l.src) && !isBoundary(l.src[i]); i++ {
		c := l.src[i]
		switch {
		case isDigit(c):
			lastDigit = true
			continue
		case c == '.':
			if sawDot || sawExp || !lastDigit {
				kind = Invalid
			} else if kind != Invalid {
				kind = Float
			}
			sawDot = true
		case c == 'e' || c == 'E':
			if sawExp || !lastDigit {
				kind = Invalid
			} else if kind == Int {
				kind = Scientific
			}
			sawExp = true
		case c == '+' || c == '-':
			if p := l.src[i-1]; p != 'e' && p != 'E' {
				kind = Invalid
			}
		default:
			kind = Invalid
		}
		lastDigit = false
	}

	if i == digitsStart || !lastDigit {
		kind = Invalid
	}
	l.pos = i
	return kind
}

var keywords = []struct {
	text []byte
	kind Kind
}{
	{[]byte("null"), Null},
	{[]byte("true"), Bool},
	{[]byte("false"), Bool},
}

func (l *Lexer) readKeyword() Kind {
	rest := l.src[l.pos:]
	for _, kw := range keywords {
		if !bytes.HasPrefix(rest, kw.text) {
			continue
		}
		n := len(kw.text)
		if n == len(rest) || isBoundary(rest[n]) {
			l.pos += n
			return kw.kind
		}
	}

	for l.pos < len(l.src) && !isBoundary(l.src[l.pos]) {
		l.pos++
	}
	return Invalid
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}

func isBoundary(c byte) bool {
	return isWhitespace(c) || isDelimiter(c)
}
