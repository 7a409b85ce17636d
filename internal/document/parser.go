package document

import (
	"github.com/jacoelho/jdoc/internal/lexer"
	"github.com/jacoelho/jdoc/internal/stack"
)

type parser struct {
	doc    *Document
	tokens []lexer.Token
	hints  []int32
	pos    int
}

func (d *Document) parse(src []byte) Value {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return NewError(ErrToken)
	}

	p := parser{
		doc:    d,
		tokens: tokens,
		hints:  childCounts(tokens),
	}

	var root Value
	if code := p.parseValue(&root); code != ErrNone {
		return NewError(code)
	}
	if p.peek().Kind != lexer.EOF {
		return NewError(ErrToken)
	}
	return root
}

// peek returns the current token. The token slice always ends with EOF and
// the cursor never moves past it.
func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseValue(v *Value) ErrorCode {
	tok := p.peek()
	switch tok.Kind {
	case lexer.LeftBrace:
		return p.parseObject(v)
	case lexer.LeftBracket:
		return p.parseArray(v)
	case lexer.String:
		return p.parseString(v)
	case lexer.Int, lexer.Float, lexer.Scientific:
		return p.parseNumber(v)
	case lexer.Bool:
		p.pos++
		*v = NewBool(tok.Text[0] == 't')
	case lexer.Null:
		p.pos++
		*v = NewNull()
	default:
		return ErrToken
	}
	return ErrNone
}

func (p *parser) parseObject(v *Value) ErrorCode {
	open := p.pos
	p.pos++

	// Load factor at most one half.
	obj, err := p.doc.newObject(2 * int(p.hints[open]))
	if err != nil {
		return ErrMemory
	}
	*v = Value{kind: KindObject, obj: obj}

	if p.peek().Kind == lexer.RightBrace {
		p.pos++
		return ErrNone
	}

	for {
		tok := p.next()
		switch tok.Kind {
		case lexer.String:
		case lexer.EOF:
			return ErrObject
		default:
			return ErrObjectKey
		}

		key, ok := unescape(p.doc.scratch[:0], tok.Contents())
		if !ok {
			return ErrObjectKey
		}
		p.doc.scratch = key

		switch p.next().Kind {
		case lexer.Colon:
		case lexer.EOF:
			return ErrObject
		default:
			return ErrMissingColon
		}
		if p.peek().Kind == lexer.EOF {
			return ErrObject
		}

		slot, err := slotFor(obj, key)
		if err != nil {
			return ErrMemory
		}
		if code := p.parseValue(slot); code != ErrNone {
			if code == ErrToken {
				return ErrObjectValue
			}
			return code
		}

		switch p.next().Kind {
		case lexer.Comma:
		case lexer.RightBrace:
			return ErrNone
		case lexer.EOF:
			return ErrObject
		default:
			return ErrMissingCommaOrRightCurly
		}
	}
}

func (p *parser) parseArray(v *Value) ErrorCode {
	open := p.pos
	p.pos++

	arr, err := p.doc.newArray(int(p.hints[open]))
	if err != nil {
		return ErrMemory
	}
	*v = Value{kind: KindArray, arr: arr}

	if p.peek().Kind == lexer.RightBracket {
		p.pos++
		return ErrNone
	}

	for {
		if p.peek().Kind == lexer.EOF {
			return ErrArray
		}

		slot, err := arr.Next()
		if err != nil {
			return ErrMemory
		}
		if code := p.parseValue(slot); code != ErrNone {
			if code == ErrToken {
				return ErrArrayValue
			}
			return code
		}

		switch p.next().Kind {
		case lexer.Comma:
		case lexer.RightBracket:
			return ErrNone
		case lexer.EOF:
			return ErrArray
		default:
			return ErrMissingCommaOrRightBracket
		}
	}
}

func (p *parser) parseString(v *Value) ErrorCode {
	raw := p.next().Contents()

	// Decoding never produces more bytes than the raw literal.
	dst, err := p.doc.strings.Alloc(len(raw), 1)
	if err != nil {
		return ErrMemory
	}
	s, ok := unescape(dst[:0], raw)
	if !ok {
		return ErrString
	}
	*v = Value{kind: KindString, str: s[:len(s):len(s)]}
	return ErrNone
}

// childCounts returns, for every '{' and '[' token, the number of direct
// children of that container, so it can be allocated at its final size.
func childCounts(tokens []lexer.Token) []int32 {
	type frame struct {
		open  int
		count int32
	}

	hints := make([]int32, len(tokens))
	open := stack.NewWithCapacity[frame](16)

	for i, tok := range tokens {
		switch tok.Kind {
		case lexer.LeftBrace, lexer.LeftBracket:
			open.Push(frame{open: i})
		case lexer.Comma:
			if f := open.PeekRef(); f != nil {
				f.count++
			}
		case lexer.RightBrace, lexer.RightBracket:
			f, ok := open.Pop()
			if !ok {
				continue
			}
			if f.open != i-1 {
				f.count++
			}
			hints[f.open] = f.count
		}
	}
	return hints
}
