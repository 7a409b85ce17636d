package document

import (
	"math"
	"strconv"
	"time"

	"github.com/jacoelho/jdoc/internal/observability"
)

const hexDigits = "0123456789abcdef"

// Size returns the exact number of bytes Render produces for v.
// An indent of 0 produces compact output; a positive indent puts every
// container member on its own line, indented by indent spaces per level.
func Size(v *Value, indent int) int {
	return sizeValue(v, max(indent, 0), 0)
}

// Render writes v into dst and returns the number of bytes written.
// dst must hold at least Size(v, indent) bytes.
func Render(dst []byte, v *Value, indent int) (int, error) {
	indent = max(indent, 0)
	n := sizeValue(v, indent, 0)
	if len(dst) < n {
		return 0, ErrShortBuffer
	}
	out := appendValue(dst[:0:n], v, indent, 0)
	return len(out), nil
}

// Marshal renders v into a buffer allocated once at its exact size.
func Marshal(v *Value, indent int) []byte {
	buf := make([]byte, Size(v, indent))
	n, _ := Render(buf, v, indent)
	return buf[:n]
}

// ToString renders v as a string.
func ToString(v *Value, indent int) string {
	return string(Marshal(v, indent))
}

// Format parses src and renders it again with the given indent.
func Format(src []byte, indent int) ([]byte, error) {
	d := New()
	defer d.Free()

	v := d.Parse(src)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return Marshal(v, indent), nil
}

// Marshal renders v and reports the serialization to the document hooks.
func (d *Document) Marshal(v *Value, indent int) []byte {
	start := time.Now()
	out := Marshal(v, indent)
	d.hooks.OnSerialize(observability.SerializeEvent{
		Bytes:    len(out),
		Indent:   indent,
		Duration: time.Since(start),
	})
	return out
}

func sizeValue(v *Value, indent, depth int) int {
	switch v.Kind() {
	case KindString:
		return quotedLen(v.str)
	case KindBool:
		if v.bits != 0 {
			return len("true")
		}
		return len("false")
	case KindInt64, KindUint64, KindFloat64:
		var scratch [32]byte
		return len(appendNumber(scratch[:0], v))
	case KindArray:
		return sizeArray(v.arr, indent, depth)
	case KindObject:
		return sizeObject(v.obj, indent, depth)
	}
	return len("null")
}

func sizeArray(a *Array, indent, depth int) int {
	if a.count == 0 {
		return 2
	}
	n := 2 + (a.count - 1)
	if indent > 0 {
		n += a.count*(1+indent*(depth+1)) + 1 + indent*depth
	}
	for i := range a.count {
		n += sizeValue(&a.items[i], indent, depth+1)
	}
	return n
}

func sizeObject(o *Object, indent, depth int) int {
	if o.count == 0 {
		return 2
	}
	n := 2 + (o.count - 1) + o.count
	if indent > 0 {
		n += o.count*(2+indent*(depth+1)) + 1 + indent*depth
	}
	for i := range o.entries {
		e := &o.entries[i]
		if e.state != entryLive {
			continue
		}
		n += quotedLen(e.key) + sizeValue(&e.value, indent, depth+1)
	}
	return n
}

func appendValue(dst []byte, v *Value, indent, depth int) []byte {
	switch v.Kind() {
	case KindString:
		return appendQuoted(dst, v.str)
	case KindBool:
		if v.bits != 0 {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindInt64, KindUint64, KindFloat64:
		return appendNumber(dst, v)
	case KindArray:
		return appendArray(dst, v.arr, indent, depth)
	case KindObject:
		return appendObject(dst, v.obj, indent, depth)
	}
	return append(dst, "null"...)
}

func appendArray(dst []byte, a *Array, indent, depth int) []byte {
	if a.count == 0 {
		return append(dst, "[]"...)
	}
	dst = append(dst, '[')
	for i := range a.count {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendNewline(dst, indent, depth+1)
		dst = appendValue(dst, &a.items[i], indent, depth+1)
	}
	dst = appendNewline(dst, indent, depth)
	return append(dst, ']')
}

// appendObject skips tombstones and writes each separator before the next
// live entry, so no separator is left dangling after the last one.
func appendObject(dst []byte, o *Object, indent, depth int) []byte {
	if o.count == 0 {
		return append(dst, "{}"...)
	}
	dst = append(dst, '{')
	first := true
	for i := range o.entries {
		e := &o.entries[i]
		if e.state != entryLive {
			continue
		}
		if !first {
			dst = append(dst, ',')
		}
		first = false

		dst = appendNewline(dst, indent, depth+1)
		dst = appendQuoted(dst, e.key)
		dst = append(dst, ':')
		if indent > 0 {
			dst = append(dst, ' ')
		}
		dst = appendValue(dst, &e.value, indent, depth+1)
	}
	dst = appendNewline(dst, indent, depth)
	return append(dst, '}')
}

func appendNewline(dst []byte, indent, depth int) []byte {
	if indent == 0 {
		return dst
	}
	dst = append(dst, '\n')
	for range indent * depth {
		dst = append(dst, ' ')
	}
	return dst
}

// appendNumber formats integers in decimal and floats with 17 significant
// digits. Floats always keep a decimal point so they parse back as floats;
// NaN and infinities have no JSON form and render as null.
func appendNumber(dst []byte, v *Value) []byte {
	switch v.kind {
	case KindInt64:
		return strconv.AppendInt(dst, int64(v.bits), 10)
	case KindUint64:
		return strconv.AppendUint(dst, v.bits, 10)
	}

	f := math.Float64frombits(v.bits)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', 17, 64)
	for i := start; i < len(dst); i++ {
		switch dst[i] {
		case '.':
			return dst
		case 'e':
			// 1e+300 becomes 1.0e+300.
			dst = append(dst, ".0"...)
			copy(dst[i+2:], dst[i:len(dst)-2])
			dst[i], dst[i+1] = '.', '0'
			return dst
		}
	}
	return append(dst, ".0"...)
}

func quotedLen(s []byte) int {
	n := 2
	for _, c := range s {
		switch {
		case c == '"' || c == '\\':
			n += 2
		case c >= 0x20:
			n++
		case shortEscape(c) != 0:
			n += 2
		default:
			n += 6
		}
	}
	return n
}

func appendQuoted(dst, s []byte) []byte {
	dst = append(dst, '"')
	for _, c := range s {
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c >= 0x20:
			dst = append(dst, c)
		case shortEscape(c) != 0:
			dst = append(dst, '\\', shortEscape(c))
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
	}
	return append(dst, '"')
}

func shortEscape(c byte) byte {
	switch c {
	case '\b':
		return 'b'
	case '\f':
		return 'f'
	case '\n':
		return 'n'
	case '\r':
		return 'r'
	case '\t':
		return 't'
	}
	return 0
}
