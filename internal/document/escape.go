package document

import (
	"unicode/utf16"
	"unicode/utf8"
)

// unescape appends the decoded form of a string literal body to dst.
// Raw backspace, form feed, newline, carriage return and tab are rejected.
// \u0000 decodes to a zero byte since strings carry their length.
func unescape(dst, src []byte) ([]byte, bool) {
	for i := 0; i < len(src); {
		c := src[i]
		switch c {
		case '\b', '\f', '\n', '\r', '\t':
			return nil, false
		case '\\':
		default:
			dst = append(dst, c)
			i++
			continue
		}

		if i+1 >= len(src) {
			return nil, false
		}
		switch src[i+1] {
		case '"', '\\', '/':
			dst = append(dst, src[i+1])
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r, n, ok := decodeUnicodeEscape(src[i:])
			if !ok {
				return nil, false
			}
			dst = utf8.AppendRune(dst, r)
			i += n
			continue
		default:
			return nil, false
		}
		i += 2
	}
	return dst, true
}

// decodeUnicodeEscape decodes a \uXXXX escape at the start of s, joining a
// high surrogate with the \uXXXX low surrogate that must follow it. It
// returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(s []byte) (rune, int, bool) {
	if len(s) < 6 {
		return 0, 0, false
	}
	hi, ok := hex4(s[2:6])
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 6, true
	}
	if hi >= 0xDC00 {
		return 0, 0, false
	}

	if len(s) < 12 || s[6] != '\\' || s[7] != 'u' {
		return 0, 0, false
	}
	lo, ok := hex4(s[8:12])
	if !ok || lo < 0xDC00 || lo > 0xDFFF {
		return 0, 0, false
	}
	return utf16.DecodeRune(hi, lo), 12, true
}

func hex4(s []byte) (rune, bool) {
	var r rune
	for _, c := range s[:4] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}
