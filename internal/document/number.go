package document

import (
	"math"
	"math/big"
	"strconv"

	"github.com/jacoelho/jdoc/internal/lexer"
)

// scientificPrec holds every integer up to 2^64 exactly.
const scientificPrec = 256

func (p *parser) parseNumber(v *Value) ErrorCode {
	tok := p.next()
	text := string(tok.Text)
	negative := text[0] == '-'

	switch tok.Kind {
	case lexer.Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || (f == 0 && nonzeroMantissa(text)) {
			return ErrFloat64
		}
		*v = NewFloat64(f)
	case lexer.Int:
		if negative {
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return ErrInt64
			}
			*v = NewInt64(n)
			return ErrNone
		}
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return ErrUint64
		}
		*v = NewUint64(n)
	case lexer.Scientific:
		return parseScientific(v, text, negative)
	default:
		return ErrToken
	}
	return ErrNone
}

// parseScientific evaluates an integer mantissa with an exponent at extended
// precision. Integral results must fit the signed (negative) or unsigned
// 64-bit range. Fractional results such as 5e-1 become Float64 and must
// neither overflow nor underflow to zero.
func parseScientific(v *Value, text string, negative bool) ErrorCode {
	rangeErr := ErrUint64
	if negative {
		rangeErr = ErrInt64
	}

	f, _, err := big.ParseFloat(text, 10, scientificPrec, big.ToNearestEven)
	if err != nil {
		return rangeErr
	}

	if !f.IsInt() {
		x, _ := f.Float64()
		if math.IsInf(x, 0) || (x == 0 && f.Sign() != 0) {
			return ErrFloat64
		}
		*v = NewFloat64(x)
		return ErrNone
	}

	if negative {
		n, acc := f.Int64()
		if acc != big.Exact {
			return rangeErr
		}
		*v = NewInt64(n)
		return ErrNone
	}

	n, acc := f.Uint64()
	if acc != big.Exact {
		return rangeErr
	}
	*v = NewUint64(n)
	return ErrNone
}

// nonzeroMantissa reports whether any digit before the exponent is nonzero.
func nonzeroMantissa(text string) bool {
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == 'e' || c == 'E':
			return false
		case c >= '1' && c <= '9':
			return true
		}
	}
	return false
}
