// Package query resolves dotted path expressions such as `.users[2].name`
// against a parsed document.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/jacoelho/jdoc/internal/document"
)

// maxIndexDigits is the longest index literal accepted inside brackets.
const maxIndexDigits = 10

// Get walks v along q and returns the selected value, or nil when any
// segment fails to match. A query is a sequence of `.key` and `[index]`
// segments; the leading `.` or `[` of the first segment may be omitted
// for keys. Keys run until the next `.` or `[`, so they cannot contain
// either character.
func Get(v *document.Value, q string) *document.Value {
	if q == "" {
		return nil
	}
	if k := v.Kind(); k != document.KindObject && k != document.KindArray {
		return nil
	}

	isIndex := q[0] == '['
	if q[0] == '.' || q[0] == '[' {
		q = q[1:]
	}

	for v != nil {
		var ok bool
		if isIndex {
			v, q, ok = index(v, q)
		} else {
			v, q, ok = field(v, q)
		}
		if !ok {
			return nil
		}
		if q == "" {
			return v
		}
		isIndex = q[0] == '['
		q = q[1:]
	}
	return nil
}

func field(v *document.Value, q string) (*document.Value, string, bool) {
	obj, ok := v.Object()
	if !ok {
		return nil, "", false
	}
	end := strings.IndexAny(q, ".[")
	if end < 0 {
		end = len(q)
	}
	return obj.Get(q[:end]), q[end:], true
}

func index(v *document.Value, q string) (*document.Value, string, bool) {
	arr, ok := v.Array()
	if !ok {
		return nil, "", false
	}
	end := strings.IndexByte(q, ']')
	if end <= 0 || end > maxIndexDigits {
		return nil, "", false
	}
	for i := range end {
		if q[i] < '0' || q[i] > '9' {
			return nil, "", false
		}
	}
	n, err := strconv.ParseUint(q[:end], 10, 64)
	if err != nil || n > math.MaxUint32 {
		return nil, "", false
	}

	rest := q[end+1:]
	if rest != "" && rest[0] != '.' && rest[0] != '[' {
		return nil, "", false
	}
	return arr.Get(int(n)), rest, true
}

// GetAs resolves q and converts the result with document.As.
func GetAs[T document.Payload](v *document.Value, q string) (T, bool) {
	return document.As[T](Get(v, q))
}

// Has reports whether q selects a value.
func Has(v *document.Value, q string) bool {
	return Get(v, q) != nil
}
