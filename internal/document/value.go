package document

import (
	"fmt"
	"math"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	// KindUnset marks a slot that was never written, such as an array hole.
	KindUnset Kind = iota
	KindError
	KindString
	KindFloat64
	KindInt64
	KindUint64
	KindArray
	KindObject
	KindNull
	KindBool
)

var kindNames = [...]string{
	KindUnset:   "unset",
	KindError:   "error",
	KindString:  "string",
	KindFloat64: "float64",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindArray:   "array",
	KindObject:  "object",
	KindNull:    "null",
	KindBool:    "bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a node of a document tree. Only the payload selected by its kind
// is ever read: numbers, booleans and error codes share bits, strings use
// str, containers use arr or obj.
type Value struct {
	kind Kind
	bits uint64
	str  []byte
	arr  *Array
	obj  *Object
}

func NewInt64(n int64) Value     { return Value{kind: KindInt64, bits: uint64(n)} }
func NewUint64(n uint64) Value   { return Value{kind: KindUint64, bits: n} }
func NewFloat64(f float64) Value { return Value{kind: KindFloat64, bits: math.Float64bits(f)} }
func NewNull() Value             { return Value{kind: KindNull} }

func NewBool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}
	return v
}

// NewError returns an Error-kind value carrying code.
func NewError(code ErrorCode) Value {
	return Value{kind: KindError, bits: uint64(code)}
}

// Kind reports the kind of v. A nil value is unset.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindUnset
	}
	return v.kind
}

// Err returns the parse error carried by an Error-kind value, or nil.
func (v *Value) Err() error {
	if v.Kind() != KindError {
		return nil
	}
	return ErrorCode(v.bits)
}

// Code returns the error code of an Error-kind value, or ErrNone.
func (v *Value) Code() ErrorCode {
	if v.Kind() != KindError {
		return ErrNone
	}
	return ErrorCode(v.bits)
}

// ErrorMessage returns the message for an Error-kind value and "" otherwise.
func (v *Value) ErrorMessage() string {
	return v.Code().Message()
}

// Text returns the string payload.
func (v *Value) Text() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return string(v.str), true
}

// Bytes returns the string payload without copying. The slice is owned by
// the document arena and must not be modified or retained past Reset.
func (v *Value) Bytes() ([]byte, bool) {
	if v.Kind() != KindString {
		return nil, false
	}
	return v.str, true
}

func (v *Value) Int64() (int64, bool) {
	if v.Kind() != KindInt64 {
		return 0, false
	}
	return int64(v.bits), true
}

func (v *Value) Uint64() (uint64, bool) {
	if v.Kind() != KindUint64 {
		return 0, false
	}
	return v.bits, true
}

func (v *Value) Float64() (float64, bool) {
	if v.Kind() != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

func (v *Value) Bool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.bits != 0, true
}

func (v *Value) Array() (*Array, bool) {
	if v.Kind() != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v *Value) Object() (*Object, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsFloat64 converts any numeric kind to float64.
func (v *Value) AsFloat64() (float64, bool) {
	switch v.Kind() {
	case KindFloat64:
		return math.Float64frombits(v.bits), true
	case KindInt64:
		return float64(int64(v.bits)), true
	case KindUint64:
		return float64(v.bits), true
	}
	return 0, false
}

// AsInt64 converts any numeric kind to int64 when the value is in range.
// Floats are truncated toward zero.
func (v *Value) AsInt64() (int64, bool) {
	switch v.Kind() {
	case KindInt64:
		return int64(v.bits), true
	case KindUint64:
		if v.bits > math.MaxInt64 {
			return 0, false
		}
		return int64(v.bits), true
	case KindFloat64:
		f := math.Float64frombits(v.bits)
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// AsUint64 converts any numeric kind to uint64 when the value is in range.
// Floats are truncated toward zero.
func (v *Value) AsUint64() (uint64, bool) {
	switch v.Kind() {
	case KindUint64:
		return v.bits, true
	case KindInt64:
		if int64(v.bits) < 0 {
			return 0, false
		}
		return v.bits, true
	case KindFloat64:
		f := math.Float64frombits(v.bits)
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
	return 0, false
}

// SetInt64 replaces v with an Int64 value. Containers previously held by v
// stay in the arena until the document is reset.
func (v *Value) SetInt64(n int64)     { *v = NewInt64(n) }
func (v *Value) SetUint64(n uint64)   { *v = NewUint64(n) }
func (v *Value) SetFloat64(f float64) { *v = NewFloat64(f) }
func (v *Value) SetBool(b bool)       { *v = NewBool(b) }
func (v *Value) SetNull()             { *v = NewNull() }

// Payload lists the Go types a Value can be read as with As.
type Payload interface {
	string | []byte | float64 | int64 | uint64 | bool | *Array | *Object
}

// As reads v as T. Numeric targets convert between numeric kinds with range
// checks; every other target requires the exact kind.
func As[T Payload](v *Value) (T, bool) {
	var out T
	ok := false
	switch p := any(&out).(type) {
	case *string:
		*p, ok = v.Text()
	case *[]byte:
		*p, ok = v.Bytes()
	case *float64:
		*p, ok = v.AsFloat64()
	case *int64:
		*p, ok = v.AsInt64()
	case *uint64:
		*p, ok = v.AsUint64()
	case *bool:
		*p, ok = v.Bool()
	case **Array:
		*p, ok = v.Array()
	case **Object:
		*p, ok = v.Object()
	}
	return out, ok
}

// Interface converts v into plain Go values: map[string]any, []any, string,
// float64, int64, uint64, bool or nil. Unset and error values become nil.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindString:
		return string(v.str)
	case KindFloat64:
		return math.Float64frombits(v.bits)
	case KindInt64:
		return int64(v.bits)
	case KindUint64:
		return v.bits
	case KindBool:
		return v.bits != 0
	case KindArray:
		out := make([]any, v.arr.Len())
		for i := range out {
			out[i] = v.arr.Get(i).Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for k, item := range v.obj.All() {
			out[k] = item.Interface()
		}
		return out
	}
	return nil
}

// Equal reports whether a and b are structurally equal. Integers compare by
// numeric value across Int64 and Uint64; object comparison ignores order.
func Equal(a, b *Value) bool {
	ka, kb := a.Kind(), b.Kind()
	if isInteger(ka) && isInteger(kb) {
		return integersEqual(a, b)
	}
	if ka != kb {
		return false
	}

	switch ka {
	case KindUnset, KindNull:
		return true
	case KindError, KindBool:
		return a.bits == b.bits
	case KindFloat64:
		return math.Float64frombits(a.bits) == math.Float64frombits(b.bits)
	case KindString:
		return string(a.str) == string(b.str)
	case KindArray:
		if a.arr.Len() != b.arr.Len() {
			return false
		}
		for i := range a.arr.Len() {
			if !Equal(a.arr.Get(i), b.arr.Get(i)) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for k, item := range a.obj.All() {
			other := b.obj.Get(k)
			if other == nil || !Equal(item, other) {
				return false
			}
		}
		return true
	}
	return false
}

func isInteger(k Kind) bool {
	return k == KindInt64 || k == KindUint64
}

func integersEqual(a, b *Value) bool {
	if a.kind == b.kind {
		return a.bits == b.bits
	}
	if a.kind == KindInt64 {
		a, b = b, a
	}
	// a is Uint64, b is Int64.
	return int64(b.bits) >= 0 && a.bits == b.bits
}
