package document

import (
	"fmt"
	"maps"
	"slices"
)

// FromInterface builds a value in d from plain Go data, the inverse of
// Value.Interface. Map keys are inserted in sorted order.
func (d *Document) FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case string:
		return d.String(t)
	case []byte:
		return d.String(string(t))
	case int:
		return NewInt64(int64(t)), nil
	case int32:
		return NewInt64(int64(t)), nil
	case int64:
		return NewInt64(t), nil
	case uint:
		return NewUint64(uint64(t)), nil
	case uint32:
		return NewUint64(uint64(t)), nil
	case uint64:
		return NewUint64(t), nil
	case float32:
		return NewFloat64(float64(t)), nil
	case float64:
		return NewFloat64(t), nil
	case []any:
		out, err := d.NewArray(len(t))
		if err != nil {
			return Value{}, err
		}
		for _, item := range t {
			v, err := d.FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			if err := out.arr.Push(v); err != nil {
				return Value{}, err
			}
		}
		return out, nil
	case map[string]any:
		out, err := d.NewObject(2 * len(t))
		if err != nil {
			return Value{}, err
		}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			v, err := d.FromInterface(t[k])
			if err != nil {
				return Value{}, err
			}
			if err := out.obj.Set(k, v); err != nil {
				return Value{}, err
			}
		}
		return out, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, x)
	}
}
