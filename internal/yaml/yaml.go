// Package yaml converts documents to and from YAML.
//
// Objects are written in the order Object.All yields them, so the YAML key
// order matches the JSON rendering of the same document.
package yaml

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jdoc/internal/document"
)

var (
	ErrInvalidDocument = errors.New("yaml: invalid document")
	ErrUnsupported     = errors.New("yaml: unsupported value")
)

// Encode renders v as YAML.
func Encode(v *document.Value) ([]byte, error) {
	switch v.Kind() {
	case document.KindUnset:
		return nil, fmt.Errorf("%w: no value", ErrInvalidDocument)
	case document.KindError:
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, v.Err())
	}

	payload, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return payload, nil
}

func toYAML(v *document.Value) any {
	switch v.Kind() {
	case document.KindObject:
		obj, _ := v.Object()
		items := make(yaml.MapSlice, 0, obj.Len())
		for k, item := range obj.All() {
			items = append(items, yaml.MapItem{Key: k, Value: toYAML(item)})
		}
		return items
	case document.KindArray:
		arr, _ := v.Array()
		items := make([]any, 0, arr.Len())
		for i := range arr.Len() {
			items = append(items, toYAML(arr.Get(i)))
		}
		return items
	default:
		return v.Interface()
	}
}

// Decode parses YAML src and builds the equivalent tree in d, replacing its
// root. Mapping keys must be scalars; they are rendered with fmt when they
// are not strings.
func Decode(d *document.Document, src []byte) (*document.Value, error) {
	var data any
	if err := yaml.UnmarshalWithOptions(src, &data, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	d.Reset()
	root, err := fromYAML(d, data)
	if err != nil {
		return nil, err
	}
	d.SetRoot(root)
	return d.Root(), nil
}

func fromYAML(d *document.Document, data any) (document.Value, error) {
	switch x := data.(type) {
	case nil:
		return document.NewNull(), nil
	case bool:
		return document.NewBool(x), nil
	case string:
		return d.String(x)
	case int:
		return document.NewInt64(int64(x)), nil
	case int64:
		return document.NewInt64(x), nil
	case uint64:
		return document.NewUint64(x), nil
	case float32:
		return document.NewFloat64(float64(x)), nil
	case float64:
		return document.NewFloat64(x), nil
	case yaml.MapSlice:
		return objectFromYAML(d, x)
	case map[string]any:
		items := make(yaml.MapSlice, 0, len(x))
		for k, item := range x {
			items = append(items, yaml.MapItem{Key: k, Value: item})
		}
		return objectFromYAML(d, items)
	case []any:
		out, err := d.NewArray(len(x))
		if err != nil {
			return document.Value{}, err
		}
		arr, _ := out.Array()
		for _, item := range x {
			v, err := fromYAML(d, item)
			if err != nil {
				return document.Value{}, err
			}
			if err := arr.Push(v); err != nil {
				return document.Value{}, err
			}
		}
		return out, nil
	default:
		return document.Value{}, fmt.Errorf("%w: %T", ErrUnsupported, data)
	}
}

func objectFromYAML(d *document.Document, items yaml.MapSlice) (document.Value, error) {
	out, err := d.NewObject(len(items))
	if err != nil {
		return document.Value{}, err
	}
	obj, _ := out.Object()
	for _, item := range items {
		v, err := fromYAML(d, item.Value)
		if err != nil {
			return document.Value{}, err
		}
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		if err := obj.Set(key, v); err != nil {
			return document.Value{}, err
		}
	}
	return out, nil
}
