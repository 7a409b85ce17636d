package document

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const nestedInput = `[` +
	`{"key1": "value1"},` +
	`{"key2": {"key3": [true, {"key4": false}, null]}},` +
	`{"key5": {}},` +
	`{"key6": []},` +
	`{"key7": ""},` +
	`{"key8": 1e5}` +
	`]`

func TestMarshalIndentation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		indent int
		want   string
	}{
		{
			indent: 0,
			want:   `[{"key1":"value1"},{"key2":{"key3":[true,{"key4":false},null]}},{"key5":{}},{"key6":[]},{"key7":""},{"key8":100000}]`,
		},
		{
			indent: 2,
			want:   "[\n  {\n    \"key1\": \"value1\"\n  },\n  {\n    \"key2\": {\n      \"key3\": [\n        true,\n        {\n          \"key4\": false\n        },\n        null\n      ]\n    }\n  },\n  {\n    \"key5\": {}\n  },\n  {\n    \"key6\": []\n  },\n  {\n    \"key7\": \"\"\n  },\n  {\n    \"key8\": 100000\n  }\n]",
		},
		{
			indent: 4,
			want:   "[\n    {\n        \"key1\": \"value1\"\n    },\n    {\n        \"key2\": {\n            \"key3\": [\n                true,\n                {\n                    \"key4\": false\n                },\n                null\n            ]\n        }\n    },\n    {\n        \"key5\": {}\n    },\n    {\n        \"key6\": []\n    },\n    {\n        \"key7\": \"\"\n    },\n    {\n        \"key8\": 100000\n    }\n]",
		},
	}

	for _, tt := range tests {
		_, v := mustParse(t, nestedInput)

		if got := Size(v, tt.indent); got != len(tt.want) {
			t.Errorf("Size(indent=%d) = %d, want %d", tt.indent, got, len(tt.want))
		}
		if got := ToString(v, tt.indent); got != tt.want {
			t.Errorf("ToString(indent=%d) =\n%s\nwant\n%s", tt.indent, got, tt.want)
		}

		formatted, err := Format([]byte(nestedInput), tt.indent)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if string(formatted) != tt.want {
			t.Errorf("Format(indent=%d) = %s", tt.indent, formatted)
		}
	}
}

func TestMarshalScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: `"value"`, want: `"value"`},
		{input: `-102345`, want: `-102345`},
		{input: `1234567`, want: `1234567`},
		{input: `-112340.00123456789123456000000`, want: `-112340.00123456788`},
		{input: `2.0`, want: `2.0`},
		{input: `0.1`, want: `0.10000000000000001`},
		{input: `1.0e300`, want: `1.0000000000000001e+300`},
		{input: `1.5e-7`, want: `1.4999999999999999e-07`},
		{input: `"a\"b\\c\/d"`, want: `"a\"b\\c/d"`},
		{input: `"\b\f\n\r\t"`, want: `"\b\f\n\r\t"`},
		{input: `"\u0001\u001f\u0000"`, want: `"\u0001\u001f\u0000"`},
		{input: `"é"`, want: `"é"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			_, v := mustParse(t, tt.input)
			for _, indent := range []int{0, 2} {
				got := ToString(v, indent)
				if got != tt.want {
					t.Errorf("ToString(%s, %d) = %s, want %s", tt.input, indent, got, tt.want)
				}
				if Size(v, indent) != len(got) {
					t.Errorf("Size(%s, %d) = %d, want %d", tt.input, indent, Size(v, indent), len(got))
				}
			}
		})
	}
}

func TestMarshalFloatExponentKeepsDecimalPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		f    float64
		want string
	}{
		{f: 1e300, want: "1.0000000000000001e+300"},
		{f: 1e21, want: "1.0e+21"},
		{f: 1e-10, want: "1.0e-10"},
		{f: 100, want: "100.0"},
		{f: -0.5, want: "-0.5"},
		{f: math.Inf(1), want: "null"},
		{f: math.NaN(), want: "null"},
	}

	for _, tt := range tests {
		v := NewFloat64(tt.f)
		got := ToString(&v, 0)
		if got != tt.want {
			t.Errorf("ToString(%v) = %s, want %s", tt.f, got, tt.want)
		}
		if Size(&v, 0) != len(got) {
			t.Errorf("Size(%v) = %d, want %d", tt.f, Size(&v, 0), len(got))
		}
	}
}

func TestSizeMatchesRender(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"[\n  1,\n  2,\n  3,\n  [\n    4,\n    5,\n    [\n      4,\n      5\n    ],\n    6,\n    [\n      7,\n      8\n    ]\n  ]\n]",
		`{"a": {"b": {"c": {"d": [[], {}, [[]], [{}], "x"]}}}, "e": -1.5, "f": 18446744073709551615}`,
		`[{"k\n": "\u0002"}, 1e5, -1e5, 0.000001, true, false, null]`,
		`{}`,
		`[]`,
		nestedInput,
	}

	for _, input := range inputs {
		_, v := mustParse(t, input)
		for _, indent := range []int{0, 1, 2, 4, 8} {
			size := Size(v, indent)
			buf := make([]byte, size+10)
			n, err := Render(buf, v, indent)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if n != size {
				t.Errorf("Render(%q, %d) wrote %d bytes, Size = %d", input, indent, n, size)
			}
			if string(buf[n:]) != string(make([]byte, 10)) {
				t.Errorf("Render(%q, %d) wrote past its size", input, indent)
			}
		}
	}

	_, v := mustParse(t, inputs[0])
	if got := Size(v, 2); got != 106 {
		t.Errorf("Size(nested array, 2) = %d, want 106", got)
	}
	if got := ToString(v, 2); got != inputs[0] {
		t.Errorf("nested array did not render back to its input:\n%s", got)
	}
}

func TestRenderShortBuffer(t *testing.T) {
	t.Parallel()

	_, v := mustParse(t, `[1, 2, 3]`)
	buf := make([]byte, Size(v, 0)-1)
	if _, err := Render(buf, v, 0); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("Render() error = %v, want %v", err, ErrShortBuffer)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		nestedInput,
		`{"users": [{"name": "ana", "tags": ["a", "b"], "score": 9.75}, {"name": "bö", "score": -3}], "ok": true}`,
		`[[[[[[[[[[1]]]]]]]]]]`,
		`{"a": {"b": {"c": {"d": {"e": null}}}}}`,
		`["😀", "\"quoted\"", "tab\there", "\u0000"]`,
		`[18446744073709551615, -9223372036854775808, 1.7976931348623157e308, 5e-324, 0.0, -0.0]`,
	}

	for _, input := range inputs {
		_, first := mustParse(t, input)
		for _, indent := range []int{0, 2, 4} {
			text := ToString(first, indent)
			_, second := mustParse(t, text)
			if !Equal(first, second) {
				t.Errorf("round trip of %s at indent %d changed the tree:\n%s", input, indent, text)
			}
			if again := ToString(second, indent); again != text {
				t.Errorf("second render differs:\n%s\n%s", text, again)
			}
		}
	}
}

func TestMarshalSkipsTombstones(t *testing.T) {
	t.Parallel()

	d := New()
	v, _ := d.NewObject(0)
	o, _ := v.Object()
	for _, k := range []string{"a", "b", "c", "d"} {
		_ = o.Set(k, NewBool(true))
	}
	o.Delete("a")
	o.Delete("d")

	for _, indent := range []int{0, 2} {
		got := ToString(&v, indent)
		if strings.Contains(got, `"a"`) || strings.Contains(got, `"d"`) {
			t.Errorf("deleted key rendered: %s", got)
		}
		if strings.Contains(got, ",}") || strings.Contains(got, ",\n}") || strings.HasPrefix(got, "{,") {
			t.Errorf("dangling separator: %q", got)
		}
		if Size(&v, indent) != len(got) {
			t.Errorf("Size = %d, len = %d", Size(&v, indent), len(got))
		}
	}

	o.Delete("b")
	o.Delete("c")
	if got := ToString(&v, 2); got != "{}" {
		t.Errorf("all-deleted object = %q, want {}", got)
	}
}

func TestMarshalHolesAndErrors(t *testing.T) {
	t.Parallel()

	d := New()
	v, _ := d.NewArray(0)
	a, _ := v.Array()
	_ = a.Set(2, NewInt64(1))
	_ = a.Push(NewError(ErrToken))

	if got := ToString(&v, 0); got != "[null,null,1,null]" {
		t.Errorf("ToString() = %s, want [null,null,1,null]", got)
	}
	if got := ToString(nil, 0); got != "null" {
		t.Errorf("ToString(nil) = %s, want null", got)
	}
}

func TestBuildAndMarshal(t *testing.T) {
	t.Parallel()

	d := New()
	root, _ := d.NewObject(0)
	obj, _ := root.Object()

	list, _ := d.NewArray(0)
	arr, _ := list.Array()
	_ = arr.PushString("x")
	_ = arr.Push(NewFloat64(1.5))
	_ = obj.Set("list", list)

	d.SetRoot(root)
	if got := ToString(d.Root(), 0); got != `{"list":["x",1.5]}` {
		t.Errorf("ToString() = %s", got)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if _, err := Format([]byte(`{"a" 1}`), 2); !errors.Is(err, ErrMissingColon) {
		t.Errorf("Format() error = %v, want %v", err, ErrMissingColon)
	}
}
