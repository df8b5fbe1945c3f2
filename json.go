package atkit

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// DecodeValue decodes JSON bytes into the generic value tree
// (map[string]any / []any / string / bool / json.Number / nil) that every
// schema in this module validates against. Numbers are preserved as
// json.Number so 53-bit integers survive the trip.
func DecodeValue(b []byte) (any, error) {
	return DecodeValueReader(bytes.NewReader(b))
}

// DecodeValueReader is DecodeValue over an io.Reader.
func DecodeValueReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "invalid JSON", Cause: err}}
	}
	return v, nil
}

// EncodeValue serializes a generic value tree back to JSON bytes.
func EncodeValue(v any) ([]byte, error) {
	return j.Marshal(v)
}

// EqualValue reports whether two generic value trees are equal under JSON
// semantics. Used for const and enum comparison, where 1 and json.Number("1")
// must compare equal but "1" must not.
func EqualValue(a, b any) bool {
	ab, err := j.Marshal(normalizeNumbers(a))
	if err != nil {
		return false
	}
	bb, err := j.Marshal(normalizeNumbers(b))
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case j.Number:
		return normalizeNumber(string(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeNumbers(e)
		}
		return out
	case float64:
		return normalizeFloat(t)
	case int:
		return int64(t)
	default:
		return v
	}
}

func normalizeNumber(s string) any {
	var n j.Number = j.Number(s)
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return s
}

func normalizeFloat(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}
