package lexicon

import (
	"context"
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/rivo/uniseg"

	"github.com/cometsh/atkit"
)

// ---- string ----

type stringSchema struct {
	format       string
	minLength    *int // UTF-8 byte bounds
	maxLength    *int
	minGraphemes *int // user-perceived character bounds
	maxGraphemes *int
	enum         []string
	konst        *string
	// knownValues is advisory in the Lexicon spec: values outside the list
	// still validate.
	knownValues []string
}

func compileString(cc *compileContext, path string, f *Field) (Schema, error) {
	s := stringSchema{
		format:       f.Format,
		minLength:    f.MinLength,
		maxLength:    f.MaxLength,
		minGraphemes: f.MinGraphemes,
		maxGraphemes: f.MaxGraphemes,
		knownValues:  f.KnownValues,
	}
	if f.Format != "" {
		if _, ok := formatValidator(f.Format); !ok {
			return nil, cc.errf(path, "unrecognized string format %q", f.Format)
		}
	}
	// const takes priority over enum; either one degenerates the schema to
	// an exact-match / membership check.
	if f.Const != nil {
		ks, ok := f.Const.(string)
		if !ok {
			return nil, cc.errf(path, "string const must be a string")
		}
		s.konst = &ks
		return s, nil
	}
	if f.Enum != nil {
		for _, e := range f.Enum {
			es, ok := e.(string)
			if !ok {
				return nil, cc.errf(path, "string enum values must be strings")
			}
			s.enum = append(s.enum, es)
		}
	}
	return s, nil
}

func (s stringSchema) Parse(ctx context.Context, v any) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected string"}}
	}
	if s.konst != nil {
		if str != *s.konst {
			return nil, atkit.Issues{{Path: "/", Code: atkit.CodeConstMismatch, Message: "value does not match const", Params: map[string]any{"expected": *s.konst}}}
		}
		return str, nil
	}
	if s.enum != nil {
		for _, e := range s.enum {
			if str == e {
				return str, nil
			}
		}
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidEnum, Message: "value not in enum", Params: map[string]any{"enum": s.enum}}}
	}
	// Check order: format, then byte-length bounds, then grapheme bounds.
	if s.format != "" {
		check, _ := formatValidator(s.format)
		if err := check(str); err != nil {
			return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidFormat, Message: "invalid " + s.format, Hint: s.format, Cause: err}}
		}
	}
	if s.minLength != nil && len(str) < *s.minLength {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooShort, Message: "string is too short", Params: map[string]any{"min": *s.minLength, "got": len(str)}}}
	}
	if s.maxLength != nil && len(str) > *s.maxLength {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooLong, Message: "string is too long", Params: map[string]any{"max": *s.maxLength, "got": len(str)}}}
	}
	if s.minGraphemes != nil || s.maxGraphemes != nil {
		n := uniseg.GraphemeClusterCount(str)
		if s.minGraphemes != nil && n < *s.minGraphemes {
			return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooShort, Message: "too few graphemes", Params: map[string]any{"min": *s.minGraphemes, "got": n}}}
		}
		if s.maxGraphemes != nil && n > *s.maxGraphemes {
			return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooLong, Message: "too many graphemes", Params: map[string]any{"max": *s.maxGraphemes, "got": n}}}
		}
	}
	return str, nil
}

func (s stringSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

// ---- integer ----

type intSchema struct {
	minimum *int64
	maximum *int64
	enum    []int64
	konst   *int64
}

func compileInteger(cc *compileContext, path string, f *Field) (Schema, error) {
	s := intSchema{minimum: f.Minimum, maximum: f.Maximum}
	if f.Const != nil {
		k, err := toInt64(f.Const)
		if err != nil {
			return nil, cc.errf(path, "integer const must be an integer")
		}
		s.konst = &k
		return s, nil
	}
	if f.Enum != nil {
		for _, e := range f.Enum {
			n, err := toInt64(e)
			if err != nil {
				return nil, cc.errf(path, "integer enum values must be integers")
			}
			s.enum = append(s.enum, n)
		}
	}
	return s, nil
}

func (s intSchema) Parse(ctx context.Context, v any) (any, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected integer"}}
	}
	if s.konst != nil {
		if n != *s.konst {
			return nil, atkit.Issues{{Path: "/", Code: atkit.CodeConstMismatch, Message: "value does not match const", Params: map[string]any{"expected": *s.konst}}}
		}
		return n, nil
	}
	if s.enum != nil {
		for _, e := range s.enum {
			if n == e {
				return n, nil
			}
		}
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidEnum, Message: "value not in enum", Params: map[string]any{"enum": s.enum}}}
	}
	if s.minimum != nil && n < *s.minimum {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooSmall, Message: "integer below minimum", Params: map[string]any{"min": *s.minimum, "got": n}}}
	}
	if s.maximum != nil && n > *s.maximum {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooBig, Message: "integer above maximum", Params: map[string]any{"max": *s.maximum, "got": n}}}
	}
	return n, nil
}

func (s intSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

// toInt64 accepts the integer representations a decoded-JSON tree or Go
// caller may hold: json.Number, int, int64, or an integral float64.
func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case j.Number:
		return t.Int64()
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if t != float64(int64(t)) {
			return 0, fmt.Errorf("not an integer: %v", t)
		}
		return int64(t), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", v)
	}
}

// ---- boolean ----

type boolSchema struct {
	konst *bool
}

func compileBoolean(cc *compileContext, path string, f *Field) (Schema, error) {
	s := boolSchema{}
	if f.Const != nil {
		k, ok := f.Const.(bool)
		if !ok {
			return nil, cc.errf(path, "boolean const must be a boolean")
		}
		s.konst = &k
	}
	return s, nil
}

func (s boolSchema) Parse(ctx context.Context, v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected boolean"}}
	}
	if s.konst != nil && b != *s.konst {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeConstMismatch, Message: "value does not match const", Params: map[string]any{"expected": *s.konst}}}
	}
	return b, nil
}

func (s boolSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

// ---- array ----

type arraySchema struct {
	item      Schema
	minLength *int
	maxLength *int
}

func (s arraySchema) Parse(ctx context.Context, v any) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected array"}}
	}
	if s.minLength != nil && len(arr) < *s.minLength {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooShort, Message: "array is too short", Params: map[string]any{"min": *s.minLength, "got": len(arr)}}}
	}
	if s.maxLength != nil && len(arr) > *s.maxLength {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeTooLong, Message: "array is too long", Params: map[string]any{"max": *s.maxLength, "got": len(arr)}}}
	}
	out := make([]any, len(arr))
	for i, el := range arr {
		// Fail fast on the first invalid element.
		parsed, err := s.item.Parse(ctx, el)
		if err != nil {
			if _, ok := atkit.AsIssues(err); !ok {
				return nil, err // ReferenceError and friends propagate as-is
			}
			return nil, atkit.RebaseIssues(fmt.Sprintf("/%d", i), err)
		}
		out[i] = parsed
	}
	return out, nil
}

func (s arraySchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s arraySchema) encodeValue(v any) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return v, nil
	}
	out := make([]any, len(arr))
	for i, el := range arr {
		ev, err := encodeAny(s.item, el)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}
