package lexicon

import (
	"bytes"
	"context"
	"fmt"

	j "github.com/goccy/go-json"

	"github.com/cometsh/atkit"
)

// Object is the raw IDL shape shared by object defs, record bodies, and RPC
// parameter blocks (type "params"). Property declaration order is preserved
// from the source JSON so validation can report the first failing property
// in declaration order.
type Object struct {
	Type        string
	Description string
	Required    []string
	Nullable    []string
	Properties  map[string]*Field

	propertyOrder []string
}

// PropertyOrder returns the property names in source declaration order.
func (o *Object) PropertyOrder() []string {
	return o.propertyOrder
}

func (o *Object) UnmarshalJSON(b []byte) error {
	var aux struct {
		Type        string       `json:"type"`
		Description string       `json:"description"`
		Required    []string     `json:"required"`
		Nullable    []string     `json:"nullable"`
		Properties  j.RawMessage `json:"properties"`
	}
	if err := decodeNumber(b, &aux); err != nil {
		return err
	}
	o.Type = aux.Type
	o.Description = aux.Description
	o.Required = aux.Required
	o.Nullable = aux.Nullable
	if aux.Properties == nil {
		o.Properties = map[string]*Field{}
		return nil
	}
	if err := decodeNumber(aux.Properties, &o.Properties); err != nil {
		return err
	}
	order, err := jsonKeyOrder(aux.Properties)
	if err != nil {
		return err
	}
	o.propertyOrder = order
	return nil
}

// jsonKeyOrder walks the tokens of a JSON object literal and returns its
// top-level keys in source order.
func jsonKeyOrder(raw []byte) ([]string, error) {
	dec := j.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(j.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("properties must be an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in properties", tok)
		}
		keys = append(keys, key)
		if err := skipJSONValue(dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return keys, nil
}

func skipJSONValue(dec *j.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(j.Delim)
	if !ok {
		return nil
	}
	switch d {
	case '{':
		for dec.More() {
			if _, err := dec.Token(); err != nil { // key
				return err
			}
			if err := skipJSONValue(dec); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := skipJSONValue(dec); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unexpected delimiter %v", d)
	}
	_, err = dec.Token() // closing delimiter
	return err
}

// ---- compiled object ----

type property struct {
	name       string
	schema     Schema
	required   bool
	nullable   bool
	def        any
	hasDefault bool
}

// objectSchema validates one object-shaped def. Declared properties are
// walked in declaration order and the walk fails fast on the first issue.
// Unknown input keys pass through untouched.
type objectSchema struct {
	props []property
}

// compileObject compiles an object def. brand is the canonical name for
// record defs, which get a synthetic required $type property const-pinned to
// it; "" for plain objects and params blocks.
func compileObject(cc *compileContext, o *Object, brand string) (objectSchema, *Type, error) {
	required := make(map[string]bool, len(o.Required))
	for _, r := range o.Required {
		required[r] = true
	}
	nullable := make(map[string]bool, len(o.Nullable))
	for _, n := range o.Nullable {
		nullable[n] = true
	}
	for name := range required {
		if _, ok := o.Properties[name]; !ok {
			return objectSchema{}, nil, cc.errf("", "required property %q is not declared", name)
		}
	}
	for name := range nullable {
		if _, ok := o.Properties[name]; !ok {
			return objectSchema{}, nil, cc.errf("", "nullable property %q is not declared", name)
		}
	}

	var os objectSchema
	if brand != "" {
		// Records carry their IDL identity as a required const $type so
		// union dispatch can discriminate instances downstream.
		konst := brand
		os.props = append(os.props, property{
			name:     "$type",
			schema:   stringSchema{konst: &konst},
			required: true,
		})
	}

	typ := &Type{canonical: brand}
	for _, name := range o.propertyOrder {
		f := o.Properties[name]
		fs, err := compileField(cc, "/"+name, f)
		if err != nil {
			return objectSchema{}, nil, err
		}
		p := property{
			name:     name,
			schema:   fs,
			required: required[name],
			nullable: nullable[name],
		}
		if f.Default != nil {
			p.def = f.Default
			p.hasDefault = true
		}
		os.props = append(os.props, p)
		typ.fields = append(typ.fields, FieldInfo{
			Name:       name,
			Required:   p.required,
			Nullable:   p.nullable,
			Default:    p.def,
			HasDefault: p.hasDefault,
			Schema:     fs,
		})
	}
	return os, typ, nil
}

func (s objectSchema) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected object"}}
	}
	// Unknown keys pass through untouched.
	out := make(map[string]any, len(src))
	for k, val := range src {
		out[k] = val
	}
	for _, p := range s.props {
		val, exists := src[p.name]
		if !exists {
			if p.hasDefault {
				// Defaults substitute for absent fields only, never for
				// explicit nulls.
				out[p.name] = p.def
				continue
			}
			if p.required {
				return nil, atkit.Issues{{Path: "/" + p.name, Code: atkit.CodeRequired, Message: "required property missing"}}
			}
			continue
		}
		if val == nil {
			if !p.nullable {
				return nil, atkit.Issues{{Path: "/" + p.name, Code: atkit.CodeInvalidType, Message: "property is not nullable"}}
			}
			out[p.name] = nil
			continue
		}
		parsed, err := p.schema.Parse(ctx, val)
		if err != nil {
			if _, ok := atkit.AsIssues(err); !ok {
				return nil, err // ReferenceError and friends propagate as-is
			}
			return nil, atkit.RebaseIssues("/"+p.name, err)
		}
		out[p.name] = parsed
	}
	return out, nil
}

func (s objectSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}
