package lexicon

import (
	"fmt"
	"sort"

	j "github.com/goccy/go-json"

	"github.com/cometsh/atkit"
)

// FieldInfo describes one field of a generated value type.
type FieldInfo struct {
	Name       string
	Required   bool
	Nullable   bool
	Default    any
	HasDefault bool
	Schema     Schema
}

// Type is the generated value-type descriptor for an object-shaped def: the
// ordered field list, the enforced-required subset, and per-field defaults.
// The synthetic $type property of records is not listed; Encode injects the
// brand itself.
type Type struct {
	canonical string // record brand; "" for plain objects
	fields    []FieldInfo
}

// Canonical returns the record brand ("app.bsky.feed.post"), or "" for
// unbranded objects.
func (t *Type) Canonical() string {
	return t.canonical
}

// Fields returns the ordered field descriptors.
func (t *Type) Fields() []FieldInfo {
	return t.fields
}

// Field looks a field up by name.
func (t *Type) Field(name string) (FieldInfo, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// NewValue returns an empty value of this type. Fields with declared
// defaults are pre-populated and flagged PresenceDefaultApplied.
func (t *Type) NewValue() *Value {
	v := &Value{
		t:        t,
		data:     make(map[string]any),
		presence: make(atkit.PresenceMap),
	}
	for _, f := range t.fields {
		if f.HasDefault {
			v.data[f.Name] = f.Default
			v.presence["/"+f.Name] = atkit.PresenceDefaultApplied
		}
	}
	return v
}

// Value is an instance of a generated value type, carrying presence
// metadata so encoding can distinguish "legitimately absent" from "present
// but null".
type Value struct {
	t        *Type
	data     map[string]any
	presence atkit.PresenceMap
}

// Type returns the value's descriptor.
func (v *Value) Type() *Type {
	return v.t
}

// Set assigns a declared field. Nested values may be raw decoded-JSON
// trees, []byte for bytes fields, or *Value for object-typed fields.
func (v *Value) Set(name string, val any) error {
	if _, ok := v.t.Field(name); !ok {
		return fmt.Errorf("no field %q in type %q", name, v.t.canonical)
	}
	v.data[name] = val
	v.presence["/"+name] = atkit.PresenceSeen
	return nil
}

// SetNull marks a nullable field as explicitly null. Explicit null is
// preserved by Encode; it is not the same as leaving the field unset.
func (v *Value) SetNull(name string) error {
	f, ok := v.t.Field(name)
	if !ok {
		return fmt.Errorf("no field %q in type %q", name, v.t.canonical)
	}
	if !f.Nullable {
		return fmt.Errorf("field %q is not nullable", name)
	}
	v.data[name] = nil
	v.presence["/"+name] = atkit.PresenceSeen | atkit.PresenceWasNull
	return nil
}

// Unset clears a field back to absent.
func (v *Value) Unset(name string) {
	delete(v.data, name)
	delete(v.presence, "/"+name)
}

// Get returns a field's current value and whether it is set (defaults
// count as set).
func (v *Value) Get(name string) (any, bool) {
	val, ok := v.data[name]
	return val, ok
}

// Presence returns a copy of the per-field presence flags.
func (v *Value) Presence() atkit.PresenceMap {
	return atkit.MergePresence(v.presence, nil)
}

// Encode serializes the value to a JSON-compatible map, applying the
// omission rule: every required field and every nullable field is included
// (nullable-but-unset serializes as explicit null); a field is omitted only
// when it is simultaneously optional and unset. Records are branded with
// their $type.
func (v *Value) Encode() (map[string]any, error) {
	out := make(map[string]any, len(v.data)+1)
	if v.t.canonical != "" {
		out["$type"] = v.t.canonical
	}
	var iss atkit.Issues
	for _, f := range v.t.fields {
		val, set := v.data[f.Name]
		if !set {
			switch {
			case f.Required:
				iss = atkit.AppendIssues(iss, atkit.Issue{Path: "/" + f.Name, Code: atkit.CodeRequired, Message: "required field is unset"})
			case f.Nullable:
				out[f.Name] = nil
			}
			continue
		}
		if val == nil {
			out[f.Name] = nil
			continue
		}
		enc, err := encodeAny(f.Schema, val)
		if err != nil {
			return nil, atkit.RebaseIssues("/"+f.Name, err)
		}
		out[f.Name] = enc
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// MarshalJSON renders the encoded form with deterministic key order.
func (v *Value) MarshalJSON() ([]byte, error) {
	m, err := v.Encode()
	if err != nil {
		return nil, err
	}
	return marshalSorted(m)
}

// valueEncoder is implemented by schemas whose normalized form differs from
// the wire form (bytes, arrays of such, nested objects).
type valueEncoder interface {
	encodeValue(v any) (any, error)
}

func encodeAny(s Schema, v any) (any, error) {
	if nested, ok := v.(*Value); ok {
		return nested.Encode()
	}
	if enc, ok := s.(valueEncoder); ok {
		return enc.encodeValue(v)
	}
	return v, nil
}

func marshalSorted(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := j.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}
