package lexicon

import "context"

// Field is one raw field definition: a type tag plus the constraint keys
// that type recognizes. Constraint keys for other types are simply never
// read; the compiler only consults the ones its type switch names.
type Field struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`

	// string
	Format       string   `json:"format,omitempty"`
	MinGraphemes *int     `json:"minGraphemes,omitempty"`
	MaxGraphemes *int     `json:"maxGraphemes,omitempty"`
	KnownValues  []string `json:"knownValues,omitempty"`

	// string (UTF-8 byte bounds), bytes (decoded length), array (element count)
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// string, integer, boolean
	Enum    []any `json:"enum,omitempty"`
	Const   any   `json:"const,omitempty"`
	Default any   `json:"default,omitempty"`

	// integer (inclusive bounds)
	Minimum *int64 `json:"minimum,omitempty"`
	Maximum *int64 `json:"maximum,omitempty"`

	// array
	Items *Field `json:"items,omitempty"`

	// blob
	Accept  []string `json:"accept,omitempty"`
	MaxSize *int64   `json:"maxSize,omitempty"`

	// ref / union
	Ref    string   `json:"ref,omitempty"`
	Refs   []string `json:"refs,omitempty"`
	Closed bool     `json:"closed,omitempty"`
}

// compileField maps one raw field definition to an executable Schema. Pure;
// refs and unions stay unresolved (NSID, fragment) pairs dereferenced at
// validation time through the catalog.
func compileField(cc *compileContext, path string, f *Field) (Schema, error) {
	if f == nil {
		return nil, cc.errf(path, "field definition is null")
	}
	switch f.Type {
	case "string":
		return compileString(cc, path, f)
	case "integer":
		return compileInteger(cc, path, f)
	case "boolean":
		return compileBoolean(cc, path, f)
	case "array":
		return compileArray(cc, path, f)
	case "bytes":
		return bytesSchema{minLength: f.MinLength, maxLength: f.MaxLength}, nil
	case "blob":
		return compileBlob(cc, path, f)
	case "cid-link":
		return cidLinkSchema{}, nil
	case "ref":
		return compileRef(cc, path, f.Ref)
	case "union":
		return compileUnion(cc, path, f)
	case "unknown":
		return unknownSchema{}, nil
	default:
		return nil, cc.errf(path, "unrecognized field type %q", f.Type)
	}
}

func compileArray(cc *compileContext, path string, f *Field) (Schema, error) {
	if f.Items == nil {
		return nil, cc.errf(path, "array is missing items")
	}
	item, err := compileField(cc, path+"/items", f.Items)
	if err != nil {
		return nil, err
	}
	return arraySchema{item: item, minLength: f.MinLength, maxLength: f.MaxLength}, nil
}

// unknownSchema accepts any well-formed value with no shape constraint.
type unknownSchema struct{}

func (unknownSchema) Parse(ctx context.Context, v any) (any, error) {
	return v, nil
}

func (unknownSchema) Validate(ctx context.Context, v any) error {
	return nil
}
