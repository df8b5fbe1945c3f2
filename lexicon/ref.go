package lexicon

import (
	"context"

	"github.com/cometsh/atkit"
	"github.com/cometsh/atkit/syntax"
)

// refSchema is a lazy reference to another compiled schema, stored as a
// canonical "nsid#fragment" string and dereferenced through the catalog at
// validation time. This tolerates forward and cyclic references across
// documents: the target need not exist until a value is actually validated
// against it.
type refSchema struct {
	cat Catalog
	ref string // canonical form per syntax.CanonicalRef
}

func compileRef(cc *compileContext, path string, raw string) (Schema, error) {
	if raw == "" {
		return nil, cc.errf(path, "ref is empty")
	}
	canonical, err := cc.canonicalRef(raw)
	if err != nil {
		return nil, cc.errf(path, "invalid ref %q", raw)
	}
	return refSchema{cat: cc.cat, ref: canonical}, nil
}

func (s refSchema) Parse(ctx context.Context, v any) (any, error) {
	target, err := s.cat.Resolve(s.ref)
	if err != nil {
		return nil, err
	}
	return target.Parse(ctx, v)
}

func (s refSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

// unionSchema is an ordered list of lazy references. A value validates if it
// matches any alternative (first match wins). A $type brand on the value
// short-circuits dispatch to the matching alternative; unlisted brands are
// rejected by closed unions and passed through untouched by open ones.
type unionSchema struct {
	cat    Catalog
	refs   []string // canonical forms, declaration order
	closed bool
}

func compileUnion(cc *compileContext, path string, f *Field) (Schema, error) {
	if len(f.Refs) == 0 && f.Closed {
		return nil, cc.errf(path, "closed union must list refs")
	}
	u := unionSchema{cat: cc.cat, closed: f.Closed}
	for _, raw := range f.Refs {
		canonical, err := cc.canonicalRef(raw)
		if err != nil {
			return nil, cc.errf(path, "invalid union ref %q", raw)
		}
		u.refs = append(u.refs, canonical)
	}
	return u, nil
}

func (u unionSchema) Parse(ctx context.Context, v any) (any, error) {
	if m, ok := v.(map[string]any); ok {
		if brand, _ := m["$type"].(string); brand != "" {
			for _, ref := range u.refs {
				if ref == brand {
					target, err := u.cat.Resolve(ref)
					if err != nil {
						return nil, err
					}
					return target.Parse(ctx, v)
				}
			}
			if u.closed {
				return nil, atkit.Issues{{Path: "/$type", Code: atkit.CodeDiscriminatorUnknown, Message: "union does not accept " + brand, Params: map[string]any{"refs": u.refs}}}
			}
			// Open unions tolerate variants minted after this Lexicon was
			// published.
			return v, nil
		}
	}
	var last error
	for _, ref := range u.refs {
		target, err := u.cat.Resolve(ref)
		if err != nil {
			return nil, err
		}
		out, err := target.Parse(ctx, v)
		if err == nil {
			return out, nil
		}
		last = err
	}
	return nil, atkit.Issues{{Path: "/", Code: atkit.CodeUnionNoMatch, Message: "value matches no union alternative", Cause: last, Params: map[string]any{"refs": u.refs}}}
}

func (u unionSchema) Validate(ctx context.Context, v any) error {
	_, err := u.Parse(ctx, v)
	return err
}

// compileContext threads the catalog and the document position through
// field compilation for error reporting and bare-fragment resolution.
type compileContext struct {
	cat  Catalog
	nsid syntax.NSID
	def  string
}

func (cc *compileContext) errf(path, format string, args ...any) error {
	loc := cc.def
	if path != "" {
		loc += path
	}
	return compileErrf(string(cc.nsid), loc, format, args...)
}

// canonicalRef resolves a raw ref string to canonical "nsid#fragment" form.
// Bare "#fragment" refs address the current document.
func (cc *compileContext) canonicalRef(raw string) (string, error) {
	if raw != "" && raw[0] == '#' {
		raw = string(cc.nsid) + raw
	}
	n, frag, err := syntax.ParseNSIDRef(raw)
	if err != nil {
		return "", err
	}
	return syntax.CanonicalRef(n, frag), nil
}
