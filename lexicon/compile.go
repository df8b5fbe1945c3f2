package lexicon

import (
	"sort"
	"strings"

	"github.com/cometsh/atkit/syntax"
)

// compileDocument turns a parsed document into an immutable Bundle. Defs are
// compiled in sorted name order so failures are deterministic; any failure
// aborts the whole document.
func compileDocument(cat Catalog, doc *Document) (*Bundle, error) {
	nsid := doc.NSID()
	b := &Bundle{
		id:       nsid,
		revision: doc.Revision,
		doc:      doc,
		defs:     make(map[string]*CompiledDef, len(doc.Defs)),
	}
	names := make([]string, 0, len(doc.Defs))
	for name := range doc.Defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, _, err := syntax.ParseNSIDRef(string(nsid) + "#" + name); err != nil {
			return nil, compileErrf(string(nsid), name, "invalid def name")
		}
		cc := &compileContext{cat: cat, nsid: nsid, def: name}
		cd, err := compileDef(cc, name, doc.Defs[name])
		if err != nil {
			return nil, err
		}
		b.defs[name] = cd
	}
	return b, nil
}

func compileDef(cc *compileContext, name string, def *Def) (*CompiledDef, error) {
	canonical := syntax.CanonicalRef(cc.nsid, name)
	cd := &CompiledDef{Name: name, Canonical: canonical}

	switch def.Type {
	case "record":
		cd.Kind = KindRecord
		if err := checkRecordKey(cc, def.Record.Key); err != nil {
			return nil, err
		}
		cd.Key = def.Record.Key
		os, typ, err := compileObject(cc, def.Record.Record, canonical)
		if err != nil {
			return nil, err
		}
		cd.Schema = os
		cd.Type = typ

	case "object":
		cd.Kind = KindObject
		os, typ, err := compileObject(cc, def.Object, "")
		if err != nil {
			return nil, err
		}
		cd.Schema = os
		cd.Type = typ

	case "query", "procedure", "subscription":
		switch def.Type {
		case "query":
			cd.Kind = KindQuery
		case "procedure":
			cd.Kind = KindProcedure
		default:
			cd.Kind = KindSubscription
		}
		rpc := def.RPC
		if rpc.Parameters != nil {
			ps, ptyp, err := compileParams(cc, rpc.Parameters)
			if err != nil {
				return nil, err
			}
			cd.Params = ps
			cd.ParamsType = ptyp
		}
		if rpc.Input != nil {
			if cd.Kind != KindProcedure {
				return nil, cc.errf("/input", "only procedures take an input body")
			}
			s, err := compileBody(cc, "/input", rpc.Input)
			if err != nil {
				return nil, err
			}
			cd.Input = s
			cd.InputEncoding = rpc.Input.Encoding
			// Opaque input: declared encoding, no structured schema.
			cd.RawInput = s == nil
		}
		if rpc.Output != nil {
			if cd.Kind == KindSubscription {
				return nil, cc.errf("/output", "subscriptions emit messages, not outputs")
			}
			s, err := compileBody(cc, "/output", rpc.Output)
			if err != nil {
				return nil, err
			}
			cd.Output = s
			cd.OutputEncoding = rpc.Output.Encoding
		}
		if rpc.Message != nil {
			if cd.Kind != KindSubscription {
				return nil, cc.errf("/message", "only subscriptions carry a message body")
			}
			s, err := compileBody(cc, "/message", rpc.Message)
			if err != nil {
				return nil, err
			}
			cd.Message = s
			cd.MessageEncoding = rpc.Message.Encoding
		}
		cd.Errors = rpc.Errors

	case "token":
		cd.Kind = KindToken
		// A token validates as the exact string of its own canonical name.
		konst := canonical
		cd.Schema = stringSchema{konst: &konst}

	default:
		cd.Kind = KindField
		s, err := compileField(cc, "", def.Field)
		if err != nil {
			return nil, err
		}
		cd.Schema = s
	}
	return cd, nil
}

// checkRecordKey validates the record key constraint at compile time: one of
// the named key schemes, or a fixed literal key.
func checkRecordKey(cc *compileContext, key string) error {
	switch key {
	case "tid", "nsid", "any":
		return nil
	}
	if lit, ok := strings.CutPrefix(key, "literal:"); ok {
		if _, err := syntax.ParseRecordKey(lit); err != nil {
			return cc.errf("/key", "invalid literal record key %q", lit)
		}
		return nil
	}
	return cc.errf("/key", "unrecognized record key type %q", key)
}

// compileParams compiles an RPC parameters block. Parameters travel in a URL
// query string, so only flat primitives and arrays of primitives are legal.
func compileParams(cc *compileContext, o *Object) (Schema, *Type, error) {
	if o.Type != "params" {
		return nil, nil, cc.errf("/parameters", "parameters block must have type params, got %q", o.Type)
	}
	for _, name := range o.PropertyOrder() {
		f := o.Properties[name]
		if f == nil {
			return nil, nil, cc.errf("/parameters/"+name, "parameter is null")
		}
		t := f.Type
		if t == "array" && f.Items != nil {
			t = f.Items.Type
		}
		switch t {
		case "string", "integer", "boolean", "unknown":
		default:
			return nil, nil, cc.errf("/parameters/"+name, "parameter type %q is not a primitive", f.Type)
		}
	}
	os, typ, err := compileObject(cc, o, "")
	if err != nil {
		return nil, nil, err
	}
	return os, typ, nil
}

// compileBody compiles an input/output/message body. A nil result with a nil
// error means the body is opaque: an encoding with no structured schema.
func compileBody(cc *compileContext, path string, b *Body) (Schema, error) {
	if b.Encoding == "" {
		return nil, cc.errf(path, "body is missing its encoding")
	}
	if b.Schema == nil {
		return nil, nil
	}
	sd := b.Schema
	switch {
	case sd.Object != nil:
		os, _, err := compileObject(cc, sd.Object, "")
		if err != nil {
			return nil, err
		}
		return os, nil
	case sd.Field != nil && (sd.Type == "ref" || sd.Type == "union"):
		return compileField(cc, path+"/schema", sd.Field)
	default:
		return nil, cc.errf(path, "body schema must be an object, ref, or union, got %q", sd.Type)
	}
}
