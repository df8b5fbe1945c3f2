package lexicon

import (
	"sort"

	"github.com/cometsh/atkit/syntax"
)

// DefKind classifies a compiled definition.
type DefKind string

const (
	KindRecord       DefKind = "record"
	KindQuery        DefKind = "query"
	KindProcedure    DefKind = "procedure"
	KindSubscription DefKind = "subscription"
	KindObject       DefKind = "object"
	KindToken        DefKind = "token"
	KindField        DefKind = "field"
)

// CompiledDef is one named definition after compilation. Which fields are
// populated depends on Kind: records and objects carry Schema and Type,
// RPC kinds carry Params and their bodies, tokens and named field defs
// carry Schema only.
type CompiledDef struct {
	Name      string
	Canonical string
	Kind      DefKind

	Schema Schema
	Type   *Type

	// record
	Key string

	// query / procedure / subscription
	Params          Schema
	ParamsType      *Type
	Input           Schema
	Output          Schema
	Message         Schema
	InputEncoding   string
	OutputEncoding  string
	MessageEncoding string
	RawInput        bool
	Errors          []RPCError
}

// Bundle is the compiled form of one Lexicon document: an immutable map of
// def name to compiled schema. Bundles never change after compilation, so
// they are safe for unlocked concurrent use.
type Bundle struct {
	id       syntax.NSID
	revision *int
	doc      *Document
	defs     map[string]*CompiledDef
}

// ID returns the document NSID.
func (b *Bundle) ID() syntax.NSID {
	return b.id
}

// Revision returns the optional document revision.
func (b *Bundle) Revision() *int {
	return b.revision
}

// Document returns the source document the bundle was compiled from.
func (b *Bundle) Document() *Document {
	return b.doc
}

// Def looks a compiled definition up by name.
func (b *Bundle) Def(name string) (*CompiledDef, bool) {
	d, ok := b.defs[name]
	return d, ok
}

// DefNames returns the definition names in sorted order.
func (b *Bundle) DefNames() []string {
	names := make([]string, 0, len(b.defs))
	for name := range b.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the referenceable schema for a fragment name. RPC defs
// have no referenceable schema and report false.
func (b *Bundle) Schema(fragment string) (Schema, bool) {
	d, ok := b.defs[fragment]
	if !ok || d.Schema == nil {
		return nil, false
	}
	return d.Schema, true
}

// Encoder returns the value-type descriptor for an object-shaped def, for
// constructing and encoding instances with Type.NewValue.
func (b *Bundle) Encoder(name string) (*Type, bool) {
	d, ok := b.defs[name]
	if !ok || d.Type == nil {
		return nil, false
	}
	return d.Type, true
}
