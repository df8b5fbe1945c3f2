// Package lexicon compiles AT Protocol Lexicon documents (the JSON IDL
// describing records, queries, procedures and subscriptions) into executable
// schemas, and validates arbitrary decoded-JSON values against them.
//
// Compilation is a two-phase pipeline: ParseDocument turns JSON bytes into a
// Document, and a Catalog compiles each Document into an immutable Bundle of
// per-def schemas. Cross-document ref and union fields stay unresolved until
// validation time, so documents may reference each other cyclically and load
// in any order.
//
// Validation failures are atkit.Issues; a ref pointing at an unregistered
// lexicon is a *ReferenceError (a deployment problem, not bad input); a
// malformed document is a *CompileError and never produces a partial Bundle.
package lexicon

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"
)

// Schema is a compiled, executable Lexicon type.
type Schema interface {
	// Parse validates v (a decoded-JSON value tree) and returns the
	// normalized form: defaults applied, $bytes payloads decoded to raw
	// bytes, references dereferenced and validated. Object walks fail fast,
	// reporting the first failing property in declaration order.
	Parse(ctx context.Context, v any) (any, error)

	// Validate checks v without returning the normalized value.
	Validate(ctx context.Context, v any) error
}

// decodeNumber decodes JSON with UseNumber so integers survive as
// json.Number. Custom UnmarshalJSON methods break the outer decoder's
// number mode, so every level of the document model decodes through this.
func decodeNumber(b []byte, v any) error {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}
