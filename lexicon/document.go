package lexicon

import (
	"errors"

	"github.com/cometsh/atkit/syntax"
)

// Document is one parsed Lexicon IDL unit. Immutable after parsing; the
// compiled Bundle outlives it.
type Document struct {
	Lexicon     int             `json:"lexicon"`
	ID          string          `json:"id"`
	Revision    *int            `json:"revision,omitempty"`
	Description string          `json:"description,omitempty"`
	Defs        map[string]*Def `json:"defs"`
}

// ParseDocument decodes and sanity-checks a Lexicon JSON document. Extra
// top-level keys beyond the fixed set are permitted and ignored; everything
// else is strict: the format version must be 1, the id must be a valid NSID,
// every def type must be recognized. Failures are *CompileError.
func ParseDocument(b []byte) (*Document, error) {
	var doc Document
	if err := decodeNumber(b, &doc); err != nil {
		var ce *CompileError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, &CompileError{Msg: "invalid document JSON", Cause: err}
	}
	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// NSID returns the document id as a parsed NSID. Only call on documents
// produced by ParseDocument.
func (d *Document) NSID() syntax.NSID {
	return syntax.NSID(d.ID)
}

func (d *Document) check() error {
	if d.Lexicon != 1 {
		return compileErrf(d.ID, "", "unsupported lexicon version %d", d.Lexicon)
	}
	if _, err := syntax.ParseNSID(d.ID); err != nil {
		return &CompileError{NSID: d.ID, Msg: "document id is not a valid NSID", Cause: err}
	}
	if d.Revision != nil && *d.Revision < 0 {
		return compileErrf(d.ID, "", "revision must be non-negative, got %d", *d.Revision)
	}
	if d.Defs == nil {
		return compileErrf(d.ID, "", "document has no defs")
	}
	for name, def := range d.Defs {
		if def == nil {
			return compileErrf(d.ID, name, "def is null")
		}
	}
	return nil
}
