package lexicon

import (
	"strconv"

	j "github.com/goccy/go-json"
)

// Def is one definition inside a Lexicon document: a tagged variant over the
// closed set of def shapes. Exactly one of the shape pointers below is
// non-nil, selected by Type.
type Def struct {
	Type        string
	Description string

	Record *RecordDef // type == "record"
	RPC    *RPCDef    // type == "query" | "procedure" | "subscription"
	Object *Object    // type == "object"
	Field  *Field     // primitive/composite field types usable as named defs
	// "token" carries no shape beyond its own name.
}

// RecordDef wraps an object and adds the record key constraint.
type RecordDef struct {
	Key    string  `json:"key"`
	Record *Object `json:"record"`
}

// RPCDef is the shared shape of query, procedure and subscription defs.
// Queries and procedures carry input/output bodies; subscriptions carry a
// message body instead.
type RPCDef struct {
	Parameters *Object    `json:"parameters,omitempty"`
	Input      *Body      `json:"input,omitempty"`
	Output     *Body      `json:"output,omitempty"`
	Message    *Body      `json:"message,omitempty"`
	Errors     []RPCError `json:"errors,omitempty"`
}

// RPCError is a declared error name for a query or procedure.
type RPCError struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Body is an input/output/message block: a MIME encoding plus an optional
// structured schema (an object, ref, or union). A nil Schema means the body
// is opaque (raw bytes under the declared encoding).
type Body struct {
	Description string `json:"description,omitempty"`
	Encoding    string `json:"encoding"`
	Schema      *Def   `json:"schema,omitempty"`
}

// Def types that decode as a bare Field.
var fieldDefTypes = map[string]bool{
	"string":   true,
	"integer":  true,
	"boolean":  true,
	"array":    true,
	"bytes":    true,
	"blob":     true,
	"cid-link": true,
	"ref":      true,
	"union":    true,
	"unknown":  true,
}

func (d *Def) UnmarshalJSON(b []byte) error {
	var head struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := j.Unmarshal(b, &head); err != nil {
		return err
	}
	d.Type = head.Type
	d.Description = head.Description

	switch {
	case head.Type == "record":
		d.Record = &RecordDef{}
		if err := decodeNumber(b, d.Record); err != nil {
			return err
		}
		if d.Record.Record == nil {
			return &CompileError{Msg: "record def is missing its record object"}
		}
	case head.Type == "query" || head.Type == "procedure" || head.Type == "subscription":
		d.RPC = &RPCDef{}
		if err := decodeNumber(b, d.RPC); err != nil {
			return err
		}
	case head.Type == "object":
		d.Object = &Object{}
		if err := decodeNumber(b, d.Object); err != nil {
			return err
		}
	case head.Type == "token":
		// nothing beyond the name
	case fieldDefTypes[head.Type]:
		d.Field = &Field{}
		if err := decodeNumber(b, d.Field); err != nil {
			return err
		}
	default:
		return &CompileError{Msg: "unrecognized def type " + strconv.Quote(head.Type)}
	}
	return nil
}
