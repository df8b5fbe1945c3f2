package lexicon_test

import (
	"errors"
	"testing"

	"github.com/cometsh/atkit/lexicon"
)

func TestParseDocument_Valid(t *testing.T) {
	doc, err := lexicon.ParseDocument([]byte(`{
		"lexicon": 1,
		"id": "com.example.good",
		"revision": 3,
		"defs": {
			"main": {"type": "record", "key": "tid", "record": {"type": "object", "properties": {}}}
		}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "com.example.good" {
		t.Fatalf("want com.example.good, got %q", doc.ID)
	}
	if doc.Revision == nil || *doc.Revision != 3 {
		t.Fatalf("revision not parsed: %v", doc.Revision)
	}
}

func TestParseDocument_ExtraTopLevelKeysIgnored(t *testing.T) {
	_, err := lexicon.ParseDocument([]byte(`{
		"lexicon": 1,
		"id": "com.example.extra",
		"$schema": "something",
		"defs": {"main": {"type": "token"}}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseDocument_Malformed(t *testing.T) {
	cases := map[string]string{
		"bad version":       `{"lexicon": 2, "id": "com.example.a", "defs": {}}`,
		"bad id":            `{"lexicon": 1, "id": "not an nsid", "defs": {}}`,
		"negative revision": `{"lexicon": 1, "id": "com.example.a", "revision": -1, "defs": {}}`,
		"unknown def type":  `{"lexicon": 1, "id": "com.example.a", "defs": {"main": {"type": "widget"}}}`,
		"not json":          `{`,
	}
	for name, raw := range cases {
		_, err := lexicon.ParseDocument([]byte(raw))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		var ce *lexicon.CompileError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected *CompileError, got %T: %v", name, err, err)
		}
	}
}

func TestCompile_UnknownFieldType(t *testing.T) {
	cat := lexicon.NewBaseCatalog()
	_, err := cat.AddJSON([]byte(`{
		"lexicon": 1,
		"id": "com.example.badfield",
		"defs": {
			"thing": {"type": "object", "properties": {"score": {"type": "float"}}}
		}
	}`))
	var ce *lexicon.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T: %v", err, err)
	}
}

func TestCompile_RecordKey(t *testing.T) {
	for _, key := range []string{"tid", "nsid", "any", "literal:self"} {
		cat := lexicon.NewBaseCatalog()
		_, err := cat.AddJSON([]byte(`{
			"lexicon": 1,
			"id": "com.example.rec",
			"defs": {"main": {"type": "record", "key": "` + key + `", "record": {"type": "object", "properties": {}}}}
		}`))
		if err != nil {
			t.Fatalf("key %q: unexpected error: %v", key, err)
		}
	}
	cat := lexicon.NewBaseCatalog()
	_, err := cat.AddJSON([]byte(`{
		"lexicon": 1,
		"id": "com.example.rec",
		"defs": {"main": {"type": "record", "key": "uuid", "record": {"type": "object", "properties": {}}}}
	}`))
	if err == nil {
		t.Fatal("expected error for record key uuid")
	}
}

func TestCompile_ParamsMustBePrimitive(t *testing.T) {
	cat := lexicon.NewBaseCatalog()
	_, err := cat.AddJSON([]byte(`{
		"lexicon": 1,
		"id": "com.example.listThings",
		"defs": {
			"main": {
				"type": "query",
				"parameters": {
					"type": "params",
					"properties": {"filter": {"type": "object", "properties": {}}}
				},
				"output": {"encoding": "application/json", "schema": {"type": "object", "properties": {}}}
			}
		}
	}`))
	if err == nil {
		t.Fatal("expected error for object-typed parameter")
	}
}

func TestCompile_RequiredPropertyNotDeclared(t *testing.T) {
	cat := lexicon.NewBaseCatalog()
	_, err := cat.AddJSON([]byte(`{
		"lexicon": 1,
		"id": "com.example.ghost",
		"defs": {
			"thing": {"type": "object", "required": ["missing"], "properties": {"present": {"type": "string"}}}
		}
	}`))
	if err == nil {
		t.Fatal("expected error for undeclared required property")
	}
}

func TestCompile_RPCShapes(t *testing.T) {
	cat := newCatalog(t, `{
		"lexicon": 1,
		"id": "com.example.uploadThing",
		"defs": {
			"main": {
				"type": "procedure",
				"input": {"encoding": "*/*"},
				"output": {
					"encoding": "application/json",
					"schema": {"type": "object", "required": ["uri"], "properties": {"uri": {"type": "string", "format": "at-uri"}}}
				},
				"errors": [{"name": "TooLarge"}]
			}
		}
	}`)
	b, ok := cat.Bundle("com.example.uploadThing")
	if !ok {
		t.Fatal("bundle not registered")
	}
	d, ok := b.Def("main")
	if !ok {
		t.Fatal("main def missing")
	}
	if d.Kind != lexicon.KindProcedure {
		t.Fatalf("want procedure, got %s", d.Kind)
	}
	if !d.RawInput || d.Input != nil {
		t.Fatalf("opaque input not detected: raw=%v input=%v", d.RawInput, d.Input)
	}
	if d.Output == nil || d.OutputEncoding != "application/json" {
		t.Fatalf("output not compiled: %v %q", d.Output, d.OutputEncoding)
	}
	if len(d.Errors) != 1 || d.Errors[0].Name != "TooLarge" {
		t.Fatalf("errors not carried: %v", d.Errors)
	}
}

func TestCompile_Token(t *testing.T) {
	cat := newCatalog(t, `{
		"lexicon": 1,
		"id": "com.example.status",
		"defs": {"active": {"type": "token"}}
	}`)
	s := resolve(t, cat, "com.example.status#active")
	if err := validate(t, s, `"com.example.status#active"`); err != nil {
		t.Fatalf("token should accept its canonical name: %v", err)
	}
	if err := validate(t, s, `"com.example.status#retired"`); err == nil {
		t.Fatal("token should reject other strings")
	}
}
