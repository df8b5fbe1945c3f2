package lexicon_test

import (
	"context"
	"testing"

	"github.com/cometsh/atkit"
)

const postDoc = `{
	"lexicon": 1,
	"id": "app.example.post",
	"defs": {
		"main": {
			"type": "record",
			"key": "tid",
			"record": {
				"type": "object",
				"required": ["text", "createdAt"],
				"nullable": ["via"],
				"properties": {
					"text": {"type": "string", "maxGraphemes": 300, "maxLength": 3000},
					"createdAt": {"type": "string", "format": "datetime"},
					"via": {"type": "string"},
					"langs": {"type": "array", "items": {"type": "string", "format": "language"}, "maxLength": 3},
					"pinned": {"type": "boolean", "default": false},
					"likes": {"type": "integer", "minimum": 0}
				}
			}
		}
	}
}`

func TestRecord_Valid(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{
		"$type": "app.example.post",
		"text": "hello world",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"langs": ["en", "pt-BR"]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecord_TypeBrand(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")

	err := validate(t, s, `{"text": "x", "createdAt": "2023-07-10T14:23:01.887Z"}`)
	it := firstIssue(t, err)
	if it.Path != "/$type" || it.Code != atkit.CodeRequired {
		t.Fatalf("want required at /$type, got %s at %s", it.Code, it.Path)
	}

	err = validate(t, s, `{"$type": "app.example.other", "text": "x", "createdAt": "2023-07-10T14:23:01.887Z"}`)
	it = firstIssue(t, err)
	if it.Path != "/$type" || it.Code != atkit.CodeConstMismatch {
		t.Fatalf("want const_mismatch at /$type, got %s at %s", it.Code, it.Path)
	}
}

func TestObject_RequiredMissing(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{"$type": "app.example.post", "text": "x"}`)
	it := firstIssue(t, err)
	if it.Path != "/createdAt" || it.Code != atkit.CodeRequired {
		t.Fatalf("want required at /createdAt, got %s at %s", it.Code, it.Path)
	}
}

func TestObject_Nullable(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")

	ok := `{"$type": "app.example.post", "text": "x", "createdAt": "2023-07-10T14:23:01.887Z", "via": null}`
	if err := validate(t, s, ok); err != nil {
		t.Fatalf("nullable field should accept null: %v", err)
	}

	bad := `{"$type": "app.example.post", "text": "x", "createdAt": "2023-07-10T14:23:01.887Z", "likes": null}`
	it := firstIssue(t, validate(t, s, bad))
	if it.Path != "/likes" || it.Code != atkit.CodeInvalidType {
		t.Fatalf("want invalid_type at /likes, got %s at %s", it.Code, it.Path)
	}
}

func TestObject_DefaultOnAbsenceOnly(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	out, err := s.Parse(context.Background(), decodeTree(t, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z"
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if v, ok := m["pinned"].(bool); !ok || v {
		t.Fatalf("default not applied on absence: %v", m["pinned"])
	}

	// Explicit null is not absence: the default must not substitute.
	err = validate(t, s, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"pinned": null
	}`)
	it := firstIssue(t, err)
	if it.Path != "/pinned" || it.Code != atkit.CodeInvalidType {
		t.Fatalf("want invalid_type at /pinned, got %s at %s", it.Code, it.Path)
	}
}

func TestObject_UnknownKeysPassThrough(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	out, err := s.Parse(context.Background(), decodeTree(t, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"futureField": {"anything": true}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.(map[string]any)["futureField"]; !ok {
		t.Fatal("unknown key dropped")
	}
}

func TestObject_FailFastDeclarationOrder(t *testing.T) {
	cat := newCatalog(t, `{
		"lexicon": 1,
		"id": "com.example.ordered",
		"defs": {
			"thing": {
				"type": "object",
				"required": ["zeta", "alpha"],
				"properties": {
					"zeta": {"type": "integer"},
					"alpha": {"type": "integer"}
				}
			}
		}
	}`)
	s := resolve(t, cat, "com.example.ordered#thing")
	// Both properties fail; the first declared one (zeta) must be reported,
	// not the alphabetically first.
	it := firstIssue(t, validate(t, s, `{"zeta": "nope", "alpha": "nope"}`))
	if it.Path != "/zeta" {
		t.Fatalf("want first issue at /zeta, got %s", it.Path)
	}
	iss, _ := atkit.AsIssues(validate(t, s, `{"zeta": "nope", "alpha": "nope"}`))
	if len(iss) != 1 {
		t.Fatalf("fail-fast should report exactly one issue, got %d", len(iss))
	}
}

func TestString_ByteAndGraphemeBounds(t *testing.T) {
	cat := newCatalog(t, `{
		"lexicon": 1,
		"id": "com.example.str",
		"defs": {
			"short": {"type": "string", "maxGraphemes": 2},
			"narrow": {"type": "string", "maxLength": 4}
		}
	}`)

	shorts := resolve(t, cat, "com.example.str#short")
	// 4 UTF-8 bytes but 2 graphemes.
	if err := validate(t, shorts, `"éé"`); err != nil {
		t.Fatalf("grapheme bound should pass: %v", err)
	}
	if err := validate(t, shorts, `"abc"`); err == nil {
		t.Fatal("3 graphemes should exceed maxGraphemes 2")
	}

	narrow := resolve(t, cat, "com.example.str#narrow")
	// 2 characters, 4 bytes: right at the byte limit.
	if err := validate(t, narrow, `"éé"`); err != nil {
		t.Fatalf("byte bound should pass at the limit: %v", err)
	}
	if err := validate(t, narrow, `"ééé"`); err == nil {
		t.Fatal("6 bytes should exceed maxLength 4")
	}
}

func TestString_Format(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{"$type": "app.example.post", "text": "x", "createdAt": "yesterday"}`)
	it := firstIssue(t, err)
	if it.Path != "/createdAt" || it.Code != atkit.CodeInvalidFormat {
		t.Fatalf("want invalid_format at /createdAt, got %s at %s", it.Code, it.Path)
	}
}

func TestString_ConstAndEnum(t *testing.T) {
	cat := newCatalog(t, `{
		"lexicon": 1,
		"id": "com.example.choices",
		"defs": {
			"pinned": {"type": "string", "const": "yes"},
			"mood": {"type": "string", "enum": ["happy", "sad"]},
			"vibe": {"type": "string", "knownValues": ["chill"]}
		}
	}`)
	if err := validate(t, resolve(t, cat, "com.example.choices#pinned"), `"no"`); err == nil {
		t.Fatal("const should reject other values")
	}
	if err := validate(t, resolve(t, cat, "com.example.choices#mood"), `"angry"`); err == nil {
		t.Fatal("enum should reject unlisted values")
	}
	// knownValues is advisory only.
	if err := validate(t, resolve(t, cat, "com.example.choices#vibe"), `"tense"`); err != nil {
		t.Fatalf("knownValues must not reject: %v", err)
	}
}

func TestInteger_Bounds(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"likes": -1
	}`)
	it := firstIssue(t, err)
	if it.Path != "/likes" || it.Code != atkit.CodeTooSmall {
		t.Fatalf("want too_small at /likes, got %s at %s", it.Code, it.Path)
	}
}

func TestArray_ElementIssuePath(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"langs": ["en", "!!!", "pt"]
	}`)
	it := firstIssue(t, err)
	if it.Path != "/langs/1" {
		t.Fatalf("want issue at /langs/1, got %s", it.Path)
	}
}

func TestArray_LengthBounds(t *testing.T) {
	cat := newCatalog(t, postDoc)
	s := resolve(t, cat, "app.example.post")
	err := validate(t, s, `{
		"$type": "app.example.post",
		"text": "x",
		"createdAt": "2023-07-10T14:23:01.887Z",
		"langs": ["en", "pt", "de", "fr"]
	}`)
	it := firstIssue(t, err)
	if it.Path != "/langs" || it.Code != atkit.CodeTooLong {
		t.Fatalf("want too_long at /langs, got %s at %s", it.Code, it.Path)
	}
}
