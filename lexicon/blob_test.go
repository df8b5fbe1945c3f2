package lexicon_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/cometsh/atkit"
)

const mediaDoc = `{
	"lexicon": 1,
	"id": "org.example.media",
	"defs": {
		"seed": {"type": "bytes", "minLength": 2, "maxLength": 8},
		"picture": {"type": "blob", "accept": ["image/*"], "maxSize": 1000},
		"anything": {"type": "blob"},
		"pointer": {"type": "cid-link"}
	}
}`

func TestBytes_DecodeTransform(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#seed")

	out, err := s.Parse(context.Background(), decodeTree(t, `{"$bytes": "3q2+7w=="}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, ok := out.([]byte)
	if !ok {
		t.Fatalf("want []byte, got %T", out)
	}
	if !bytes.Equal(raw, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("wrong decoded bytes: %x", raw)
	}
}

func TestBytes_DecodedLengthBounds(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#seed")

	// One decoded byte, under minLength 2.
	it := firstIssue(t, validate(t, s, `{"$bytes": "AA=="}`))
	if it.Code != atkit.CodeTooShort {
		t.Fatalf("want too_short, got %s", it.Code)
	}
	// Ten decoded bytes, over maxLength 8.
	it = firstIssue(t, validate(t, s, `{"$bytes": "AAAAAAAAAAAAAA=="}`))
	if it.Code != atkit.CodeTooLong {
		t.Fatalf("want too_long, got %s", it.Code)
	}
	it = firstIssue(t, validate(t, s, `{"$bytes": "not base64!"}`))
	if it.Code != atkit.CodeInvalidFormat {
		t.Fatalf("want invalid_format, got %s", it.Code)
	}
}

func TestBlob_Accept(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#picture")

	ok := `{"$type": "blob", "ref": {"$link": "bafkreib"}, "mimeType": "image/png", "size": 512}`
	if err := validate(t, s, ok); err != nil {
		t.Fatalf("image/png should be accepted: %v", err)
	}

	bad := `{"$type": "blob", "ref": {"$link": "bafkreib"}, "mimeType": "video/mp4", "size": 512}`
	it := firstIssue(t, validate(t, s, bad))
	if it.Path != "/mimeType" || it.Code != atkit.CodeInvalidEnum {
		t.Fatalf("want invalid_enum at /mimeType, got %s at %s", it.Code, it.Path)
	}
}

func TestBlob_MaxSize(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#picture")
	big := `{"$type": "blob", "ref": {"$link": "bafkreib"}, "mimeType": "image/png", "size": 2000}`
	it := firstIssue(t, validate(t, s, big))
	if it.Path != "/size" || it.Code != atkit.CodeTooBig {
		t.Fatalf("want too_big at /size, got %s at %s", it.Code, it.Path)
	}
}

func TestBlob_LegacyShape(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#anything")
	// Old-style blob refs carry cid+mimeType and no size.
	if err := validate(t, s, `{"cid": "bafkreib", "mimeType": "text/plain"}`); err != nil {
		t.Fatalf("legacy blob should validate: %v", err)
	}
	it := firstIssue(t, validate(t, s, `{"mimeType": "text/plain"}`))
	if it.Code != atkit.CodeInvalidType {
		t.Fatalf("want invalid_type, got %s", it.Code)
	}
}

func TestCidLink(t *testing.T) {
	cat := newCatalog(t, mediaDoc)
	s := resolve(t, cat, "org.example.media#pointer")
	if err := validate(t, s, `{"$link": "bafyreif"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validate(t, s, `{"$link": ""}`); err == nil {
		t.Fatal("empty $link should be rejected")
	}
	if err := validate(t, s, `"bafyreif"`); err == nil {
		t.Fatal("bare string is not a cid-link")
	}
}
