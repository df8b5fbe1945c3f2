package lexicon_test

import (
	"context"
	"testing"

	"github.com/cometsh/atkit"
	"github.com/cometsh/atkit/lexicon"
)

func newCatalog(t *testing.T, docs ...string) *lexicon.BaseCatalog {
	t.Helper()
	cat := lexicon.NewBaseCatalog()
	for _, d := range docs {
		if _, err := cat.AddJSON([]byte(d)); err != nil {
			t.Fatalf("register lexicon: %v", err)
		}
	}
	return cat
}

func resolve(t *testing.T, cat *lexicon.BaseCatalog, ref string) lexicon.Schema {
	t.Helper()
	s, err := cat.Resolve(ref)
	if err != nil {
		t.Fatalf("resolve %s: %v", ref, err)
	}
	return s
}

func decodeTree(t *testing.T, raw string) any {
	t.Helper()
	v, err := atkit.DecodeValue([]byte(raw))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func validate(t *testing.T, s lexicon.Schema, raw string) error {
	t.Helper()
	return s.Validate(context.Background(), decodeTree(t, raw))
}

func firstIssue(t *testing.T, err error) atkit.Issue {
	t.Helper()
	iss, ok := atkit.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected validation issues, got: %v", err)
	}
	return iss[0]
}
