package syntax_test

import (
	"testing"

	"github.com/cometsh/atkit/syntax"
)

func TestATURIFullRecord(t *testing.T) {
	u, err := syntax.ParseATURI("at://did:plc:44ybard66vv44zksje25o7dz/app.bsky.feed.post/3jwdwj2ctlk26")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Authority().String() != "did:plc:44ybard66vv44zksje25o7dz" {
		t.Fatalf("authority mismatch: %q", u.Authority())
	}
	if u.Collection().String() != "app.bsky.feed.post" {
		t.Fatalf("collection mismatch: %q", u.Collection())
	}
	if u.RecordKey().String() != "3jwdwj2ctlk26" {
		t.Fatalf("rkey mismatch: %q", u.RecordKey())
	}
}

func TestATURIAuthorityOnly(t *testing.T) {
	u, err := syntax.ParseATURI("at://did:web:comet.sh")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Authority().String() != "did:web:comet.sh" {
		t.Fatalf("authority mismatch: %q", u.Authority())
	}
	if u.Collection() != "" || u.RecordKey() != "" {
		t.Fatalf("expected empty collection and rkey: %q %q", u.Collection(), u.RecordKey())
	}
}

func TestATURIRoundTrip(t *testing.T) {
	cases := []struct {
		authority  string
		collection string
		rkey       string
	}{
		{"did:web:comet.sh", "", ""},
		{"bnewbold.bsky.team", "", ""},
		{"did:plc:44ybard66vv44zksje25o7dz", "app.bsky.feed.post", ""},
		{"did:plc:44ybard66vv44zksje25o7dz", "app.bsky.feed.post", "3jwdwj2ctlk26"},
		{"jay.bsky.social", "app.bsky.actor.profile", "self"},
	}
	for _, tc := range cases {
		u := syntax.ConstructATURI(
			syntax.AtIdentifier(tc.authority),
			syntax.NSID(tc.collection),
			syntax.RecordKey(tc.rkey),
		)
		parsed, err := syntax.ParseATURI(u.String())
		if err != nil {
			t.Fatalf("ParseATURI(%q): %v", u, err)
		}
		if parsed.Authority().String() != tc.authority ||
			parsed.Collection().String() != tc.collection ||
			parsed.RecordKey().String() != tc.rkey {
			t.Fatalf("round trip mismatch for %q: %q %q %q",
				u, parsed.Authority(), parsed.Collection(), parsed.RecordKey())
		}
	}
}

func TestATURIRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"at://",
		"at:///app.bsky.feed.post",
		"https://example.com",
		"at://did:plc:abc/not-an-nsid/3jwdwj2ctlk26",
		"at://did:plc:44ybard66vv44zksje25o7dz/app.bsky.feed.post/3jwdwj2ctlk26/extra",
		"at://did:plc:44ybard66vv44zksje25o7dz/app.bsky.feed.post/",
		"at://name-without-dots",
	}
	for _, s := range bad {
		if _, err := syntax.ParseATURI(s); err == nil {
			t.Fatalf("expected failure for %q", s)
		}
	}
}
