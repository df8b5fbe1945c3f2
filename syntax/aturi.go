package syntax

import (
	"regexp"
	"strings"
)

// ATURI is an "at://" URI addressing a repository, a collection within it,
// or a single record: at://<authority>[/<collection>[/<rkey>]]. The
// authority is a DID or handle, the collection an NSID, the rkey a record
// key. Partial URIs (authority only, or authority plus collection) are
// valid. The canonical form carries no trailing slash for absent segments.
type ATURI string

// Full-string anchored shape match; component grammars are checked
// individually afterwards.
var aturiRegex = regexp.MustCompile(`^at://([^/]+)(/([^/]+)(/([^/]+))?)?$`)

func ParseATURI(raw string) (ATURI, error) {
	if len(raw) > 8192 {
		return "", errf("at-uri", raw, "is too long (8192 chars max)")
	}
	m := aturiRegex.FindStringSubmatch(raw)
	if m == nil {
		return "", errf("at-uri", raw, "does not match grammar")
	}
	if _, err := ParseAtIdentifier(m[1]); err != nil {
		return "", errf("at-uri", raw, "invalid authority")
	}
	if m[3] != "" {
		if _, err := ParseNSID(m[3]); err != nil {
			return "", errf("at-uri", raw, "invalid collection NSID")
		}
	}
	if m[5] != "" {
		if _, err := ParseRecordKey(m[5]); err != nil {
			return "", errf("at-uri", raw, "invalid record key")
		}
	}
	return ATURI(raw), nil
}

func MustParseATURI(raw string) ATURI {
	u, err := ParseATURI(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValidATURI reports whether raw is a syntactically valid at:// URI.
func IsValidATURI(raw string) bool {
	_, err := ParseATURI(raw)
	return err == nil
}

// ConstructATURI formats an at:// URI from components, trimming absent
// trailing segments. An empty collection drops the rkey as well.
func ConstructATURI(authority AtIdentifier, collection NSID, rkey RecordKey) ATURI {
	var b strings.Builder
	b.WriteString("at://")
	b.WriteString(string(authority))
	if collection != "" {
		b.WriteString("/")
		b.WriteString(string(collection))
		if rkey != "" {
			b.WriteString("/")
			b.WriteString(string(rkey))
		}
	}
	return ATURI(b.String())
}

// Authority returns the DID-or-handle authority component.
func (u ATURI) Authority() AtIdentifier {
	return AtIdentifier(u.part(1))
}

// Collection returns the collection NSID, or "" when the URI stops at the
// authority.
func (u ATURI) Collection() NSID {
	return NSID(u.part(3))
}

// RecordKey returns the record key, or "" when absent.
func (u ATURI) RecordKey() RecordKey {
	return RecordKey(u.part(5))
}

func (u ATURI) part(i int) string {
	m := aturiRegex.FindStringSubmatch(string(u))
	if m == nil {
		return ""
	}
	return m[i]
}

func (u ATURI) String() string {
	return string(u)
}
