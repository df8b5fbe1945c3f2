package syntax

import (
	"regexp"
	"strings"
)

// NSID is a Namespaced Identifier: a reverse-domain dotted name addressing a
// Lexicon ("app.bsky.feed.post"). The authority segments follow hostname
// label rules; the final name segment must start with a letter and contain
// only letters and digits.
type NSID string

var (
	nsidRegex = regexp.MustCompile(
		`^[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+\.[a-zA-Z][a-zA-Z0-9]{0,62}$`)
	fragmentRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
)

func ParseNSID(raw string) (NSID, error) {
	if len(raw) > 317 {
		return "", errf("nsid", raw, "is too long (317 chars max)")
	}
	if !nsidRegex.MatchString(raw) {
		return "", errf("nsid", raw, "does not match grammar")
	}
	return NSID(raw), nil
}

func MustParseNSID(raw string) NSID {
	n, err := ParseNSID(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// IsValidNSID reports whether raw is a syntactically valid NSID.
func IsValidNSID(raw string) bool {
	_, err := ParseNSID(raw)
	return err == nil
}

// Authority returns the domain authority portion in regular (not reversed)
// hostname order: "app.bsky.feed.post" -> "feed.bsky.app".
func (n NSID) Authority() string {
	segs := n.Segments()
	if len(segs) < 2 {
		return ""
	}
	auth := segs[:len(segs)-1]
	out := make([]string, len(auth))
	for i, s := range auth {
		out[len(auth)-1-i] = s
	}
	return strings.ToLower(strings.Join(out, "."))
}

// Name returns the final name segment ("post" for "app.bsky.feed.post").
func (n NSID) Name() string {
	segs := n.Segments()
	return segs[len(segs)-1]
}

// Segments splits the NSID on dots.
func (n NSID) Segments() []string {
	return strings.Split(string(n), ".")
}

func (n NSID) String() string {
	return string(n)
}

// ParseNSIDRef splits a "nsid#fragment" reference into its NSID and fragment,
// with the fragment defaulting to "main" when absent. This is the addressing
// scheme Lexicon ref and union fields use.
func ParseNSIDRef(raw string) (NSID, string, error) {
	base, frag, found := strings.Cut(raw, "#")
	if !found {
		frag = "main"
	}
	n, err := ParseNSID(base)
	if err != nil {
		return "", "", err
	}
	if !fragmentRegex.MatchString(frag) {
		return "", "", errf("nsid", raw, "invalid fragment")
	}
	return n, frag, nil
}

// CanonicalRef is the inverse of ParseNSIDRef: the bare NSID when the
// fragment is "main", otherwise "nsid#fragment".
func CanonicalRef(n NSID, fragment string) string {
	if fragment == "" || fragment == "main" {
		return string(n)
	}
	return string(n) + "#" + fragment
}
