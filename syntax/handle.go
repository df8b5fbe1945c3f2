package syntax

import (
	"regexp"
	"strings"
)

// Handle is a DNS hostname used as a human-readable account identifier
// ("jay.bsky.social"). Grammar is RFC-1035-like: dotted labels of 1-63
// alphanumeric-or-hyphen characters with no leading or trailing hyphen,
// and the final label must start with a letter.
type Handle string

var handleRegex = regexp.MustCompile(
	`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

func ParseHandle(raw string) (Handle, error) {
	if len(raw) > 253 {
		return "", errf("handle", raw, "is too long (253 chars max)")
	}
	if !handleRegex.MatchString(raw) {
		return "", errf("handle", raw, "does not match grammar")
	}
	return Handle(raw), nil
}

func MustParseHandle(raw string) Handle {
	h, err := ParseHandle(raw)
	if err != nil {
		panic(err)
	}
	return h
}

// IsValidHandle reports whether raw is a syntactically valid handle.
func IsValidHandle(raw string) bool {
	_, err := ParseHandle(raw)
	return err == nil
}

// Normalize lowercases the handle. Handles are case-insensitive on the wire;
// the lowercase form is canonical.
func (h Handle) Normalize() Handle {
	return Handle(strings.ToLower(string(h)))
}

func (h Handle) String() string {
	return string(h)
}
