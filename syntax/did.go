package syntax

import (
	"regexp"
	"strings"
)

// DID is a Decentralized Identifier string ("did:plc:...", "did:web:...").
// Always syntactically valid when obtained via ParseDID.
type DID string

var didRegex = regexp.MustCompile(`^did:[a-z]+:[a-zA-Z0-9._:%-]*[a-zA-Z0-9._-]$`)

// Methods the AT Protocol currently blesses for account identity.
var blessedDIDMethods = []string{"plc", "web"}

func ParseDID(raw string) (DID, error) {
	if len(raw) > 2048 {
		return "", errf("did", raw, "is too long (2048 chars max)")
	}
	if !didRegex.MatchString(raw) {
		return "", errf("did", raw, "does not match grammar")
	}
	return DID(raw), nil
}

func MustParseDID(raw string) DID {
	d, err := ParseDID(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValidDID reports whether raw is a syntactically valid DID of any method.
func IsValidDID(raw string) bool {
	_, err := ParseDID(raw)
	return err == nil
}

// IsBlessedDID reports whether raw is a valid DID whose method is one the
// AT Protocol blesses (plc or web).
func IsBlessedDID(raw string) bool {
	d, err := ParseDID(raw)
	if err != nil {
		return false
	}
	return d.Blessed()
}

// Method returns the DID method segment ("plc" for "did:plc:abc").
func (d DID) Method() string {
	parts := strings.SplitN(string(d), ":", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// Blessed reports whether the DID method is in the blessed set.
func (d DID) Blessed() bool {
	m := d.Method()
	for _, b := range blessedDIDMethods {
		if m == b {
			return true
		}
	}
	return false
}

func (d DID) String() string {
	return string(d)
}
