package lexicon

import (
	"fmt"
	"net/url"

	"github.com/cometsh/atkit/syntax"
)

// formatValidator maps a Lexicon string format name to its predicate. The
// enumeration is closed; compileString rejects names not listed here.
func formatValidator(name string) (func(string) error, bool) {
	switch name {
	case "at-identifier":
		return func(s string) error { _, err := syntax.ParseAtIdentifier(s); return err }, true
	case "at-uri":
		return func(s string) error { _, err := syntax.ParseATURI(s); return err }, true
	case "cid":
		return func(s string) error { _, err := syntax.ParseCID(s); return err }, true
	case "datetime":
		return func(s string) error { _, err := syntax.ParseDatetime(s); return err }, true
	case "did":
		return func(s string) error { _, err := syntax.ParseDID(s); return err }, true
	case "handle":
		return func(s string) error { _, err := syntax.ParseHandle(s); return err }, true
	case "language":
		return func(s string) error { _, err := syntax.ParseLanguage(s); return err }, true
	case "nsid":
		return func(s string) error { _, err := syntax.ParseNSID(s); return err }, true
	case "record-key":
		return func(s string) error { _, err := syntax.ParseRecordKey(s); return err }, true
	case "tid":
		return func(s string) error { _, err := syntax.ParseTID(s); return err }, true
	case "uri":
		return checkURI, true
	default:
		return nil, false
	}
}

// checkURI is the loose generic-URI predicate: an absolute URI with a scheme,
// no whitespace, bounded length.
func checkURI(s string) error {
	if s == "" || len(s) > 8192 {
		return fmt.Errorf("uri has invalid length")
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("uri must be absolute")
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' {
			return fmt.Errorf("uri contains whitespace")
		}
	}
	return nil
}
