// Package syntax provides string types and parsers for the AT Protocol
// identifier grammars: DIDs, handles, NSIDs, at:// URIs, record keys, TIDs,
// datetimes, and languages.
//
// All types are immutable string-backed values with a canonical String()
// form. Parsing is strict: malformed input is rejected with a *FormatError,
// never silently corrected. MustParse* variants panic and exist for call
// sites where failure is a programming error (literals, generated code).
package syntax

import "fmt"

// FormatError reports rejection of a malformed identifier string.
type FormatError struct {
	Ident string // grammar name: "did", "handle", "nsid", "at-uri", "tid", ...
	Value string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Ident, e.Value, e.Msg)
}

func errf(ident, value, msg string) error {
	return &FormatError{Ident: ident, Value: value, Msg: msg}
}
