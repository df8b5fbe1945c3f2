package lexicon

import "fmt"

// CompileError reports a malformed Lexicon document: wrong lexicon version,
// invalid id, unrecognized def or field type, or a missing required IDL
// field. Compilation of the offending document aborts; no partial Bundle is
// produced.
type CompileError struct {
	NSID  string // document id, "" when the id itself failed to parse
	Def   string // def name plus field path when known
	Msg   string
	Cause error
}

func (e *CompileError) Error() string {
	loc := e.NSID
	if e.Def != "" {
		loc = loc + "#" + e.Def
	}
	if loc == "" {
		return fmt.Sprintf("lexicon compile: %s", e.Msg)
	}
	return fmt.Sprintf("lexicon compile: %s: %s", loc, e.Msg)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

func compileErrf(nsid, def, format string, args ...any) error {
	return &CompileError{NSID: nsid, Def: def, Msg: fmt.Sprintf(format, args...)}
}

// ReferenceError reports a ref or union pointing at an NSID and fragment
// with no compiled schema at resolution time. Distinct from validation
// Issues: it indicates a missing Lexicon, not bad input data.
type ReferenceError struct {
	Ref string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("lexicon reference not resolvable: %s", e.Ref)
}
