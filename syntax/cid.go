package syntax

import "regexp"

// CID is a string-form content identifier. Only the broad string shape is
// checked here; multihash internals are not decoded.
// TODO: tighten to a real multibase/multihash decode once the Lexicon spec
// pins down which CID versions records may carry.
type CID string

var cidRegex = regexp.MustCompile(`^[a-zA-Z0-9+=]{8,256}$`)

func ParseCID(raw string) (CID, error) {
	if !cidRegex.MatchString(raw) {
		return "", errf("cid", raw, "does not match string shape")
	}
	return CID(raw), nil
}

func MustParseCID(raw string) CID {
	c, err := ParseCID(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValidCID reports whether raw has the broad string shape of a CID.
func IsValidCID(raw string) bool {
	_, err := ParseCID(raw)
	return err == nil
}

func (c CID) String() string {
	return string(c)
}
