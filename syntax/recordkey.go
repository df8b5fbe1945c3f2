package syntax

import "regexp"

// RecordKey is the final path segment of an at:// URI, identifying one
// record within a collection.
type RecordKey string

var recordKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_~.:-]{1,512}$`)

func ParseRecordKey(raw string) (RecordKey, error) {
	if raw == "." || raw == ".." {
		return "", errf("record-key", raw, "dot names are reserved")
	}
	if !recordKeyRegex.MatchString(raw) {
		return "", errf("record-key", raw, "does not match grammar")
	}
	return RecordKey(raw), nil
}

func MustParseRecordKey(raw string) RecordKey {
	k, err := ParseRecordKey(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// IsValidRecordKey reports whether raw is a syntactically valid record key.
func IsValidRecordKey(raw string) bool {
	_, err := ParseRecordKey(raw)
	return err == nil
}

func (k RecordKey) String() string {
	return string(k)
}
