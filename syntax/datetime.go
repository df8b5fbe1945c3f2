package syntax

import (
	"regexp"
	"time"
)

// Datetime is an RFC-3339 timestamp string as constrained by the AT
// Protocol: the 'T' separator is mandatory, seconds are mandatory, and a
// timezone designator is mandatory ("-00:00" is rejected as it encodes an
// unknown offset).
type Datetime string

var datetimeRegex = regexp.MustCompile(
	`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})$`)

func ParseDatetime(raw string) (Datetime, error) {
	if len(raw) > 64 {
		return "", errf("datetime", raw, "is too long (64 chars max)")
	}
	if !datetimeRegex.MatchString(raw) {
		return "", errf("datetime", raw, "does not match grammar")
	}
	if len(raw) >= 6 && raw[len(raw)-6:] == "-00:00" {
		return "", errf("datetime", raw, "unknown-offset timezone is not allowed")
	}
	if _, err := time.Parse(time.RFC3339Nano, raw); err != nil {
		return "", errf("datetime", raw, "does not parse as RFC 3339")
	}
	return Datetime(raw), nil
}

func MustParseDatetime(raw string) Datetime {
	d, err := ParseDatetime(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValidDatetime reports whether raw is an acceptable datetime string.
func IsValidDatetime(raw string) bool {
	_, err := ParseDatetime(raw)
	return err == nil
}

// Time parses the datetime into a time.Time. Only call on values produced
// by ParseDatetime.
func (d Datetime) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, string(d))
	if err != nil {
		panic(err)
	}
	return t
}

func (d Datetime) String() string {
	return string(d)
}

// FormatDatetime renders t in the canonical form: UTC, millisecond
// precision, "Z" designator.
func FormatDatetime(t time.Time) Datetime {
	return Datetime(t.UTC().Format("2006-01-02T15:04:05.000Z"))
}
