package syntax

import (
	"math/rand/v2"
	"time"
)

// TID is a Timestamp Identifier: a (53-bit microsecond timestamp, 10-bit
// clock id) pair with a canonical 13-character base32-sortable encoding.
// The encoding is bit-exact reversible and the top bit of the 64-bit value
// is always zero.
type TID struct {
	ts  uint64
	clk uint16
}

const (
	maxTIDTimestamp = 1<<53 - 1
	maxTIDClockID   = 1<<10 - 1

	tidLen      = 13
	tidTsLen    = 11 // leading chars carry the timestamp
	tidClockLen = 2  // trailing chars carry the clock id
)

// NewTID builds a TID from a microsecond timestamp and clock id.
func NewTID(timestampMicros uint64, clockID uint16) (TID, error) {
	if timestampMicros > maxTIDTimestamp {
		return TID{}, errf("tid", "", "timestamp exceeds 53 bits")
	}
	if clockID > maxTIDClockID {
		return TID{}, errf("tid", "", "clock id exceeds 10 bits")
	}
	return TID{ts: timestampMicros, clk: clockID}, nil
}

// NewTIDNow returns a TID for the current time with a random clock id.
func NewTIDNow() TID {
	return NewTIDFromTime(time.Now(), uint16(rand.N(uint32(maxTIDClockID+1))))
}

// NewTIDFromTime returns a TID for t with the given clock id (masked to 10
// bits).
func NewTIDFromTime(t time.Time, clockID uint16) TID {
	return TID{
		ts:  uint64(t.UnixMicro()) & maxTIDTimestamp,
		clk: clockID & maxTIDClockID,
	}
}

// ParseTID decodes the fixed-width 13-character form, split 11/2 between
// timestamp and clock id. Wrong length, characters outside the sortable
// alphabet, uppercase, or a timestamp overflowing 53 bits (the encoded high
// bit set) all fail closed.
func ParseTID(raw string) (TID, error) {
	if len(raw) != tidLen {
		return TID{}, errf("tid", raw, "must be exactly 13 characters")
	}
	ts, err := DecodeBase32Sort(raw[:tidTsLen])
	if err != nil {
		return TID{}, errf("tid", raw, "invalid encoding")
	}
	clk, err := DecodeBase32Sort(raw[tidTsLen:])
	if err != nil {
		return TID{}, errf("tid", raw, "invalid encoding")
	}
	if ts > maxTIDTimestamp {
		return TID{}, errf("tid", raw, "high bit set in timestamp")
	}
	return TID{ts: ts, clk: uint16(clk)}, nil
}

func MustParseTID(raw string) TID {
	t, err := ParseTID(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValidTID reports whether raw is a syntactically valid TID.
func IsValidTID(raw string) bool {
	_, err := ParseTID(raw)
	return err == nil
}

// Timestamp returns the microsecond timestamp component.
func (t TID) Timestamp() uint64 {
	return t.ts
}

// ClockID returns the 10-bit clock id component.
func (t TID) ClockID() uint16 {
	return t.clk
}

// Time converts the timestamp component to a time.Time.
func (t TID) Time() time.Time {
	return time.UnixMicro(int64(t.ts)).UTC()
}

// String renders the canonical 13-character form.
func (t TID) String() string {
	return pad32(EncodeBase32Sort(t.ts), tidTsLen) + pad32(EncodeBase32Sort(uint64(t.clk)), tidClockLen)
}

func pad32(s string, width int) string {
	for len(s) < width {
		s = base32SortAlphabet[:1] + s
	}
	return s
}
