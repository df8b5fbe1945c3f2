package syntax

// The lexicographically-sortable base-32 alphabet used by TIDs. Digits 0, 1,
// 8, 9 and all uppercase letters are excluded so string sort order matches
// numeric order and visually ambiguous characters never appear.
const base32SortAlphabet = "234567abcdefghijklmnopqrstuvwxyz"

var base32SortIndex = func() [256]int8 {
	var tbl [256]int8
	for i := range tbl {
		tbl[i] = -1
	}
	for i := 0; i < len(base32SortAlphabet); i++ {
		tbl[base32SortAlphabet[i]] = int8(i)
	}
	return tbl
}()

// EncodeBase32Sort encodes v in the sortable base-32 alphabet with no
// leading-zero padding; callers pad to a fixed width themselves. Zero
// encodes as a single "2".
func EncodeBase32Sort(v uint64) string {
	if v == 0 {
		return base32SortAlphabet[:1]
	}
	var buf [13]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = base32SortAlphabet[v&0x1f]
		v >>= 5
	}
	return string(buf[i:])
}

// DecodeBase32Sort evaluates s as a positional base-32 polynomial. Empty
// strings, characters outside the alphabet (including any uppercase), and
// values overflowing 64 bits are rejected.
func DecodeBase32Sort(s string) (uint64, error) {
	if s == "" {
		return 0, errf("base32-sortable", s, "is empty")
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d := base32SortIndex[s[i]]
		if d < 0 {
			return 0, errf("base32-sortable", s, "character outside alphabet")
		}
		if v > (1<<64-1)>>5 {
			return 0, errf("base32-sortable", s, "overflows 64 bits")
		}
		v = v<<5 | uint64(d)
	}
	return v, nil
}
