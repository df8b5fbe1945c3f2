package atkit

// Presence is the bit flag recorded per field while decoding or constructing
// a value. It distinguishes "never appeared" from "appeared as null" from
// "filled in by a schema default" — the three cases the Lexicon encode rule
// treats differently.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries a parsed value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// MergePresence returns a new PresenceMap that is the bitwise-OR merge of a and b.
func MergePresence(a, b PresenceMap) PresenceMap {
	if a == nil && b == nil {
		return nil
	}
	out := make(PresenceMap, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] |= v
	}
	return out
}
