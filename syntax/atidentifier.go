package syntax

// AtIdentifier is either a DID or a Handle: the forms an account may be
// addressed by in at:// URIs and XRPC parameters.
type AtIdentifier string

func ParseAtIdentifier(raw string) (AtIdentifier, error) {
	if _, err := ParseDID(raw); err == nil {
		return AtIdentifier(raw), nil
	}
	if _, err := ParseHandle(raw); err == nil {
		return AtIdentifier(raw), nil
	}
	return "", errf("at-identifier", raw, "is neither a DID nor a handle")
}

func MustParseAtIdentifier(raw string) AtIdentifier {
	a, err := ParseAtIdentifier(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// IsValidAtIdentifier reports whether raw is a valid DID or handle.
func IsValidAtIdentifier(raw string) bool {
	_, err := ParseAtIdentifier(raw)
	return err == nil
}

// IsDID reports whether the identifier is in DID form.
func (a AtIdentifier) IsDID() bool {
	_, err := ParseDID(string(a))
	return err == nil
}

// AsDID returns the identifier as a DID, or an error when it is a handle.
func (a AtIdentifier) AsDID() (DID, error) {
	return ParseDID(string(a))
}

// AsHandle returns the identifier as a Handle, or an error when it is a DID.
func (a AtIdentifier) AsHandle() (Handle, error) {
	if a.IsDID() {
		return "", errf("handle", string(a), "identifier is a DID")
	}
	return ParseHandle(string(a))
}

func (a AtIdentifier) String() string {
	return string(a)
}
