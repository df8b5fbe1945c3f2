package syntax

import "golang.org/x/text/language"

// Language is a BCP-47 language tag ("en", "pt-BR").
type Language string

func ParseLanguage(raw string) (Language, error) {
	if raw == "" {
		return "", errf("language", raw, "is empty")
	}
	if _, err := language.Parse(raw); err != nil {
		return "", errf("language", raw, "is not a well-formed BCP-47 tag")
	}
	return Language(raw), nil
}

func MustParseLanguage(raw string) Language {
	l, err := ParseLanguage(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// IsValidLanguage reports whether raw is a well-formed BCP-47 tag.
func IsValidLanguage(raw string) bool {
	_, err := ParseLanguage(raw)
	return err == nil
}

func (l Language) String() string {
	return string(l)
}
