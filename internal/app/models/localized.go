package models

// LocalizedText holds the Arabic and English variants of a string
type LocalizedText struct {
	AR string `json:"ar"`
	EN string `json:"en"`
}

// In returns the variant for lang, falling back to the other language when empty.
func (t LocalizedText) In(lang string) string {
	if lang == "en" {
		if t.EN != "" {
			return t.EN
		}
		return t.AR
	}
	if t.AR != "" {
		return t.AR
	}
	return t.EN
}

// IsZero reports whether both variants are empty.
func (t LocalizedText) IsZero() bool {
	return t.AR == "" && t.EN == ""
}
