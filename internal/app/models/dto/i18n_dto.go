package dto

// DictionaryResponse is the full dictionary of one language
type DictionaryResponse struct {
	Lang     string            `json:"lang" example:"ar"`
	Dir      string            `json:"dir" example:"rtl"`
	Messages map[string]string `json:"messages"`
}

// LanguageInfo describes a supported language
type LanguageInfo struct {
	Lang string `json:"lang" example:"en"`
	Dir  string `json:"dir" example:"ltr"`
}

// LanguagesResponse lists the supported languages
type LanguagesResponse struct {
	Default   string         `json:"default" example:"ar"`
	Supported []LanguageInfo `json:"supported"`
}
