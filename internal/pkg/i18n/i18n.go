// Package i18n holds the Arabic/English dictionaries and language negotiation.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Lang is a supported interface language
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"

	DefaultLang = Arabic
)

// Supported lists the languages in preference order
var Supported = []Lang{Arabic, English}

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

//go:embed locales/*.yaml
var localeFS embed.FS

// ParseLang accepts "ar" or "en" in any case, with or without a region subtag.
func ParseLang(s string) (Lang, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Lang(s) {
	case Arabic:
		return Arabic, true
	case English:
		return English, true
	}
	return "", false
}

// Dir returns the text direction for the language
func (l Lang) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

func (l Lang) String() string {
	return string(l)
}

// Other returns the fallback language
func (l Lang) Other() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Negotiate picks the request language: explicit query value, then cookie,
// then the Accept-Language header, then the default.
func Negotiate(query, cookie, acceptLanguage string) Lang {
	if l, ok := ParseLang(query); ok {
		return l
	}
	if l, ok := ParseLang(cookie); ok {
		return l
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			tag, _, confidence := matcher.Match(tags...)
			if confidence != language.No {
				base, _ := tag.Base()
				if l, ok := ParseLang(base.String()); ok {
					return l
				}
			}
		}
	}
	return DefaultLang
}

// Bundle is a read-only set of flattened dictionaries
type Bundle struct {
	messages map[Lang]map[string]string
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the bundle built from the embedded locale files.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		sub, err := fs.Sub(localeFS, "locales")
		if err != nil {
			panic(fmt.Sprintf("i18n: embedded locales: %v", err))
		}
		b, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("i18n: loading embedded locales: %v", err))
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Load reads <lang>.yaml for every supported language from fsys.
// Nested maps are flattened with dots: {forms: {sent: x}} -> "forms.sent".
func Load(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{messages: make(map[Lang]map[string]string, len(Supported))}

	for _, lang := range Supported {
		data, err := fs.ReadFile(fsys, string(lang)+".yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s dictionary: %w", lang, err)
		}

		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s dictionary: %w", lang, err)
		}

		flat := make(map[string]string)
		flatten("", raw, flat)
		b.messages[lang] = flat
	}

	return b, nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T translates key into lang. Missing keys fall back to the other language,
// then to the key itself. Args are applied with fmt.Sprintf when present.
func (b *Bundle) T(lang Lang, key string, args ...interface{}) string {
	msg, ok := b.lookup(lang, key)
	if !ok {
		msg, ok = b.lookup(lang.Other(), key)
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func (b *Bundle) lookup(lang Lang, key string) (string, bool) {
	dict, ok := b.messages[lang]
	if !ok {
		return "", false
	}
	msg, ok := dict[key]
	return msg, ok
}

// Has reports whether lang defines key without fallback.
func (b *Bundle) Has(lang Lang, key string) bool {
	_, ok := b.lookup(lang, key)
	return ok
}

// Messages returns a copy of the dictionary for lang
func (b *Bundle) Messages(lang Lang) map[string]string {
	src := b.messages[lang]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Keys returns the sorted keys of lang's dictionary
func (b *Bundle) Keys(lang Lang) []string {
	keys := make([]string, 0, len(b.messages[lang]))
	for k := range b.messages[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
