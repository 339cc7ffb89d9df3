// Package i18n provides translated user-facing strings.
//
// Usage:
//
//	i18n.Init("he")
//	i18n.T("removeColor", "Remove Color")
//	i18n.Td("errorNameMissing", "Row {{.Row}}: colour name is missing", map[string]any{"Row": 2})
//	i18n.Tn("colourCount", "{{.Count}} colour", "{{.Count}} colours", n)
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	localizer *i18n.Localizer
	mu        sync.RWMutex
)

// Init loads the embedded locales and selects lang, falling back to English.
// Safe to call more than once.
func Init(lang string) {
	mu.Lock()
	defer mu.Unlock()

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, _ := localeFS.ReadDir("locales")
	for _, e := range entries {
		_, _ = bundle.LoadMessageFileFS(localeFS, "locales/"+e.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang, "en")
}

func current() *i18n.Localizer {
	mu.RLock()
	defer mu.RUnlock()
	return localizer
}

// T returns the localized string for id, or defaultMsg.
func T(id, defaultMsg string) string {
	return Td(id, defaultMsg, nil)
}

// Td is T with template data for {{.Field}} placeholders.
func Td(id, defaultMsg string, data map[string]any) string {
	l := current()
	if l == nil {
		return render(defaultMsg, data)
	}

	s, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: defaultMsg},
		TemplateData:   data,
	})
	if err != nil {
		return render(defaultMsg, data)
	}
	return s
}

// Tn returns the pluralised string for count.
func Tn(id, one, other string, count int) string {
	data := map[string]any{"Count": count}
	l := current()
	if l == nil {
		if count == 1 {
			return render(one, data)
		}
		return render(other, data)
	}

	s, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, One: one, Other: other},
		PluralCount:    count,
		TemplateData:   data,
	})
	if err != nil {
		return render(other, data)
	}
	return s
}

// render substitutes {{.Key}} placeholders without a bundle.
func render(msg string, data map[string]any) string {
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{{."+k+"}}", fmt.Sprint(v))
	}
	return msg
}

// ResolveLocale picks the active locale.
// Priority: LEGIBLE_LANG > configLang > LC_ALL > LANG > "en".
func ResolveLocale(configLang string) string {
	if v := os.Getenv("LEGIBLE_LANG"); v != "" {
		return v
	}
	if configLang != "" {
		return configLang
	}
	for _, key := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(key); v != "" {
			if l := normalizeLocale(v); l != "" {
				return l
			}
		}
	}
	return "en"
}

// normalizeLocale turns "he_IL.UTF-8" into "he-IL". C and POSIX map to "".
func normalizeLocale(v string) string {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "C" || v == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(v, "_", "-")
}
