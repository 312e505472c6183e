package i18n

import (
	"fmt"
	"strings"
)

// Localizer is a catalog bound to an active locale.
type Localizer struct {
	catalog *Catalog
	locale  Locale
}

// Localizer returns a localizer for locale. A locale the catalog does not
// have selects the default locale.
func (c *Catalog) Localizer(locale Locale) *Localizer {
	if !c.Has(locale) {
		locale = c.def
	}
	return &Localizer{catalog: c, locale: locale}
}

// Locale returns the active locale.
func (l *Localizer) Locale() Locale { return l.locale }

// Direction returns the active locale's writing direction.
func (l *Localizer) Direction() Direction { return direction(l.locale) }

// T translates key and fills {name} placeholders from args. A key missing
// everywhere is returned unchanged; placeholders without an argument stay.
func (l *Localizer) T(key string, args map[string]any) string {
	text, _, ok := l.catalog.Lookup(l.locale, key)
	if !ok {
		return key
	}
	return interpolate(text, args)
}

func interpolate(text string, args map[string]any) string {
	if len(args) == 0 || !strings.Contains(text, "{") {
		return text
	}

	var sb strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(text[open:], '}')
		if end < 0 {
			break
		}
		end += open

		sb.WriteString(text[:open])
		name := strings.TrimSpace(text[open+1 : end])
		if v, ok := args[name]; ok {
			sb.WriteString(fmt.Sprint(v))
		} else {
			sb.WriteString(text[open : end+1])
		}
		text = text[end+1:]
	}
	sb.WriteString(text)
	return sb.String()
}
