package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a short language tag such as "en" or "ar".
type Locale string

// Locales shipped with the portal.
const (
	English    Locale = "en"
	French     Locale = "fr"
	Spanish    Locale = "es"
	Arabic     Locale = "ar"
	Portuguese Locale = "pt"
	Russian    Locale = "ru"
	Japanese   Locale = "ja"
)

// Shipped returns the locales embedded in the binary, in display order.
func Shipped() []Locale {
	return []Locale{English, French, Spanish, Arabic, Portuguese, Russian, Japanese}
}

// Direction is the writing direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ParseLocale reduces a BCP 47 tag to its base language, so "fr-CA" and
// "FR" both give "fr".
func ParseLocale(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	return Locale(base.String()), true
}

// direction reports the script direction of a locale.
func direction(l Locale) Direction {
	switch l {
	case Arabic, "he", "fa", "ur":
		return RTL
	}
	return LTR
}
