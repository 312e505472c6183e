package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// Catalog is an immutable set of locale messages.
type Catalog struct {
	messages map[Locale]Messages
	locales  []Locale // default first, then the rest sorted
	def      Locale
	fallback Locale
	matcher  language.Matcher
}

// Option configures a Catalog.
type Option func(*catalogOptions)

type catalogOptions struct {
	def      Locale
	fallback Locale
	dir      string
}

// WithDefault sets the locale used when none is requested or matched.
func WithDefault(l Locale) Option {
	return func(o *catalogOptions) {
		o.def = l
	}
}

// WithFallback sets the locale consulted for keys missing in the active one.
func WithFallback(l Locale) Option {
	return func(o *catalogOptions) {
		o.fallback = l
	}
}

// WithDir makes Load read locale files from dir instead of the embedded ones.
func WithDir(dir string) Option {
	return func(o *catalogOptions) {
		o.dir = dir
	}
}

// Load builds a catalog from the embedded locale files, or from the
// directory given by WithDir.
func Load(opts ...Option) (*Catalog, error) {
	var o catalogOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		messages map[Locale]Messages
		err      error
	)
	if o.dir != "" {
		messages, err = LoadDir(o.dir)
	} else {
		messages, err = LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}
	return New(messages, opts...)
}

// New builds a catalog from messages. The default and fallback locales
// default to English and must both be present. The messages are copied.
func New(messages map[Locale]Messages, opts ...Option) (*Catalog, error) {
	o := catalogOptions{def: English}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fallback == "" {
		o.fallback = o.def
	}

	for _, l := range []Locale{o.def, o.fallback} {
		if _, ok := messages[l]; !ok {
			return nil, portalerrors.New("E301").
				WithDetailf("Locale %q has no messages.", l).
				WithSuggestion("Add a " + string(l) + ".yaml locale file or change the i18n settings.")
		}
	}

	c := &Catalog{
		messages: make(map[Locale]Messages, len(messages)),
		def:      o.def,
		fallback: o.fallback,
	}
	var rest []Locale
	for l, msgs := range messages {
		cp := make(Messages, len(msgs))
		for k, v := range msgs {
			cp[k] = v
		}
		c.messages[l] = cp
		if l != o.def {
			rest = append(rest, l)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	c.locales = append([]Locale{o.def}, rest...)

	tags := make([]language.Tag, len(c.locales))
	for i, l := range c.locales {
		tags[i] = language.Make(string(l))
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Default returns the default locale.
func (c *Catalog) Default() Locale { return c.def }

// Fallback returns the fallback locale.
func (c *Catalog) Fallback() Locale { return c.fallback }

// Locales returns the catalog's locales, default first.
func (c *Catalog) Locales() []Locale {
	return append([]Locale(nil), c.locales...)
}

// Has reports whether the catalog has messages for l.
func (c *Catalog) Has(l Locale) bool {
	_, ok := c.messages[l]
	return ok
}

// Lookup finds key in locale, then in the fallback locale. It returns the
// text and the locale it came from.
func (c *Catalog) Lookup(locale Locale, key string) (string, Locale, bool) {
	if msgs, ok := c.messages[locale]; ok {
		if text, ok := msgs[key]; ok {
			return text, locale, true
		}
	}
	if text, ok := c.messages[c.fallback][key]; ok {
		return text, c.fallback, true
	}
	return "", "", false
}

// Messages returns every message of locale with the fallback's messages
// filling its gaps. An unknown locale is an E301 error.
func (c *Catalog) Messages(locale Locale) (Messages, error) {
	msgs, ok := c.messages[locale]
	if !ok {
		return nil, portalerrors.New("E301").WithDetailf("Locale %q is not in the catalog.", locale)
	}
	out := make(Messages, len(c.messages[c.fallback]))
	for k, v := range c.messages[c.fallback] {
		out[k] = v
	}
	for k, v := range msgs {
		out[k] = v
	}
	return out, nil
}

// Keys returns the fallback locale's keys, sorted.
func (c *Catalog) Keys() []string {
	return sortedKeys(c.messages[c.fallback])
}

// Direction returns the writing direction of locale.
func (c *Catalog) Direction(locale Locale) Direction {
	return direction(locale)
}

// Negotiate picks the best catalog locale for an Accept-Language header.
// It returns the default locale when nothing matches.
func (c *Catalog) Negotiate(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.def
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.locales) {
		return c.def
	}
	return c.locales[idx]
}

// Mismatch reports a locale whose keys differ from the fallback locale's.
type Mismatch struct {
	Locale  Locale   `json:"locale"`
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

func (m Mismatch) String() string {
	var parts []string
	if len(m.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(m.Missing, ", ")))
	}
	if len(m.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra %s", strings.Join(m.Extra, ", ")))
	}
	return fmt.Sprintf("%s: %s", m.Locale, strings.Join(parts, "; "))
}

// Check compares every locale's key set with the fallback locale's.
// Locales are reported in catalog order.
func (c *Catalog) Check() []Mismatch {
	want := c.messages[c.fallback]
	var out []Mismatch
	for _, l := range c.locales {
		if l == c.fallback {
			continue
		}
		have := c.messages[l]
		var m Mismatch
		for _, k := range sortedKeys(want) {
			if _, ok := have[k]; !ok {
				m.Missing = append(m.Missing, k)
			}
		}
		for _, k := range sortedKeys(have) {
			if _, ok := want[k]; !ok {
				m.Extra = append(m.Extra, k)
			}
		}
		if len(m.Missing) > 0 || len(m.Extra) > 0 {
			m.Locale = l
			out = append(out, m)
		}
	}
	return out
}

// CheckError returns Check's findings as an E302 error, or nil.
func (c *Catalog) CheckError() error {
	mismatches := c.Check()
	if len(mismatches) == 0 {
		return nil
	}
	lines := make([]string, len(mismatches))
	for i, m := range mismatches {
		lines[i] = m.String()
	}
	return portalerrors.New("E302").WithDetail(strings.Join(lines, "\n"))
}

func sortedKeys(m Messages) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
