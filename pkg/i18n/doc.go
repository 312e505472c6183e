// Package i18n provides the portal's translation catalog.
//
// A Catalog is an immutable set of per-locale messages with a default
// locale and a fallback locale. It is built once at startup and passed to
// whatever needs it:
//
//	cat, err := i18n.Load(i18n.WithDefault("en"), i18n.WithFallback("en"))
//	l := cat.Localizer("fr")
//	l.T("explorer_btn_download", map[string]any{"name": "plan.pdf"})
//	// "Télécharger plan.pdf"
//
// Lookups try the active locale, then the fallback locale. A key missing in
// both is returned as is.
package i18n
