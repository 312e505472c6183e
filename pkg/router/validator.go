package router

import (
	"fmt"
	"strings"
)

// Validator checks a route table against the ordering rules.
type Validator struct {
	routes  []Route
	entries []*entry
	errors  []ValidationError
}

// ValidationError represents a route table error.
type ValidationError struct {
	// Type is the error category
	Type ValidationErrorType

	// Message is the human-readable error message
	Message string

	// Path is the offending pattern
	Path string

	// Details contains additional error-specific information
	Details string
}

func (e ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicateRoute indicates two entries with the same pattern shape.
	// Example: /main/project/:id and /main/project/:name
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorShadowedRoute indicates an entry listed after an overlapping,
	// more general one, so table order and precedence would disagree.
	// Example: /main/*rest listed before /main/project
	ErrorShadowedRoute ValidationErrorType = "SHADOWED_ROUTE"

	// ErrorMisplacedFallback indicates a global fallback that is not the
	// single last top-level entry.
	ErrorMisplacedFallback ValidationErrorType = "MISPLACED_FALLBACK"

	// ErrorInvalidSegment indicates a malformed pattern segment.
	// Example: /files/*rest/edit, /users/:
	ErrorInvalidSegment ValidationErrorType = "INVALID_SEGMENT"

	// ErrorInvalidRedirect indicates a redirect with a component or children,
	// or a target that is not an absolute path.
	ErrorInvalidRedirect ValidationErrorType = "INVALID_REDIRECT"

	// ErrorEmptyRoute indicates an entry with no component, redirect or children.
	ErrorEmptyRoute ValidationErrorType = "EMPTY_ROUTE"
)

// MultiValidationError wraps multiple validation errors.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// NewValidator creates a validator for a route table.
func NewValidator(routes []Route) *Validator {
	return &Validator{
		routes:  routes,
		entries: flatten(routes),
	}
}

// Validate checks the table. It returns nil if the table is valid, or a
// MultiValidationError listing every problem.
func (v *Validator) Validate() error {
	v.errors = nil

	v.validateRoutes(v.routes, "", true)
	v.validateFallback()
	v.validateOrder()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// ValidateRoutes validates a table without compiling it.
func ValidateRoutes(routes []Route) error {
	return NewValidator(routes).Validate()
}

func (v *Validator) add(typ ValidationErrorType, path, msg, details string) {
	v.errors = append(v.errors, ValidationError{Type: typ, Message: msg, Path: path, Details: details})
}

// validateRoutes checks each entry's own shape.
func (v *Validator) validateRoutes(routes []Route, parent string, top bool) {
	for i := range routes {
		r := &routes[i]
		pattern := joinPattern(parent, r.Path)

		if top && !strings.HasPrefix(r.Path, "/") {
			v.add(ErrorInvalidSegment, r.Path, fmt.Sprintf("Top-level route %q must start with /", r.Path), "")
		}
		v.validateSegments(pattern, len(r.Children) > 0)

		switch {
		case r.Redirect != "":
			if r.Component != nil || len(r.Children) > 0 {
				v.add(ErrorInvalidRedirect, pattern, fmt.Sprintf("Redirect at %s also declares a component or children", pattern), "")
			}
			if !strings.HasPrefix(r.Redirect, "/") || strings.HasPrefix(r.Redirect, "//") {
				v.add(ErrorInvalidRedirect, pattern, fmt.Sprintf("Redirect at %s has a non-absolute target", pattern), "target: "+r.Redirect)
			}
		case r.Component == nil && len(r.Children) == 0:
			v.add(ErrorEmptyRoute, pattern, fmt.Sprintf("Route %s has no component, redirect or children", pattern), "")
		}

		if len(r.Children) > 0 {
			v.validateRoutes(r.Children, pattern, false)
		}
	}
}

// validateSegments checks capture names and catch-all placement.
func (v *Validator) validateSegments(pattern string, hasChildren bool) {
	segs := splitPath(pattern)
	seen := make(map[string]bool)
	for i, seg := range segs {
		k := segmentKind(seg)
		if k == kindLiteral {
			continue
		}
		name := seg[1:]
		if name == "" {
			v.add(ErrorInvalidSegment, pattern, fmt.Sprintf("Unnamed capture in %s", pattern), "")
			continue
		}
		if seen[name] {
			v.add(ErrorInvalidSegment, pattern, fmt.Sprintf("Capture %q appears twice in %s", name, pattern), "")
		}
		seen[name] = true
		if k == kindCatchAll && (i != len(segs)-1 || hasChildren) {
			v.add(ErrorInvalidSegment, pattern, fmt.Sprintf("Catch-all *%s must be the last segment of %s", name, pattern), "")
		}
	}
}

// validateFallback checks that at most one global fallback exists and that
// it is the last top-level entry.
func (v *Validator) validateFallback() {
	var positions []int
	for i := range v.routes {
		if isFallbackPattern(joinPattern("", v.routes[i].Path)) {
			positions = append(positions, i)
		}
	}
	if len(positions) > 1 {
		v.add(ErrorMisplacedFallback, v.routes[positions[1]].Path, "More than one global fallback is declared", "")
	}
	if len(positions) > 0 && positions[0] != len(v.routes)-1 {
		v.add(ErrorMisplacedFallback, v.routes[positions[0]].Path, "The global fallback must be the last top-level route", "")
	}
}

// validateOrder checks every pair of terminals. For two overlapping
// patterns the tree prefers, at the first segment where their kinds differ,
// end-of-path over catch-all and literal over param over catch-all. The
// earlier entry must be the preferred one.
func (v *Validator) validateOrder() {
	for j := 1; j < len(v.entries); j++ {
		for i := 0; i < j; i++ {
			a, b := v.entries[i], v.entries[j]
			if !overlaps(a.pattern, b.pattern) {
				continue
			}
			winner, same := precedence(a.pattern, b.pattern)
			switch {
			case same:
				v.add(ErrorDuplicateRoute, b.pattern, fmt.Sprintf("Duplicate route detected at %s", b.pattern), "first declared as "+a.pattern)
			case winner == 1:
				v.add(ErrorShadowedRoute, b.pattern, fmt.Sprintf("Route %s is listed after the more general %s", b.pattern, a.pattern), "move it before "+a.pattern)
			}
		}
	}
}

// kindAt returns the kind of segment i, with -1 meaning past the end.
func kindAt(segs []string, i int) kind {
	if i >= len(segs) {
		return -1
	}
	return segmentKind(segs[i])
}

// overlaps reports whether some path matches both patterns.
func overlaps(a, b string) bool {
	as, bs := splitPath(a), splitPath(b)
	for i := 0; ; i++ {
		ka, kb := kindAt(as, i), kindAt(bs, i)
		switch {
		case ka == kindCatchAll || kb == kindCatchAll:
			return true
		case ka == -1 && kb == -1:
			return true
		case ka == -1 || kb == -1:
			return false
		case ka == kindLiteral && kb == kindLiteral && as[i] != bs[i]:
			return false
		}
	}
}

// precedence returns which of two overlapping patterns the tree picks
// (0 for a, 1 for b), or same if their shapes are identical.
func precedence(a, b string) (winner int, same bool) {
	as, bs := splitPath(a), splitPath(b)
	for i := 0; ; i++ {
		ka, kb := kindAt(as, i), kindAt(bs, i)
		if ka == -1 && kb == -1 {
			return 0, true
		}
		if ka != kb {
			if ka < kb {
				return 0, false
			}
			return 1, false
		}
		if ka == kindCatchAll {
			return 0, true
		}
	}
}

// isFallbackPattern reports whether pattern is a lone top-level catch-all.
func isFallbackPattern(pattern string) bool {
	segs := splitPath(pattern)
	return len(segs) == 1 && segmentKind(segs[0]) == kindCatchAll
}
