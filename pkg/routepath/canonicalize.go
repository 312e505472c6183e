// Package routepath normalizes request paths before they reach the route table.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslash    = errors.New("path contains backslash")
	ErrNullByte     = errors.New("path contains null byte")
	ErrBadEscape    = errors.New("invalid percent escape sequence")
	ErrEscapesRoot  = errors.New("path escapes root via ..")
	ErrAbsoluteURL  = errors.New("navigation target must be a relative path")
	ErrEncodedSlash = errors.New("encoded slash (%2F) in path segment")
)

// Result is a canonicalized path.
type Result struct {
	// Path is the canonical escaped path, always starting with "/".
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Segments are the decoded path segments.
	Segments []string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// String returns the canonical path with its query string.
func (r Result) String() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Canonicalize normalizes an escaped URL path:
//   - empty and "." segments are dropped, so "//" collapses and trailing "/" goes
//   - ".." pops the previous segment
//
// Inputs containing a backslash, a NUL byte (literal or %00), a malformed
// percent escape, an encoded slash, or a ".." that would climb above "/" are
// rejected. A query string is split off and kept verbatim.
func Canonicalize(input string) (Result, error) {
	raw, query, _ := strings.Cut(input, "?")

	if strings.Contains(raw, `\`) {
		return Result{}, ErrBackslash
	}
	if strings.Contains(raw, "\x00") || strings.Contains(strings.ToUpper(raw), "%00") {
		return Result{}, ErrNullByte
	}

	var kept []string
	var decoded []string
	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return Result{}, ErrEscapesRoot
			}
			kept = kept[:len(kept)-1]
			decoded = decoded[:len(decoded)-1]
			continue
		}

		d, err := url.PathUnescape(seg)
		if err != nil {
			return Result{}, ErrBadEscape
		}
		if strings.Contains(d, "/") {
			return Result{}, ErrEncodedSlash
		}
		kept = append(kept, seg)
		decoded = append(decoded, d)
	}

	path := "/" + strings.Join(kept, "/")
	return Result{
		Path:     path,
		Query:    query,
		Segments: decoded,
		Changed:  path != raw,
	}, nil
}

// NavigationTarget validates a client-supplied navigation target. Only
// site-relative paths are accepted; absolute and protocol-relative URLs are
// rejected so a navigation can never leave the site.
func NavigationTarget(target string) (Result, error) {
	if strings.HasPrefix(target, "//") || !strings.HasPrefix(target, "/") {
		return Result{}, ErrAbsoluteURL
	}
	return Canonicalize(target)
}
