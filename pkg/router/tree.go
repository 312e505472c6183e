package router

import "strings"

// entry is a compiled terminal: one pattern with its precomputed chain.
type entry struct {
	route      *Route
	pattern    string
	chain      []Component
	paramNames []string // one per param or catch-all segment, in order
	fallback   bool
	order      int
}

// node is a node in the radix tree.
type node struct {
	// segment is the literal this node matches (empty for param/catch-all)
	segment string

	terminal *entry

	// children are literal segment children
	children []*node

	// paramChild matches any single segment
	paramChild *node

	// catchAllChild matches the remaining segments, possibly none
	catchAllChild *node
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild finds a literal child.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

func (n *node) addParamChild() *node {
	if n.paramChild == nil {
		n.paramChild = newNode("")
	}
	return n.paramChild
}

func (n *node) addCatchAllChild() *node {
	if n.catchAllChild == nil {
		n.catchAllChild = newNode("")
	}
	return n.catchAllChild
}

// insert adds e under its pattern. It reports false if the pattern already
// has a terminal; the earlier entry is kept.
func (n *node) insert(e *entry) bool {
	current := n
	for _, seg := range splitPath(e.pattern) {
		switch segmentKind(seg) {
		case kindCatchAll:
			current = current.addCatchAllChild()
		case kindParam:
			current = current.addParamChild()
		default:
			current = current.addChild(seg)
		}
	}
	if current.terminal != nil {
		return false
	}
	current.terminal = e
	return true
}

// match finds the terminal for segments, trying literal, then param, then
// catch-all children at each level and backtracking on failure. Captured
// values are appended to values in pattern order.
func (n *node) match(segments []string, values []string) (*entry, []string, bool) {
	if len(segments) == 0 {
		if n.terminal != nil {
			return n.terminal, values, true
		}
		// A catch-all also matches zero segments.
		if n.catchAllChild != nil && n.catchAllChild.terminal != nil {
			return n.catchAllChild.terminal, append(values, ""), true
		}
		return nil, values, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if e, v, ok := child.match(remaining, values); ok {
			return e, v, true
		}
	}

	if n.paramChild != nil {
		if e, v, ok := n.paramChild.match(remaining, append(values, segment)); ok {
			return e, v, true
		}
	}

	if n.catchAllChild != nil && n.catchAllChild.terminal != nil {
		return n.catchAllChild.terminal, append(values, strings.Join(segments, "/")), true
	}

	return nil, values, false
}

type kind int

const (
	kindLiteral kind = iota
	kindParam
	kindCatchAll
)

func segmentKind(seg string) kind {
	switch {
	case strings.HasPrefix(seg, "*"):
		return kindCatchAll
	case strings.HasPrefix(seg, ":"):
		return kindParam
	default:
		return kindLiteral
	}
}

// splitPath splits a pattern into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// joinPattern joins a parent pattern and a child path.
func joinPattern(parent, child string) string {
	if strings.HasPrefix(child, "/") || parent == "" {
		return "/" + strings.Trim(child, "/")
	}
	child = strings.Trim(child, "/")
	if child == "" {
		return parent
	}
	if parent == "/" {
		return "/" + child
	}
	return strings.TrimSuffix(parent, "/") + "/" + child
}

// paramNames returns the capture names of a pattern in order.
func paramNames(pattern string) []string {
	var names []string
	for _, seg := range splitPath(pattern) {
		if segmentKind(seg) != kindLiteral {
			names = append(names, seg[1:])
		}
	}
	return names
}
