package survey

import (
	"slices"
	"strings"
)

// Path segments reserved for selection sentinels. A OneOf choice is stored at
// <path>.selected_variant, an AnyOf choice list at <path>.selected_variants.
const (
	SelectedVariantKey  = "selected_variant"
	SelectedVariantsKey = "selected_variants"
)

// ResponsePath addresses one question site in a schema. It is an ordered
// sequence of segments rendered in dotted form ("address.street"); two paths
// are equal iff their segment sequences are equal. The zero value is the root
// path.
//
// ResponsePath is comparable and usable as a map key.
type ResponsePath struct {
	raw string
}

// NewPath builds a path from segments. Empty segments are dropped.
func NewPath(segments ...string) ResponsePath {
	p := RootPath()
	for _, s := range segments {
		p = p.Child(s)
	}
	return p
}

// ParsePath parses a dotted path string ("address.street").
func ParsePath(s string) ResponsePath {
	return NewPath(strings.Split(s, ".")...)
}

// RootPath returns the empty path (the site of a top-level union question).
func RootPath() ResponsePath { return ResponsePath{} }

// Child returns a new path with segment appended. Appending an empty segment
// returns the receiver unchanged.
func (p ResponsePath) Child(segment string) ResponsePath {
	if segment == "" {
		return p
	}
	if p.raw == "" {
		return ResponsePath{raw: segment}
	}
	return ResponsePath{raw: p.raw + "." + segment}
}

// String renders the canonical dotted form.
func (p ResponsePath) String() string { return p.raw }

// IsRoot reports whether the path has no segments.
func (p ResponsePath) IsRoot() bool { return p.raw == "" }

// Segments returns the segment sequence. The root path has none.
func (p ResponsePath) Segments() []string {
	if p.raw == "" {
		return nil
	}
	return strings.Split(p.raw, ".")
}

// Len returns the number of segments.
func (p ResponsePath) Len() int {
	if p.raw == "" {
		return 0
	}
	return strings.Count(p.raw, ".") + 1
}

// First returns the leading segment, or "" for the root path.
func (p ResponsePath) First() string {
	if i := strings.IndexByte(p.raw, '.'); i >= 0 {
		return p.raw[:i]
	}
	return p.raw
}

// Last returns the trailing segment, or "" for the root path.
func (p ResponsePath) Last() string {
	if i := strings.LastIndexByte(p.raw, '.'); i >= 0 {
		return p.raw[i+1:]
	}
	return p.raw
}

// Parent returns the path with the last segment removed.
func (p ResponsePath) Parent() ResponsePath {
	if i := strings.LastIndexByte(p.raw, '.'); i >= 0 {
		return ResponsePath{raw: p.raw[:i]}
	}
	return ResponsePath{}
}

// StripPrefix removes prefix from the front of p. It reports false when p is
// not equal to prefix and not beneath it.
func (p ResponsePath) StripPrefix(prefix ResponsePath) (ResponsePath, bool) {
	if prefix.raw == "" {
		return p, true
	}
	if p.raw == prefix.raw {
		return ResponsePath{}, true
	}
	if strings.HasPrefix(p.raw, prefix.raw) && p.raw[len(prefix.raw)] == '.' {
		return ResponsePath{raw: p.raw[len(prefix.raw)+1:]}, true
	}
	return ResponsePath{}, false
}

// HasPrefix reports whether p equals prefix or lies beneath it.
func (p ResponsePath) HasPrefix(prefix ResponsePath) bool {
	_, ok := p.StripPrefix(prefix)
	return ok
}

// Less orders paths by segment sequence.
func (p ResponsePath) Less(other ResponsePath) bool {
	return slices.Compare(p.Segments(), other.Segments()) < 0
}
