// Package inspect provides device tree inspection utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g. "axes/x/x-pos")
//   - Finding components and data items by path or id
//   - Listing unbound references
//   - Formatting trees for display
package inspect

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path is a parsed inspection path: a sequence of segments walked from
// the device root, each matching a child component or data item by name
// or id.
type Path struct {
	// Segments are the path elements in walk order.
	Segments []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path.
//
// Segments are separated by "/". A segment matches a node by name first,
// then by id. Leading and trailing separators are invalid, as are empty
// segments.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") ||
		strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	return &Path{
		Segments: strings.Split(input, "/"),
		Raw:      input,
	}, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	return strings.Join(p.Segments, "/")
}
