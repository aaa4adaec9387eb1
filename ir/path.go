package ir

import (
	"strconv"
	"strings"
)

// Step addresses one child of a container node.
type Step struct {
	// Entry is the array index or map entry index.
	Entry int
	// Key is the entry's key node for map steps, nil for array steps.
	Key *Value
	// InKey marks a step into the key side of a map entry (keys can be
	// containers themselves).
	InKey bool
}

// Path addresses a node in a tree as the steps from the root.
type Path []Step

// String renders a path in JSON-pointer style.  Array steps render
// their index, map steps their key literal with / and ~ escaped as in
// RFC 6901; composite keys render as "#<entry>".  Steps into a key
// carry a "#key" suffix.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(s.token())
	}
	return sb.String()
}

func (s Step) token() string {
	tok := ""
	switch {
	case s.Key == nil:
		tok = strconv.Itoa(s.Entry)
	default:
		lit, ok := ScalarLiteral(s.Key)
		if !ok {
			tok = "#" + strconv.Itoa(s.Entry)
		} else {
			tok = escapePointer(lit)
		}
	}
	if s.InKey {
		tok += "#key"
	}
	return tok
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Clone copies the path.  Walk reuses its path buffer between visits,
// so visitors that retain a path must clone it.
func (p Path) Clone() Path {
	res := make(Path, len(p))
	copy(res, p)
	return res
}
