package htmlmap

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is an element node of a parsed document.
type Element struct {
	node *html.Node
}

// TagName returns the lower-case tag name, or "" for a nil element.
func (e *Element) TagName() string {
	if e == nil || e.node == nil {
		return ""
	}
	return e.node.Data
}

// Attr returns the value of the named attribute. Names are matched
// case-insensitively.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil || e.node == nil {
		return "", false
	}
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// Node exposes the underlying parse tree node.
func (e *Element) Node() *html.Node {
	return e.node
}
