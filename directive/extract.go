package directive

import (
	"strings"

	"golang.org/x/net/html"
)

// Occurrence is a single directive attribute found on element. It does not
// own the element and must not be kept across document mutations.
type Occurrence struct {
	Name       Name
	Breakpoint Breakpoint
	Responsive bool
	Value      string
	// Attr is the attribute key exactly as present on the element.
	Attr string
	Node *html.Node
}

// Plain returns all directives without breakpoint suffix present on element.
func Plain(n *html.Node) []Occurrence {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	var res []Occurrence
	for _, a := range n.Attr {
		name, err := ParseName(a.Key)
		if err != nil {
			continue
		}
		res = append(res, Occurrence{Name: name, Value: a.Val, Attr: a.Key, Node: n})
	}
	return res
}

// Responsive returns all directives qualified with breakpoint b present on
// element.
func Responsive(n *html.Node, b Breakpoint) []Occurrence {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	var res []Occurrence
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		prefix, _, found := strings.Cut(key, ".")
		if !found {
			continue
		}
		name, err := ParseName(prefix)
		if err != nil || key != AttrName(name, b) {
			continue
		}
		res = append(res, Occurrence{
			Name:       name,
			Breakpoint: b,
			Responsive: true,
			Value:      a.Val,
			Attr:       a.Key,
			Node:       n,
		})
	}
	return res
}

// HasResponsive reports whether element has any breakpoint qualified
// directive.
func HasResponsive(n *html.Node) bool {
	for _, b := range Breakpoints() {
		if len(Responsive(n, b)) > 0 {
			return true
		}
	}
	return false
}

// HasAny reports whether element carries any supported directive.
func HasAny(n *html.Node) bool {
	return len(Plain(n)) > 0 || HasResponsive(n)
}
