package directive

import (
	"strings"

	"golang.org/x/net/html"
)

// Direction is flex axis orientation in effect for an element.
type Direction int

const (
	Row Direction = iota
	Column
)

func (d Direction) String() string {
	if d == Column {
		return "column"
	}
	return "row"
}

// layoutValues returns values of layout directive on element, plain when b is
// nil and qualified with *b otherwise.
func layoutValues(n *html.Node, b *Breakpoint) []string {
	var occ []Occurrence
	if b == nil {
		occ = Plain(n)
	} else {
		occ = Responsive(n, *b)
	}
	var res []string
	for _, o := range occ {
		if o.Name == Layout {
			res = append(res, o.Value)
		}
	}
	return res
}

// ResolveDirection determines flex direction for element. Layout directive on
// the element itself wins, otherwise layout directive of the parent element is
// consulted. Direction is column only when layout value has literal "column"
// or "column-reverse" token, row in all other cases including absence of
// layout.
func ResolveDirection(n *html.Node, b *Breakpoint) Direction {
	candidates := layoutValues(n, b)
	if len(candidates) == 0 && n != nil && n.Parent != nil && n.Parent.Type == html.ElementNode {
		candidates = layoutValues(n.Parent, b)
	}
	for _, v := range candidates {
		for _, tok := range strings.Fields(v) {
			if tok == "column" || tok == "column-reverse" {
				return Column
			}
		}
	}
	return Row
}
