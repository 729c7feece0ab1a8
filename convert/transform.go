package convert

import (
	"golang.org/x/net/html"

	"fx2tw/directive"
	"fx2tw/markup"
	"fx2tw/translate"
)

// Tree is parsed document as seen by the driver.
type Tree interface {
	// Elements returns all elements in document order.
	Elements() []*html.Node
}

// operation is a set of translation results for a single element.
type operation struct {
	node    *html.Node
	results []translate.Result
}

// pass collects translations and attributes to strip during a single scan.
type pass struct {
	reg   *translate.Registry
	ops   []operation
	strip []directive.Occurrence
	seen  map[*html.Node]struct{}
	stats Stats
}

func (p *pass) record(n *html.Node, occ []directive.Occurrence, dir directive.Direction) {
	if len(occ) == 0 {
		return
	}
	results := make([]translate.Result, 0, len(occ))
	for _, o := range occ {
		results = append(results, p.reg.Translate(o, dir))
	}
	p.ops = append(p.ops, operation{node: n, results: results})
	p.strip = append(p.strip, occ...)

	if _, ok := p.seen[n]; !ok {
		p.seen[n] = struct{}{}
		p.stats.Elements++
	}
	p.stats.Usages += len(occ)
}

// removeAttributes strips every directive attribute collected so far. It must
// only be called once scanning phase is complete, direction resolution reads
// the very attributes being removed.
func (p *pass) removeAttributes() {
	for _, o := range p.strip {
		markup.RemoveAttr(o.Node, o.Attr)
	}
	p.strip = p.strip[:0]
}

// Transform replaces flex-layout directives in the tree with translated
// classes and attributes.
//
// Breakpoint qualified directives are translated first and stripped, then
// remaining plain directives are translated (their direction no longer sees
// responsive layout hints) and stripped. Only after that all collected
// translations are applied in the order they were produced.
func Transform(t Tree, reg *translate.Registry) Stats {
	p := &pass{reg: reg, seen: make(map[*html.Node]struct{})}

	for _, n := range t.Elements() {
		if !directive.HasResponsive(n) {
			continue
		}
		for _, b := range directive.Breakpoints() {
			occ := directive.Responsive(n, b)
			if len(occ) == 0 {
				continue
			}
			p.record(n, occ, directive.ResolveDirection(n, &b))
		}
	}
	p.removeAttributes()

	for _, n := range t.Elements() {
		occ := directive.Plain(n)
		if len(occ) == 0 {
			continue
		}
		p.record(n, occ, directive.ResolveDirection(n, nil))
	}
	p.removeAttributes()

	apply(p.ops)
	return p.stats
}

func apply(ops []operation) {
	for _, op := range ops {
		for _, r := range op.results {
			switch r.Kind {
			case translate.KindClasses:
				markup.AddClass(op.node, r.Classes...)
			case translate.KindAttribute:
				markup.SetAttr(op.node, r.Name, r.Value)
			}
		}
	}
}
