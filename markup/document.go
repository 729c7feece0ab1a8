// Package markup is a thin layer over golang.org/x/net/html and goquery
// providing the few tree operations directive translation needs.
package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Component templates are fragments, anything starting with doctype or html
// element is parsed as complete document.
var fullDocument = regexp.MustCompile(`(?is)^\s*(?:<!--.*?-->\s*)*<(?:!doctype|html)[\s>]`)

// charRef matches anything HTML tokenizer could take for character reference.
var charRef = regexp.MustCompile(`(?i)&(?:#[0-9]+|#x[0-9a-f]+|[a-z][a-z0-9]*);?`)

// literal reverts escaping serializer applies to characters which are safe
// unescaped in double quoted attribute values and in text.
var literal = strings.NewReplacer("&#39;", "'", "&gt;", ">", "&amp;", "&")

// fragmentContext maps first element of a fragment to the element it must be
// parsed in, table parts are dropped by the parser anywhere else.
var fragmentContext = map[atom.Atom]atom.Atom{
	atom.Td:       atom.Tr,
	atom.Th:       atom.Tr,
	atom.Tr:       atom.Tbody,
	atom.Tbody:    atom.Table,
	atom.Thead:    atom.Table,
	atom.Tfoot:    atom.Table,
	atom.Caption:  atom.Table,
	atom.Colgroup: atom.Table,
	atom.Col:      atom.Colgroup,
}

// Document is parsed markup.
type Document struct {
	// root is either document node or synthetic context element holding
	// fragment nodes.
	root     *html.Node
	fragment bool
	dom      *goquery.Document
	// source has no character references, so every escaped character in
	// rendered output was literal in source.
	literal bool
}

// Parse builds element tree from UTF-8 encoded markup.
func Parse(src []byte) (*Document, error) {
	lit := !charRef.Match(src)
	if fullDocument.Match(src) {
		root, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("unable to parse document: %w", err)
		}
		return &Document{root: root, dom: goquery.NewDocumentFromNode(root), literal: lit}, nil
	}

	ctx := contextOf(src)
	container := &html.Node{Type: html.ElementNode, Data: ctx.String(), DataAtom: ctx}
	nodes, err := html.ParseFragment(bytes.NewReader(src), container)
	if err != nil {
		return nil, fmt.Errorf("unable to parse fragment: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return &Document{root: container, fragment: true, dom: goquery.NewDocumentFromNode(container), literal: lit}, nil
}

// contextOf selects fragment parsing context from the first start tag.
func contextOf(src []byte) atom.Atom {
	z := html.NewTokenizer(bytes.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return atom.Body
		case html.CommentToken, html.DoctypeToken:
			continue
		case html.TextToken:
			if len(bytes.TrimSpace(z.Raw())) > 0 {
				return atom.Body
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if ctx, ok := fragmentContext[atom.Lookup(name)]; ok {
				return ctx
			}
			return atom.Body
		default:
			return atom.Body
		}
	}
}

// Elements returns all elements in document order. Synthetic fragment
// container is not included.
func (d *Document) Elements() []*html.Node {
	return d.dom.Find("*").Nodes
}

// Render serializes tree back to markup. Unless source used character
// references, apostrophes, ampersands and greater-than signs are written
// as is, keeping Angular expressions readable.
func (d *Document) Render() ([]byte, error) {
	buf := new(bytes.Buffer)
	if !d.fragment {
		if err := html.Render(buf, d.root); err != nil {
			return nil, fmt.Errorf("unable to render document: %w", err)
		}
	} else {
		for c := d.root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(buf, c); err != nil {
				return nil, fmt.Errorf("unable to render fragment: %w", err)
			}
		}
	}
	if !d.literal {
		return buf.Bytes(), nil
	}
	return []byte(literal.Replace(buf.String())), nil
}

// RestoreAttrCase gives attribute keys lower-cased by the parser the spelling
// of their first appearance in the original source, so Angular bindings like
// [ngClass] or *ngIf survive the round trip.
func (d *Document) RestoreAttrCase(original []byte) {
	idx := newCaseIndex(original)
	for _, n := range d.Elements() {
		for i := range n.Attr {
			n.Attr[i].Key = idx.restore(n.Attr[i].Key)
		}
	}
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// AddClass merges classes into element class attribute, classes already
// present are not duplicated. Resulting value is single space separated.
func AddClass(n *html.Node, classes ...string) {
	if len(classes) == 0 {
		return
	}
	cur, _ := Attr(n, "class")
	list := strings.Fields(cur)
	for _, c := range classes {
		if len(c) > 0 && !slices.Contains(list, c) {
			list = append(list, c)
		}
	}
	SetAttr(n, "class", strings.Join(list, " "))
}

// SetAttr sets (or overwrites in place) attribute value.
func SetAttr(n *html.Node, name, value string) {
	selection(n).SetAttr(name, value)
}

// RemoveAttr removes attribute with exactly this key, order of remaining
// attributes is kept.
func RemoveAttr(n *html.Node, name string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool { return a.Key == name })
}

// Attr returns attribute value and presence flag.
func Attr(n *html.Node, name string) (string, bool) {
	return selection(n).Attr(name)
}
