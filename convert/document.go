package convert

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"

	"fx2tw/directive"
	"fx2tw/markup"
	"fx2tw/translate"
)

// DocumentOptions controls conversion of a single document.
type DocumentOptions struct {
	Registry *translate.Registry
	// Encoding forces input encoding, nil means detect.
	Encoding encoding.Encoding
	// RestoreCase brings back original spelling of attribute names
	// lower-cased by the parser.
	RestoreCase bool
}

// ConvertDocument translates all directives in markup. When nothing is found
// the input is returned unchanged, so running conversion over its own output
// is a no-op.
func ConvertDocument(raw []byte, opts DocumentOptions) ([]byte, Stats, error) {
	src, err := markup.Decode(bytes.NewReader(raw), opts.Encoding)
	if err != nil {
		return nil, Stats{}, err
	}

	doc, err := markup.Parse(src)
	if err != nil {
		return nil, Stats{}, err
	}
	if !hasDirectives(doc) {
		return raw, Stats{}, nil
	}

	st := Transform(doc, opts.Registry)

	if opts.RestoreCase {
		doc.RestoreAttrCase(src)
	}
	out, err := doc.Render()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("unable to serialize result: %w", err)
	}
	return out, st, nil
}

func hasDirectives(t Tree) bool {
	for _, n := range t.Elements() {
		if directive.HasAny(n) {
			return true
		}
	}
	return false
}
