package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Decode reads markup converting it to UTF-8. When forced is nil encoding is
// detected from BOM and meta tags, defaulting to UTF-8 for valid UTF-8 input.
func Decode(r io.Reader, forced encoding.Encoding) ([]byte, error) {
	if forced != nil {
		return io.ReadAll(forced.NewDecoder().Reader(r))
	}
	cr, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("unable to detect encoding: %w", err)
	}
	return io.ReadAll(cr)
}
