package markup

import (
	"strings"
)

// caseIndex finds original spelling of attribute names in the source text.
type caseIndex struct {
	src   string
	lower string
	cache map[string]string
}

func newCaseIndex(src []byte) *caseIndex {
	// ASCII only, so byte offsets in lower match src
	lower := make([]byte, len(src))
	for i, c := range src {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return &caseIndex{src: string(src), lower: string(lower), cache: make(map[string]string)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// restore returns key spelled as in the first place it is used as an attribute
// name in the source, or key itself when there is no such place.
func (ci *caseIndex) restore(key string) string {
	if v, ok := ci.cache[key]; ok {
		return v
	}

	res := key
	needle := strings.ToLower(key)
	for from := 0; len(needle) > 0; {
		i := strings.Index(ci.lower[from:], needle)
		if i < 0 {
			break
		}
		i += from
		end := i + len(needle)
		before := i > 0 && isSpace(ci.lower[i-1])
		after := end < len(ci.lower) && (isSpace(ci.lower[end]) || strings.IndexByte("=/>", ci.lower[end]) >= 0)
		if before && after {
			res = ci.src[i:end]
			break
		}
		from = i + 1
	}
	ci.cache[key] = res
	return res
}
