package translate

import (
	"math"
	"strconv"
	"strings"
)

// flex-layout direction keywords to Tailwind flex-direction suffixes.
var directions = map[string]string{
	"row":            "row",
	"row-reverse":    "row-reverse",
	"column":         "col",
	"column-reverse": "col-reverse",
}

// flex-layout alignment keywords to Tailwind justify/items/content suffixes.
var positions = map[string]string{
	"start":         "start",
	"flex-start":    "start",
	"center":        "center",
	"end":           "end",
	"flex-end":      "end",
	"space-between": "between",
	"space-around":  "around",
	"space-evenly":  "evenly",
	"stretch":       "stretch",
	"baseline":      "baseline",
}

func lookup(lexicon map[string]string, token string) string {
	if v, ok := lexicon[token]; ok {
		return v
	}
	return token
}

// NormalizePercent renders numeric token as percentage, any other token
// (value with explicit unit, keyword, calc expression) is returned as is.
func NormalizePercent(token string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return token
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + "%"
}

// firstToken returns first whitespace separated token of the value or empty
// string.
func firstToken(value string) string {
	if fields := strings.Fields(value); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
