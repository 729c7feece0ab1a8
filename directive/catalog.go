// Package directive describes Angular flex-layout directives which could be
// found on markup elements and provides means to locate them.
package directive

import (
	"fmt"
	"strings"
)

// Name identifies supported flex-layout directive.
type Name int

const (
	Flex Name = iota
	Layout
	LayoutAlign
	FlexFill
	Fill
	Show
	Hide
	LayoutGap
	FlexOffset
	FlexOrder
)

// NOTE: order must match constants above.
var names = [...]string{
	"fxFlex",
	"fxLayout",
	"fxLayoutAlign",
	"fxFlexFill",
	"fxFill",
	"fxShow",
	"fxHide",
	"fxLayoutGap",
	"fxFlexOffset",
	"fxFlexOrder",
}

// attrNames maps lower case attribute names (as produced by HTML parser) to
// directives.
var attrNames = func() map[string]Name {
	m := make(map[string]Name, len(names))
	for i, n := range names {
		m[strings.ToLower(n)] = Name(i)
	}
	return m
}()

// String returns canonical directive spelling as used in templates.
func (n Name) String() string {
	if n < 0 || int(n) >= len(names) {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n]
}

// Attr returns attribute name as it appears on parsed element.
func (n Name) Attr() string {
	return strings.ToLower(n.String())
}

// Names returns all supported directives.
func Names() []Name {
	res := make([]Name, len(names))
	for i := range names {
		res[i] = Name(i)
	}
	return res
}

// ParseName converts directive name into Name, matching is case insensitive.
func ParseName(s string) (Name, error) {
	if n, ok := attrNames[strings.ToLower(s)]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%q is not a supported directive", s)
}

// Breakpoint is a screen size tier flex-layout responsive API uses as
// directive suffix.
type Breakpoint int

const (
	XS Breakpoint = iota
	SM
	MD
	LG
	XL
)

var breakpoints = [...]string{"xs", "sm", "md", "lg", "xl"}

// screenAbove has Tailwind screen names following each breakpoint, Tailwind
// has no tier above xl other than 2xl.
var screenAbove = [...]string{"sm", "md", "lg", "xl", "2xl"}

func (b Breakpoint) String() string {
	if b < 0 || int(b) >= len(breakpoints) {
		return fmt.Sprintf("Breakpoint(%d)", int(b))
	}
	return breakpoints[b]
}

// Next returns name of the next larger screen.
func (b Breakpoint) Next() string {
	if b < 0 || int(b) >= len(screenAbove) {
		return ""
	}
	return screenAbove[b]
}

// Breakpoints returns all supported breakpoints from smallest to largest.
func Breakpoints() []Breakpoint {
	res := make([]Breakpoint, len(breakpoints))
	for i := range breakpoints {
		res[i] = Breakpoint(i)
	}
	return res
}

// ParseBreakpoint converts breakpoint suffix into Breakpoint.
func ParseBreakpoint(s string) (Breakpoint, error) {
	for i, b := range breakpoints {
		if b == s {
			return Breakpoint(i), nil
		}
	}
	return 0, fmt.Errorf("%q is not a supported breakpoint", s)
}

// AttrName returns responsive attribute name for directive, e.g. "fxflex.sm".
func AttrName(n Name, b Breakpoint) string {
	return n.Attr() + "." + b.String()
}

// IsDirective reports whether attribute name is plain supported directive.
func IsDirective(attr string) bool {
	_, ok := attrNames[attr]
	return ok
}

// IsResponsiveDirective reports whether attribute name is supported directive
// qualified with exactly the requested breakpoint.
func IsResponsiveDirective(attr string, b Breakpoint) bool {
	name, suffix, found := strings.Cut(attr, ".")
	if !found || !IsDirective(name) {
		return false
	}
	bp, err := ParseBreakpoint(suffix)
	return err == nil && bp == b
}
