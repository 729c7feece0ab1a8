package translate

import (
	"fmt"

	"fx2tw/directive"
)

// Scope selects how breakpoint prefix is formed for responsive classes.
type Scope int

const (
	// ScopeBounded limits class to the breakpoint range: "sm:max-md:grow".
	ScopeBounded Scope = iota
	// ScopeOpen applies class from the breakpoint up: "sm:grow".
	ScopeOpen
)

func (s Scope) String() string {
	if s == ScopeOpen {
		return "open"
	}
	return "bounded"
}

// ParseScope converts configuration value into Scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "bounded", "":
		return ScopeBounded, nil
	case "open":
		return ScopeOpen, nil
	}
	return ScopeBounded, fmt.Errorf("unknown responsive scope %q", s)
}

// Prefix returns Tailwind variant prefix for breakpoint.
func (s Scope) Prefix(b directive.Breakpoint) string {
	if s == ScopeOpen {
		return b.String() + ":"
	}
	return b.String() + ":max-" + b.Next() + ":"
}

// Responsive wraps translator so its classes apply only at breakpoint b.
// Attribute results are returned unchanged.
func Responsive(b directive.Breakpoint, s Scope, t Translator) Translator {
	prefix := s.Prefix(b)
	return func(value string, dir directive.Direction) Result {
		res := t(value, dir)
		if res.Kind != KindClasses {
			return res
		}
		scoped := make([]string, len(res.Classes))
		for i, c := range res.Classes {
			scoped[i] = prefix + c
		}
		return Classes(scoped...)
	}
}
