package translate

import (
	"fx2tw/directive"
)

// Key identifies translator in Registry. Breakpoint is meaningful only for
// responsive keys.
type Key struct {
	Name       directive.Name
	Breakpoint directive.Breakpoint
	Responsive bool
}

// KeyOf returns registry key for directive occurrence.
func KeyOf(o directive.Occurrence) Key {
	if !o.Responsive {
		return Key{Name: o.Name}
	}
	return Key{Name: o.Name, Breakpoint: o.Breakpoint, Responsive: true}
}

// Registry maps every plain and breakpoint qualified directive to its
// translator. It is immutable after construction and safe for concurrent use.
type Registry struct {
	scope       Scope
	translators map[Key]Translator
}

// NewRegistry builds translators for all directives and all breakpoints.
func NewRegistry(scope Scope) *Registry {
	names, bps := directive.Names(), directive.Breakpoints()

	r := &Registry{
		scope:       scope,
		translators: make(map[Key]Translator, len(names)*(len(bps)+1)),
	}
	for _, n := range names {
		t := For(n)
		r.translators[Key{Name: n}] = t
		for _, b := range bps {
			r.translators[Key{Name: n, Breakpoint: b, Responsive: true}] = Responsive(b, scope, t)
		}
	}
	return r
}

func (r *Registry) Scope() Scope {
	return r.scope
}

func (r *Registry) Len() int {
	return len(r.translators)
}

// Lookup returns translator for occurrence. Occurrences produced by directive
// package always have one.
func (r *Registry) Lookup(o directive.Occurrence) Translator {
	return r.translators[KeyOf(o)]
}

// Translate is a shortcut to find translator and call it.
func (r *Registry) Translate(o directive.Occurrence, dir directive.Direction) Result {
	return r.Lookup(o)(o.Value, dir)
}
