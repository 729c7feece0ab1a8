// Package translate turns flex-layout directive values into Tailwind CSS
// utility classes.
package translate

import (
	"strings"

	"fx2tw/directive"
)

// Kind tells which part of Result is in use.
type Kind int

const (
	KindClasses Kind = iota
	KindAttribute
)

// Result is the outcome of translating single directive occurrence: either a
// set of classes to add to the element or an attribute to set on it.
type Result struct {
	Kind    Kind
	Classes []string
	Name    string
	Value   string
}

// Classes returns class set result.
func Classes(classes ...string) Result {
	return Result{Kind: KindClasses, Classes: classes}
}

// Attribute returns attribute result.
func Attribute(name, value string) Result {
	return Result{Kind: KindAttribute, Name: name, Value: value}
}

func (r Result) String() string {
	if r.Kind == KindAttribute {
		return r.Name + `="` + r.Value + `"`
	}
	return strings.Join(r.Classes, " ")
}

// Translator converts raw directive value into Result. Translators never fail,
// unexpected tokens end up in class names verbatim.
type Translator func(value string, dir directive.Direction) Result
