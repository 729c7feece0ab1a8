package translate

import (
	"strings"

	"fx2tw/directive"
)

// translators has plain (not responsive) translator for every directive.
var translators = map[directive.Name]Translator{
	directive.Flex:        Flex,
	directive.Layout:      Layout,
	directive.LayoutAlign: LayoutAlign,
	directive.FlexFill:    Fill,
	directive.Fill:        Fill,
	directive.Show:        Show,
	directive.Hide:        Hide,
	directive.LayoutGap:   LayoutGap,
	directive.FlexOffset:  FlexOffset,
	directive.FlexOrder:   FlexOrder,
}

// For returns plain translator for directive.
func For(n directive.Name) Translator {
	return translators[n]
}

// Flex translates fxFlex shorthand: "", keyword, "<basis>", "<grow> <basis>"
// or "<grow> <shrink> <basis>".
func Flex(value string, dir directive.Direction) Result {
	var classes []string

	switch value = strings.TrimSpace(value); value {
	case "":
		classes = []string{"grow", "shrink", "basis-0"}
	case "grow", "auto":
		classes = []string{"grow", "shrink", "basis-full"}
	case "initial", "nogrow":
		classes = []string{"grow-0", "shrink", "basis-auto"}
	case "none":
		classes = []string{"grow-0", "shrink-0", "basis-auto"}
	case "noshrink":
		classes = []string{"grow", "shrink-0", "basis-auto"}
	default:
		tokens := strings.Fields(value)
		basis := NormalizePercent(tokens[len(tokens)-1])
		if len(tokens) == 3 {
			classes = []string{
				"grow-[" + tokens[0] + "]",
				"shrink-[" + tokens[1] + "]",
				"basis-[" + basis + "]",
			}
			break
		}
		classes = []string{"grow", "shrink", "basis-[" + basis + "]"}
		if dir == directive.Column {
			classes = append(classes, "min-h-["+basis+"]", "max-h-["+basis+"]")
		} else {
			classes = append(classes, "min-w-["+basis+"]", "max-w-["+basis+"]")
		}
	}
	return Classes(append(classes, "box-border")...)
}

// Layout translates fxLayout "<direction> [wrap]".
func Layout(value string, _ directive.Direction) Result {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return Classes("flex", "flex-row")
	}
	classes := []string{"flex", "flex-" + lookup(directions, tokens[0])}
	if len(tokens) > 1 {
		classes = append(classes, "flex-"+tokens[1])
	}
	return Classes(classes...)
}

// LayoutAlign translates fxLayoutAlign "<main axis> [cross axis]". With single
// token main axis alignment depends on direction.
func LayoutAlign(value string, dir directive.Direction) Result {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		// flex-layout default
		tokens = []string{"start", "stretch"}
	}
	main := lookup(positions, tokens[0])
	if len(tokens) > 1 {
		cross := lookup(positions, tokens[1])
		return Classes("justify-"+main, "content-"+cross, "items-"+cross)
	}
	if dir == directive.Column {
		return Classes("items-" + main)
	}
	return Classes("justify-" + main)
}

// LayoutGap translates fxLayoutGap, only first token is used.
func LayoutGap(value string, _ directive.Direction) Result {
	return Classes("gap-[" + NormalizePercent(firstToken(value)) + "]")
}

// Fill translates fxFill and fxFlexFill, value is ignored.
func Fill(string, directive.Direction) Result {
	return Classes("min-w-full", "min-h-full", "w-full", "h-full", "m-0")
}

// FlexOffset translates fxFlexOffset, only first token is used.
func FlexOffset(value string, _ directive.Direction) Result {
	return Classes("ml-[" + NormalizePercent(firstToken(value)) + "]")
}

// FlexOrder translates fxFlexOrder, only first token is used as is.
func FlexOrder(value string, _ directive.Direction) Result {
	return Classes("order-[" + firstToken(value) + "]")
}

// Show translates fxShow, value is ignored.
func Show(string, directive.Direction) Result {
	return Classes("visible")
}

// Hide translates fxHide, value is ignored.
func Hide(string, directive.Direction) Result {
	return Classes("invisible")
}
