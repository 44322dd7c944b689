package engine

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/yacobolo/cssapply"
)

// rule is one entry of the utility table: either a static name or a
// pattern, and a resolver producing the rules for a match. A resolver
// may return nil to reject a match and let later entries try.
type rule struct {
	name    string
	pattern *regexp.Regexp
	resolve func(match []string, theme *Theme) []cssapply.ResolvedRule
}

// siblingCombinator targets adjacent children of the host, the shape
// space-between utilities style.
const siblingCombinator = "> :not([hidden]) ~ :not([hidden])"

// decls is shorthand for building an ordered declaration list from
// prop/value pairs.
func decls(pairs ...string) []cssapply.Declaration {
	out := make([]cssapply.Declaration, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, cssapply.Declaration{Prop: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// single wraps one plain declaration list into a rule slice.
func single(pairs ...string) []cssapply.ResolvedRule {
	return []cssapply.ResolvedRule{{Declarations: decls(pairs...)}}
}

func staticRule(name string, pairs ...string) rule {
	rules := single(pairs...)
	return rule{name: name, resolve: func([]string, *Theme) []cssapply.ResolvedRule {
		return rules
	}}
}

var (
	spacingRe  = regexp.MustCompile(`^([mp])([trblxy]?)-(\d+(?:\.\d+)?|auto|px)$`)
	sizeRe     = regexp.MustCompile(`^([wh])-(\d+(?:\.\d+)?|full|screen|auto|px)$`)
	textRe     = regexp.MustCompile(`^text-(xs|sm|base|lg|xl|[2-9]xl)$`)
	roundedRe  = regexp.MustCompile(`^rounded(?:-(none|sm|md|lg|xl|full))?$`)
	spaceRe    = regexp.MustCompile(`^space-([xy])-(\d+(?:\.\d+)?)$`)
	positionRe = regexp.MustCompile(`^(static|fixed|absolute|relative|sticky)$`)
	zRe        = regexp.MustCompile(`^z-(\d+|auto)$`)
)

// edge expansions for the t/r/b/l/x/y spacing suffixes
var spacingEdges = map[string][]string{
	"":  {""},
	"t": {"-top"},
	"r": {"-right"},
	"b": {"-bottom"},
	"l": {"-left"},
	"x": {"-left", "-right"},
	"y": {"-top", "-bottom"},
}

var fontSizes = map[string][2]string{
	"xs":   {"0.75rem", "1rem"},
	"sm":   {"0.875rem", "1.25rem"},
	"base": {"1rem", "1.5rem"},
	"lg":   {"1.125rem", "1.75rem"},
	"xl":   {"1.25rem", "1.75rem"},
	"2xl":  {"1.5rem", "2rem"},
	"3xl":  {"1.875rem", "2.25rem"},
	"4xl":  {"2.25rem", "2.5rem"},
}

var radii = map[string]string{
	"":     "0.25rem",
	"none": "0",
	"sm":   "0.125rem",
	"md":   "0.375rem",
	"lg":   "0.5rem",
	"xl":   "0.75rem",
	"full": "9999px",
}

// defaultRules builds the stock utility table. Order matters: the
// first matching entry wins.
func defaultRules() []rule {
	return []rule{
		staticRule("flex", "display", "flex"),
		staticRule("inline-flex", "display", "inline-flex"),
		staticRule("block", "display", "block"),
		staticRule("inline-block", "display", "inline-block"),
		staticRule("inline", "display", "inline"),
		staticRule("grid", "display", "grid"),
		staticRule("hidden", "display", "none"),
		staticRule("flex-row", "flex-direction", "row"),
		staticRule("flex-col", "flex-direction", "column"),
		staticRule("items-center", "align-items", "center"),
		staticRule("justify-center", "justify-content", "center"),
		staticRule("justify-between", "justify-content", "space-between"),
		staticRule("font-bold", "font-weight", "700"),
		staticRule("font-medium", "font-weight", "500"),
		staticRule("font-normal", "font-weight", "400"),
		staticRule("underline", "text-decoration-line", "underline"),
		staticRule("truncate",
			"overflow", "hidden",
			"text-overflow", "ellipsis",
			"white-space", "nowrap"),

		{pattern: positionRe, resolve: resolvePosition},
		{pattern: spacingRe, resolve: resolveSpacing},
		{pattern: sizeRe, resolve: resolveSize},
		{pattern: textRe, resolve: resolveText},
		{pattern: roundedRe, resolve: resolveRounded},
		{pattern: spaceRe, resolve: resolveSpaceBetween},
		{pattern: zRe, resolve: resolveZ},
	}
}

func resolvePosition(m []string, _ *Theme) []cssapply.ResolvedRule {
	return single("position", m[1])
}

func resolveSpacing(m []string, theme *Theme) []cssapply.ResolvedRule {
	props := map[byte]string{'m': "margin", 'p': "padding"}
	base := props[m[1][0]]

	value := spacingValue(m[3], theme)
	if value == "" {
		return nil
	}

	var pairs []string
	for _, edge := range spacingEdges[m[2]] {
		pairs = append(pairs, base+edge, value)
	}
	return single(pairs...)
}

func resolveSize(m []string, theme *Theme) []cssapply.ResolvedRule {
	props := map[byte]string{'w': "width", 'h': "height"}
	prop := props[m[1][0]]

	switch m[2] {
	case "full":
		return single(prop, "100%")
	case "screen":
		if prop == "width" {
			return single(prop, "100vw")
		}
		return single(prop, "100vh")
	case "auto", "px":
		return single(prop, spacingValue(m[2], theme))
	}
	return single(prop, spacingValue(m[2], theme))
}

func resolveText(m []string, _ *Theme) []cssapply.ResolvedRule {
	size, ok := fontSizes[m[1]]
	if !ok {
		return nil
	}
	return single("font-size", size[0], "line-height", size[1])
}

func resolveRounded(m []string, _ *Theme) []cssapply.ResolvedRule {
	return single("border-radius", radii[m[1]])
}

// resolveSpaceBetween emits the adjacent-sibling spacing rule: a
// reverse-toggle custom property followed by the margins referencing
// it, attached to the host through the sibling combinator.
func resolveSpaceBetween(m []string, theme *Theme) []cssapply.ResolvedRule {
	axis := m[1]
	value := spacingValue(m[2], theme)

	reverseProp := "--un-space-" + axis + "-reverse"
	var pairs []string
	pairs = append(pairs, reverseProp, "0")
	if axis == "x" {
		pairs = append(pairs,
			"margin-right", fmt.Sprintf("calc(%s * var(%s))", value, reverseProp),
			"margin-left", fmt.Sprintf("calc(%s * calc(1 - var(%s)))", value, reverseProp),
		)
	} else {
		pairs = append(pairs,
			"margin-bottom", fmt.Sprintf("calc(%s * var(%s))", value, reverseProp),
			"margin-top", fmt.Sprintf("calc(%s * calc(1 - var(%s)))", value, reverseProp),
		)
	}

	return []cssapply.ResolvedRule{{
		Declarations: decls(pairs...),
		Transform:    cssapply.SelectorTransform{SiblingSuffix: siblingCombinator},
	}}
}

func resolveZ(m []string, _ *Theme) []cssapply.ResolvedRule {
	return single("z-index", m[1])
}

// spacingValue converts a scale step to its CSS length.
func spacingValue(step string, theme *Theme) string {
	switch step {
	case "auto":
		return "auto"
	case "px":
		return "1px"
	case "0":
		return "0"
	}
	n, err := strconv.ParseFloat(step, 64)
	if err != nil {
		return ""
	}
	return trimZeros(strconv.FormatFloat(n*theme.SpacingUnit, 'f', 4, 64)) + "rem"
}

func trimZeros(s string) string {
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
