package engine

import (
	"strings"

	"github.com/yacobolo/cssapply"
)

// typography is the prose preset: a single `prose` utility expanding
// to a static element-to-declaration mapping driven by theme colors.
//
// All per-run state lives in a proseContext built fresh for each
// invocation and threaded through rule matching and preflight
// rendering, so concurrent or repeated runs over one engine cannot
// observe each other.
type typography struct {
	className string
}

// Typography returns the prose preset with the default class name.
func Typography() Preset {
	return &typography{className: "prose"}
}

// proseContext is the explicit per-invocation state of the preset: it
// accumulates the rule set of one resolve or preflight call.
type proseContext struct {
	class string
	rules []cssapply.ResolvedRule
}

func (t *typography) newContext() *proseContext {
	return &proseContext{class: t.className}
}

type proseElement struct {
	fragment string // descendant fragment appended after the host
	colorKey string // theme color, "" for none
	extra    []string
}

var proseElements = []proseElement{
	{fragment: "p", extra: []string{"margin-top", "1.25em", "margin-bottom", "1.25em"}},
	{fragment: "a", colorKey: "links", extra: []string{"text-decoration", "underline", "font-weight", "500"}},
	{fragment: "strong", colorKey: "headings", extra: []string{"font-weight", "600"}},
	{fragment: "h1", colorKey: "headings", extra: []string{"font-size", "2.25em", "font-weight", "800", "margin-top", "0", "margin-bottom", "0.8888889em"}},
	{fragment: "h2", colorKey: "headings", extra: []string{"font-size", "1.5em", "font-weight", "700", "margin-top", "2em", "margin-bottom", "1em"}},
	{fragment: "h3", colorKey: "headings", extra: []string{"font-size", "1.25em", "font-weight", "600", "margin-top", "1.6em", "margin-bottom", "0.6em"}},
	{fragment: "code", colorKey: "code", extra: []string{"font-size", "0.875em", "font-weight", "600"}},
	{fragment: "pre", extra: []string{"overflow-x", "auto", "border-radius", "0.375rem", "padding", "0.8571429em 1.1428571em"}},
	{fragment: "blockquote", colorKey: "headings", extra: []string{"font-style", "italic", "border-left-width", "0.25rem", "border-left-color", "var(--prose-borders, #e5e7eb)"}},
	{fragment: "hr", extra: []string{"border-color", "var(--prose-borders, #e5e7eb)", "margin-top", "3em", "margin-bottom", "3em"}},
}

// Rules implements Preset. The resolver builds a fresh proseContext
// per call; no state survives an invocation.
func (t *typography) Rules(_ *Theme) []rule {
	return []rule{{
		name: t.className,
		resolve: func(_ []string, theme *Theme) []cssapply.ResolvedRule {
			pctx := t.newContext()
			t.match(pctx, theme)
			return pctx.rules
		},
	}}
}

// match fills the context with the prose rule set for one invocation.
func (t *typography) match(pctx *proseContext, theme *Theme) {
	pctx.rules = append(pctx.rules, cssapply.ResolvedRule{
		Declarations: decls(
			"color", theme.Colors["body"],
			"max-width", "65ch",
			"font-size", "1rem",
			"line-height", "1.75",
		),
	})

	for _, el := range proseElements {
		pairs := make([]string, 0, len(el.extra)+2)
		if el.colorKey != "" {
			pairs = append(pairs, "color", theme.Colors[el.colorKey])
		}
		pairs = append(pairs, el.extra...)

		pctx.rules = append(pctx.rules, cssapply.ResolvedRule{
			Declarations: decls(pairs...),
			Transform:    cssapply.SelectorTransform{SiblingSuffix: el.fragment},
		})
	}
}

// Preflight renders the preset's base styles as standalone CSS. A new
// proseContext is created for the call, mirroring Rules.
func (t *typography) Preflight(theme *Theme) string {
	pctx := t.newContext()
	t.match(pctx, theme)

	var b strings.Builder
	for i, rr := range pctx.rules {
		selector := "." + pctx.class
		if rr.Transform.SiblingSuffix != "" {
			selector += " " + rr.Transform.SiblingSuffix
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(selector)
		b.WriteString(" {\n")
		for _, d := range rr.Declarations {
			b.WriteString("  ")
			b.WriteString(d.Prop)
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
