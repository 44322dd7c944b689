// Package engine is a reference implementation of the cssapply.Engine
// contract: a rule table of atomic utilities and a chain of variant
// handlers keyed by :-separated token prefixes.
//
// The engine is deliberately open-ended. Utilities are matched against
// an ordered table of static names and patterns at lookup time, so
// presets can register additional rules without touching the resolver.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/yacobolo/cssapply"
)

// Engine resolves utility tokens against a theme-driven rule table.
// It is safe for concurrent use; Resolve does not mutate any state.
type Engine struct {
	theme   Theme
	rules   []rule
	presets []Preset
}

// New builds an engine over the given theme with the default rule
// table and any extra preset rules appended.
func New(theme Theme, presets ...Preset) *Engine {
	e := &Engine{theme: theme, rules: defaultRules(), presets: presets}
	for _, p := range presets {
		e.rules = append(e.rules, p.Rules(&e.theme)...)
	}
	return e
}

// Theme returns a copy of the engine's theme.
func (e *Engine) Theme() Theme {
	return e.theme
}

// Preflight concatenates the base styles of every installed preset
// that generates any.
func (e *Engine) Preflight() string {
	var parts []string
	for _, p := range e.presets {
		if pf, ok := p.(interface{ Preflight(*Theme) string }); ok {
			if css := pf.Preflight(&e.theme); css != "" {
				parts = append(parts, css)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Default returns an engine over DefaultTheme with the typography
// preset installed.
func Default() *Engine {
	return New(DefaultTheme(), Typography())
}

// Preset contributes additional rules to an engine's table.
type Preset interface {
	Rules(theme *Theme) []rule
}

// Resolve implements cssapply.Engine. A token the table cannot match
// resolves to an empty result with a nil error.
func (e *Engine) Resolve(ctx context.Context, token string) ([]cssapply.ResolvedRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	variants, utility := splitVariants(token)

	state, ok := e.applyVariants(variants)
	if !ok {
		return nil, nil // unknown variant prefix
	}

	base := e.matchUtility(utility)
	if base == nil {
		return nil, nil
	}

	out := make([]cssapply.ResolvedRule, len(base))
	for i, rr := range base {
		out[i] = state.decorate(rr)
	}
	return out, nil
}

// splitVariants separates :-joined variant prefixes from the utility
// name itself.
func splitVariants(token string) (variants []string, utility string) {
	parts := strings.Split(token, ":")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// matchUtility walks the rule table in order and returns the rules of
// the first matching entry.
func (e *Engine) matchUtility(utility string) []cssapply.ResolvedRule {
	for _, r := range e.rules {
		if r.name != "" {
			if r.name == utility {
				return r.resolve(nil, &e.theme)
			}
			continue
		}
		if m := r.pattern.FindStringSubmatch(utility); m != nil {
			if rules := r.resolve(m, &e.theme); rules != nil {
				return rules
			}
		}
	}
	return nil
}

// variantState accumulates the effect of a token's variant prefixes.
type variantState struct {
	pseudo   []string
	darkSel  string // ancestor selector for class-based dark mode
	dir      string // "rtl" or "ltr"
	wrappers []cssapply.Wrapper
}

// applyVariants interprets each prefix. Any unrecognized prefix makes
// the whole token unknown.
func (e *Engine) applyVariants(variants []string) (variantState, bool) {
	var s variantState

	for _, v := range variants {
		switch v {
		case "hover", "focus", "active", "disabled", "visited",
			"focus-visible", "focus-within", "first-child", "last-child":
			s.pseudo = append(s.pseudo, ":"+v)
		case "first":
			s.pseudo = append(s.pseudo, ":first-child")
		case "last":
			s.pseudo = append(s.pseudo, ":last-child")
		case "before", "after", "first-line", "first-letter",
			"placeholder", "selection":
			s.pseudo = append(s.pseudo, "::"+v)
		case "dark":
			if e.theme.DarkStrategy == DarkMedia {
				s.wrappers = append(s.wrappers, cssapply.Wrapper{
					Kind:      cssapply.WrapperMedia,
					Condition: "(prefers-color-scheme: dark)",
				})
			} else {
				s.darkSel = e.theme.DarkSelector
			}
		case "rtl", "ltr":
			s.dir = v
		default:
			if px, ok := e.theme.Breakpoints[v]; ok {
				s.wrappers = append(s.wrappers, cssapply.Wrapper{
					Kind:      cssapply.WrapperMedia,
					Condition: fmt.Sprintf("(min-width: %dpx)", px),
					MinWidth:  px,
				})
				continue
			}
			return variantState{}, false
		}
	}

	return s, true
}

// decorate folds the variant state into a rule produced by the
// utility itself, composing scope prefixes in the fixed dark-then-rtl
// order regardless of the order the prefixes appeared in the token.
func (s variantState) decorate(rr cssapply.ResolvedRule) cssapply.ResolvedRule {
	t := rr.Transform

	var scope []string
	if s.darkSel != "" {
		scope = append(scope, s.darkSel)
	}
	if s.dir != "" {
		scope = append(scope, fmt.Sprintf(`[dir=%q]`, s.dir))
	}
	if t.ScopePrefix != "" {
		scope = append(scope, t.ScopePrefix)
	}
	t.ScopePrefix = strings.Join(scope, " ")

	t.PseudoSuffix = strings.Join(s.pseudo, "") + t.PseudoSuffix

	rr.Transform = t
	rr.Wrappers = append(append([]cssapply.Wrapper{}, s.wrappers...), rr.Wrappers...)
	return rr
}
