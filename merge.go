package cssapply

import "sort"

// MergedRule is the result of bucketing a directive's resolved rules
// by (rewritten selector, wrapper chain) and merging declarations
// within each bucket.
type MergedRule struct {
	Selector string
	Wrapper  *Wrapper // combined wrapper, nil when the rule is unwrapped
	Decls    []Declaration

	// Inline marks the group whose selector is the untransformed host
	// with no wrapper; its declarations replace the directive node
	// inside the host rule.
	Inline bool

	order int // first-appearance rank within the directive
}

type mergeGroup struct {
	selector string
	wrappers []Wrapper
	decls    []Declaration
	propIdx  map[string]int
	inline   bool
	order    int
}

// mergeDirective groups and merges the resolved rules of a single
// directive. Rules from different directives are never merged into
// each other; callers invoke this once per directive.
func mergeDirective(d *Directive, resolved []resolvedToken, stripGlobal bool) ([]MergedRule, error) {
	groups := make(map[string]*mergeGroup)
	var keys []string

	for _, rt := range resolved {
		for _, rr := range rt.rules {
			selector := RewriteSelector(d.HostSelector, rr.Transform, stripGlobal)
			key := selector + "\x00" + serializeChain(rr.Wrappers)

			g, ok := groups[key]
			if !ok {
				g = &mergeGroup{
					selector: selector,
					wrappers: rr.Wrappers,
					propIdx:  make(map[string]int),
					inline:   rr.Transform.IsIdentity() && len(rr.Wrappers) == 0,
					order:    len(keys),
				}
				groups[key] = g
				keys = append(keys, key)
			}

			for _, decl := range rr.Declarations {
				if i, exists := g.propIdx[decl.Prop]; exists {
					// later token's value wins, keeping the earlier
					// declaration's position (single-rule cascade)
					g.decls[i].Value = decl.Value
					continue
				}
				g.propIdx[decl.Prop] = len(g.decls)
				g.decls = append(g.decls, decl)
			}
		}
	}

	merged := make([]MergedRule, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		mr := MergedRule{
			Selector: g.selector,
			Decls:    g.decls,
			Inline:   g.inline,
			order:    g.order,
		}
		if len(g.wrappers) > 0 {
			w, err := combineWrappers(g.selector, g.wrappers)
			if err != nil {
				return nil, err
			}
			mr.Wrapper = &w
		}
		merged = append(merged, mr)
	}

	// unwrapped rules first in first-appearance order, then wrapped
	// rules ascending by breakpoint, falling back to appearance order
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if (a.Wrapper == nil) != (b.Wrapper == nil) {
			return a.Wrapper == nil
		}
		if a.Wrapper != nil && a.Wrapper.MinWidth != b.Wrapper.MinWidth &&
			a.Wrapper.MinWidth > 0 && b.Wrapper.MinWidth > 0 {
			return a.Wrapper.MinWidth < b.Wrapper.MinWidth
		}
		return a.order < b.order
	})

	return merged, nil
}
