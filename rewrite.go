package cssapply

// expansion is the fully merged output of one directive, split into
// the nodes that replace the directive in place and the rules that
// follow the host rule at the same nesting level.
type expansion struct {
	inline []Node
	after  []Node
}

// buildExpansion lays out a directive's merged rules. The inline
// group's declarations keep the directive's position among its
// sibling declarations; every other group becomes a new rule, with
// wrapped rules sharing one at-rule per combined condition.
func buildExpansion(merged []MergedRule) *expansion {
	exp := &expansion{}
	wrapperNodes := make(map[string]*AtRule)

	for _, mr := range merged {
		if mr.Inline {
			for _, decl := range mr.Decls {
				d := decl
				exp.inline = append(exp.inline, &d)
			}
			continue
		}

		rule := &Rule{Selector: mr.Selector}
		for _, decl := range mr.Decls {
			d := decl
			rule.Nodes = append(rule.Nodes, &d)
		}

		if mr.Wrapper == nil {
			exp.after = append(exp.after, rule)
			continue
		}

		key := mr.Wrapper.Key()
		at, ok := wrapperNodes[key]
		if !ok {
			at = &AtRule{
				Name:     mr.Wrapper.AtRuleName(),
				Params:   mr.Wrapper.Condition,
				HasBlock: true,
			}
			wrapperNodes[key] = at
			exp.after = append(exp.after, at)
		}
		at.Nodes = append(at.Nodes, rule)
	}

	return exp
}

// rewriteNodes rebuilds a node list, splicing each directive's
// expansion in. Host rules emptied by directive removal are dropped;
// everything else passes through unchanged.
func rewriteNodes(nodes []Node, exps map[Node]*expansion) []Node {
	out := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		switch v := n.(type) {
		case *AtRule:
			if v.HasBlock {
				v.Nodes = rewriteNodes(v.Nodes, exps)
			}
			out = append(out, v)

		case *Rule:
			var after []Node
			hadDirective := false
			children := make([]Node, 0, len(v.Nodes))

			for _, c := range v.Nodes {
				exp, ok := exps[c]
				if !ok {
					children = append(children, c)
					continue
				}
				hadDirective = true
				children = append(children, exp.inline...)
				after = append(after, exp.after...)
			}

			v.Nodes = children
			if !hadDirective || len(children) > 0 {
				out = append(out, v)
			}
			out = append(out, after...)

		default:
			out = append(out, n)
		}
	}

	return out
}
