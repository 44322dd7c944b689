package cssapply

import "strings"

// RewriteSelector applies a transform to a host selector. Each branch
// of a comma-separated selector list is rewritten independently and
// identically; the result preserves the list structure.
//
// Composition order per branch:
//
//	[scope prefix] host[pseudo suffix] [sibling combinator]
//
// The scope prefix and sibling fragment encode context that must not
// be interpreted relative to the current style-encapsulation boundary,
// so both are wrapped in a :global(...) marker unless stripping is
// requested.
func RewriteSelector(host string, t SelectorTransform, stripGlobal bool) string {
	if t.IsIdentity() {
		return host
	}

	branches := SplitSelectorList(host)
	rewritten := make([]string, len(branches))
	for i, branch := range branches {
		rewritten[i] = rewriteBranch(branch, t, stripGlobal)
	}
	return strings.Join(rewritten, ", ")
}

func rewriteBranch(branch string, t SelectorTransform, stripGlobal bool) string {
	var parts []string

	if t.ScopePrefix != "" {
		parts = append(parts, markGlobal(t.ScopePrefix, stripGlobal))
	}

	// the pseudo suffix concatenates directly, no whitespace
	parts = append(parts, branch+t.PseudoSuffix)

	if t.SiblingSuffix != "" {
		parts = append(parts, markGlobal(t.SiblingSuffix, stripGlobal))
	}

	return strings.Join(parts, " ")
}

func markGlobal(fragment string, strip bool) string {
	if strip {
		return fragment
	}
	return ":global(" + fragment + ")"
}
