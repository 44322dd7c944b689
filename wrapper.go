package cssapply

import "strings"

// combineWrappers folds a wrapper chain of length > 1 into a single
// wrapper by logical conjunction. Two media wrappers whose conditions
// are fully parenthesized combine with an explicit ` and `, which can
// never yield a condition missing its combinator keyword. Anything
// not provably combinable is a WrapperConflictError.
func combineWrappers(selector string, wrappers []Wrapper) (Wrapper, error) {
	combined := wrappers[0]
	for _, w := range wrappers[1:] {
		if w.Key() == combined.Key() {
			continue // same wrapper demanded twice
		}
		if w.Kind != combined.Kind {
			return Wrapper{}, &WrapperConflictError{Selector: selector, First: combined, Second: w}
		}
		if !isConjoinable(combined.Condition) || !isConjoinable(w.Condition) {
			// a bare media type ("screen", "print") cannot be safely
			// conjoined with a parenthesized condition
			return Wrapper{}, &WrapperConflictError{Selector: selector, First: combined, Second: w}
		}
		combined = Wrapper{
			Kind:      combined.Kind,
			Condition: combined.Condition + " and " + w.Condition,
			MinWidth:  maxInt(combined.MinWidth, w.MinWidth),
		}
	}
	return combined, nil
}

// isConjoinable reports whether a condition consists solely of
// parenthesized condition groups already joined by `and`.
func isConjoinable(condition string) bool {
	rest := strings.TrimSpace(condition)
	for rest != "" {
		if !strings.HasPrefix(rest, "(") {
			return false
		}
		depth := 0
		end := -1
		for i := 0; i < len(rest); i++ {
			switch rest[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return false // unbalanced
		}
		rest = strings.TrimSpace(rest[end+1:])
		if rest == "" {
			return true
		}
		if !strings.HasPrefix(rest, "and ") && !strings.HasPrefix(rest, "and(") {
			return false
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "and"))
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
