package cssapply

import (
	"context"
	"strings"
)

// Engine resolves a single utility token to the CSS rules that token
// would produce standalone. Resolve must be idempotent and
// side-effect-free for the same token within one engine instance.
// An unrecognized token resolves to an empty slice with a nil error.
type Engine interface {
	Resolve(ctx context.Context, token string) ([]ResolvedRule, error)
}

// ResolvedRule is one CSS rule produced for a utility token: its
// declarations in output order, how the host selector must be
// rewritten, and the ancestor wrappers the rule requires.
type ResolvedRule struct {
	Declarations []Declaration
	Transform    SelectorTransform
	Wrappers     []Wrapper
}

// SelectorTransform describes how a utility rewrites the selector it
// is applied to. The zero value is the identity transform.
type SelectorTransform struct {
	// ScopePrefix is a non-scoped ancestor selector placed before the
	// host selector, e.g. `.dark` or `.dark [dir="rtl"]`. It is not
	// relative to the current style-encapsulation boundary.
	ScopePrefix string

	// PseudoSuffix appends directly to each host branch with no
	// intervening whitespace, e.g. `:hover` or `::first-line`.
	PseudoSuffix string

	// SiblingSuffix is a non-scoped combinator fragment appended after
	// the pseudo-augmented selector, separated by a space, e.g.
	// `> :not([hidden]) ~ :not([hidden])`.
	SiblingSuffix string
}

// IsIdentity reports whether the transform leaves selectors unchanged.
func (t SelectorTransform) IsIdentity() bool {
	return t.ScopePrefix == "" && t.PseudoSuffix == "" && t.SiblingSuffix == ""
}

// WrapperKind categorizes an ancestor wrapper. Wrappers of different
// kinds can never be combined into one condition.
type WrapperKind int

// Wrapper kinds.
const (
	WrapperMedia WrapperKind = iota
	WrapperSupports
)

func (k WrapperKind) String() string {
	switch k {
	case WrapperMedia:
		return "media"
	case WrapperSupports:
		return "supports"
	}
	return "unknown"
}

// Wrapper is an ancestor at-rule context a resolved rule must be
// nested inside, such as `@media (min-width: 768px)`.
type Wrapper struct {
	Kind      WrapperKind
	Condition string

	// MinWidth is the resolved pixel value of a breakpoint media
	// wrapper, used for deterministic ascending emission order.
	// Zero means the wrapper has no natural breakpoint ordering.
	MinWidth int
}

// AtRuleName returns the at-rule keyword for the wrapper, without '@'.
func (w Wrapper) AtRuleName() string {
	return w.Kind.String()
}

// Key serializes the wrapper for grouping equality.
func (w Wrapper) Key() string {
	return w.Kind.String() + " " + w.Condition
}

// serializeChain builds the grouping key of a wrapper chain.
func serializeChain(wrappers []Wrapper) string {
	if len(wrappers) == 0 {
		return ""
	}
	parts := make([]string, len(wrappers))
	for i, w := range wrappers {
		parts[i] = w.Key()
	}
	return strings.Join(parts, " | ")
}
