package cssapply

import "fmt"

// WrapperConflictError reports two ancestor wrappers that cannot be
// combined into a single valid condition for the same selector. It is
// fatal for the whole transform run: silently dropping one wrapper
// would drop styling rules.
type WrapperConflictError struct {
	Selector string
	First    Wrapper
	Second   Wrapper
}

func (e *WrapperConflictError) Error() string {
	return fmt.Sprintf(
		"cannot combine @%s %s with @%s %s for selector %q",
		e.First.AtRuleName(), e.First.Condition,
		e.Second.AtRuleName(), e.Second.Condition,
		e.Selector,
	)
}

// EngineError wraps a failure reported by the utility engine while
// resolving a token. The generated CSS may be structurally incomplete,
// so it aborts the whole transform run.
type EngineError struct {
	Token    string
	Selector string
	Err      error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("resolving %q for selector %q: %v", e.Token, e.Selector, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
