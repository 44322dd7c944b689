package cssapply

import "context"

// resolvedToken pairs a utility token with the rules the engine
// produced for it. Token order within a directive is preserved; it
// drives declaration-merge precedence.
type resolvedToken struct {
	token string
	rules []ResolvedRule
}

// resolveDirective resolves every token of one directive against the
// engine. Unknown tokens (empty result, nil error) are dropped
// silently and reported in unknown; an engine failure is fatal for
// the whole transform run.
func resolveDirective(ctx context.Context, eng Engine, d *Directive) (resolved []resolvedToken, unknown []string, err error) {
	for _, token := range d.Tokens {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rules, err := eng.Resolve(ctx, token)
		if err != nil {
			return nil, nil, &EngineError{Token: token, Selector: d.HostSelector, Err: err}
		}
		if len(rules) == 0 {
			unknown = append(unknown, token)
			continue
		}
		resolved = append(resolved, resolvedToken{token: token, rules: rules})
	}
	return resolved, unknown, nil
}
