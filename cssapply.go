// Package cssapply expands @apply and --at-apply directives in CSS.
//
// A directive references atomic utility class names; each token is
// resolved to its generated declarations through an Engine, then the
// declarations are re-assembled into minimal CSS, splitting across new
// selectors, pseudo-class suffixes and media queries as each utility's
// variants demand.
//
//	res, err := cssapply.Transform(ctx, code, eng, nil)
//	if err != nil {
//		// fatal: engine failure or wrapper conflict
//	}
//	if res == nil {
//		// no directives present, caller can skip the write
//	}
//
// The expansion is all-or-nothing per stylesheet: a failed directive
// fails the transform rather than emitting half-expanded CSS.
package cssapply

import (
	"context"
	"strings"
	"sync"
)

// Options tunes the transform. The zero value is a valid default.
type Options struct {
	// StripGlobalMarker emits dark-mode/RTL ancestor prefixes and
	// sibling combinator fragments bare instead of wrapping them in
	// :global(...). For consumers without style encapsulation.
	StripGlobalMarker bool
}

// Result is the output of a transform run.
type Result struct {
	Code string

	Directives     int      // directives expanded
	TokensResolved int      // tokens that produced output
	UnknownTokens  []string // tokens the engine did not recognize, in document order
}

// Transform expands every apply directive in code using eng and
// returns the rewritten stylesheet. It returns (nil, nil) when the
// source contains no directive so callers can skip unnecessary work.
//
// Directives are resolved concurrently but written back in document
// order; the output is deterministic for a given engine and input.
func Transform(ctx context.Context, code string, eng Engine, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if !strings.Contains(code, "@apply") && !strings.Contains(code, directiveProp) {
		return nil, nil
	}

	sheet := ParseStylesheet(code)
	directives := ScanDirectives(sheet)
	if len(directives) == 0 {
		return nil, nil
	}

	type directiveOutput struct {
		merged  []MergedRule
		unknown []string
		err     error
	}

	// scatter over directives, gather by index for a deterministic join
	outputs := make([]directiveOutput, len(directives))
	var wg sync.WaitGroup
	for i, d := range directives {
		wg.Add(1)
		go func(i int, d *Directive) {
			defer wg.Done()
			resolved, unknown, err := resolveDirective(ctx, eng, d)
			if err != nil {
				outputs[i] = directiveOutput{err: err}
				return
			}
			merged, err := mergeDirective(d, resolved, opts.StripGlobalMarker)
			outputs[i] = directiveOutput{merged: merged, unknown: unknown, err: err}
		}(i, d)
	}
	wg.Wait()

	result := &Result{Directives: len(directives)}
	exps := make(map[Node]*expansion, len(directives))
	for i, d := range directives {
		out := outputs[i]
		if out.err != nil {
			return nil, out.err
		}
		exps[d.SourceNode] = buildExpansion(out.merged)
		result.UnknownTokens = append(result.UnknownTokens, out.unknown...)
		result.TokensResolved += len(d.Tokens) - len(out.unknown)
	}

	sheet.Nodes = rewriteNodes(sheet.Nodes, exps)
	result.Code = sheet.Serialize()
	return result, nil
}
