package cssapply_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssapply"
	"github.com/yacobolo/cssapply/engine"
)

// stubEngine serves canned resolutions for error-path tests.
type stubEngine struct {
	rules map[string][]cssapply.ResolvedRule
	errs  map[string]error
}

func (s *stubEngine) Resolve(_ context.Context, token string) ([]cssapply.ResolvedRule, error) {
	if err := s.errs[token]; err != nil {
		return nil, err
	}
	return s.rules[token], nil
}

// assertCSSEqual compares two stylesheets structurally, so formatting
// differences in the expectation text don't matter.
func assertCSSEqual(t *testing.T, want, got string) {
	t.Helper()
	diff := cmp.Diff(cssapply.ParseStylesheet(want), cssapply.ParseStylesheet(got))
	if diff != "" {
		t.Errorf("stylesheet mismatch (-want +got):\n%s\ngot:\n%s", diff, got)
	}
}

func transform(t *testing.T, css string) *cssapply.Result {
	t.Helper()
	res, err := cssapply.Transform(context.Background(), css, engine.Default(), nil)
	require.NoError(t, err)
	return res
}

func TestTransformBase(t *testing.T) {
	res := transform(t, ".btn { @apply flex mb-1; }")
	require.NotNil(t, res)
	assertCSSEqual(t, `.btn { display: flex; margin-bottom: 0.25rem; }`, res.Code)
	assert.Equal(t, 1, res.Directives)
	assert.Equal(t, 2, res.TokensResolved)
	assert.Empty(t, res.UnknownTokens)
}

func TestTransformNoDirective(t *testing.T) {
	res, err := cssapply.Transform(context.Background(), ".btn { color: red; }", engine.Default(), nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestTransformQuotingHasNoEffect(t *testing.T) {
	quoted := transform(t, `.btn { --at-apply: "flex rtl:mr-1"; }`)
	unquoted := transform(t, `.btn { --at-apply: flex rtl:mr-1; }`)
	require.NotNil(t, quoted)
	require.NotNil(t, unquoted)
	assert.Equal(t, unquoted.Code, quoted.Code)
}

func TestTransformDirectivePositionPreserved(t *testing.T) {
	res := transform(t, ".btn { color: red; @apply flex; background: blue; }")
	require.NotNil(t, res)

	sheet := cssapply.ParseStylesheet(res.Code)
	rule := sheet.Nodes[0].(*cssapply.Rule)
	require.Len(t, rule.Nodes, 3)
	assert.Equal(t, "color", rule.Nodes[0].(*cssapply.Declaration).Prop)
	assert.Equal(t, "display", rule.Nodes[1].(*cssapply.Declaration).Prop)
	assert.Equal(t, "background", rule.Nodes[2].(*cssapply.Declaration).Prop)
}

func TestTransformBreakpointOrdering(t *testing.T) {
	res := transform(t, ".custom-class { @apply mb-1 md:block; }")
	require.NotNil(t, res)

	want := `.custom-class {
  margin-bottom: 0.25rem;
}

@media (min-width: 768px) {
  .custom-class {
    display: block;
  }
}
`
	assert.Equal(t, want, res.Code)
}

func TestTransformDarkRtlHover(t *testing.T) {
	res := transform(t, "button, .btn { @apply dark:rtl:hover:mr-1; }")
	require.NotNil(t, res)

	// two branches, each ancestor-prefixed and pseudo-suffixed, no
	// media wrapper; the emptied host rule is gone
	want := `:global(.dark [dir="rtl"]) button:hover,
:global(.dark [dir="rtl"]) .btn:hover {
  margin-right: 0.25rem;
}
`
	assert.Equal(t, want, res.Code)
}

func TestTransformVariantPrefixOrderIsFixed(t *testing.T) {
	a := transform(t, ".a { @apply dark:rtl:mr-1; }")
	b := transform(t, ".a { @apply rtl:dark:mr-1; }")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Code, b.Code)
}

func TestTransformSiblingUtility(t *testing.T) {
	res := transform(t, ".row { @apply space-x-2; }")
	require.NotNil(t, res)

	sheet := cssapply.ParseStylesheet(res.Code)
	require.Len(t, sheet.Nodes, 1)
	rule := sheet.Nodes[0].(*cssapply.Rule)
	assert.Equal(t, ".row :global(> :not([hidden]) ~ :not([hidden]))", rule.Selector)

	// the reverse toggle must precede the margins that reference it
	require.Len(t, rule.Nodes, 3)
	assert.Equal(t, "--un-space-x-reverse", rule.Nodes[0].(*cssapply.Declaration).Prop)
	assert.Equal(t, "margin-right", rule.Nodes[1].(*cssapply.Declaration).Prop)
	assert.Equal(t, "margin-left", rule.Nodes[2].(*cssapply.Declaration).Prop)
}

func TestTransformUnknownTokenTolerance(t *testing.T) {
	res := transform(t, ".a { @apply flex no-such-utility; }")
	require.NotNil(t, res)
	assertCSSEqual(t, ".a { display: flex; }", res.Code)
	assert.Equal(t, []string{"no-such-utility"}, res.UnknownTokens)
	assert.Equal(t, 1, res.TokensResolved)
}

func TestTransformAllUnknownDirectiveRemoved(t *testing.T) {
	res := transform(t, `.a { @apply no-such-utility; }
.b { color: red; }`)
	require.NotNil(t, res)
	assertCSSEqual(t, ".b { color: red; }", res.Code)
}

func TestTransformEmptyDirectiveRemoved(t *testing.T) {
	res := transform(t, ".a { @apply ; }\n.b { color: red; }")
	require.NotNil(t, res)
	assertCSSEqual(t, ".b { color: red; }", res.Code)
}

func TestTransformDocumentOrder(t *testing.T) {
	res := transform(t, `.first { @apply flex; }
.second { @apply block; }`)
	require.NotNil(t, res)

	sheet := cssapply.ParseStylesheet(res.Code)
	require.Len(t, sheet.Nodes, 2)
	assert.Equal(t, ".first", sheet.Nodes[0].(*cssapply.Rule).Selector)
	assert.Equal(t, ".second", sheet.Nodes[1].(*cssapply.Rule).Selector)
}

func TestTransformInsideExistingMedia(t *testing.T) {
	res := transform(t, `@media (min-width: 640px) { .a { @apply mb-1 hover:mr-1; } }`)
	require.NotNil(t, res)

	want := `@media (min-width: 640px) {
  .a {
    margin-bottom: 0.25rem;
  }
  .a:hover {
    margin-right: 0.25rem;
  }
}
`
	assert.Equal(t, want, res.Code)
}

func TestTransformSharedWrapperReused(t *testing.T) {
	res := transform(t, ".a { @apply md:block md:hover:mr-1; }")
	require.NotNil(t, res)

	sheet := cssapply.ParseStylesheet(res.Code)
	mediaCount := 0
	for _, n := range sheet.Nodes {
		if at, ok := n.(*cssapply.AtRule); ok && at.Name == "media" {
			mediaCount++
			assert.Len(t, at.Nodes, 2)
		}
	}
	assert.Equal(t, 1, mediaCount)
}

func TestTransformNonDirectiveContentUntouched(t *testing.T) {
	res := transform(t, `/* keep me */
.plain { color: red; }

.btn { @apply flex; }`)
	require.NotNil(t, res)
	assertCSSEqual(t, `/* keep me */
.plain { color: red; }
.btn { display: flex; }`, res.Code)
}

func TestTransformEngineFailureIsFatal(t *testing.T) {
	eng := &stubEngine{errs: map[string]error{"boom": errors.New("registry corrupt")}}

	_, err := cssapply.Transform(context.Background(), ".a { @apply boom; }", eng, nil)
	var engErr *cssapply.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, "boom", engErr.Token)
	assert.Equal(t, ".a", engErr.Selector)
}

func TestTransformWrapperConflictIsFatal(t *testing.T) {
	eng := &stubEngine{rules: map[string][]cssapply.ResolvedRule{
		"clash": {{
			Declarations: []cssapply.Declaration{{Prop: "display", Value: "grid"}},
			Wrappers: []cssapply.Wrapper{
				{Kind: cssapply.WrapperMedia, Condition: "(min-width: 768px)", MinWidth: 768},
				{Kind: cssapply.WrapperSupports, Condition: "(display: grid)"},
			},
		}},
	}}

	_, err := cssapply.Transform(context.Background(), ".a { @apply clash; }", eng, nil)
	var conflict *cssapply.WrapperConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ".a", conflict.Selector)
}

func TestTransformCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := cssapply.Transform(ctx, ".a { @apply flex; }", engine.Default(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestTransformStripGlobalMarker(t *testing.T) {
	res, err := cssapply.Transform(context.Background(), ".a { @apply dark:mr-1; }", engine.Default(),
		&cssapply.Options{StripGlobalMarker: true})
	require.NoError(t, err)
	require.NotNil(t, res)
	assertCSSEqual(t, ".dark .a { margin-right: 0.25rem; }", res.Code)
}
