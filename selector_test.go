package cssapply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteSelector(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		transform SelectorTransform
		want      string
	}{
		{
			name: "identity",
			host: ".btn",
			want: ".btn",
		},
		{
			name:      "pseudo class appends without whitespace",
			host:      "button",
			transform: SelectorTransform{PseudoSuffix: ":hover"},
			want:      "button:hover",
		},
		{
			name:      "pseudo element",
			host:      "p",
			transform: SelectorTransform{PseudoSuffix: "::first-line"},
			want:      "p::first-line",
		},
		{
			name:      "scope prefix is global-marked and space-joined",
			host:      ".btn",
			transform: SelectorTransform{ScopePrefix: `[dir="rtl"]`},
			want:      `:global([dir="rtl"]) .btn`,
		},
		{
			name:      "dark and rtl compose in one prefix",
			host:      ".btn",
			transform: SelectorTransform{ScopePrefix: `.dark [dir="rtl"]`},
			want:      `:global(.dark [dir="rtl"]) .btn`,
		},
		{
			name:      "sibling fragment after the pseudo suffix",
			host:      "button",
			transform: SelectorTransform{PseudoSuffix: ":hover", SiblingSuffix: "> :not([hidden]) ~ :not([hidden])"},
			want:      "button:hover :global(> :not([hidden]) ~ :not([hidden]))",
		},
		{
			name: "all segments compose in order",
			host: ".row",
			transform: SelectorTransform{
				ScopePrefix:   `.dark [dir="rtl"]`,
				PseudoSuffix:  ":hover",
				SiblingSuffix: "> :not([hidden]) ~ :not([hidden])",
			},
			want: `:global(.dark [dir="rtl"]) .row:hover :global(> :not([hidden]) ~ :not([hidden]))`,
		},
		{
			name:      "each branch of a selector list rewritten independently",
			host:      "button, .btn",
			transform: SelectorTransform{ScopePrefix: ".dark", PseudoSuffix: ":hover"},
			want:      ":global(.dark) button:hover, :global(.dark) .btn:hover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteSelector(tt.host, tt.transform, false))
		})
	}
}

func TestRewriteSelectorStripGlobal(t *testing.T) {
	transform := SelectorTransform{ScopePrefix: ".dark", SiblingSuffix: "> *"}
	assert.Equal(t, ".dark .btn > *", RewriteSelector(".btn", transform, true))
}
