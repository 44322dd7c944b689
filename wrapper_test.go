package cssapply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineWrappers(t *testing.T) {
	md := Wrapper{Kind: WrapperMedia, Condition: "(min-width: 768px)", MinWidth: 768}
	lg := Wrapper{Kind: WrapperMedia, Condition: "(min-width: 1024px)", MinWidth: 1024}
	sup := Wrapper{Kind: WrapperSupports, Condition: "(display: grid)"}

	t.Run("single wrapper unchanged", func(t *testing.T) {
		w, err := combineWrappers(".a", []Wrapper{md})
		require.NoError(t, err)
		assert.Equal(t, md, w)
	})

	t.Run("two breakpoints conjoin with explicit and", func(t *testing.T) {
		w, err := combineWrappers(".a", []Wrapper{md, lg})
		require.NoError(t, err)
		assert.Equal(t, "(min-width: 768px) and (min-width: 1024px)", w.Condition)
		assert.Equal(t, 1024, w.MinWidth)
	})

	t.Run("duplicate wrapper collapses", func(t *testing.T) {
		w, err := combineWrappers(".a", []Wrapper{md, md})
		require.NoError(t, err)
		assert.Equal(t, md, w)
	})

	t.Run("mixed kinds conflict", func(t *testing.T) {
		_, err := combineWrappers(".a", []Wrapper{md, sup})
		var conflict *WrapperConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, ".a", conflict.Selector)
		assert.Contains(t, conflict.Error(), "(min-width: 768px)")
		assert.Contains(t, conflict.Error(), "(display: grid)")
	})

	t.Run("bare media type cannot be conjoined", func(t *testing.T) {
		screen := Wrapper{Kind: WrapperMedia, Condition: "screen"}
		_, err := combineWrappers(".a", []Wrapper{screen, md})
		var conflict *WrapperConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestIsConjoinable(t *testing.T) {
	tests := []struct {
		condition string
		want      bool
	}{
		{"(min-width: 768px)", true},
		{"(min-width: 768px) and (max-width: 1024px)", true},
		{"screen", false},
		{"screen and (min-width: 768px)", false},
		{"(min-width: 768px", false},
		{"", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isConjoinable(tt.condition), "condition %q", tt.condition)
	}
}
