package engine

// DarkStrategy selects how the dark: variant scopes its rules.
type DarkStrategy string

// Dark-mode strategies.
const (
	// DarkClass scopes dark rules under an ancestor class selector.
	DarkClass DarkStrategy = "class"
	// DarkMedia scopes dark rules inside a prefers-color-scheme query.
	DarkMedia DarkStrategy = "media"
)

// Theme holds the design tokens the rule table draws from.
type Theme struct {
	// Breakpoints maps variant prefixes to min-width pixel values.
	Breakpoints map[string]int

	// SpacingUnit is the rem size of one spacing-scale step.
	SpacingUnit float64

	// DarkStrategy and DarkSelector configure the dark: variant.
	// DarkSelector is only used with DarkClass.
	DarkStrategy DarkStrategy
	DarkSelector string

	// Colors used by the typography preset.
	Colors map[string]string
}

// DefaultTheme returns the stock theme: the conventional breakpoint
// ladder, a 0.25rem spacing scale and class-based dark mode.
func DefaultTheme() Theme {
	return Theme{
		Breakpoints: map[string]int{
			"sm":  640,
			"md":  768,
			"lg":  1024,
			"xl":  1280,
			"2xl": 1536,
		},
		SpacingUnit:  0.25,
		DarkStrategy: DarkClass,
		DarkSelector: ".dark",
		Colors: map[string]string{
			"body":     "#374151",
			"headings": "#111827",
			"links":    "#111827",
			"code":     "#111827",
			"borders":  "#e5e7eb",
		},
	}
}
