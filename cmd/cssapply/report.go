package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/yacobolo/cssapply"
)

// Terminal styles for summary output. Lipgloss automatically degrades
// colors based on terminal capabilities.
var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleGood   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleBad    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// fileFailure records a file whose transform aborted.
type fileFailure struct {
	Path string
	Err  error
}

// applySummary aggregates the run's statistics.
type applySummary struct {
	FilesScanned   int
	FilesChanged   int
	FilesUnchanged int
	Directives     int
	TokensResolved int
	UnknownTokens  []string
	Failures       []fileFailure
}

// reporter writes per-file lines (verbose) and the final summary.
type reporter struct {
	w       io.Writer
	verbose bool
	quiet   bool
	colors  bool
}

func newReporter(w io.Writer, cfg applyConfig) *reporter {
	return &reporter{w: w, verbose: cfg.Verbose, quiet: cfg.Quiet, colors: cfg.UseColors}
}

// render applies a lipgloss style when colors are enabled.
func (r *reporter) render(style lipgloss.Style, text string) string {
	if !r.colors {
		return text
	}
	return style.Render(text)
}

func (r *reporter) fileChanged(path string, res *cssapply.Result) {
	if !r.verbose || r.quiet {
		return
	}
	line := color.New(color.FgGreen)
	if !r.colors {
		line.DisableColor()
	}
	line.Fprintf(r.w, "  %s: %d directive(s), %d token(s)\n", path, res.Directives, res.TokensResolved)
}

func (r *reporter) fileUnchanged(path string) {
	if !r.verbose || r.quiet {
		return
	}
	fmt.Fprintf(r.w, "  %s: no directives\n", path)
}

func (r *reporter) fileFailed(path string, err error) {
	if r.quiet {
		return
	}
	line := color.New(color.FgRed, color.Bold)
	if !r.colors {
		line.DisableColor()
	}
	line.Fprintf(r.w, "  %s: %v\n", path, err)
}

func (r *reporter) summary(s *applySummary) {
	if r.quiet {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, r.render(styleHeader, "cssapply"))
	fmt.Fprintf(r.w, "  Files scanned:   %d\n", s.FilesScanned)
	fmt.Fprintf(r.w, "  Files changed:   %d\n", s.FilesChanged)
	fmt.Fprintf(r.w, "  Directives:      %d\n", s.Directives)
	fmt.Fprintf(r.w, "  Tokens resolved: %d\n", s.TokensResolved)

	if len(s.UnknownTokens) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, r.render(styleWarn, "Unknown utilities (dropped)"))
		for _, entry := range countTokens(s.UnknownTokens) {
			fmt.Fprintf(r.w, "  • %s (%d)\n", entry.token, entry.count)
		}
	}

	if len(s.Failures) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, r.render(styleBad, "Failures"))
		for _, f := range s.Failures {
			fmt.Fprintf(r.w, "  • %s: %v\n", f.Path, f.Err)
		}
		return
	}

	if s.FilesChanged > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, r.render(styleGood, fmt.Sprintf("✓ Expanded %d directive(s) in %d file(s)", s.Directives, s.FilesChanged)))
	}
}

type tokenCount struct {
	token string
	count int
}

// countTokens groups repeated unknown tokens, most frequent first.
func countTokens(tokens []string) []tokenCount {
	freq := make(map[string]int)
	for _, t := range tokens {
		freq[t]++
	}
	out := make([]tokenCount, 0, len(freq))
	for t, n := range freq {
		out = append(out, tokenCount{token: t, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].token < out[j].token
	})
	return out
}
