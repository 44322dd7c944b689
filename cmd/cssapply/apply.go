package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssapply"
	"github.com/yacobolo/cssapply/engine"
)

var applyCmd = &cobra.Command{
	Use:   "apply [files...]",
	Short: "Expand directives in CSS files",
	Long: `Expand @apply and --at-apply directives in every matched CSS file.
Files without a directive are left untouched. With --check, no file is
written and a non-zero exit code reports files that would change.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runApply,
}

func init() {
	f := applyCmd.Flags()
	f.StringSlice("include", nil, "Glob patterns for CSS files to transform")
	f.String("out-dir", "", "Write transformed files here instead of in place")
	f.Bool("check", false, "Report files that would change, write nothing")
	f.Bool("strip-global", false, "Emit scope prefixes without the :global(...) marker")
	f.Bool("preflight", false, "Prepend preset base styles to the first output file")
}

// applyConfig holds the apply command's resolved settings.
type applyConfig struct {
	Includes    []string
	OutDir      string
	Check       bool
	StripGlobal bool
	Preflight   bool
	Verbose     bool
	Quiet       bool
	UseColors   bool
}

var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile excludes gitignored stylesheets. Only relative paths
// are checked: absolute paths are outside the project and not subject
// to its .gitignore.
func shouldSkipFile(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	gi := loadGitIgnore()
	return gi != nil && gi.MatchesPath(path)
}

// expandIncludes expands glob patterns to a deduplicated file list.
func expandIncludes(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if shouldSkipFile(match) {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	return files, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg := buildApplyConfig(args)

	files, err := expandIncludes(cfg.Includes)
	if err != nil {
		return err
	}

	eng := engine.New(buildTheme(), engine.Typography())
	opts := &cssapply.Options{StripGlobalMarker: cfg.StripGlobal}

	summary := &applySummary{}
	reporter := newReporter(cmd.OutOrStdout(), cfg)
	preflightPending := cfg.Preflight

	for _, path := range files {
		code, err := os.ReadFile(path) // #nosec G304 - path comes from user-supplied patterns
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		res, err := cssapply.Transform(cmd.Context(), string(code), eng, opts)
		if err != nil {
			summary.Failures = append(summary.Failures, fileFailure{Path: path, Err: err})
			reporter.fileFailed(path, err)
			continue
		}

		summary.FilesScanned++
		if res == nil {
			summary.FilesUnchanged++
			reporter.fileUnchanged(path)
			continue
		}

		summary.FilesChanged++
		summary.Directives += res.Directives
		summary.TokensResolved += res.TokensResolved
		summary.UnknownTokens = append(summary.UnknownTokens, res.UnknownTokens...)
		reporter.fileChanged(path, res)

		if cfg.Check {
			continue
		}

		output := res.Code
		if preflightPending {
			if preflight := eng.Preflight(); preflight != "" {
				output = preflight + "\n" + output
			}
			preflightPending = false
		}
		if err := writeOutput(path, output, cfg.OutDir); err != nil {
			return err
		}
	}

	reporter.summary(summary)

	if len(summary.Failures) > 0 {
		return fmt.Errorf("%d file(s) failed to transform", len(summary.Failures))
	}
	if cfg.Check && summary.FilesChanged > 0 {
		return fmt.Errorf("%d file(s) would change", summary.FilesChanged)
	}
	return nil
}

// writeOutput writes the transformed CSS in place or under outDir,
// preserving the input's relative path.
func writeOutput(path, code, outDir string) error {
	target := path
	if outDir != "" {
		target = filepath.Join(outDir, path)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(target, []byte(code), 0644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
