package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssapply/engine"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssapply.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a
// cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// Environment variables (CSSAPPLY_* prefix)
	if err := k.Load(env.Provider("CSSAPPLY_", ".", func(s string) string {
		// CSSAPPLY_APPLY_CHECK -> apply.check
		// CSSAPPLY_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSAPPLY_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildTheme constructs the engine theme from koanf state.
func buildTheme() engine.Theme {
	theme := engine.DefaultTheme()

	if v := k.String("theme.dark"); v == string(engine.DarkMedia) {
		theme.DarkStrategy = engine.DarkMedia
	}
	if v := k.String("theme.dark-selector"); v != "" {
		theme.DarkSelector = v
	}
	if v := k.Float64("theme.spacing-unit"); v > 0 {
		theme.SpacingUnit = v
	}
	for name, px := range k.IntMap("theme.breakpoints") {
		theme.Breakpoints[name] = px
	}
	for name, hex := range k.StringMap("theme.colors") {
		theme.Colors[name] = hex
	}

	return theme
}

// buildApplyConfig constructs the apply command's settings from koanf
// state.
func buildApplyConfig(args []string) applyConfig {
	cfg := applyConfig{
		OutDir:      getStringWithFallback("out-dir", "apply.out-dir", ""),
		Check:       getBoolWithFallback("check", "apply.check", false),
		StripGlobal: getBoolWithFallback("strip-global", "apply.strip-global", false),
		Preflight:   getBoolWithFallback("preflight", "apply.preflight", false),
		Verbose:     getBoolWithFallback("verbose", "verbose", false),
		Quiet:       getBoolWithFallback("quiet", "quiet", false),
		UseColors:   getBoolWithFallback("color", "color", false),
	}

	// positional args win over flag and config include patterns
	if len(args) > 0 {
		cfg.Includes = args
	} else if includes := k.Strings("include"); len(includes) > 0 {
		cfg.Includes = includes
	} else if includes := k.Strings("apply.include"); len(includes) > 0 {
		cfg.Includes = includes
	} else {
		cfg.Includes = []string{"**/*.css"}
	}

	return cfg
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
