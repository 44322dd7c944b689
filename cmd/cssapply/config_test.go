package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssapply/engine"
)

// resetKoanf gives each test a clean config state.
func resetKoanf(t *testing.T) {
	t.Helper()
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".cssapply.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf(t)
	path := writeConfig(t, `
apply:
  check: true
  strip-global: true
  include:
    - src/**/*.css
  out-dir: dist

theme:
  dark: media
  spacing-unit: 0.5
  breakpoints:
    md: 900
  colors:
    body: "#222222"
`)

	require.NoError(t, loadConfigFromPath(path))

	cfg := buildApplyConfig(nil)
	assert.True(t, cfg.Check)
	assert.True(t, cfg.StripGlobal)
	assert.Equal(t, []string{"src/**/*.css"}, cfg.Includes)
	assert.Equal(t, "dist", cfg.OutDir)

	theme := buildTheme()
	assert.Equal(t, engine.DarkMedia, theme.DarkStrategy)
	assert.Equal(t, 0.5, theme.SpacingUnit)
	assert.Equal(t, 900, theme.Breakpoints["md"])
	assert.Equal(t, 640, theme.Breakpoints["sm"]) // unlisted keys keep defaults
	assert.Equal(t, "#222222", theme.Colors["body"])
}

func TestConfigDefaultsWhenFileMissing(t *testing.T) {
	resetKoanf(t)
	require.NoError(t, loadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml")))

	cfg := buildApplyConfig(nil)
	assert.False(t, cfg.Check)
	assert.Equal(t, []string{"**/*.css"}, cfg.Includes)
	assert.Empty(t, cfg.OutDir)

	theme := buildTheme()
	assert.Equal(t, engine.DarkClass, theme.DarkStrategy)
	assert.Equal(t, ".dark", theme.DarkSelector)
	assert.Equal(t, 0.25, theme.SpacingUnit)
}

func TestConfigEnvOverrides(t *testing.T) {
	resetKoanf(t)
	t.Setenv("CSSAPPLY_APPLY_CHECK", "true")
	t.Setenv("CSSAPPLY_THEME_SPACING-UNIT", "1")

	require.NoError(t, loadConfigFromPath(filepath.Join(t.TempDir(), "nope.yaml")))

	cfg := buildApplyConfig(nil)
	assert.True(t, cfg.Check)
	assert.Equal(t, float64(1), buildTheme().SpacingUnit)
}

func TestConfigArgsWinOverInclude(t *testing.T) {
	resetKoanf(t)
	path := writeConfig(t, `
apply:
  include:
    - styles/*.css
`)
	require.NoError(t, loadConfigFromPath(path))

	cfg := buildApplyConfig([]string{"main.css"})
	assert.Equal(t, []string{"main.css"}, cfg.Includes)
}

func TestConfigBadYAML(t *testing.T) {
	resetKoanf(t)
	path := writeConfig(t, "apply: [unclosed")
	assert.Error(t, loadConfigFromPath(path))
}
