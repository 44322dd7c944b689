package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssapply.yaml config file",
	Long:  `Create a .cssapply.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssapply.yaml"); err == nil && !force {
			return fmt.Errorf(".cssapply.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssapply.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .cssapply.yaml")
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

const defaultConfig = `# cssapply configuration

# Shared settings
verbose: false
color: false

# Transform settings
apply:
  include:
    - "**/*.css"
  out-dir: ""        # empty = rewrite files in place
  check: false       # report-only mode for CI
  strip-global: false
  preflight: false   # prepend preset base styles to the first output

# Utility engine theme
theme:
  dark: class        # class | media
  dark-selector: .dark
  spacing-unit: 0.25
  breakpoints:
    sm: 640
    md: 768
    lg: 1024
    xl: 1280
    2xl: 1536
`
