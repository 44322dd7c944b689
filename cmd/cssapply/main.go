// Package main provides the cssapply CLI: it expands @apply and
// --at-apply directives in CSS files using the built-in utility
// engine.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
