// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "palettekitty",
	Short: "PaletteKitty - a catalog of color palettes",
	Long: `PaletteKitty keeps a catalog of named color palettes with their
roles, color theory notes and use cases.

Palettes can be created by hand, seeded from the built-in presets or
generated from a base color, then exported, imported, backed up and
served as CSS custom properties over HTTP.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
