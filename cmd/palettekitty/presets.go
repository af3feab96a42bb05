// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Built-in palettes",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in palettes",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tCOLORS")
		for _, p := range themes.ListPresets() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Name, p.Category, swatches(p.Colors))
		}
		w.Flush()
	},
}

var presetsSeedCmd = &cobra.Command{
	Use:   "seed [slug...]",
	Short: "Add built-in palettes to the catalog",
	Long:  "Add the named presets to the catalog, or all of them when no slug is given.",
	Run: func(cmd *cobra.Command, args []string) {
		var presets []themes.Preset
		if len(args) == 0 {
			presets = themes.ListPresets()
		}
		for _, slug := range args {
			p, ok := themes.GetPreset(slug)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", slug)
				os.Exit(1)
			}
			presets = append(presets, p)
		}

		a := mustOpenApp()
		defer a.Close()

		for _, p := range presets {
			id := a.vm.Create(p.Draft())
			if id == "" {
				reportError(a.vm)
				os.Exit(1)
			}
			fmt.Printf("✓ %s (%s)\n", p.Name, id)
		}
	},
}

func init() {
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSeedCmd)
	rootCmd.AddCommand(presetsCmd)
}
