// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a palette from a base color or a prompt",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		base, _ := flags.GetString("base")
		scheme, _ := flags.GetString("scheme")
		count, _ := flags.GetInt("count")
		prompt, _ := flags.GetString("prompt")
		save, _ := flags.GetBool("save")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		draft, err := themes.Harmony{}.Generate(ctx, themes.Request{
			Prompt: prompt,
			Base:   base,
			Scheme: themes.Scheme(scheme),
			Count:  count,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n%s\n\n", draft.Name, draft.ColorTheory)
		for _, c := range draft.Colors {
			fmt.Printf("  %s %s  %-20s %s\n", swatch(c.Hex), c.Hex, c.Name, c.Role)
		}

		if !save {
			return
		}

		a := mustOpenApp()
		defer a.Close()

		id := a.vm.Create(draft)
		if id == "" {
			reportError(a.vm)
			os.Exit(1)
		}
		fmt.Printf("\n✓ Saved as %s\n", id)
	},
}

func init() {
	schemes := make([]string, 0, len(themes.Schemes()))
	for _, s := range themes.Schemes() {
		schemes = append(schemes, string(s))
	}

	generateCmd.Flags().String("base", "", "base color (#RRGGBB)")
	generateCmd.Flags().String("scheme", string(themes.Analogous), "scheme: "+strings.Join(schemes, ", "))
	generateCmd.Flags().Int("count", themes.DefaultCount, fmt.Sprintf("number of colors (%d-%d)", themes.MinCount, themes.MaxCount))
	generateCmd.Flags().String("prompt", "", "text describing the palette; seeds the hue when --base is empty")
	generateCmd.Flags().Bool("save", false, "add the generated palette to the catalog")
	rootCmd.AddCommand(generateCmd)
}
