// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

var cssCmd = &cobra.Command{
	Use:   "css <id>",
	Short: "Print a palette as CSS custom properties",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		p, ok := a.vm.GetByID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: palette %s not found\n", args[0])
			os.Exit(1)
		}

		dark, _ := cmd.Flags().GetBool("dark")
		fmt.Print(themes.GenerateCSS(themes.GenerateColors(p, dark)))
	},
}

func init() {
	cssCmd.Flags().Bool("dark", false, "generate the dark mode variant")
	rootCmd.AddCommand(cssCmd)
}
