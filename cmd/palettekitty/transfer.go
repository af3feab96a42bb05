// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		data := a.vm.Export()

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			fmt.Println(data)
			return
		}
		if err := os.WriteFile(out, []byte(data+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Exported %d palettes to %s\n", len(a.vm.Palettes()), out)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append the palettes in a JSON export",
	Long:  "Import palettes from a JSON array. Use - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading import: %v\n", err)
			os.Exit(1)
		}

		a := mustOpenApp()
		defer a.Close()

		res := a.vm.Import(string(data))
		fmt.Printf("Imported %d palettes\n", res.Inserted)
		for _, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", msg)
		}
		if res.Inserted == 0 && len(res.Errors) > 0 {
			os.Exit(1)
		}
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every palette in the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Print("This deletes every palette. Type 'yes' to confirm: ")
			var confirm string
			fmt.Scanln(&confirm)
			if confirm != "yes" {
				fmt.Println("Cancelled")
				return
			}
		}

		a := mustOpenApp()
		defer a.Close()

		a.vm.Clear()
		fmt.Println("✓ Catalog cleared")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		stats := a.vm.Stats()
		fmt.Println("Catalog statistics:")
		fmt.Printf("  Palettes: %d\n", stats.TotalCount)
		fmt.Printf("  Size: %s\n", formatBytes(int64(stats.TotalSizeBytes)))
		for _, c := range models.Categories() {
			if n := stats.CountsByCategory[c]; n > 0 {
				fmt.Printf("  %-10s %d\n", c+":", n)
			}
		}
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "write the export to this file instead of stdout")
	clearCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
}
