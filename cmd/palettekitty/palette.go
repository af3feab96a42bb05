// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/idx"
	"github.com/thatcatcamp/palettekitty/internal/models"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

var paletteCmd = &cobra.Command{
	Use:     "palette",
	Aliases: []string{"palettes"},
	Short:   "Manage palettes",
	Long:    "Create, edit, list and search the palettes in the catalog",
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List palettes",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()
		if reportError(a.vm) {
			os.Exit(1)
		}

		palettes := a.vm.Palettes()
		if categoryName, _ := cmd.Flags().GetString("category"); categoryName != "" {
			category, ok := models.ParseCategory(categoryName)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", categoryName)
				os.Exit(1)
			}
			palettes = a.vm.FilterByCategory(category)
		}

		printPaletteTable(palettes)
	},
}

var paletteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		p, ok := a.vm.GetByID(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: palette %s not found\n", args[0])
			os.Exit(1)
		}
		printPalette(p)
	},
}

var paletteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a palette",
	Run: func(cmd *cobra.Command, args []string) {
		draft, err := draftFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		a := mustOpenApp()
		defer a.Close()

		id := a.vm.Create(draft)
		if id == "" {
			reportError(a.vm)
			os.Exit(1)
		}
		fmt.Printf("✓ Created palette %s (%s)\n", draft.Name, id)
	},
}

var paletteUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a palette",
	Long:  "Update a palette. Only the flags given on the command line are changed.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		patch, err := patchFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if patch.Empty() {
			fmt.Fprintln(os.Stderr, "Error: nothing to update")
			os.Exit(1)
		}

		a := mustOpenApp()
		defer a.Close()

		if !a.vm.Update(args[0], patch) {
			reportError(a.vm)
			os.Exit(1)
		}
		fmt.Printf("✓ Updated palette %s\n", args[0])
	},
}

var paletteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a palette",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		if !a.vm.Delete(args[0]) {
			reportError(a.vm)
			os.Exit(1)
		}
		fmt.Printf("✓ Deleted palette %s\n", args[0])
	},
}

var paletteDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a palette under a new id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		id := a.vm.Duplicate(args[0])
		if id == "" {
			reportError(a.vm)
			os.Exit(1)
		}
		fmt.Printf("✓ Duplicated %s as %s\n", args[0], id)
	},
}

var paletteSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search palettes by name, description, theory or color",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		printPaletteTable(a.vm.Search(args[0]))
	},
}

func init() {
	paletteListCmd.Flags().String("category", "", "only list palettes in this category")

	for _, c := range []*cobra.Command{paletteCreateCmd, paletteUpdateCmd} {
		c.Flags().String("name", "", "palette name")
		c.Flags().String("description", "", "palette description")
		c.Flags().String("theory", "", "color theory notes")
		c.Flags().String("category", string(models.CategoryCustom), "category (classic, modern, seasonal, brand, nature, custom)")
		c.Flags().StringArray("color", nil, "color as hex:name:role (repeatable)")
		c.Flags().StringArray("use-case", nil, "use case (repeatable)")
	}
	paletteCreateCmd.MarkFlagRequired("name")

	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteShowCmd)
	paletteCmd.AddCommand(paletteCreateCmd)
	paletteCmd.AddCommand(paletteUpdateCmd)
	paletteCmd.AddCommand(paletteDeleteCmd)
	paletteCmd.AddCommand(paletteDuplicateCmd)
	paletteCmd.AddCommand(paletteSearchCmd)
	rootCmd.AddCommand(paletteCmd)
}

// parseColorFlag parses "hex:name:role"; name and role may be omitted
func parseColorFlag(s string) (models.Color, error) {
	parts := strings.SplitN(s, ":", 3)
	hex, err := themes.NormalizeHex(parts[0])
	if err != nil {
		return models.Color{}, err
	}
	c := models.Color{Hex: hex}
	if len(parts) > 1 {
		c.Name = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		c.Role = strings.TrimSpace(parts[2])
	}
	return c, nil
}

func parseColorFlags(values []string) ([]models.Color, error) {
	colors := make([]models.Color, 0, len(values))
	for _, v := range values {
		c, err := parseColorFlag(v)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func parseCategoryFlag(cmd *cobra.Command) (models.Category, error) {
	name, _ := cmd.Flags().GetString("category")
	category, ok := models.ParseCategory(name)
	if !ok {
		return "", fmt.Errorf("unknown category %q", name)
	}
	return category, nil
}

func draftFromFlags(cmd *cobra.Command) (models.Draft, error) {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	description, _ := flags.GetString("description")
	theory, _ := flags.GetString("theory")
	colorValues, _ := flags.GetStringArray("color")
	useCases, _ := flags.GetStringArray("use-case")

	category, err := parseCategoryFlag(cmd)
	if err != nil {
		return models.Draft{}, err
	}
	colors, err := parseColorFlags(colorValues)
	if err != nil {
		return models.Draft{}, err
	}

	return models.Draft{
		Name:        name,
		Description: description,
		Colors:      colors,
		ColorTheory: theory,
		UseCases:    append([]string{}, useCases...),
		Category:    category,
	}, nil
}

func patchFromFlags(cmd *cobra.Command) (models.Patch, error) {
	flags := cmd.Flags()
	var patch models.Patch

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		patch.Name = &name
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	if flags.Changed("theory") {
		theory, _ := flags.GetString("theory")
		patch.ColorTheory = &theory
	}
	if flags.Changed("category") {
		category, err := parseCategoryFlag(cmd)
		if err != nil {
			return models.Patch{}, err
		}
		patch.Category = &category
	}
	if flags.Changed("color") {
		values, _ := flags.GetStringArray("color")
		colors, err := parseColorFlags(values)
		if err != nil {
			return models.Patch{}, err
		}
		patch.Colors = colors
	}
	if flags.Changed("use-case") {
		useCases, _ := flags.GetStringArray("use-case")
		patch.UseCases = append([]string{}, useCases...)
	}
	return patch, nil
}

// swatch renders hex as a colored block, or the hex itself when it does
// not parse
func swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	return color.BgRGB(int(r), int(g), int(b)).Sprint("   ")
}

func swatches(colors []models.Color) string {
	var sb strings.Builder
	for _, c := range colors {
		sb.WriteString(swatch(c.Hex))
	}
	return sb.String()
}

func printPaletteTable(palettes []models.Palette) {
	if len(palettes) == 0 {
		fmt.Println("No palettes found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tUPDATED\tCOLORS")
	for _, p := range palettes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.UpdatedAt.Format("2006-01-02"), swatches(p.Colors))
	}
	w.Flush()
}

func printPalette(p models.Palette) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	bold.Printf("%s\n", p.Name)
	dim.Printf("%s · %s\n", p.ID, p.Category)
	if p.Description != "" {
		fmt.Printf("\n%s\n", p.Description)
	}
	if p.ColorTheory != "" {
		fmt.Printf("\nTheory: %s\n", p.ColorTheory)
	}

	if len(p.Colors) > 0 {
		fmt.Println("\nColors:")
		for _, c := range p.Colors {
			fmt.Printf("  %s %-8s %-20s %s\n", swatch(c.Hex), c.Hex, c.Name, dim.Sprint(c.Role))
		}
	}
	if len(p.UseCases) > 0 {
		fmt.Printf("\nUse cases: %s\n", strings.Join(p.UseCases, ", "))
	}

	dim.Printf("\nCreated %s, updated %s\n",
		p.CreatedAt.Format("2006-01-02 15:04:05"), p.UpdatedAt.Format("2006-01-02 15:04:05"))
	if minted, ok := mintedAt(p.ID); ok {
		dim.Printf("ID minted %s\n", minted.Format("2006-01-02 15:04:05.000"))
	}
}

// mintedAt is when id was issued. Imported createdAt values can predate it.
func mintedAt(id string) (time.Time, bool) {
	if !idx.Valid(id) {
		return time.Time{}, false
	}
	return idx.Time(id).UTC(), true
}
