// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/viewmodel"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow catalog changes made by other processes",
	Long: `Watch the catalog directory and print the catalog each time another
process changes it. Only the file storage driver can be watched.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		store, ok := a.store.Substrate.(*kv.FileStore)
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: watch needs storage.driver set to file")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cancel := a.vm.Subscribe(func(s viewmodel.Snapshot) {
			fmt.Printf("[%s] %s, %d palettes\n", time.Now().Format("15:04:05"), s.State, len(s.Palettes))
			if s.Err != "" {
				fmt.Fprintf(os.Stderr, "  Error: %s\n", s.Err)
			}
		})
		defer cancel()

		printPaletteTable(a.vm.Palettes())
		fmt.Printf("\nWatching %s (Ctrl+C to stop)\n", store.Dir())

		key := a.repo.Key()
		err := store.Watch(ctx, func(changed string) {
			if changed == key {
				a.vm.Refresh()
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
