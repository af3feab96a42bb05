// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/backup"
	"github.com/thatcatcamp/palettekitty/internal/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage catalog backups",
	Long:  "Commands for managing catalog backups: create, list, restore, delete, prune and status",
}

func newBackupManager() *backup.Manager {
	manager := backup.NewManager(afero.NewOsFs(), config.GetString("backups.path"))
	manager.Version = version
	return manager
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Archive the current catalog",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		note, _ := cmd.Flags().GetString("note")
		name, err := newBackupManager().CreateBackup(a.vm.Export(), note)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: backup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Created %s\n", name)
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available backups",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		backups, err := newBackupManager().ListBackups()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list backups: %v\n", err)
			os.Exit(1)
		}

		if len(backups) == 0 {
			fmt.Println("No backups found")
			return
		}

		fmt.Println("Available backups:")
		for i, b := range backups {
			fmt.Printf("%d. %s (%s, %s)\n", i+1, b.Name, b.ModTime.Format("2006-01-02 15:04:05"), formatBytes(b.Size))
		}
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore palettes from a backup",
	Long: `Restore palettes from a backup. The archived palettes are appended to the
catalog under new ids; use --replace to clear the catalog first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		replace, _ := cmd.Flags().GetBool("replace")

		if replace {
			fmt.Printf("WARNING: This deletes every palette before restoring.\n")
			fmt.Printf("Are you sure you want to restore from '%s'? (type 'yes' to confirm): ", name)

			var confirmation string
			fmt.Scanln(&confirmation)
			if confirmation != "yes" {
				fmt.Println("Restore cancelled.")
				return
			}
		}

		a := mustOpenApp()
		defer a.Close()

		data, meta, err := newBackupManager().ReadBackup(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: restore failed: %v\n", err)
			os.Exit(1)
		}

		if replace {
			a.vm.Clear()
		}
		res := a.vm.Import(data)
		for _, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", msg)
		}
		if res.Inserted == 0 && len(res.Errors) > 0 {
			os.Exit(1)
		}

		fmt.Printf("Restored %d of %d palettes from %s (taken %s)\n",
			res.Inserted, meta.PaletteCount, name, meta.Timestamp.Format("2006-01-02 15:04:05"))
	},
}

var backupDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a backup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Are you sure you want to delete '%s'? (type 'yes' to confirm): ", name)

		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			fmt.Println("Deletion cancelled.")
			return
		}

		if err := newBackupManager().Delete(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to delete backup: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully deleted %s\n", name)
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest backups",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		keep, _ := cmd.Flags().GetInt("keep")
		if !cmd.Flags().Changed("keep") {
			keep = config.GetInt("backups.retention")
		}

		removed, err := newBackupManager().Prune(keep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: prune failed: %v\n", err)
			os.Exit(1)
		}
		for _, name := range removed {
			fmt.Printf("  removed %s\n", name)
		}
		fmt.Printf("Pruned %d backups\n", len(removed))
	},
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backup status and statistics",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		status, err := newBackupManager().Status()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read backup directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Backup Status:")
		fmt.Printf("  Total backups: %d\n", status.Count)
		fmt.Printf("  Total size: %s\n", formatBytes(status.TotalSize))
		if !status.Oldest.IsZero() {
			fmt.Printf("  Oldest backup: %s\n", status.Oldest.Format("2006-01-02 15:04:05"))
		}
		if !status.Newest.IsZero() {
			fmt.Printf("  Newest backup: %s\n", status.Newest.Format("2006-01-02 15:04:05"))
		}
	},
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)

	for _, unit := range units {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}

	return fmt.Sprintf("%.2f TB", size)
}

func init() {
	backupCreateCmd.Flags().String("note", "", "note stored with the backup")
	backupRestoreCmd.Flags().Bool("replace", false, "clear the catalog before restoring")
	backupPruneCmd.Flags().Int("keep", 10, "number of backups to keep (defaults to backups.retention)")

	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
	backupCmd.AddCommand(backupPruneCmd)
	backupCmd.AddCommand(backupStatusCmd)
}
