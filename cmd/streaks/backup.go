// Package main is the entry point for the streaks application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"streaks/internal/backup"
	"streaks/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `streaks backup - Create and manage backups

USAGE:
    streaks backup [OPTIONS]

OPTIONS:
    -l, --list     List available backups
    --prune        Remove old backups, keeping the configured count
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped backup of your habit state file. Backups are
    stored in ~/.streaks/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    streaks backup

    # List all available backups
    streaks backup --list

    # Drop old backups beyond the retention count
    streaks backup --prune
`

// runBackup handles the "streaks backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Bool("prune", false, "remove old backups beyond the retention count")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	// Load config to get data directory
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag:
		pruneBackups(manager, cfg.Backups.KeepCount)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Habits: %d, Days: %d, Completions: %d\n",
		info.Stats["habits"], info.Stats["days"], info.Stats["completions"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'streaks backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		age := formatAge(b.CreatedAt)
		fmt.Printf("  %s  (%s)   Habits: %d, Days: %d\n",
			b.Name, age, b.Stats["habits"], b.Stats["days"])
	}
}

// pruneBackups removes backups beyond the retention count.
func pruneBackups(manager *backup.Manager, keepCount int) {
	if keepCount <= 0 {
		keepCount = 10
	}

	deleted, err := manager.Prune(keepCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}

	if deleted == 0 {
		fmt.Printf("Nothing to prune (keeping up to %d backups).\n", keepCount)
		return
	}
	fmt.Printf("✓ Pruned %d backup(s), kept the %d most recent.\n", deleted, keepCount)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
