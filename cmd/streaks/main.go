// Package main is the entry point for the streaks application.
// It loads configuration, opens the state store, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"streaks/internal/config"
	"streaks/internal/engine"
	"streaks/internal/store"
	"streaks/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `streaks - Daily habit tracking with streaks, in your terminal

USAGE:
    streaks [OPTIONS]
    streaks <command> [ARGS]

COMMANDS:
    backup           Create a backup of your habit data
    backup --list    List available backups
    backup --prune   Remove old backups, keeping the most recent
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a daily report (Markdown)
    export --weekly  Generate a weekly report
    export --all     Generate an all-time report
    export -f json   Output report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    streaks tracks a small list of daily habits. Complete every habit on a
    day and your streak grows at the next day rollover; miss one and the
    streak resets. Your best streak is never forgotten.

KEYBINDINGS:
    Global:
        ?            Show help overlay
        q            Quit

    Habits:
        j/k, ↓/↑     Navigate
        a            Add habit
        d/Space      Toggle today's completion
        x            Delete habit
        J/K          Move habit down/up
        g/G          Go to top/bottom

DATA STORAGE:
    All data lives in a single JSON file: ~/.streaks/state.json
    Backups are stored under ~/.streaks/backups/

CONFIGURATION:
    Optional config file: ~/.config/streaks/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    streaks

    # Create a backup
    streaks backup

    # Restore from a backup
    streaks restore --latest

    # Generate today's report
    streaks export

    # Generate weekly report as JSON
    streaks export --weekly --format json

    # Show version
    streaks --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("streaks version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/streaks/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Open the state store in the configured data directory
	st, err := store.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		os.Exit(1)
	}

	// Load state and settle any pending day rollover
	eng := engine.New(st)

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
		ShowOnboarding:   cfg.UX.ShowOnboarding,
	}

	if err := ui.Run(eng, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
