// Package main is the entry point for the streaks application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"streaks/internal/config"
	"streaks/internal/engine"
	"streaks/internal/fsutil"
	"streaks/internal/stats"
	"streaks/internal/store"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `streaks export - Generate habit reports

USAGE:
    streaks export [OPTIONS] [DATE]

OPTIONS:
    -d, --daily        Generate daily report (default)
    -w, --weekly       Generate weekly report
    -a, --all          Generate all-time report
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Date for report (YYYY-MM-DD). Defaults to today.
                       For weekly reports, any day inside the week works.

DESCRIPTION:
    Generates reports summarizing your habit completions and streaks.
    Reports can be output as Markdown (human-readable) or JSON
    (machine-readable).

EXAMPLES:
    # Today's report in Markdown
    streaks export

    # Specific date
    streaks export 2026-08-14

    # Weekly report
    streaks export --weekly

    # All recorded history
    streaks export --all

    # JSON format
    streaks export --format json

    # Save to file
    streaks export --output report.md
`

// runExport handles the "streaks export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	dailyFlag := fs.Bool("daily", false, "generate daily report")
	fs.BoolVar(dailyFlag, "d", false, "generate daily report (shorthand)")

	weeklyFlag := fs.Bool("weekly", false, "generate weekly report")
	fs.BoolVar(weeklyFlag, "w", false, "generate weekly report (shorthand)")

	allFlag := fs.Bool("all", false, "generate all-time report")
	fs.BoolVar(allFlag, "a", false, "generate all-time report (shorthand)")

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Validate format
	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	// Parse date argument
	date := time.Now()
	if fs.NArg() > 0 {
		parsedDate, err := time.ParseInLocation("2006-01-02", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
			os.Exit(1)
		}
		date = parsedDate
	}

	// Load config and state
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(st)
	gen := stats.NewGenerator(eng)

	// Generate report
	var output string
	switch {
	case *allFlag:
		report := gen.AllTime()
		if format == "json" {
			data, err := stats.FormatRangeJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = stats.FormatRangeMarkdown(report)
		}

	case *weeklyFlag:
		report := gen.Weekly(date)
		if format == "json" {
			data, err := stats.FormatWeeklyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = stats.FormatWeeklyMarkdown(report)
		}

	default:
		report := gen.Daily(date)
		if format == "json" {
			data, err := stats.FormatDailyJSON(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
				os.Exit(1)
			}
			output = string(data)
		} else {
			output = stats.FormatDailyMarkdown(report)
		}
	}

	// Write output
	if *outputFlag != "" {
		if err := os.MkdirAll(filepath.Dir(*outputFlag), 0700); err != nil && filepath.Dir(*outputFlag) != "." {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
