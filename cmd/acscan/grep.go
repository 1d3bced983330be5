package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dl/acscan/internal/cli"
)

// newGrepCmd exposes the original pattern-at-a-time search engine
// (internal/cli.Run and everything it drives: walker, scheduler, matcher,
// output) as a subcommand in its own right, for callers who want a single
// fixed/regex/PCRE pattern search rather than a loaded ruleset.
func newGrepCmd() *cobra.Command {
	cfg := cli.Config{}
	var colorMode string

	cmd := &cobra.Command{
		Use:   "grep [flags] PATTERN [PATH...]",
		Short: "Search files for a single pattern (fixed, regex, or PCRE)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Patterns = []string{args[0]}
			cfg.Paths = args[1:]

			switch colorMode {
			case "always":
				cfg.Color = cli.ColorAlways
			case "never":
				cfg.Color = cli.ColorNever
			default:
				cfg.Color = cli.ColorAuto
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			os.Exit(cli.Run(cfg))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.Fixed, "fixed-strings", "F", false, "treat pattern as a literal string")
	flags.BoolVarP(&cfg.PCRE, "pcre", "P", false, "use PCRE2 regex engine")
	flags.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "case-insensitive match")
	flags.BoolVarP(&cfg.SmartCase, "smart-case", "S", false, "case-insensitive unless pattern has uppercase")
	flags.BoolVarP(&cfg.Recursive, "recursive", "r", false, "search directories recursively")
	flags.BoolVarP(&cfg.LineNumbers, "line-number", "n", false, "show line numbers")
	flags.BoolVarP(&cfg.CountOnly, "count", "c", false, "show match counts only")
	flags.BoolVarP(&cfg.Invert, "invert-match", "v", false, "select non-matching lines")
	flags.BoolVarP(&cfg.FileNamesOnly, "files-with-matches", "l", false, "show only file names")
	flags.IntVar(&cfg.ContextBefore, "before-context", 0, "lines of leading context")
	flags.IntVar(&cfg.ContextAfter, "after-context", 0, "lines of trailing context")
	flags.BoolVar(&cfg.JSONOutput, "json", false, "emit JSON output")
	flags.StringVar(&colorMode, "color", "auto", "color mode: auto, always, never")
	flags.IntVarP(&cfg.Workers, "workers", "j", 0, "number of worker goroutines (0 = runtime default)")
	flags.BoolVar(&cfg.NoIgnore, "no-ignore", false, "do not respect .gitignore")
	flags.BoolVar(&cfg.Hidden, "hidden", false, "include hidden files")
	flags.BoolVar(&cfg.FollowSymlinks, "follow", false, "follow symbolic links")
	flags.StringArrayVar(&cfg.Globs, "glob", nil, "include/exclude glob (prefix ! to exclude)")
	flags.IntVar(&cfg.MaxColumns, "max-columns", 0, "truncate long match lines (0 = default, -1 = unlimited)")

	return cmd
}
