package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/dl/acscan/internal/corasick"
	"github.com/dl/acscan/internal/input"
	"github.com/dl/acscan/internal/rules"
	"github.com/dl/acscan/internal/walker"
)

// tokenHit is one automaton output fired while scanning a file: a candidate
// location for pattern, still needing the full-pattern verification this
// package deliberately leaves out of scope.
type tokenHit struct {
	pattern   string
	offset    int
	backtrack int
}

func newScanCmd() *cobra.Command {
	var ruleFile string
	var recursive bool
	var noIgnore bool
	var hidden bool

	cmd := &cobra.Command{
		Use:   "scan [flags] PATH...",
		Short: "Scan files against a ruleset, reporting candidate token hits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ruleFile == "" {
				return fmt.Errorf("--rules is required")
			}
			f, err := os.Open(ruleFile)
			if err != nil {
				return fmt.Errorf("open rule file: %w", err)
			}
			rs, err := rules.Load(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}

			return runScan(rs, args, recursive, noIgnore, hidden)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&ruleFile, "rules", "", "path to a rule file")
	flags.BoolVarP(&recursive, "recursive", "r", false, "scan directories recursively")
	flags.BoolVar(&noIgnore, "no-ignore", false, "do not respect .gitignore")
	flags.BoolVar(&hidden, "hidden", false, "include hidden files")

	return cmd
}

func runScan(rs *rules.Ruleset, paths []string, recursive, noIgnore, hidden bool) error {
	fileCh, errCh := walker.Walk(paths, walker.WalkOptions{
		Recursive: recursive,
		NoIgnore:  noIgnore,
		Hidden:    hidden,
	})

	go func() {
		for err := range errCh {
			log.Warn("walk error", "err", err)
		}
	}()

	reader := input.NewAdaptiveReader(0)
	styles := scanStyles()

	fileCount, hitCount := 0, 0
	seenPatterns := make(map[string]bool)

	for entry := range fileCh {
		fileCount++
		result, err := reader.Read(entry.Path)
		if err != nil {
			log.Warn("read error", "path", entry.Path, "err", err)
			continue
		}
		if result.Data == nil {
			continue
		}

		hits := scanBuffer(rs.Automaton, result.Data)
		if result.Closer != nil {
			result.Closer()
		}
		if len(hits) == 0 {
			continue
		}

		hitCount += len(hits)
		fmt.Println(styles.file.Render(entry.Path))
		for _, h := range hits {
			seenPatterns[h.pattern] = true
			fmt.Printf("  %s %s\n",
				styles.offset.Render(fmt.Sprintf("offset %d", h.offset)),
				styles.pattern.Render(h.pattern))
		}
	}

	names := make([]string, 0, len(seenPatterns))
	for n := range seenPatterns {
		names = append(names, n)
	}
	slices.Sort(names)

	log.Info("scan complete", "files", fileCount, "candidate_hits", hitCount, "rules_matched", len(names))
	return nil
}

// scanBuffer drives data through automaton exactly as corasick's query
// phase works: one NextState transition per byte, collecting
// every output record at each state visited.
func scanBuffer(automaton *corasick.Automaton, data []byte) []tokenHit {
	var hits []tokenHit
	state := automaton.Root
	for i, b := range data {
		for state != automaton.Root && corasick.NextState(state, b) == nil {
			state = state.Failure()
		}
		if next := corasick.NextState(state, b); next != nil {
			state = next
		}
		for _, m := range state.Matches() {
			hits = append(hits, tokenHit{
				pattern:   m.Pattern.Name,
				offset:    i - m.Backtrack + 1,
				backtrack: m.Backtrack,
			})
		}
	}
	return hits
}

type styles struct {
	file    lipgloss.Style
	offset  lipgloss.Style
	pattern lipgloss.Style
}

func scanStyles() styles {
	return styles{
		file:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		offset:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pattern: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
