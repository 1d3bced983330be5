package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/dl/acscan/internal/corasick"
	"github.com/dl/acscan/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect rule files",
	}
	cmd.AddCommand(newRulesValidateCmd())
	cmd.AddCommand(newRulesDumpCmd())
	return cmd
}

func newRulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate RULE_FILE",
		Short: "Parse and build a rule file's automaton, reporting any errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open rule file: %w", err)
			}
			defer f.Close()

			rs, err := rules.Load(f)
			if err != nil {
				return fmt.Errorf("rule file invalid: %w", err)
			}

			names := make([]string, len(rs.Patterns))
			for i, p := range rs.Patterns {
				names[i] = p.Name
			}
			names = slices.Clone(names)
			slices.Sort(names)
			names = slices.Compact(names)

			fmt.Printf("ruleset %s: %d pattern(s), %d degenerate\n", rs.ID, len(rs.Patterns), rs.DegenerateCount)
			for _, n := range names {
				fmt.Println("  " + n)
			}
			return nil
		},
	}
}

func newRulesDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump RULE_FILE",
		Short: "Print the built automaton's trie structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open rule file: %w", err)
			}
			defer f.Close()

			rs, err := rules.Load(f)
			if err != nil {
				return fmt.Errorf("rule file invalid: %w", err)
			}

			log.Debug("dumping automaton", "ruleset", rs.ID)
			corasick.PrintAutomaton(os.Stdout, rs.Automaton)
			return nil
		},
	}
}
