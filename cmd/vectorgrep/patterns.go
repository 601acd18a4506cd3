package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

var (
	patternsPath   string
	patternsFormat string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage pattern sets",
	Long:  "Commands for listing and inspecting pattern sets",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available patterns",
	Long:  "Display all patterns in the builtin or a custom pattern set",
	RunE:  runPatternsList,
}

func init() {
	patternsCmd.AddCommand(patternsListCmd)
	patternsListCmd.Flags().StringVar(&patternsPath, "patterns", "", "Path to custom pattern file or directory")
	patternsListCmd.Flags().StringVar(&patternsFormat, "format", "table", "Output format: table, json")
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	patterns, err := loadPatterns(patternsPath)
	if err != nil {
		return err
	}

	switch patternsFormat {
	case "json":
		return outputPatternsJSON(cmd, patterns)
	case "table":
		return outputPatternsTable(cmd, patterns)
	default:
		return fmt.Errorf("unknown output format: %s", patternsFormat)
	}
}

func outputPatternsJSON(cmd *cobra.Command, patterns []*patternset.Pattern) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(patterns)
}

func outputPatternsTable(cmd *cobra.Command, patterns []*patternset.Pattern) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tFlags\tKeywords\n")
	fmt.Fprintf(w, "--\t----\t-----\t--------\n")

	for _, p := range patterns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.ID, p.Name, hyperscan.FlagsString(p.Flags), strings.Join(p.Keywords, ","))
	}

	return nil
}
