package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "vectorgrep",
	Short: "Vectorgrep - high-performance multi-pattern grep",
	Long: `Vectorgrep scans files, CSV records, and streams against large sets of
regular expressions simultaneously. It uses a native block/vectored/streaming
scan engine when one is linked in and falls back to a pure Go engine otherwise.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(vectorCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadPatterns loads the builtin pattern set, or a custom file or
// directory when path is non-empty.
func loadPatterns(path string) ([]*patternset.Pattern, error) {
	loader := patternset.NewLoader()
	if path == "" {
		patterns, err := loader.LoadBuiltin()
		if err != nil {
			return nil, fmt.Errorf("loading builtin patterns: %w", err)
		}
		return patterns, nil
	}

	patterns, err := loader.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("loading patterns from %s: %w", path, err)
	}
	return patterns, nil
}
