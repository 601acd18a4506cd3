package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vectorgrep/vectorgrep/pkg/dbcache"
	"github.com/vectorgrep/vectorgrep/pkg/engine"
)

var (
	scanPatternsPath string
	scanFormat       string
	scanColor        string
	scanContextLines int
	scanCachePath    string
	scanPortable     bool
)

// scanStyles holds the color formatters for human output.
type scanStyles struct {
	patternID *color.Color
	match     *color.Color
	offset    *color.Color
}

func newScanStyles(enabled bool) *scanStyles {
	s := &scanStyles{
		patternID: color.New(color.Bold, color.FgHiBlue),
		match:     color.New(color.FgYellow),
		offset:    color.New(color.FgHiGreen),
	}
	if !enabled {
		s.patternID.DisableColor()
		s.match.DisableColor()
		s.offset.DisableColor()
	}
	return s
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a file in block mode",
	Long:  "Scan a whole file against the pattern set in a single block-mode pass",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanPatternsPath, "patterns", "", "Path to custom pattern file or directory")
	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format: human, json")
	scanCmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
	scanCmd.Flags().IntVar(&scanContextLines, "context-lines", 0, "Lines of context before/after matches (0 to disable)")
	scanCmd.Flags().StringVar(&scanCachePath, "cache", "", "Path to a compiled-database cache")
	scanCmd.Flags().BoolVar(&scanPortable, "portable", false, "Force the pure Go engine")
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	patterns, err := loadPatterns(scanPatternsPath)
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Patterns:      patterns,
		ContextLines:  scanContextLines,
		ForcePortable: scanPortable,
	}
	if scanCachePath != "" {
		cache, err := dbcache.Open(scanCachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer cache.Close()
		cfg.Cache = cache
	}

	e, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer e.Close()

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "scanning %s with %d patterns (%s engine)\n",
			args[0], len(patterns), e.Name())
	}

	matches, err := e.Scan(data)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}

	switch scanFormat {
	case "json":
		return outputMatchesJSON(cmd, matches)
	case "human":
		return outputMatchesHuman(cmd, matches)
	default:
		return fmt.Errorf("unknown output format: %s", scanFormat)
	}
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

// jsonMatch is the JSON shape of a match.
type jsonMatch struct {
	PatternID   string   `json:"pattern_id"`
	PatternName string   `json:"pattern_name,omitempty"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Matching    string   `json:"matching"`
	Captures    []string `json:"captures,omitempty"`
}

func outputMatchesJSON(cmd *cobra.Command, matches []engine.Match) error {
	out := make([]jsonMatch, len(matches))
	for i, m := range matches {
		jm := jsonMatch{
			PatternID:   m.PatternID,
			PatternName: m.PatternName,
			Start:       m.Start,
			End:         m.End,
			Matching:    string(m.Excerpt.Matching),
		}
		for _, c := range m.Captures {
			jm.Captures = append(jm.Captures, string(c))
		}
		out[i] = jm
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputMatchesHuman(cmd *cobra.Command, matches []engine.Match) error {
	out := cmd.OutOrStdout()
	styles := newScanStyles(colorEnabled(scanColor))

	for _, m := range matches {
		fmt.Fprintf(out, "Match for pattern %s at offset %s: %s\n",
			styles.patternID.Sprintf("%q", m.PatternID),
			styles.offset.Sprintf("%d..%d", m.Start, m.End),
			styles.match.Sprint(string(m.Excerpt.Matching)))
	}

	if !quiet {
		fmt.Fprintf(out, "%d matches\n", len(matches))
	}
	return nil
}
