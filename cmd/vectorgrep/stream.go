package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vectorgrep/vectorgrep/pkg/engine"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

var streamPatternsPath string

var streamCmd = &cobra.Command{
	Use:   "stream [file]",
	Short: "Scan a file or stdin in streaming mode",
	Long: `Scan input incrementally without holding it in memory. With the native
engine the input is fed through a scan stream in fixed-size chunks; matches
can span chunk boundaries. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&streamPatternsPath, "patterns", "", "Path to custom pattern file or directory")
}

func runStream(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	patterns, err := loadPatterns(streamPatternsPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	emit := func(patternID string, from, to uint64) {
		total++
		fmt.Fprintf(out, "Match for pattern %q at offset %d..%d\n", patternID, from, to)
	}

	if hyperscan.Available() {
		err = streamScanNative(in, patterns, emit)
	} else {
		err = streamScanPortable(in, patterns, emit)
	}
	if err != nil {
		return fmt.Errorf("scanning %s: %w", name, err)
	}

	if !quiet {
		fmt.Fprintf(out, "%d matches\n", total)
	}
	return nil
}

func streamScanNative(in io.Reader, patterns []*patternset.Pattern, emit func(string, uint64, uint64)) error {
	compiled := make([]*hyperscan.Pattern, len(patterns))
	for i, p := range patterns {
		compiled[i] = p.Compiled(i)
	}

	db, err := hyperscan.NewStreamDatabase(compiled...)
	if err != nil {
		return fmt.Errorf("compiling stream database: %w", err)
	}
	defer db.Close()

	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		return fmt.Errorf("allocating scratch: %w", err)
	}
	defer scratch.Free()

	return db.ScanReader(in, scratch, func(id uint, from, to uint64, flags uint) error {
		emit(patterns[id].ID, from, to)
		return nil
	})
}

func streamScanPortable(in io.Reader, patterns []*patternset.Pattern, emit func(string, uint64, uint64)) error {
	e, err := engine.NewPortable(engine.Config{Patterns: patterns})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer e.Close()

	matches, err := e.ScanReader(in)
	if err != nil {
		return err
	}
	for _, m := range matches {
		emit(m.PatternID, uint64(m.Start), uint64(m.End))
	}
	return nil
}
