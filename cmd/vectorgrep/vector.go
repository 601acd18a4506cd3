package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorgrep/vectorgrep/pkg/engine"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

var vectorPatternsPath string

var vectorCmd = &cobra.Command{
	Use:   "vector <file.csv>",
	Short: "Scan CSV records in vectored mode",
	Long: `Scan each CSV record as one logical unit. With the native engine each
record's fields are scanned as a vector of blocks, so matches may span field
boundaries. Offsets are relative to the concatenated record.`,
	Args: cobra.ExactArgs(1),
	RunE: runVector,
}

func init() {
	vectorCmd.Flags().StringVar(&vectorPatternsPath, "patterns", "", "Path to custom pattern file or directory")
}

func runVector(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	patterns, err := loadPatterns(vectorPatternsPath)
	if err != nil {
		return err
	}

	scanRecord, closeScanner, err := newRecordScanner(patterns)
	if err != nil {
		return err
	}
	defer closeScanner()

	return scanCSV(cmd.OutOrStdout(), f, scanRecord)
}

// recordScanFunc scans one CSV record and reports each match to emit.
type recordScanFunc func(fields []string, emit func(patternID string, from, to uint64)) error

// newRecordScanner builds the vectored scan path when the native engine
// is linked in, and a portable fallback over the concatenated record
// otherwise.
func newRecordScanner(patterns []*patternset.Pattern) (recordScanFunc, func(), error) {
	if hyperscan.Available() {
		return newVectoredScanner(patterns)
	}
	return newPortableRecordScanner(patterns)
}

func newVectoredScanner(patterns []*patternset.Pattern) (recordScanFunc, func(), error) {
	compiled := make([]*hyperscan.Pattern, len(patterns))
	for i, p := range patterns {
		compiled[i] = p.Compiled(i)
	}

	db, err := hyperscan.NewVectoredDatabase(compiled...)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling vectored database: %w", err)
	}

	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("allocating scratch: %w", err)
	}

	scan := func(fields []string, emit func(string, uint64, uint64)) error {
		blocks := make([][]byte, len(fields))
		for i, field := range fields {
			blocks[i] = []byte(field)
		}
		return db.Scan(blocks, scratch, func(id uint, from, to uint64, flags uint) error {
			emit(patterns[id].ID, from, to)
			return nil
		})
	}
	cleanup := func() {
		scratch.Free()
		db.Close()
	}
	return scan, cleanup, nil
}

func newPortableRecordScanner(patterns []*patternset.Pattern) (recordScanFunc, func(), error) {
	e, err := engine.NewPortable(engine.Config{Patterns: patterns})
	if err != nil {
		return nil, nil, fmt.Errorf("creating engine: %w", err)
	}

	scan := func(fields []string, emit func(string, uint64, uint64)) error {
		matches, err := e.Scan([]byte(strings.Join(fields, "")))
		if err != nil {
			return err
		}
		for _, m := range matches {
			emit(m.PatternID, uint64(m.Start), uint64(m.End))
		}
		return nil
	}
	cleanup := func() { e.Close() }
	return scan, cleanup, nil
}

func scanCSV(out io.Writer, r io.Reader, scanRecord recordScanFunc) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	total := 0
	for record := 1; ; record++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading record %d: %w", record, err)
		}

		err = scanRecord(fields, func(patternID string, from, to uint64) {
			total++
			fmt.Fprintf(out, "record %d: match for pattern %q at offset %d..%d\n",
				record, patternID, from, to)
		})
		if err != nil {
			return fmt.Errorf("scanning record %d: %w", record, err)
		}
	}

	if !quiet {
		fmt.Fprintf(out, "%d matches\n", total)
	}
	return nil
}
