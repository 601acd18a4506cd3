//go:build !cgo || !chimera

package chimera

import (
	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
)

// Available reports whether the Chimera engine was compiled in.
func Available() bool { return false }

// Version returns the version string of the linked libchimera.
func Version() string { return "" }

// Database is a compiled Chimera pattern database (block-mode only).
type Database struct{}

// Scratch is per-caller scratch space for Chimera scans.
type Scratch struct{}

// CompileMulti compiles patterns into a Chimera database.
func CompileMulti(patterns ...*hyperscan.Pattern) (*Database, error) {
	return nil, hsffi.ErrUnavailable
}

// Close frees the database.
func (db *Database) Close() error { return nil }

// Info returns the version/mode description of the database.
func (db *Database) Info() (string, error) { return "", hsffi.ErrUnavailable }

// NewScratch allocates scratch space sized for the database.
func NewScratch(db *Database) (*Scratch, error) { return nil, hsffi.ErrUnavailable }

// Clone allocates a fresh scratch of the same size.
func (s *Scratch) Clone() (*Scratch, error) { return nil, hsffi.ErrUnavailable }

// Free releases the scratch space.
func (s *Scratch) Free() error { return nil }

// Scan scans data in a single call.
func (db *Database) Scan(data []byte, scratch *Scratch, onMatch OnMatchFunc, onError OnErrorFunc) error {
	return hsffi.ErrUnavailable
}
