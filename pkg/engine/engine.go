// Package engine runs pattern sets against content and reports matches.
//
// Two implementations share one interface. HyperscanEngine drives the
// native scanning library through a two-stage pipeline and is used
// whenever the native library is linked in. PortableEngine is a pure Go
// fallback built on regexp2 with a keyword prefilter, so scanning works
// in any build.
package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/vectorgrep/vectorgrep/pkg/dbcache"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

// Engine scans content against a fixed pattern set.
type Engine interface {
	// Scan matches the pattern set against data.
	Scan(data []byte) ([]Match, error)

	// ScanReader matches the pattern set against everything read from r.
	ScanReader(r io.Reader) ([]Match, error)

	// Patterns returns the pattern set the engine was built with.
	Patterns() []*patternset.Pattern

	// Name identifies the implementation ("hyperscan" or "portable").
	Name() string

	// Close releases any native resources held by the engine.
	Close() error
}

// Config configures engine construction.
type Config struct {
	// Patterns is the pattern set to compile. Required.
	Patterns []*patternset.Pattern

	// ContextLines is the number of context lines captured around each
	// match. Zero disables context extraction.
	ContextLines int

	// Cache, when set, is consulted for a precompiled database before
	// compiling and updated after a compile.
	Cache *dbcache.Cache

	// ForcePortable skips the native engine even when it is available.
	ForcePortable bool
}

// New builds the best engine the current binary supports.
func New(cfg Config) (Engine, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns provided")
	}
	if !cfg.ForcePortable {
		if hyperscan.Available() {
			return NewHyperscan(cfg)
		}
		fmt.Fprintf(os.Stderr, "[vectorgrep] native engine unavailable, using portable engine for %d patterns\n", len(cfg.Patterns))
	}
	return NewPortable(cfg)
}

// HyperscanAvailable reports whether the native engine is linked into
// this binary and usable on this CPU.
func HyperscanAvailable() bool {
	return hyperscan.Available() && hyperscan.ValidPlatform() == nil
}

// HyperscanInfo describes the native engine for diagnostics.
func HyperscanInfo() string {
	if !hyperscan.Available() {
		return "unavailable (built without native scanning support)"
	}
	if err := hyperscan.ValidPlatform(); err != nil {
		return fmt.Sprintf("unusable: %v", err)
	}
	return hyperscan.Version()
}
