// Package vectorgrep is a high-performance multi-pattern scanner.
//
// A Grep compiles a pattern set once and scans any number of inputs
// against it. The native scanning engine is used when linked into the
// binary and a pure Go engine otherwise, with the same results either
// way.
//
//	g, err := vectorgrep.NewGrep()
//	if err != nil {
//		...
//	}
//	defer g.Close()
//	matches, err := g.ScanString("reach me at jane@example.com")
package vectorgrep

import (
	"fmt"
	"io"
	"os"

	"github.com/vectorgrep/vectorgrep/pkg/engine"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

// Match is a single pattern hit within scanned content.
type Match = engine.Match

// Grep scans content against a fixed pattern set.
type Grep struct {
	engine   engine.Engine
	patterns []*patternset.Pattern
}

// Option configures a Grep.
type Option func(*config) error

type config struct {
	patterns     []*patternset.Pattern
	contextLines int
	portable     bool
}

// WithPatterns uses the given pattern set instead of the builtin one.
func WithPatterns(patterns []*patternset.Pattern) Option {
	return func(c *config) error {
		c.patterns = patterns
		return nil
	}
}

// WithPatternFile loads the pattern set from a YAML file or directory.
func WithPatternFile(path string) Option {
	return func(c *config) error {
		patterns, err := patternset.NewLoader().LoadPath(path)
		if err != nil {
			return err
		}
		c.patterns = patterns
		return nil
	}
}

// WithContextLines captures the given number of context lines around
// each match.
func WithContextLines(lines int) Option {
	return func(c *config) error {
		c.contextLines = lines
		return nil
	}
}

// WithPortableEngine forces the pure Go engine even when the native one
// is available.
func WithPortableEngine() Option {
	return func(c *config) error {
		c.portable = true
		return nil
	}
}

// NewGrep builds a Grep over the builtin pattern set, unless an option
// supplies a different one.
func NewGrep(opts ...Option) (*Grep, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.patterns == nil {
		patterns, err := patternset.NewLoader().LoadBuiltin()
		if err != nil {
			return nil, fmt.Errorf("loading builtin patterns: %w", err)
		}
		cfg.patterns = patterns
	}

	e, err := engine.New(engine.Config{
		Patterns:      cfg.patterns,
		ContextLines:  cfg.contextLines,
		ForcePortable: cfg.portable,
	})
	if err != nil {
		return nil, err
	}

	return &Grep{engine: e, patterns: cfg.patterns}, nil
}

// Scan matches the pattern set against data.
func (g *Grep) Scan(data []byte) ([]Match, error) {
	return g.engine.Scan(data)
}

// ScanString matches the pattern set against s.
func (g *Grep) ScanString(s string) ([]Match, error) {
	return g.engine.Scan([]byte(s))
}

// ScanReader matches the pattern set against everything read from r.
func (g *Grep) ScanReader(r io.Reader) ([]Match, error) {
	return g.engine.ScanReader(r)
}

// ScanFile matches the pattern set against the contents of path.
func (g *Grep) ScanFile(path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return g.engine.Scan(data)
}

// PatternCount returns the number of patterns loaded.
func (g *Grep) PatternCount() int {
	return len(g.patterns)
}

// EngineName identifies the scan engine in use.
func (g *Grep) EngineName() string {
	return g.engine.Name()
}

// Close releases engine resources. The Grep must not be used after.
func (g *Grep) Close() error {
	return g.engine.Close()
}
