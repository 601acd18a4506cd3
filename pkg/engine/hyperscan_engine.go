package engine

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/vectorgrep/vectorgrep/pkg/dbcache"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

// HyperscanEngine runs a two-stage pipeline:
//  1. the native block database reports match offsets (fast, but no
//     capture groups)
//  2. regexp2 re-matches the reported region to recover capture groups
//     and, for patterns without start-of-match tracking, the true start
//     offset.
type HyperscanEngine struct {
	db           *hyperscan.BlockDatabase
	patterns     []*patternset.Pattern
	compiled     map[string]*regexp2.Regexp
	contextLines int

	scratch     *hyperscan.Scratch
	scratchPool sync.Pool

	mu     sync.Mutex
	closed bool
}

// rawMatch is a native match before second-stage processing.
type rawMatch struct {
	patternIdx int
	start      int
	end        int
}

// NewHyperscan compiles the pattern set into a block database,
// consulting cfg.Cache for a precompiled one first.
func NewHyperscan(cfg Config) (*HyperscanEngine, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns provided")
	}

	// Compile in ID order so native pattern ids are stable regardless of
	// load order. The cache digest is order-independent, so a cached
	// database must resolve ids the same way on every run.
	patterns := make([]*patternset.Pattern, len(cfg.Patterns))
	copy(patterns, cfg.Patterns)
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].ID < patterns[j].ID })
	cfg.Patterns = patterns

	db, err := buildBlockDatabase(cfg)
	if err != nil {
		return nil, err
	}

	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("allocating scratch: %w", err)
	}

	e := &HyperscanEngine{
		db:           db,
		patterns:     cfg.Patterns,
		compiled:     make(map[string]*regexp2.Regexp, len(cfg.Patterns)),
		contextLines: cfg.ContextLines,
		scratch:      scratch,
	}
	e.scratchPool.New = func() any {
		clone, err := e.scratch.Clone()
		if err != nil {
			return nil
		}
		return clone
	}

	// Second-stage matchers, one per pattern.
	for _, p := range cfg.Patterns {
		re, err := compileRegexp2(p.Expression, p.Flags)
		if err != nil {
			db.Close()
			scratch.Free()
			return nil, fmt.Errorf("compiling pattern %q: %w", p.ID, err)
		}
		e.compiled[p.ID] = re
	}

	return e, nil
}

// buildBlockDatabase compiles cfg.Patterns, going through the database
// cache when one is configured. Cache failures fall back to compiling,
// a stale or unreadable cache must never fail a scan.
func buildBlockDatabase(cfg Config) (*hyperscan.BlockDatabase, error) {
	var digest string
	if cfg.Cache != nil {
		digest = dbcache.Digest(cfg.Patterns)
		if data, found, err := cfg.Cache.Get(digest, hyperscan.Version(), blockMode); err == nil && found {
			if db, err := hyperscan.UnmarshalBlockDatabase(data); err == nil {
				return db, nil
			}
		}
	}

	compiled := make([]*hyperscan.Pattern, len(cfg.Patterns))
	for i, p := range cfg.Patterns {
		compiled[i] = p.Compiled(i)
	}

	db, err := hyperscan.NewBlockDatabase(compiled...)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern database: %w", err)
	}

	if cfg.Cache != nil {
		if data, err := db.Marshal(); err == nil {
			// Best effort, the compiled database is already usable.
			_ = cfg.Cache.Put(digest, hyperscan.Version(), blockMode, data)
		}
	}

	return db, nil
}

// blockMode is the cache key component for block-mode databases.
const blockMode = 1

// Scan matches the pattern set against data.
func (e *HyperscanEngine) Scan(data []byte) ([]Match, error) {
	scratch, err := e.getScratch()
	if err != nil {
		return nil, err
	}
	defer e.putScratch(scratch)

	// Stage 1: collect native matches. For each (pattern, end) pair
	// keep the smallest start seen, the longest candidate match.
	best := make(map[[2]int]rawMatch)
	onMatch := func(id uint, from, to uint64, flags uint) error {
		if int(id) >= len(e.patterns) {
			return fmt.Errorf("unknown pattern id %d", id)
		}
		key := [2]int{int(id), int(to)}
		raw := rawMatch{patternIdx: int(id), start: int(from), end: int(to)}
		if existing, ok := best[key]; !ok || raw.start < existing.start {
			best[key] = raw
		}
		return nil
	}

	if err = e.db.Scan(data, scratch, onMatch); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}

	// Stage 2: recover bounds and captures with regexp2.
	type matchKey struct {
		id         string
		start, end int
	}
	var matches []Match
	seen := make(map[matchKey]bool)
	for _, raw := range best {
		p := e.patterns[raw.patternIdx]

		start, end, captures, err := e.refineMatch(data, p, raw)
		if err != nil {
			// The native engine over-approximates for some patterns.
			// A region the precise matcher rejects is a false positive.
			continue
		}

		key := matchKey{id: p.ID, start: start, end: end}
		if seen[key] {
			continue
		}
		seen[key] = true

		matches = append(matches, Match{
			PatternID:   p.ID,
			PatternName: p.Name,
			Start:       start,
			End:         end,
			Captures:    captures,
			Excerpt:     extractExcerpt(data, start, end, e.contextLines),
		})
	}

	sortMatches(matches)
	return matches, nil
}

// refineMatch re-runs the pattern over the reported region. When the
// native engine did not track the start of match the region begins at
// offset zero, so the regexp2 match nearest the end offset wins.
func (e *HyperscanEngine) refineMatch(data []byte, p *patternset.Pattern, raw rawMatch) (int, int, [][]byte, error) {
	re := e.compiled[p.ID]
	region := string(data[raw.start:raw.end])

	m, err := re.FindStringMatch(region)
	if err != nil {
		return 0, 0, nil, err
	}
	if m == nil {
		return 0, 0, nil, fmt.Errorf("pattern %q did not re-match reported region", p.ID)
	}

	// Walk to the match that ends at the reported end offset, if any.
	last := m
	for {
		next, err := re.FindNextMatch(last)
		if err != nil || next == nil {
			break
		}
		if raw.start+next.Index+next.Length > raw.end {
			break
		}
		last = next
	}
	if raw.start+m.Index+m.Length != raw.end {
		if raw.start+last.Index+last.Length == raw.end {
			m = last
		}
	}

	start := raw.start + m.Index
	end := start + m.Length
	return start, end, extractCaptures(m), nil
}

func (e *HyperscanEngine) getScratch() (*hyperscan.Scratch, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("engine is closed")
	}

	s, _ := e.scratchPool.Get().(*hyperscan.Scratch)
	if s == nil {
		return nil, fmt.Errorf("allocating scratch clone")
	}
	return s, nil
}

// putScratch returns a clone to the pool. A clone still checked out when
// Close drained the pool is freed here instead of being re-pooled.
func (e *HyperscanEngine) putScratch(s *hyperscan.Scratch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		s.Free()
		return
	}
	e.scratchPool.Put(s)
}

// ScanReader reads everything from r and scans it as one block.
func (e *HyperscanEngine) ScanReader(r io.Reader) ([]Match, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return e.Scan(data)
}

// Patterns returns the pattern set the engine was built with.
func (e *HyperscanEngine) Patterns() []*patternset.Pattern {
	return e.patterns
}

// Name identifies the implementation.
func (e *HyperscanEngine) Name() string { return "hyperscan" }

// Close frees the database, the base scratch, and any pooled clones.
func (e *HyperscanEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	// Drain the pool before freeing. With New cleared, Get returns nil
	// once the pool is empty.
	e.scratchPool.New = nil
	for {
		clone, _ := e.scratchPool.Get().(*hyperscan.Scratch)
		if clone == nil {
			break
		}
		clone.Free()
	}

	if err := e.scratch.Free(); err != nil {
		return fmt.Errorf("freeing scratch: %w", err)
	}
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
