package engine

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
	"github.com/vectorgrep/vectorgrep/pkg/prefilter"
)

// matchTimeout bounds a single regexp2 match attempt so a pathological
// pattern cannot hang a scan through catastrophic backtracking.
const matchTimeout = 5 * time.Second

// PortableEngine is the pure Go implementation. Matching and capture
// extraction happen in a single regexp2 pass per pattern, with an
// Aho-Corasick keyword prefilter cutting down the candidate set first.
type PortableEngine struct {
	patterns     []*patternset.Pattern
	filter       *prefilter.Prefilter
	compiled     map[string]*regexp2.Regexp
	contextLines int
}

// NewPortable compiles every pattern up front so errors surface at
// construction time rather than mid-scan.
func NewPortable(cfg Config) (*PortableEngine, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns provided")
	}

	e := &PortableEngine{
		patterns:     cfg.Patterns,
		filter:       prefilter.New(cfg.Patterns),
		compiled:     make(map[string]*regexp2.Regexp, len(cfg.Patterns)),
		contextLines: cfg.ContextLines,
	}

	for _, p := range cfg.Patterns {
		re, err := compileRegexp2(p.Expression, p.Flags)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p.ID, err)
		}
		e.compiled[p.ID] = re
	}

	return e, nil
}

// compileRegexp2 compiles expr with regexp2, trying RE2 mode first.
// RE2 mode guarantees linear-time matching; patterns using constructs
// RE2 rejects fall back to the default backtracking mode, where the
// match timeout is the safety net.
func compileRegexp2(expr string, flags hyperscan.CompileFlag) (*regexp2.Regexp, error) {
	opts := regexp2Options(flags)
	re, err := regexp2.Compile(expr, opts|regexp2.RE2)
	if err != nil {
		re, err = regexp2.Compile(expr, opts)
		if err != nil {
			return nil, err
		}
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

func regexp2Options(flags hyperscan.CompileFlag) regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	if flags&hyperscan.Caseless != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&hyperscan.DotAll != 0 {
		opts |= regexp2.Singleline
	}
	if flags&hyperscan.MultiLine != 0 {
		opts |= regexp2.Multiline
	}
	return opts
}

// Scan matches the pattern set against data.
func (e *PortableEngine) Scan(data []byte) ([]Match, error) {
	var matches []Match
	content := string(data)

	for _, p := range e.filter.Filter(data) {
		re := e.compiled[p.ID]

		m, err := re.FindStringMatch(content)
		if err != nil {
			return nil, fmt.Errorf("matching pattern %q: %w", p.ID, err)
		}
		for m != nil {
			start := m.Index
			end := start + m.Length

			matches = append(matches, Match{
				PatternID:   p.ID,
				PatternName: p.Name,
				Start:       start,
				End:         end,
				Captures:    extractCaptures(m),
				Excerpt:     extractExcerpt(data, start, end, e.contextLines),
			})

			m, err = re.FindNextMatch(m)
			if err != nil {
				return nil, fmt.Errorf("matching pattern %q: %w", p.ID, err)
			}
		}
	}

	sortMatches(matches)
	return matches, nil
}

// ScanReader reads everything from r and scans it as one block.
func (e *PortableEngine) ScanReader(r io.Reader) ([]Match, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return e.Scan(data)
}

// Patterns returns the pattern set the engine was built with.
func (e *PortableEngine) Patterns() []*patternset.Pattern {
	return e.patterns
}

// Name identifies the implementation.
func (e *PortableEngine) Name() string { return "portable" }

// Close is a no-op, the portable engine holds no native resources.
func (e *PortableEngine) Close() error { return nil }

// extractCaptures copies the numbered capture groups out of a regexp2
// match, skipping group 0 (the full match).
func extractCaptures(m *regexp2.Match) [][]byte {
	groups := m.Groups()
	if len(groups) <= 1 {
		return nil
	}
	var captures [][]byte
	for _, g := range groups[1:] {
		if len(g.Captures) == 0 {
			continue
		}
		captures = append(captures, []byte(g.Captures[0].String()))
	}
	return captures
}

// sortMatches orders matches by offset, then pattern ID, so scan output
// is deterministic regardless of pattern iteration order.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		if matches[i].End != matches[j].End {
			return matches[i].End < matches[j].End
		}
		return matches[i].PatternID < matches[j].PatternID
	})
}
