// Package patternset loads named scan patterns from YAML files.
// A builtin PII set (currency, SSN, credit cards, email, IPv4, phone) is
// embedded; user sets load from files or directories.
package patternset

import (
	"fmt"

	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
)

// Pattern is one named expression of a pattern set.
type Pattern struct {
	// ID uniquely identifies the pattern within its set.
	ID string `json:"id"`

	// Name is a human-readable label.
	Name string `json:"name"`

	// Expression is the regular expression source.
	Expression string `json:"expression"`

	// Flags are the compile flags the expression is built with.
	Flags hyperscan.CompileFlag `json:"-"`

	// Keywords are literal fragments that must occur in the input for
	// the expression to possibly match; used by the keyword prefilter.
	// Patterns without keywords are always evaluated.
	Keywords []string `json:"keywords,omitempty"`

	// Examples are inputs the expression is expected to match.
	Examples []string `json:"examples,omitempty"`

	// NegativeExamples are inputs the expression must not match.
	NegativeExamples []string `json:"negative_examples,omitempty"`
}

// Compiled returns the pattern in the wrapper's form, with the given
// numeric ID.
func (p *Pattern) Compiled(id int) *hyperscan.Pattern {
	return &hyperscan.Pattern{Expression: p.Expression, Flags: p.Flags, ID: id}
}

// Validate checks a slice of patterns for the structural invariants a
// set must hold: non-empty unique IDs and non-empty expressions.
func Validate(patterns []*Pattern) error {
	seen := make(map[string]bool, len(patterns))
	for i, p := range patterns {
		if p.ID == "" {
			return fmt.Errorf("pattern %d: missing id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("pattern %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if p.Expression == "" {
			return fmt.Errorf("pattern %q: missing expression", p.ID)
		}
	}
	return nil
}
