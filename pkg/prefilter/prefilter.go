// Package prefilter narrows a pattern set down to the patterns that can
// possibly match a given input, using Aho-Corasick keyword search.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

// Prefilter maps literal keywords to the patterns that need them.
// Patterns without keywords always pass the filter.
type Prefilter struct {
	matcher           *ahocorasick.Matcher
	keywords          []string // keyword at each matcher index
	keywordPatterns   map[string][]*patternset.Pattern
	noKeywordPatterns []*patternset.Pattern
}

// New builds a prefilter from the pattern set.
func New(patterns []*patternset.Pattern) *Prefilter {
	pf := &Prefilter{
		keywordPatterns: make(map[string][]*patternset.Pattern),
	}

	keywordSeen := make(map[string]bool)
	for _, p := range patterns {
		if len(p.Keywords) == 0 {
			pf.noKeywordPatterns = append(pf.noKeywordPatterns, p)
			continue
		}
		for _, keyword := range p.Keywords {
			if !keywordSeen[keyword] {
				keywordSeen[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordPatterns[keyword] = append(pf.keywordPatterns[keyword], p)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns the patterns that might match content: those whose
// keywords occur in it, plus every pattern without keywords.
func (pf *Prefilter) Filter(content []byte) []*patternset.Pattern {
	result := make([]*patternset.Pattern, 0, len(pf.noKeywordPatterns))
	result = append(result, pf.noKeywordPatterns...)

	if pf.matcher == nil {
		return result
	}

	seen := make(map[*patternset.Pattern]bool, len(result))
	for _, p := range result {
		seen[p] = true
	}

	for _, hit := range pf.matcher.Match(content) {
		keyword := pf.keywords[hit]
		for _, p := range pf.keywordPatterns[keyword] {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}

	return result
}
