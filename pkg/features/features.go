// Package features models the build feature flags of the binding and
// their implication closure.
//
// The selectable features are runtime (the scanning API, on by
// default), compile (the pattern-compilation API), full (both), static
// (static linkage), chimera (the hybrid engine, which only ships as a
// static archive) and gen (on-the-fly binding generation, which cgo
// performs unconditionally). Resolve expands a requested set into the
// effective one; BuildTags renders the go build tags that realize it.
package features

import (
	"fmt"
	"sort"
	"strings"
)

// Feature is one selectable build capability.
type Feature string

const (
	// Runtime enables the streaming/block/vectored scanning surface.
	// Active by default.
	Runtime Feature = "runtime"

	// Compile enables the pattern-compilation surface.
	Compile Feature = "compile"

	// Full enables both Runtime and Compile.
	Full Feature = "full"

	// Static links the native library statically.
	Static Feature = "static"

	// Chimera enables the hybrid matching engine. Implies Static, since
	// chimera only ships as a static archive, and Compile, since chimera
	// databases are always compiled from source patterns.
	Chimera Feature = "chimera"

	// Gen generates the low-level call surface from the native headers
	// at build time instead of using pre-generated declarations. Implies
	// Compile (generation runs against the compiler headers).
	Gen Feature = "gen"
)

// all lists every known feature.
var all = []Feature{Runtime, Compile, Full, Static, Chimera, Gen}

// Parse converts a name into a Feature.
func Parse(name string) (Feature, error) {
	f := Feature(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range all {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q", name)
}

// Set is an unordered collection of features.
type Set map[Feature]bool

// NewSet builds a set from the given features.
func NewSet(features ...Feature) Set {
	s := make(Set, len(features))
	for _, f := range features {
		s[f] = true
	}
	return s
}

// ParseSet parses a list of feature names into a set.
func ParseSet(names ...string) (Set, error) {
	s := make(Set, len(names))
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return nil, err
		}
		s[f] = true
	}
	return s, nil
}

// Has reports whether the feature is in the set.
func (s Set) Has(f Feature) bool { return s[f] }

// List returns the features in stable order.
func (s Set) List() []Feature {
	out := make([]Feature, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve expands the set into the effective feature set:
//   - Runtime is the default feature and is on in every resolution
//   - Full activates Compile and Runtime
//   - Chimera activates Static and Compile
//   - Gen activates Compile
//
// The input set is not modified.
func (s Set) Resolve() Set {
	out := make(Set, len(s)+2)
	for f := range s {
		out[f] = true
	}

	out[Runtime] = true
	if out[Full] {
		out[Compile] = true
	}
	if out[Chimera] {
		out[Static] = true
		out[Compile] = true
	}
	if out[Gen] {
		out[Compile] = true
	}

	return out
}

// BuildTags renders the go build tags that realize a resolved set.
// Runtime and Compile both live behind the hyperscan tag: cgo cannot
// link part of an archive, so the split exists only at this level.
func (s Set) BuildTags() []string {
	resolved := s.Resolve()

	var tags []string
	if resolved[Runtime] || resolved[Compile] {
		tags = append(tags, "hyperscan")
	}
	if resolved[Static] {
		tags = append(tags, "hyperscan_static")
	}
	if resolved[Chimera] {
		tags = append(tags, "chimera")
	}
	return tags
}

// String renders the set as a sorted comma-separated list.
func (s Set) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, f := range list {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
