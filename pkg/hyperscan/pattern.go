package hyperscan

import (
	"fmt"
	"strings"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
)

// CompileFlag modifies how a single expression is compiled.
type CompileFlag = hsffi.CompileFlag

// Compile flags, re-exported from the binding layer.
const (
	Caseless    = hsffi.Caseless
	DotAll      = hsffi.DotAll
	MultiLine   = hsffi.MultiLine
	SingleMatch = hsffi.SingleMatch
	AllowEmpty  = hsffi.AllowEmpty
	UTF8        = hsffi.UTF8
	UCP         = hsffi.UCP
	Prefilter   = hsffi.Prefilter
	SOMLeftMost = hsffi.SOMLeftMost
)

// compileFlagChars maps the single-character pattern syntax to flags,
// in canonical output order.
var compileFlagChars = []struct {
	ch   byte
	flag CompileFlag
}{
	{'i', Caseless},
	{'s', DotAll},
	{'m', MultiLine},
	{'o', SingleMatch},
	{'e', AllowEmpty},
	{'u', UTF8},
	{'p', UCP},
	{'f', Prefilter},
	{'l', SOMLeftMost},
}

// compileFlagNames maps the spelled-out names used in pattern set files.
var compileFlagNames = map[string]CompileFlag{
	"CASELESS":     Caseless,
	"DOTALL":       DotAll,
	"MULTILINE":    MultiLine,
	"SINGLEMATCH":  SingleMatch,
	"ALLOWEMPTY":   AllowEmpty,
	"UTF8":         UTF8,
	"UCP":          UCP,
	"PREFILTER":    Prefilter,
	"SOM_LEFTMOST": SOMLeftMost,
}

// ParseCompileFlag parses the single-character flag syntax used after the
// closing slash of a pattern, e.g. "ism".
func ParseCompileFlag(s string) (CompileFlag, error) {
	var flags CompileFlag
next:
	for i := 0; i < len(s); i++ {
		for _, fc := range compileFlagChars {
			if fc.ch == s[i] {
				flags |= fc.flag
				continue next
			}
		}
		return 0, fmt.Errorf("unknown compile flag %q", s[i])
	}
	return flags, nil
}

// ParseCompileFlagNames parses a "|"-separated list of spelled-out flag
// names, e.g. "CASELESS|SOM_LEFTMOST". Whitespace around names is ignored
// and the empty string yields zero flags.
func ParseCompileFlagNames(s string) (CompileFlag, error) {
	var flags CompileFlag
	for _, name := range strings.Split(s, "|") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, ok := compileFlagNames[strings.ToUpper(name)]
		if !ok {
			return 0, fmt.Errorf("unknown compile flag %q", name)
		}
		flags |= f
	}
	return flags, nil
}

// FlagsString renders flags in the single-character syntax.
func FlagsString(flags CompileFlag) string {
	var sb strings.Builder
	for _, fc := range compileFlagChars {
		if flags&fc.flag != 0 {
			sb.WriteByte(fc.ch)
		}
	}
	return sb.String()
}

// Pattern is a single expression plus its compile flags and the numeric
// ID reported for its matches.
type Pattern struct {
	Expression string
	Flags      CompileFlag
	ID         int
}

// NewPattern creates a pattern with the given expression and flags.
func NewPattern(expression string, flags CompileFlag) *Pattern {
	return &Pattern{Expression: expression, Flags: flags}
}

// ParsePattern parses the "/expression/flags" syntax. Input without a
// leading slash is treated as a bare expression with no flags.
func ParsePattern(s string) (*Pattern, error) {
	if !strings.HasPrefix(s, "/") {
		return &Pattern{Expression: s}, nil
	}

	end := strings.LastIndexByte(s, '/')
	if end <= 0 {
		return nil, fmt.Errorf("invalid pattern %q: missing closing slash", s)
	}

	flags, err := ParseCompileFlag(s[end+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", s, err)
	}

	return &Pattern{Expression: s[1:end], Flags: flags}, nil
}

// String renders the pattern in "/expression/flags" form when any flags
// are set, or the bare expression otherwise.
func (p *Pattern) String() string {
	if p.Flags == 0 {
		return p.Expression
	}
	return fmt.Sprintf("/%s/%s", p.Expression, FlagsString(p.Flags))
}
