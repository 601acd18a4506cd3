package hyperscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompileFlag(t *testing.T) {
	flags, err := ParseCompileFlag("ism")
	require.NoError(t, err)
	assert.Equal(t, Caseless|DotAll|MultiLine, flags)

	flags, err = ParseCompileFlag("")
	require.NoError(t, err)
	assert.Zero(t, flags)

	_, err = ParseCompileFlag("ix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown compile flag`)
}

func TestParseCompileFlagNames(t *testing.T) {
	flags, err := ParseCompileFlagNames("CASELESS | DOTALL | SOM_LEFTMOST")
	require.NoError(t, err)
	assert.Equal(t, Caseless|DotAll|SOMLeftMost, flags)

	// Lowercase names are accepted.
	flags, err = ParseCompileFlagNames("caseless")
	require.NoError(t, err)
	assert.Equal(t, Caseless, flags)

	flags, err = ParseCompileFlagNames("")
	require.NoError(t, err)
	assert.Zero(t, flags)

	_, err = ParseCompileFlagNames("CASELESS|BOGUS")
	require.Error(t, err)
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "isl", FlagsString(Caseless|DotAll|SOMLeftMost))
	assert.Equal(t, "", FlagsString(0))
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern(`/test\d+/ism`)
	require.NoError(t, err)
	assert.Equal(t, `test\d+`, p.Expression)
	assert.Equal(t, Caseless|DotAll|MultiLine, p.Flags)

	// Bare expressions carry no flags.
	p, err = ParsePattern(`a+b`)
	require.NoError(t, err)
	assert.Equal(t, `a+b`, p.Expression)
	assert.Zero(t, p.Flags)

	// Slashes inside the expression are fine; the last one wins.
	p, err = ParsePattern(`/foo\/bar/i`)
	require.NoError(t, err)
	assert.Equal(t, `foo\/bar`, p.Expression)
	assert.Equal(t, Caseless, p.Flags)

	_, err = ParsePattern(`/`)
	require.Error(t, err)
}

func TestPattern_String(t *testing.T) {
	assert.Equal(t, `/a+/i`, NewPattern("a+", Caseless).String())
	assert.Equal(t, `a+`, NewPattern("a+", 0).String())
}

func TestPattern_StringRoundTrip(t *testing.T) {
	orig := NewPattern(`test\d+`, Caseless|SOMLeftMost)
	parsed, err := ParsePattern(orig.String())
	require.NoError(t, err)
	assert.Equal(t, orig.Expression, parsed.Expression)
	assert.Equal(t, orig.Flags, parsed.Flags)
}
