package hsffi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFlags(t *testing.T) {
	assert.Equal(t, ModeFlag(1), ModeBlock)
	assert.Equal(t, ModeBlock, ModeNoStream)
	assert.Equal(t, ModeFlag(2), ModeStream)
	assert.Equal(t, ModeFlag(4), ModeVectored)

	// SOM horizon flags occupy the high bits and never collide with modes.
	assert.Equal(t, ModeFlag(1<<24), ModeSOMHorizonLarge)
	assert.Equal(t, ModeFlag(1<<25), ModeSOMHorizonMedium)
	assert.Equal(t, ModeFlag(1<<26), ModeSOMHorizonSmall)
}

func TestCompileFlags(t *testing.T) {
	flags := []CompileFlag{
		Caseless, DotAll, MultiLine, SingleMatch,
		AllowEmpty, UTF8, UCP, Prefilter, SOMLeftMost,
	}

	// Each flag is a distinct bit.
	var combined CompileFlag
	for _, f := range flags {
		assert.Zero(t, combined&f, "flag %d overlaps", f)
		combined |= f
	}
	assert.Equal(t, CompileFlag(511), combined)
}

func TestCPUFeatures(t *testing.T) {
	assert.Equal(t, CPUFeature(1<<2), CPUFeatureAVX2)
	assert.Equal(t, CPUFeature(1<<3), CPUFeatureAVX512)
}

func TestTuneFamilies(t *testing.T) {
	assert.Equal(t, TuneFamily(0), TuneGeneric)
	assert.Equal(t, TuneFamily(8), TuneGoldmont)
}
