package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFeatures_Default(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runFeatures(cmd, []string{})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Selected: (default)")
	assert.Contains(t, output, "Resolved: runtime")
	assert.Contains(t, output, "Build tags: hyperscan")
}

func TestRunFeatures_Chimera(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runFeatures(cmd, []string{"chimera"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Resolved: chimera,compile,runtime,static")
	assert.Contains(t, output, "hyperscan_static")
	assert.Contains(t, output, "chimera")
}

func TestRunFeatures_Unknown(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runFeatures(cmd, []string{"turbo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}
