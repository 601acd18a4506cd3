package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVector(t *testing.T) {
	vectorPatternsPath = ""
	path := writeTempFile(t, "records.csv",
		"alice,alice@example.com,active\nbob,no contact,inactive\ncarol,carol@example.org,active\n")

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runVector(cmd, []string{path})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "record 1:")
	assert.Contains(t, output, "record 3:")
	assert.NotContains(t, output, "record 2:")
	assert.Contains(t, output, `"pii.email"`)
}

func TestRunVector_MissingFile(t *testing.T) {
	vectorPatternsPath = ""

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runVector(cmd, []string{"does-not-exist.csv"})
	require.Error(t, err)
}

func TestRunVector_BadCSV(t *testing.T) {
	vectorPatternsPath = ""
	path := writeTempFile(t, "bad.csv", "a,\"unterminated\n")

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runVector(cmd, []string{path})
	require.Error(t, err)
}
