package dbcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
	"github.com/vectorgrep/vectorgrep/pkg/patternset"
)

func TestCache_GetPut(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	_, found, err := cache.Get("abc", "5.4.0", 1)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Put("abc", "5.4.0", 1, []byte("serialized")))

	data, found, err := cache.Get("abc", "5.4.0", 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("serialized"), data)
}

func TestCache_VersionMismatchIsMiss(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("abc", "5.4.0", 1, []byte("old")))

	_, found, err := cache.Get("abc", "5.4.2", 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_ModeIsPartOfKey(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("abc", "5.4.0", 1, []byte("block")))
	require.NoError(t, cache.Put("abc", "5.4.0", 2, []byte("stream")))

	data, found, err := cache.Get("abc", "5.4.0", 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("stream"), data)
}

func TestCache_PutReplaces(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("abc", "5.4.0", 1, []byte("first")))
	require.NoError(t, cache.Put("abc", "5.4.0", 1, []byte("second")))

	data, found, err := cache.Get("abc", "5.4.0", 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("second"), data)
}

func TestCache_Prune(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("old", "5.4.0", 1, []byte("old")))
	require.NoError(t, cache.Put("new", "5.4.0", 1, []byte("new")))

	// Everything is newer than one hour, nothing to prune.
	n, err := cache.Prune(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Backdate one entry past the cutoff rather than sleeping, timestamps
	// are second-truncated so real elapsed time races the clock phase.
	_, err = cache.db.Exec("UPDATE databases SET created_at = ? WHERE digest = ?",
		time.Now().Add(-2*time.Hour).Unix(), "old")
	require.NoError(t, err)

	n, err = cache.Prune(time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, found, err := cache.Get("old", "5.4.0", 1)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cache.Get("new", "5.4.0", 1)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestDigest_OrderIndependent(t *testing.T) {
	a := &patternset.Pattern{ID: "a", Expression: "x", Flags: hyperscan.Caseless}
	b := &patternset.Pattern{ID: "b", Expression: "y"}

	d1 := Digest([]*patternset.Pattern{a, b})
	d2 := Digest([]*patternset.Pattern{b, a})
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)
}

func TestDigest_SensitiveToContent(t *testing.T) {
	base := []*patternset.Pattern{{ID: "a", Expression: "x"}}

	changedExpr := []*patternset.Pattern{{ID: "a", Expression: "y"}}
	changedFlags := []*patternset.Pattern{{ID: "a", Expression: "x", Flags: hyperscan.Caseless}}

	assert.NotEqual(t, Digest(base), Digest(changedExpr))
	assert.NotEqual(t, Digest(base), Digest(changedFlags))
}
