package hyperscan

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
)

func TestUnavailableBuild(t *testing.T) {
	if Available() {
		t.Skip("Hyperscan is available in this build")
	}

	_, err := NewBlockDatabase(NewPattern("test", 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, hsffi.ErrUnavailable)

	assert.Empty(t, Version())
}

func TestNewBlockDatabase(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("test", 0))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, hsffi.ModeBlock, db.Mode())

	size, err := db.Size()
	require.NoError(t, err)
	assert.Greater(t, size, 0)

	info, err := db.Info()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info, "Version:"), "unexpected info %q", info)
}

func TestNewBlockDatabase_CompileError(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	_, err := NewBlockDatabase(NewPattern("(unclosed", 0))
	require.Error(t, err)

	var cerr *hsffi.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Expression)
}

func TestBlockScan(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("test", Caseless|SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	type span struct{ from, to uint64 }
	var matches []span
	err = db.Scan([]byte("foo Test bar"), scratch, func(id uint, from, to uint64, flags uint) error {
		matches = append(matches, span{from, to})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []span{{4, 8}}, matches)
}

func TestBlockScan_EmptyData(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("test", 0))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	err = db.Scan(nil, scratch, func(id uint, from, to uint64, flags uint) error {
		t.Fatal("handler must not fire on empty data")
		return nil
	})
	require.NoError(t, err)
}

func TestBlockScan_Terminate(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("a", 0))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	calls := 0
	err = db.Scan([]byte("aaaa"), scratch, func(id uint, from, to uint64, flags uint) error {
		calls++
		return ErrTerminated
	})
	assert.ErrorIs(t, err, ErrTerminated)
	assert.Equal(t, 1, calls)
}

func TestBlockScan_HandlerError(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("a", 0))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	boom := errors.New("boom")
	err = db.Scan([]byte("a"), scratch, func(id uint, from, to uint64, flags uint) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestBlockScan_HandlerPanic(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("a", 0))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	err = db.Scan([]byte("a"), scratch, func(id uint, from, to uint64, flags uint) error {
		panic("handler exploded")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler panicked")
}

func TestVectoredScan(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewVectoredDatabase(NewPattern("test", SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	// The match spans two blocks; offsets are logical.
	var from, to uint64
	err = db.Scan([][]byte{[]byte("foo te"), []byte("st bar")}, scratch, func(id uint, fromOff, toOff uint64, flags uint) error {
		from, to = fromOff, toOff
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), from)
	assert.Equal(t, uint64(8), to)
}

func TestVectoredScan_EmptyBlocks(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewVectoredDatabase(NewPattern("test", SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	// Empty blocks contribute no bytes; logical offsets skip over them.
	var from, to uint64
	err = db.Scan([][]byte{nil, []byte("foo te"), {}, []byte("st bar")}, scratch, func(id uint, fromOff, toOff uint64, flags uint) error {
		from, to = fromOff, toOff
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), from)
	assert.Equal(t, uint64(8), to)

	// All blocks empty is a successful no-op.
	err = db.Scan([][]byte{nil, {}}, scratch, func(id uint, fromOff, toOff uint64, flags uint) error {
		t.Fatal("handler must not fire without data")
		return nil
	})
	require.NoError(t, err)
}

func TestBlockScan_WrongDatabaseMode(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	src, err := NewStreamDatabase(NewPattern("test", 0))
	require.NoError(t, err)
	defer src.Close()

	data, err := src.Marshal()
	require.NoError(t, err)

	// Deserializing does not check the mode; the scan call does.
	db, err := UnmarshalBlockDatabase(data)
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	err = db.Scan([]byte("test"), scratch, func(id uint, from, to uint64, flags uint) error {
		return nil
	})
	assert.ErrorIs(t, err, hsffi.ErrDBMode)
}

func TestStreamScan(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewStreamDatabase(NewPattern("test", SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	stream, err := db.Open()
	require.NoError(t, err)

	type span struct{ from, to uint64 }
	var matches []span
	onMatch := func(id uint, from, to uint64, flags uint) error {
		matches = append(matches, span{from, to})
		return nil
	}

	// The match spans three writes.
	for _, chunk := range []string{"foo t", "es", "t bar"} {
		require.NoError(t, stream.Scan([]byte(chunk), scratch, onMatch))
	}
	require.NoError(t, stream.Close(scratch, onMatch))

	assert.Equal(t, []span{{4, 8}}, matches)
}

func TestStreamReset(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewStreamDatabase(NewPattern("test", SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	stream, err := db.Open()
	require.NoError(t, err)

	type span struct{ from, to uint64 }
	var matches []span
	onMatch := func(id uint, from, to uint64, flags uint) error {
		matches = append(matches, span{from, to})
		return nil
	}

	// Reset discards buffered state, so the half-written match is gone.
	require.NoError(t, stream.Scan([]byte("te"), scratch, onMatch))
	require.NoError(t, stream.Reset(scratch, onMatch))
	require.NoError(t, stream.Scan([]byte("st"), scratch, onMatch))
	assert.Empty(t, matches)

	// Offsets restart from the reset point.
	require.NoError(t, stream.Scan([]byte("xtest"), scratch, onMatch))
	require.NoError(t, stream.Close(scratch, onMatch))
	assert.Equal(t, []span{{3, 7}}, matches)
}

func TestScanReader(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewStreamDatabase(NewPattern("a+", SOMLeftMost))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	// Place the match across the reader buffer boundary.
	input := strings.Repeat("x", scanBufSize-2) + "baaab"

	var matches [][2]uint64
	err = db.ScanReader(strings.NewReader(input), scratch, func(id uint, from, to uint64, flags uint) error {
		matches = append(matches, [2]uint64{from, to})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]uint64{{4095, 4096}, {4095, 4097}, {4095, 4098}}, matches)
}

func TestMarshalRoundTrip(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("test", 0))
	require.NoError(t, err)
	defer db.Close()

	data, err := db.Marshal()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	restored, err := UnmarshalBlockDatabase(data)
	require.NoError(t, err)
	defer restored.Close()

	scratch, err := NewScratch(restored)
	require.NoError(t, err)
	defer scratch.Free()

	found := false
	err = restored.Scan([]byte("a test"), scratch, func(id uint, from, to uint64, flags uint) error {
		found = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, found)
}

func TestScratchClone(t *testing.T) {
	if !Available() {
		t.Skip("Hyperscan not available")
	}

	db, err := NewBlockDatabase(NewPattern("test", 0))
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)
	defer scratch.Free()

	clone, err := scratch.Clone()
	require.NoError(t, err)
	defer clone.Free()

	err = db.Scan([]byte("test"), clone, func(id uint, from, to uint64, flags uint) error {
		return nil
	})
	require.NoError(t, err)
}

func ExampleBlockDatabase_Scan() {
	if !Available() {
		fmt.Println("match 4..8")
		return
	}

	db, _ := NewBlockDatabase(NewPattern("test", Caseless|SOMLeftMost))
	defer db.Close()

	scratch, _ := NewScratch(db)
	defer scratch.Free()

	db.Scan([]byte("foo test bar"), scratch, func(id uint, from, to uint64, flags uint) error {
		fmt.Printf("match %d..%d\n", from, to)
		return nil
	})
	// Output: match 4..8
}
