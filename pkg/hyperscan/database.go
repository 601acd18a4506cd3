package hyperscan

import (
	"fmt"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
)

// Database is the interface shared by the three database kinds.
type Database interface {
	// Mode returns the mode the database was compiled for.
	Mode() hsffi.ModeFlag

	// Info returns the version/feature/mode description of the database.
	Info() (string, error)

	// Size returns the in-memory footprint of the database in bytes.
	Size() (int, error)

	// Marshal serializes the database into a portable byte buffer.
	Marshal() ([]byte, error)

	// Close frees the database. The database must not be used afterwards.
	Close() error

	raw() *hsffi.Database
}

// database is the common implementation embedded by the concrete kinds.
type database struct {
	db   *hsffi.Database
	mode hsffi.ModeFlag
}

func (d *database) Mode() hsffi.ModeFlag { return d.mode }

func (d *database) Info() (string, error) { return d.db.Info() }

func (d *database) Size() (int, error) { return d.db.Size() }

func (d *database) Marshal() ([]byte, error) { return d.db.Serialize() }

func (d *database) Close() error { return d.db.Free() }

func (d *database) raw() *hsffi.Database { return d.db }

// BlockDatabase scans whole buffers at once.
type BlockDatabase struct{ database }

// VectoredDatabase scans sequences of non-contiguous blocks as one
// logical buffer.
type VectoredDatabase struct{ database }

// StreamDatabase scans data arriving piecewise; matches may span writes.
type StreamDatabase struct{ database }

// NewBlockDatabase compiles patterns into a block-mode database.
func NewBlockDatabase(patterns ...*Pattern) (*BlockDatabase, error) {
	db, err := compile(patterns, hsffi.ModeBlock)
	if err != nil {
		return nil, err
	}
	return &BlockDatabase{database{db: db, mode: hsffi.ModeBlock}}, nil
}

// NewVectoredDatabase compiles patterns into a vectored-mode database.
func NewVectoredDatabase(patterns ...*Pattern) (*VectoredDatabase, error) {
	db, err := compile(patterns, hsffi.ModeVectored)
	if err != nil {
		return nil, err
	}
	return &VectoredDatabase{database{db: db, mode: hsffi.ModeVectored}}, nil
}

// NewStreamDatabase compiles patterns into a streaming-mode database.
// When any pattern requests SOMLeftMost, the large SOM horizon is enabled
// so start-of-match offsets survive in stream state.
func NewStreamDatabase(patterns ...*Pattern) (*StreamDatabase, error) {
	mode := hsffi.ModeStream
	for _, p := range patterns {
		if p.Flags&SOMLeftMost != 0 {
			mode |= hsffi.ModeSOMHorizonLarge
			break
		}
	}

	db, err := compile(patterns, mode)
	if err != nil {
		return nil, err
	}
	return &StreamDatabase{database{db: db, mode: mode}}, nil
}

// UnmarshalBlockDatabase reconstructs a block database from a Marshal
// buffer. Buffers produced by a different libhs version or platform fail
// with ErrDBVersion / ErrDBPlatform.
func UnmarshalBlockDatabase(data []byte) (*BlockDatabase, error) {
	db, err := hsffi.Deserialize(data)
	if err != nil {
		return nil, err
	}
	return &BlockDatabase{database{db: db, mode: hsffi.ModeBlock}}, nil
}

// compile flattens patterns into the parallel arrays the binding layer
// expects. Pattern IDs default to their index when unset.
func compile(patterns []*Pattern, mode hsffi.ModeFlag) (*hsffi.Database, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("hyperscan: no patterns to compile")
	}

	exprs := make([]string, len(patterns))
	flags := make([]hsffi.CompileFlag, len(patterns))
	ids := make([]uint32, len(patterns))

	for i, p := range patterns {
		exprs[i] = p.Expression
		flags[i] = p.Flags
		if p.ID != 0 {
			ids[i] = uint32(p.ID)
		} else {
			ids[i] = uint32(i)
		}
	}

	return hsffi.CompileMulti(exprs, flags, ids, mode)
}
