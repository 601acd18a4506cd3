//go:build !cgo || !hyperscan

package hsffi

// Stubs for builds without the native library. The exported surface is
// identical to the CGO build so dependent packages compile unchanged;
// every call fails with ErrUnavailable.

// Available reports whether the native binding was compiled in.
func Available() bool { return false }

// Version returns the version string of the linked libhs.
func Version() string { return "" }

// ValidPlatform reports whether the current CPU can run Hyperscan at all.
func ValidPlatform() error { return ErrUnavailable }

// PopulatePlatform queries the tuning parameters of the current host.
func PopulatePlatform() (TuneFamily, CPUFeature, error) {
	return 0, 0, ErrUnavailable
}

// Database is a compiled pattern database.
type Database struct{}

// Scratch is per-caller scratch space required by the scanning calls.
type Scratch struct{}

// Stream is an open stream on a streaming-mode database.
type Stream struct{}

// CompileMulti compiles a set of expressions into a single database.
func CompileMulti(exprs []string, flags []CompileFlag, ids []uint32, mode ModeFlag) (*Database, error) {
	return nil, ErrUnavailable
}

// Free releases the database.
func (db *Database) Free() error { return nil }

// Size returns the in-memory footprint of the database in bytes.
func (db *Database) Size() (int, error) { return 0, ErrUnavailable }

// Info returns the version/feature/mode description of the database.
func (db *Database) Info() (string, error) { return "", ErrUnavailable }

// Serialize flattens the database into a portable byte buffer.
func (db *Database) Serialize() ([]byte, error) { return nil, ErrUnavailable }

// Deserialize reconstructs a database from a Serialize buffer.
func Deserialize(data []byte) (*Database, error) { return nil, ErrUnavailable }

// AllocScratch allocates scratch space sized for the given database.
func AllocScratch(db *Database) (*Scratch, error) { return nil, ErrUnavailable }

// Realloc grows the scratch space to also accommodate the given database.
func (s *Scratch) Realloc(db *Database) error { return ErrUnavailable }

// Clone allocates a fresh scratch with the same size as the receiver.
func (s *Scratch) Clone() (*Scratch, error) { return nil, ErrUnavailable }

// Free releases the scratch space.
func (s *Scratch) Free() error { return nil }

// Scan runs a block-mode scan over data.
func Scan(db *Database, data []byte, s *Scratch, onEvent MatchEventFunc) error {
	return ErrUnavailable
}

// ScanVector runs a vectored scan over a sequence of blocks.
func ScanVector(db *Database, blocks [][]byte, s *Scratch, onEvent MatchEventFunc) error {
	return ErrUnavailable
}

// OpenStream opens a stream against a streaming-mode database.
func OpenStream(db *Database) (*Stream, error) { return nil, ErrUnavailable }

// Scan writes data into the stream.
func (st *Stream) Scan(data []byte, s *Scratch, onEvent MatchEventFunc) error {
	return ErrUnavailable
}

// Close flushes end-of-data match events and releases the stream state.
func (st *Stream) Close(s *Scratch, onEvent MatchEventFunc) error { return nil }

// Reset returns the stream to its initial state.
func (st *Stream) Reset(s *Scratch, onEvent MatchEventFunc) error {
	return ErrUnavailable
}
