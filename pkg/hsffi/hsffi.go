//go:build cgo && hyperscan

package hsffi

/*
#include <stdlib.h>
#include <hs.h>

extern int hsffiOnMatch(unsigned int id, unsigned long long from,
	unsigned long long to, unsigned int flags, void *context);
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// Available reports whether the native binding was compiled in.
func Available() bool { return true }

// Version returns the version string of the linked libhs.
func Version() string {
	return C.GoString(C.hs_version())
}

// ValidPlatform reports whether the current CPU can run Hyperscan at all.
func ValidPlatform() error {
	return AsError(int(C.hs_valid_platform()))
}

// PopulatePlatform queries the tuning parameters of the current host.
func PopulatePlatform() (TuneFamily, CPUFeature, error) {
	var info C.hs_platform_info_t
	if err := AsError(int(C.hs_populate_platform(&info))); err != nil {
		return 0, 0, err
	}
	return TuneFamily(info.tune), CPUFeature(info.cpu_features), nil
}

// Database is a compiled pattern database.
type Database struct {
	ptr *C.hs_database_t
}

// Scratch is per-caller scratch space required by the scanning calls.
type Scratch struct {
	ptr *C.hs_scratch_t
}

// Stream is an open stream on a streaming-mode database.
type Stream struct {
	ptr *C.hs_stream_t
}

// CompileMulti compiles a set of expressions into a single database.
// flags and ids run parallel to exprs; mode selects block, vectored or
// streaming operation. The database is compiled for the current platform.
func CompileMulti(exprs []string, flags []CompileFlag, ids []uint32, mode ModeFlag) (*Database, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("hyperscan: no expressions to compile")
	}
	if len(flags) != len(exprs) || len(ids) != len(exprs) {
		return nil, fmt.Errorf("hyperscan: expressions, flags and ids must have equal length")
	}

	cexprs := make([]*C.char, len(exprs))
	for i, expr := range exprs {
		cexprs[i] = C.CString(expr)
	}
	defer func() {
		for _, p := range cexprs {
			C.free(unsafe.Pointer(p))
		}
	}()

	cflags := make([]C.uint, len(flags))
	for i, f := range flags {
		cflags[i] = C.uint(f)
	}
	cids := make([]C.uint, len(ids))
	for i, id := range ids {
		cids[i] = C.uint(id)
	}

	var db *C.hs_database_t
	var cerr *C.hs_compile_error_t

	ret := C.hs_compile_multi(
		(**C.char)(unsafe.Pointer(&cexprs[0])),
		&cflags[0],
		&cids[0],
		C.uint(len(exprs)),
		C.uint(mode),
		nil,
		&db,
		&cerr,
	)
	if Error(ret) != Success {
		defer C.hs_free_compile_error(cerr)
		if cerr != nil {
			return nil, &CompileError{
				Message:    C.GoString(cerr.message),
				Expression: int(cerr.expression),
			}
		}
		return nil, AsError(int(ret))
	}

	return &Database{ptr: db}, nil
}

// Free releases the database. The database must not be used afterwards.
func (db *Database) Free() error {
	if db == nil || db.ptr == nil {
		return nil
	}
	err := AsError(int(C.hs_free_database(db.ptr)))
	db.ptr = nil
	return err
}

// Size returns the in-memory footprint of the database in bytes.
func (db *Database) Size() (int, error) {
	var size C.size_t
	if err := AsError(int(C.hs_database_size(db.ptr, &size))); err != nil {
		return 0, err
	}
	return int(size), nil
}

// Info returns the version/feature/mode description of the database.
func (db *Database) Info() (string, error) {
	var p *C.char
	if err := AsError(int(C.hs_database_info(db.ptr, &p))); err != nil {
		return "", err
	}
	info := C.GoString(p)
	C.free(unsafe.Pointer(p))
	return info, nil
}

// Serialize flattens the database into a portable byte buffer.
func (db *Database) Serialize() ([]byte, error) {
	var buf *C.char
	var length C.size_t
	if err := AsError(int(C.hs_serialize_database(db.ptr, &buf, &length))); err != nil {
		return nil, err
	}
	data := C.GoBytes(unsafe.Pointer(buf), C.int(length))
	C.free(unsafe.Pointer(buf))
	return data, nil
}

// Deserialize reconstructs a database from a Serialize buffer. Fails with
// ErrDBVersion or ErrDBPlatform when the buffer does not fit this build.
func Deserialize(data []byte) (*Database, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("hyperscan: empty serialized database")
	}
	var db *C.hs_database_t
	ret := C.hs_deserialize_database(
		(*C.char)(unsafe.Pointer(&data[0])),
		C.size_t(len(data)),
		&db,
	)
	if err := AsError(int(ret)); err != nil {
		return nil, err
	}
	return &Database{ptr: db}, nil
}

// AllocScratch allocates scratch space sized for the given database.
func AllocScratch(db *Database) (*Scratch, error) {
	var s *C.hs_scratch_t
	if err := AsError(int(C.hs_alloc_scratch(db.ptr, &s))); err != nil {
		return nil, err
	}
	return &Scratch{ptr: s}, nil
}

// Realloc grows the scratch space to also accommodate the given database.
func (s *Scratch) Realloc(db *Database) error {
	return AsError(int(C.hs_alloc_scratch(db.ptr, &s.ptr)))
}

// Clone allocates a fresh scratch with the same size as the receiver.
// Required for every additional concurrent caller.
func (s *Scratch) Clone() (*Scratch, error) {
	var dup *C.hs_scratch_t
	if err := AsError(int(C.hs_clone_scratch(s.ptr, &dup))); err != nil {
		return nil, err
	}
	return &Scratch{ptr: dup}, nil
}

// Free releases the scratch space.
func (s *Scratch) Free() error {
	if s == nil || s.ptr == nil {
		return nil
	}
	err := AsError(int(C.hs_free_scratch(s.ptr)))
	s.ptr = nil
	return err
}

// Scan runs a block-mode scan over data, reporting events to onEvent.
func Scan(db *Database, data []byte, s *Scratch, onEvent MatchEventFunc) error {
	if len(data) == 0 {
		return nil
	}

	h := cgo.NewHandle(onEvent)
	defer h.Delete()

	ret := C.hs_scan(
		db.ptr,
		(*C.char)(unsafe.Pointer(&data[0])),
		C.uint(len(data)),
		0,
		s.ptr,
		C.match_event_handler(C.hsffiOnMatch),
		unsafe.Pointer(&h),
	)
	return AsError(int(ret))
}

// ScanVector runs a vectored scan over a sequence of blocks treated as a
// single logical buffer.
func ScanVector(db *Database, blocks [][]byte, s *Scratch, onEvent MatchEventFunc) error {
	// The library rejects NULL data pointers, so empty blocks are dropped.
	// They contribute no bytes and leave logical offsets unchanged.
	ptrs := make([]*C.char, 0, len(blocks))
	lens := make([]C.uint, 0, len(blocks))
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		ptrs = append(ptrs, (*C.char)(unsafe.Pointer(&b[0])))
		lens = append(lens, C.uint(len(b)))
	}
	if len(ptrs) == 0 {
		return nil
	}

	h := cgo.NewHandle(onEvent)
	defer h.Delete()

	ret := C.hs_scan_vector(
		db.ptr,
		(**C.char)(unsafe.Pointer(&ptrs[0])),
		&lens[0],
		C.uint(len(ptrs)),
		0,
		s.ptr,
		C.match_event_handler(C.hsffiOnMatch),
		unsafe.Pointer(&h),
	)
	return AsError(int(ret))
}

// OpenStream opens a stream against a streaming-mode database.
func OpenStream(db *Database) (*Stream, error) {
	var st *C.hs_stream_t
	if err := AsError(int(C.hs_open_stream(db.ptr, 0, &st))); err != nil {
		return nil, err
	}
	return &Stream{ptr: st}, nil
}

// Scan writes data into the stream; matches spanning earlier writes are
// reported as they complete.
func (st *Stream) Scan(data []byte, s *Scratch, onEvent MatchEventFunc) error {
	if len(data) == 0 {
		return nil
	}

	h := cgo.NewHandle(onEvent)
	defer h.Delete()

	ret := C.hs_scan_stream(
		st.ptr,
		(*C.char)(unsafe.Pointer(&data[0])),
		C.uint(len(data)),
		0,
		s.ptr,
		C.match_event_handler(C.hsffiOnMatch),
		unsafe.Pointer(&h),
	)
	return AsError(int(ret))
}

// Close flushes end-of-data match events and releases the stream state.
// onEvent may be nil when pending events are not wanted.
func (st *Stream) Close(s *Scratch, onEvent MatchEventFunc) error {
	if st == nil || st.ptr == nil {
		return nil
	}

	var ctx unsafe.Pointer
	var handler C.match_event_handler
	if onEvent != nil {
		h := cgo.NewHandle(onEvent)
		defer h.Delete()
		ctx = unsafe.Pointer(&h)
		handler = C.match_event_handler(C.hsffiOnMatch)
	}

	ret := C.hs_close_stream(st.ptr, s.ptr, handler, ctx)
	st.ptr = nil
	return AsError(int(ret))
}

// Reset returns the stream to its initial state, reporting any pending
// end-of-data events first. Cheaper than close-and-reopen.
func (st *Stream) Reset(s *Scratch, onEvent MatchEventFunc) error {
	var ctx unsafe.Pointer
	var handler C.match_event_handler
	if onEvent != nil {
		h := cgo.NewHandle(onEvent)
		defer h.Delete()
		ctx = unsafe.Pointer(&h)
		handler = C.match_event_handler(C.hsffiOnMatch)
	}

	return AsError(int(C.hs_reset_stream(st.ptr, 0, s.ptr, handler, ctx)))
}
