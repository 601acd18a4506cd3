//go:build cgo && chimera

package chimera

/*
#cgo LDFLAGS: -l:libchimera.a -l:libhs.a -lpcre -lstdc++ -lm
#include <stdlib.h>
#include <ch.h>

extern int chffiOnMatch(unsigned int id, unsigned long long from,
	unsigned long long to, unsigned int flags, unsigned int size,
	const ch_capture_t *captured, void *context);
extern int chffiOnError(ch_error_event_t error_type, unsigned int id,
	void *info, void *context);
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
	"github.com/vectorgrep/vectorgrep/pkg/hyperscan"
)

// Available reports whether the Chimera engine was compiled in.
func Available() bool { return true }

// Version returns the version string of the linked libchimera.
func Version() string {
	return C.GoString(C.ch_version())
}

// Database is a compiled Chimera pattern database (block-mode only).
type Database struct {
	ptr *C.ch_database_t
}

// Scratch is per-caller scratch space for Chimera scans.
type Scratch struct {
	ptr *C.ch_scratch_t
}

// chimeraFlagMask limits pattern flags to the subset Chimera supports.
const chimeraFlagMask = hyperscan.Caseless | hyperscan.DotAll |
	hyperscan.MultiLine | hyperscan.SingleMatch | hyperscan.UTF8 | hyperscan.UCP

// CompileMulti compiles patterns into a Chimera database with capture
// group reporting enabled. Flags outside the Chimera subset are dropped.
func CompileMulti(patterns ...*hyperscan.Pattern) (*Database, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("chimera: no patterns to compile")
	}

	cexprs := make([]*C.char, len(patterns))
	cflags := make([]C.uint, len(patterns))
	cids := make([]C.uint, len(patterns))
	for i, p := range patterns {
		cexprs[i] = C.CString(p.Expression)
		cflags[i] = C.uint(p.Flags & chimeraFlagMask)
		if p.ID != 0 {
			cids[i] = C.uint(p.ID)
		} else {
			cids[i] = C.uint(i)
		}
	}
	defer func() {
		for _, p := range cexprs {
			C.free(unsafe.Pointer(p))
		}
	}()

	var db *C.ch_database_t
	var cerr *C.ch_compile_error_t

	ret := C.ch_compile_multi(
		(**C.char)(unsafe.Pointer(&cexprs[0])),
		&cflags[0],
		&cids[0],
		C.uint(len(patterns)),
		C.CH_MODE_GROUPS,
		nil,
		&db,
		&cerr,
	)
	if ret != C.CH_SUCCESS {
		defer C.ch_free_compile_error(cerr)
		if cerr != nil {
			return nil, &hsffi.CompileError{
				Message:    C.GoString(cerr.message),
				Expression: int(cerr.expression),
			}
		}
		return nil, hsffi.AsError(int(ret))
	}

	return &Database{ptr: db}, nil
}

// Close frees the database.
func (db *Database) Close() error {
	if db == nil || db.ptr == nil {
		return nil
	}
	err := hsffi.AsError(int(C.ch_free_database(db.ptr)))
	db.ptr = nil
	return err
}

// Info returns the version/mode description of the database.
func (db *Database) Info() (string, error) {
	var p *C.char
	if err := hsffi.AsError(int(C.ch_database_info(db.ptr, &p))); err != nil {
		return "", err
	}
	info := C.GoString(p)
	C.free(unsafe.Pointer(p))
	return info, nil
}

// NewScratch allocates scratch space sized for the database.
func NewScratch(db *Database) (*Scratch, error) {
	var s *C.ch_scratch_t
	if err := hsffi.AsError(int(C.ch_alloc_scratch(db.ptr, &s))); err != nil {
		return nil, err
	}
	return &Scratch{ptr: s}, nil
}

// Clone allocates a fresh scratch of the same size for a concurrent
// caller.
func (s *Scratch) Clone() (*Scratch, error) {
	var dup *C.ch_scratch_t
	if err := hsffi.AsError(int(C.ch_clone_scratch(s.ptr, &dup))); err != nil {
		return nil, err
	}
	return &Scratch{ptr: dup}, nil
}

// Free releases the scratch space.
func (s *Scratch) Free() error {
	if s == nil || s.ptr == nil {
		return nil
	}
	err := hsffi.AsError(int(C.ch_free_scratch(s.ptr)))
	s.ptr = nil
	return err
}

// scanHandlers bundles both callbacks behind one cgo handle.
type scanHandlers struct {
	onMatch OnMatchFunc
	onError OnErrorFunc
}

// Scan scans data in a single call, reporting matches with their capture
// groups. onError may be nil.
func (db *Database) Scan(data []byte, scratch *Scratch, onMatch OnMatchFunc, onError OnErrorFunc) error {
	if len(data) == 0 {
		return nil
	}

	h := cgo.NewHandle(&scanHandlers{onMatch: onMatch, onError: onError})
	defer h.Delete()

	ret := C.ch_scan(
		db.ptr,
		(*C.char)(unsafe.Pointer(&data[0])),
		C.uint(len(data)),
		0,
		scratch.ptr,
		C.ch_match_event_handler(C.chffiOnMatch),
		C.ch_error_event_handler(C.chffiOnError),
		unsafe.Pointer(&h),
	)
	return hsffi.AsError(int(ret))
}

//export chffiOnMatch
func chffiOnMatch(id C.uint, from, to C.ulonglong, flags, size C.uint, captured *C.ch_capture_t, context unsafe.Pointer) C.int {
	h := *(*cgo.Handle)(context)
	handlers := h.Value().(*scanHandlers)

	var captures []Capture
	if captured != nil && size > 0 {
		raw := unsafe.Slice(captured, int(size))
		captures = make([]Capture, len(raw))
		for i, c := range raw {
			captures[i] = Capture{
				From:   uint64(c.from),
				To:     uint64(c.to),
				Active: c.flags&C.CH_CAPTURE_FLAG_ACTIVE != 0,
			}
		}
	}

	return C.int(handlers.onMatch(uint(id), uint64(from), uint64(to), captures))
}

//export chffiOnError
func chffiOnError(errorType C.ch_error_event_t, id C.uint, info, context unsafe.Pointer) C.int {
	h := *(*cgo.Handle)(context)
	handlers := h.Value().(*scanHandlers)

	if handlers.onError == nil {
		return C.int(Terminate)
	}
	return C.int(handlers.onError(ErrorEvent(errorType), uint(id)))
}
