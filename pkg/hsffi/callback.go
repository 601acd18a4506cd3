//go:build cgo && hyperscan

package hsffi

/*
#include <hs.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// hsffiOnMatch is the single C-visible trampoline shared by every scan
// call. context is a pointer to a cgo.Handle wrapping the caller's
// MatchEventFunc; the handle lives on the calling goroutine's stack for
// the duration of the scan.
//
//export hsffiOnMatch
func hsffiOnMatch(id C.uint, from, to C.ulonglong, flags C.uint, context unsafe.Pointer) C.int {
	h := *(*cgo.Handle)(context)
	fn := h.Value().(MatchEventFunc)
	return C.int(fn(uint32(id), uint64(from), uint64(to), uint32(flags)))
}
