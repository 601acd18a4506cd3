package hsffi

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by every entry point when the binding was
// built without CGO or without the hyperscan build tag.
var ErrUnavailable = errors.New("hyperscan is not available in this build (build with CGO_ENABLED=1 and -tags=hyperscan)")

// Error is a status code returned by the Hyperscan API.
type Error int

// Status codes reported by libhs. Success is zero, failures are negative.
const (
	// Success means the engine completed normally.
	Success Error = 0

	// ErrInvalid means a parameter passed to the function was invalid.
	ErrInvalid Error = -1

	// ErrNoMem means a memory allocation failed.
	ErrNoMem Error = -2

	// ErrScanTerminated means the engine was terminated by a callback.
	// The target buffer was partially scanned; the callback requested
	// that scanning cease after a match was located.
	ErrScanTerminated Error = -3

	// ErrCompiler means the pattern compiler failed; the compile error
	// carries the offending expression and a diagnostic message.
	ErrCompiler Error = -4

	// ErrDBVersion means the database was built for a different version
	// of Hyperscan.
	ErrDBVersion Error = -5

	// ErrDBPlatform means the database was built for a different platform
	// (i.e., CPU type).
	ErrDBPlatform Error = -6

	// ErrDBMode means the database was built for a different mode of
	// operation, e.g. streaming calls used with a block database.
	ErrDBMode Error = -7

	// ErrBadAlign means a parameter was not correctly aligned.
	ErrBadAlign Error = -8

	// ErrBadAlloc means the memory allocator did not return memory
	// suitably aligned for the largest representable data type.
	ErrBadAlloc Error = -9

	// ErrScratchInUse means the scratch region was already in use.
	// Every concurrent caller needs its own scratch, allocated with
	// AllocScratch or Scratch.Clone. Detection is best effort.
	ErrScratchInUse Error = -10

	// ErrArch means the current CPU does not support the required
	// instruction set (at minimum SSSE3).
	ErrArch Error = -11
)

var errorMessages = map[Error]string{
	Success:           "the engine completed normally",
	ErrInvalid:        "a parameter passed to this function was invalid",
	ErrNoMem:          "a memory allocation failed",
	ErrScanTerminated: "the engine was terminated by callback",
	ErrCompiler:       "the pattern compiler failed",
	ErrDBVersion:      "the given database was built for a different version of Hyperscan",
	ErrDBPlatform:     "the given database was built for a different platform",
	ErrDBMode:         "the given database was built for a different mode of operation",
	ErrBadAlign:       "a parameter passed to this function was not correctly aligned",
	ErrBadAlloc:       "the memory allocator failed to return correctly aligned memory",
	ErrScratchInUse:   "the scratch region was already in use",
	ErrArch:           "unsupported CPU architecture",
}

// Error implements the error interface.
func (e Error) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return fmt.Sprintf("hyperscan: %s (%d)", msg, int(e))
	}
	return fmt.Sprintf("hyperscan: unknown error (%d)", int(e))
}

// AsError converts a raw status code into an error value.
// Success maps to nil; everything else maps to the matching Error.
func AsError(code int) error {
	if Error(code) == Success {
		return nil
	}
	return Error(code)
}

// CompileError describes a pattern compilation failure, including which
// expression of a multi-pattern compile was at fault.
type CompileError struct {
	// Message is the diagnostic produced by the pattern compiler.
	Message string

	// Expression is the zero-based index of the failed expression, or a
	// negative value when the error is not specific to an expression.
	Expression int
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Expression >= 0 {
		return fmt.Sprintf("hyperscan: compile expression %d: %s", e.Expression, e.Message)
	}
	return fmt.Sprintf("hyperscan: compile: %s", e.Message)
}
