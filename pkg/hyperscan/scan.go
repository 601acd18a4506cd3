package hyperscan

import (
	"errors"
	"fmt"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
)

// ErrTerminated is returned by a MatchHandler to stop the scan early.
// The scan call then returns ErrTerminated so callers can distinguish a
// deliberate stop from a scan failure with errors.Is.
var ErrTerminated = errors.New("hyperscan: scan terminated by match handler")

// MatchHandler is invoked for every match event during a scan.
//
// id is the pattern ID the expression was compiled with. from and to
// delimit the match; from is always zero unless the pattern was compiled
// with SOMLeftMost. Returning a non-nil error stops the scan: the scan
// call returns that error (ErrTerminated for a deliberate stop).
type MatchHandler func(id uint, from, to uint64, flags uint) error

// wrapHandler adapts a MatchHandler to the binding layer's integer
// verdict contract and keeps panics from crossing the cgo boundary.
func wrapHandler(onMatch MatchHandler, herr *error) hsffi.MatchEventFunc {
	return func(id uint32, from, to uint64, flags uint32) (verdict int) {
		defer func() {
			if r := recover(); r != nil {
				*herr = fmt.Errorf("hyperscan: match handler panicked: %v", r)
				verdict = hsffi.ScanTerminate
			}
		}()

		if err := onMatch(uint(id), from, to, uint(flags)); err != nil {
			*herr = err
			return hsffi.ScanTerminate
		}
		return hsffi.ScanContinue
	}
}

// scanResult folds the engine status and the handler error into one.
// A termination requested by the handler is reported as the handler's
// error, not as a scan failure.
func scanResult(engineErr, handlerErr error) error {
	if handlerErr != nil {
		return handlerErr
	}
	return engineErr
}

// Scan scans data in a single call. Zero-length data is a successful
// no-op.
func (db *BlockDatabase) Scan(data []byte, scratch *Scratch, onMatch MatchHandler) error {
	var herr error
	err := hsffi.Scan(db.raw(), data, scratch.s, wrapHandler(onMatch, &herr))
	return scanResult(err, herr)
}

// Scan scans a sequence of blocks as one logical buffer. Match offsets
// are relative to the concatenation of all blocks.
func (db *VectoredDatabase) Scan(blocks [][]byte, scratch *Scratch, onMatch MatchHandler) error {
	var herr error
	err := hsffi.ScanVector(db.raw(), blocks, scratch.s, wrapHandler(onMatch, &herr))
	return scanResult(err, herr)
}
