// Package chimera wraps the Chimera hybrid matching engine, which pairs
// the Hyperscan prefilter with a PCRE backend so matches report capture
// groups, which core Hyperscan cannot do.
//
// Chimera ships only as a static archive; building with -tags=chimera
// links libchimera.a, libhs.a and libpcre statically. Databases are
// block-mode only. Without the tag, constructors return
// hsffi.ErrUnavailable.
package chimera

// Verdict is returned by match and error handlers to steer the scan.
type Verdict int

const (
	// Continue carries on scanning.
	Continue Verdict = 0
	// Terminate stops the scan; the scan call returns ErrScanTerminated.
	Terminate Verdict = 1
	// SkipPattern stops further callbacks for the current pattern only.
	SkipPattern Verdict = 2
)

// Capture is one capture group of a match. Index 0 is the whole match.
// Inactive captures belong to groups that did not participate.
type Capture struct {
	From   uint64
	To     uint64
	Active bool
}

// ErrorEvent identifies a per-pattern runtime fault during a scan.
type ErrorEvent int

const (
	// ErrorMatchLimit means the PCRE match limit was exceeded.
	ErrorMatchLimit ErrorEvent = 1
	// ErrorRecursionLimit means the PCRE recursion limit was exceeded.
	ErrorRecursionLimit ErrorEvent = 2
)

// OnMatchFunc receives every match with its capture groups.
type OnMatchFunc func(id uint, from, to uint64, captures []Capture) Verdict

// OnErrorFunc receives per-pattern faults; returning Continue skips the
// faulting pattern and keeps scanning. May be nil, which terminates the
// scan on any fault.
type OnErrorFunc func(event ErrorEvent, id uint) Verdict
