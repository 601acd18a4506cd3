package hsffi

// Scan verdicts returned by a MatchEventFunc. These mirror the C callback
// contract: zero continues the scan, non-zero halts it.
const (
	ScanContinue  = 0
	ScanTerminate = 1
)

// MatchEventFunc is invoked for every match event during a scan.
// id is the numeric identifier the expression was compiled with, from and
// to delimit the match (from is zero unless SOMLeftMost was set).
// Returning ScanTerminate stops the scan with ErrScanTerminated.
type MatchEventFunc func(id uint32, from, to uint64, flags uint32) int
