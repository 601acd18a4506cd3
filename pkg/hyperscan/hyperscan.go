// Package hyperscan is a safe wrapper over the Hyperscan regular
// expression engine.
//
// Patterns compile into one of three database kinds: block (scan a whole
// buffer at once), vectored (scan a sequence of non-contiguous blocks as
// one logical buffer) or streaming (scan data arriving piecewise, with
// matches allowed to span writes). A compiled database is immutable and
// safe for concurrent scans; each concurrent caller needs its own
// Scratch, obtained with NewScratch or Scratch.Clone.
//
// In builds without CGO or without the hyperscan build tag, every
// constructor returns hsffi.ErrUnavailable.
package hyperscan

import "github.com/vectorgrep/vectorgrep/pkg/hsffi"

// Available reports whether the native Hyperscan engine is compiled in.
func Available() bool {
	return hsffi.Available()
}

// Version returns the version string of the linked libhs, or the empty
// string when the engine is not compiled in.
func Version() string {
	return hsffi.Version()
}

// ValidPlatform reports whether the current CPU supports Hyperscan
// (at minimum SSSE3).
func ValidPlatform() error {
	return hsffi.ValidPlatform()
}
