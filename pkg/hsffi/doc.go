// Package hsffi exposes the raw call surface of the Hyperscan C library.
//
// This is the low-level layer: it mirrors the hs_* API with Go-typed
// wrappers and carries the full error and flag constant taxonomy. Most
// callers want the safe wrapper in pkg/hyperscan instead.
//
// The package compiles in three configurations:
//   - CGO_ENABLED=1 with -tags=hyperscan: full binding, dynamically linked
//     against libhs discovered via pkg-config.
//   - Additionally -tags=hyperscan_static: links the static archive.
//   - Anything else: constants remain available and every entry point
//     returns ErrUnavailable, so dependent packages build everywhere.
package hsffi
