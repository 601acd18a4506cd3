//go:build cgo && hyperscan && !hyperscan_static

package hsffi

// Dynamic linkage. The library is discovered through the system
// package-config mechanism; a missing libhs aborts the build with the
// pkg-config diagnostic.

/*
#cgo pkg-config: libhs
*/
import "C"
