//go:build cgo && hyperscan && hyperscan_static

package hsffi

// Static linkage against the libhs archive. Hyperscan is C++ internally,
// so the standard C++ runtime and libm come along.

/*
#cgo LDFLAGS: -l:libhs.a -lstdc++ -lm
*/
import "C"
