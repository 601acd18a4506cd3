package patternset

import "embed"

// builtinFS carries the builtin pattern sets shipped with the binary.
//
//go:embed patterns/*.yml
var builtinFS embed.FS
