package hsffi

// ModeFlag selects the database mode at compile time.
type ModeFlag uint32

const (
	// ModeBlock compiles a block scan (non-streaming) database.
	ModeBlock ModeFlag = 1

	// ModeNoStream is an alias for ModeBlock.
	ModeNoStream ModeFlag = 1

	// ModeStream compiles a streaming database.
	ModeStream ModeFlag = 2

	// ModeVectored compiles a vectored scanning database.
	ModeVectored ModeFlag = 4

	// ModeSOMHorizonLarge tracks start-of-match offsets in stream state
	// with full precision.
	ModeSOMHorizonLarge ModeFlag = 1 << 24

	// ModeSOMHorizonMedium tracks start-of-match offsets in stream state
	// with medium precision.
	ModeSOMHorizonMedium ModeFlag = 1 << 25

	// ModeSOMHorizonSmall tracks start-of-match offsets in stream state
	// with limited precision.
	ModeSOMHorizonSmall ModeFlag = 1 << 26
)

// CompileFlag modifies the behaviour of a single expression.
type CompileFlag uint32

const (
	// Caseless sets case-insensitive matching.
	Caseless CompileFlag = 1

	// DotAll makes `.` match newlines as well.
	DotAll CompileFlag = 2

	// MultiLine sets multi-line anchoring for ^ and $.
	MultiLine CompileFlag = 4

	// SingleMatch reports each pattern at most once per scan.
	SingleMatch CompileFlag = 8

	// AllowEmpty allows expressions that can match empty buffers.
	AllowEmpty CompileFlag = 16

	// UTF8 enables UTF-8 mode for the expression.
	UTF8 CompileFlag = 32

	// UCP enables Unicode property support for the expression.
	UCP CompileFlag = 64

	// Prefilter compiles the expression in prefiltering mode.
	Prefilter CompileFlag = 128

	// SOMLeftMost enables leftmost start-of-match reporting.
	SOMLeftMost CompileFlag = 256
)

// CPUFeature describes optional instruction-set support on the target.
type CPUFeature uint64

const (
	// CPUFeatureAVX2 indicates the target supports AVX2 instructions.
	CPUFeatureAVX2 CPUFeature = 1 << 2

	// CPUFeatureAVX512 indicates the target supports AVX-512BW; AVX512
	// implies AVX2.
	CPUFeatureAVX512 CPUFeature = 1 << 3
)

// TuneFamily selects the microarchitecture a database is tuned for.
type TuneFamily uint32

const (
	// TuneGeneric requests no target-specific tuning.
	TuneGeneric TuneFamily = iota
	// TuneSandyBridge tunes for Sandy Bridge.
	TuneSandyBridge
	// TuneIvyBridge tunes for Ivy Bridge.
	TuneIvyBridge
	// TuneHaswell tunes for Haswell.
	TuneHaswell
	// TuneSilvermont tunes for Silvermont.
	TuneSilvermont
	// TuneBroadwell tunes for Broadwell.
	TuneBroadwell
	// TuneSkylake tunes for Skylake.
	TuneSkylake
	// TuneSkylakeServer tunes for Skylake Server.
	TuneSkylakeServer
	// TuneGoldmont tunes for Goldmont.
	TuneGoldmont
)

// ExtFlag indicates which fields of an expression extension are in use.
type ExtFlag uint64

const (
	// ExtMinOffset marks the min_offset field as used.
	ExtMinOffset ExtFlag = 1

	// ExtMaxOffset marks the max_offset field as used.
	ExtMaxOffset ExtFlag = 2

	// ExtMinLength marks the min_length field as used.
	ExtMinLength ExtFlag = 4

	// ExtEditDistance marks the edit_distance field as used.
	ExtEditDistance ExtFlag = 8
)
