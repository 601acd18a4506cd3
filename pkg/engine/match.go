package engine

// Match is a single pattern hit within scanned content.
type Match struct {
	// PatternID is the identifier of the pattern that matched.
	PatternID string

	// PatternName is the human-readable name of the pattern, if any.
	PatternName string

	// Start and End are byte offsets into the scanned content.
	Start int
	End   int

	// Captures holds the numbered capture groups, excluding the full
	// match. Entries are independent copies of the content.
	Captures [][]byte

	// Excerpt carries the matched bytes with surrounding context lines.
	Excerpt Excerpt
}

// Excerpt is a snippet of content around a match. All slices are
// independent copies, so holding an Excerpt does not pin the scanned
// content in memory.
type Excerpt struct {
	Before   []byte
	Matching []byte
	After    []byte
}
