package hyperscan

import "github.com/vectorgrep/vectorgrep/pkg/hsffi"

// Scratch is the per-caller scratch space required by every scan.
// A Scratch must not be used by two scans at the same time; concurrent
// callers clone their own copy. Detection of concurrent use is best
// effort only (ErrScratchInUse).
type Scratch struct {
	s *hsffi.Scratch
}

// NewScratch allocates scratch space sized for the given database.
func NewScratch(db Database) (*Scratch, error) {
	s, err := hsffi.AllocScratch(db.raw())
	if err != nil {
		return nil, err
	}
	return &Scratch{s: s}, nil
}

// Realloc grows the scratch to also cover the given database, so one
// scratch can serve scans against several databases.
func (s *Scratch) Realloc(db Database) error {
	return s.s.Realloc(db.raw())
}

// Clone allocates a fresh scratch of the same size. Use one clone per
// concurrent goroutine.
func (s *Scratch) Clone() (*Scratch, error) {
	dup, err := s.s.Clone()
	if err != nil {
		return nil, err
	}
	return &Scratch{s: dup}, nil
}

// Free releases the scratch space.
func (s *Scratch) Free() error {
	return s.s.Free()
}
