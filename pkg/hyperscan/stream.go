package hyperscan

import (
	"fmt"
	"io"

	"github.com/vectorgrep/vectorgrep/pkg/hsffi"
)

// scanBufSize is the read granularity of ScanReader.
const scanBufSize = 4096

// Stream is an open stream against a StreamDatabase. Matches may span
// scan calls; pending end-of-data events are delivered on Close or Reset.
type Stream struct {
	st *hsffi.Stream
}

// Open opens a new stream. Every open stream holds engine state and must
// be closed.
func (db *StreamDatabase) Open() (*Stream, error) {
	st, err := hsffi.OpenStream(db.raw())
	if err != nil {
		return nil, err
	}
	return &Stream{st: st}, nil
}

// Scan writes data into the stream, reporting matches as they complete.
func (s *Stream) Scan(data []byte, scratch *Scratch, onMatch MatchHandler) error {
	var herr error
	err := s.st.Scan(data, scratch.s, wrapHandler(onMatch, &herr))
	return scanResult(err, herr)
}

// Close delivers pending end-of-data match events to onMatch (which may
// be nil) and releases the stream state.
func (s *Stream) Close(scratch *Scratch, onMatch MatchHandler) error {
	var herr error
	var handler hsffi.MatchEventFunc
	if onMatch != nil {
		handler = wrapHandler(onMatch, &herr)
	}
	err := s.st.Close(scratch.s, handler)
	return scanResult(err, herr)
}

// Reset rewinds the stream to its initial state, delivering pending
// end-of-data events first. Cheaper than Close followed by Open.
func (s *Stream) Reset(scratch *Scratch, onMatch MatchHandler) error {
	var herr error
	var handler hsffi.MatchEventFunc
	if onMatch != nil {
		handler = wrapHandler(onMatch, &herr)
	}
	err := s.st.Reset(scratch.s, handler)
	return scanResult(err, herr)
}

// ScanReader streams the reader's contents through a fresh stream in
// scanBufSize chunks and closes it, so matches spanning read boundaries
// are still found.
func (db *StreamDatabase) ScanReader(r io.Reader, scratch *Scratch, onMatch MatchHandler) error {
	stream, err := db.Open()
	if err != nil {
		return err
	}

	buf := make([]byte, scanBufSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if serr := stream.Scan(buf[:n], scratch, onMatch); serr != nil {
				stream.Close(scratch, nil)
				return serr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			stream.Close(scratch, nil)
			return fmt.Errorf("hyperscan: read stream input: %w", rerr)
		}
	}

	return stream.Close(scratch, onMatch)
}
