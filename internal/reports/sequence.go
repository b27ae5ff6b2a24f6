package reports

import (
	"errors"
	"sync/atomic"
)

// ErrStale marks a response that was superseded by a newer request.
var ErrStale = errors.New("reports: stale response")

// Sequencer numbers requests so that a late response to an older request
// can be recognised and dropped. The zero value is ready to use.
type Sequencer struct {
	n atomic.Uint64
}

// Next starts a request and returns its sequence number.
func (s *Sequencer) Next() uint64 {
	return s.n.Add(1)
}

// IsLatest reports whether seq belongs to the most recently started request.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return s.n.Load() == seq
}

// Check returns ErrStale if seq has been superseded.
func (s *Sequencer) Check(seq uint64) error {
	if !s.IsLatest(seq) {
		return ErrStale
	}
	return nil
}
