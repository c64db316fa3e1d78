package dsp

import "errors"

// ErrBadWindowSize indicates a non-positive window size at construction.
var ErrBadWindowSize = errors.New("window size must be positive")

// SampleWindow is a fixed-capacity circular store of the most recent samples.
// Each Insert reports the sample it pushed out, which is what the estimator
// needs to keep its accumulators sliding without a full recompute.
type SampleWindow struct {
	buf []float64
	pos int
}

// NewSampleWindow creates a window holding exactly n samples, all zero.
func NewSampleWindow(n int) (*SampleWindow, error) {
	if n <= 0 {
		return nil, ErrBadWindowSize
	}
	return &SampleWindow{buf: make([]float64, n)}, nil
}

// Insert stores s at the write cursor and returns the value it overwrote.
// The first Len inserts after construction return zero.
func (w *SampleWindow) Insert(s float64) float64 {
	evicted := w.buf[w.pos]
	w.buf[w.pos] = s
	w.pos = (w.pos + 1) % len(w.buf)
	return evicted
}

// Len returns the fixed capacity of the window.
func (w *SampleWindow) Len() int {
	return len(w.buf)
}
