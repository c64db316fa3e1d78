package dsp

import "math"

// epsilon keeps the decibel conversion finite for silent bins.
const epsilon = 1e-12

// Snapshot is the immutable result of one Analyse call. It is rebuilt on
// every render cycle and never retained by the estimator.
type Snapshot struct {
	Magnitude []float64
	Decibel   []float64
	Min       float64
	Max       float64
	DCOffset  float64
}

// Estimator maintains one spectral coefficient per frequency bin over a
// sliding window of samples, without recomputing a transform per sample.
// Each Update folds in only the delta between the newest sample and the one
// falling out of the window, correlated against fixed trig tables at the
// sample's window position. The basis never rotates with the window, so the
// coefficients are a delta-correlation against a fixed time origin rather
// than a phase-corrected sliding DFT; magnitudes are what the renderer needs
// and those agree with a full transform for a filled window.
type Estimator struct {
	re     []float64
	im     []float64
	cosTab []float64
	sinTab []float64
	pos    int
	dc     DcTracker
}

// NewEstimator creates an estimator over n frequency bins. The trig tables
// are computed once here and immutable afterwards.
func NewEstimator(n int) (*Estimator, error) {
	if n <= 0 {
		return nil, ErrBadWindowSize
	}
	e := &Estimator{
		re:     make([]float64, n),
		im:     make([]float64, n),
		cosTab: make([]float64, n),
		sinTab: make([]float64, n),
	}
	for k := range n {
		angle := 2 * math.Pi * float64(k) / float64(n)
		e.cosTab[k] = math.Cos(angle)
		e.sinTab[k] = math.Sin(angle)
	}
	return e, nil
}

// Update folds one sample transition into every bin and advances the window
// position. sample is the value just inserted into the window, evicted the
// value it displaced. O(Bins) per call; equal sample and evicted values
// leave the accumulators untouched.
func (e *Estimator) Update(sample, evicted float64) {
	n := len(e.re)
	d := sample - evicted
	// Bin k correlates against cos/sin(2πk·pos/n); the table index k·pos mod n
	// is kept by repeated addition instead of a multiply per bin.
	idx := 0
	for k := range e.re {
		e.re[k] += d * e.cosTab[idx]
		e.im[k] += d * e.sinTab[idx]
		idx += e.pos
		if idx >= n {
			idx -= n
		}
	}
	e.pos++
	if e.pos == n {
		e.pos = 0
	}
	e.dc.Add(sample)
}

// DCOffset returns the lifetime mean of all samples passed to Update.
func (e *Estimator) DCOffset() float64 {
	return e.dc.Offset()
}

// Analyse derives per-bin magnitudes and decibels from the current
// accumulators. It mutates nothing and may be called at any cadence
// independent of Update.
func (e *Estimator) Analyse() Snapshot {
	n := len(e.re)
	snap := Snapshot{
		Magnitude: make([]float64, n),
		Decibel:   make([]float64, n),
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
		DCOffset:  e.dc.Offset(),
	}
	for k := range n {
		mag := math.Sqrt(e.re[k]*e.re[k] + e.im[k]*e.im[k])
		snap.Magnitude[k] = mag
		snap.Decibel[k] = 20 * math.Log10(mag+epsilon)
		if mag < snap.Min {
			snap.Min = mag
		}
		if mag > snap.Max {
			snap.Max = mag
		}
	}
	return snap
}
