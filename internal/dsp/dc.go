package dsp

// DcTracker keeps a lifetime running mean of every sample it has seen.
// Unlike the spectral window this is never truncated; the denominator grows
// for the life of the session.
type DcTracker struct {
	sum   float64
	count int64
}

// Add folds one sample into the running mean.
func (d *DcTracker) Add(s float64) {
	d.sum += s
	d.count++
}

// Offset returns the mean of all samples seen, or zero before any sample.
func (d *DcTracker) Offset() float64 {
	if d.count == 0 {
		return 0
	}
	return d.sum / float64(d.count)
}
