// Package session wires the capture path to the renderer: every incoming PCM
// block slides the spectral window forward, and at most every renderInterval
// a snapshot is drawn. Blocks arriving while a previous block is still being
// processed are dropped whole — for a live view, recency beats completeness.
package session

import (
	"sync/atomic"
	"time"

	"github.com/davidnmbond/Spectrograph/internal/capture"
	"github.com/davidnmbond/Spectrograph/internal/dsp"
	"github.com/davidnmbond/Spectrograph/internal/render"
	"github.com/gdamore/tcell/v2"
)

const (
	// WindowSize is the number of samples (and frequency bins) in the
	// sliding spectral estimate.
	WindowSize = 1024

	renderInterval = 100 * time.Millisecond
)

// Session owns all mutable state of one visualization run. The capture
// callback and the event loop are the only execution contexts that touch it;
// the estimator is mutated and read only inside the guarded block path.
type Session struct {
	screen tcell.Screen
	window *dsp.SampleWindow
	est    *dsp.Estimator
	bars   *render.BarRenderer

	busy       atomic.Bool
	dropped    atomic.Uint64
	lastRender time.Time
}

// New creates a session rendering onto screen.
func New(screen tcell.Screen) (*Session, error) {
	window, err := dsp.NewSampleWindow(WindowSize)
	if err != nil {
		return nil, err
	}
	est, err := dsp.NewEstimator(WindowSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		screen: screen,
		window: window,
		est:    est,
		bars:   render.New(screen, capture.SampleRate),
	}, nil
}

// HandleBlock consumes one captured PCM block. It is the capture callback:
// if a previous block is still in flight the whole block is dropped and
// counted, never queued.
func (s *Session) HandleBlock(block []byte) {
	if !s.busy.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		return
	}
	defer s.busy.Store(false)

	for _, raw := range capture.DecodeBlock(block) {
		sample := float64(raw) / 32768.0
		s.est.Update(sample, s.window.Insert(sample))
	}

	now := time.Now()
	if now.Sub(s.lastRender) < renderInterval {
		return
	}
	s.lastRender = now
	s.bars.Render(s.est.Analyse(), s.dropped.Load())
	s.screen.Show()
}

// Dropped reports how many blocks were discarded by the re-entrancy guard.
func (s *Session) Dropped() uint64 {
	return s.dropped.Load()
}

// DCOffset exposes the estimator's lifetime mean for the teardown summary.
func (s *Session) DCOffset() float64 {
	return s.est.DCOffset()
}

// Run blocks until any key is pressed. Resize events only wake the loop;
// the next render re-reads geometry itself and clears if it changed.
func (s *Session) Run() {
	s.screen.HideCursor()
	for {
		switch s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return
		case *tcell.EventResize:
			s.screen.Sync()
		case nil:
			// screen finalized under us
			return
		}
	}
}
