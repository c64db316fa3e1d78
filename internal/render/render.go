// Package render turns spectrum snapshots into differential terminal writes.
// Only cells whose bar height changed since the previous frame are touched,
// so per-frame terminal I/O stays bounded regardless of render cadence.
package render

import (
	"fmt"
	"math"

	"github.com/davidnmbond/Spectrograph/internal/dsp"
	"github.com/gdamore/tcell/v2"
)

// maxColumns bounds the per-column height memory. Columns beyond the actual
// terminal width are ignored.
const maxColumns = 1000

const barRune = '█'

var (
	hotStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	midStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	quietStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	blankStyle = tcell.StyleDefault
)

// Grid is the subset of tcell.Screen the renderer draws through. Tests
// substitute a recording implementation.
type Grid interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
}

// colorFor picks one of three discrete bands for a cell at the given percent
// of terminal height. No interpolation.
func colorFor(percent int) tcell.Style {
	switch {
	case percent > 85:
		return hotStyle
	case percent > 30:
		return midStyle
	default:
		return quietStyle
	}
}

// BarRenderer maps spectral bins to terminal columns and redraws only the
// cells whose bar height changed. It remembers the geometry it last drew
// against; any change forces a full clear and a reset of all heights.
type BarRenderer struct {
	grid       Grid
	sampleRate int

	lastHeight [maxColumns]int
	width      int
	height     int

	// diagnostic extremes of the last frame's bar levels
	frameMin int
	frameMax int
}

// New creates a renderer drawing on grid. sampleRate is only used for the
// frequency axis labels.
func New(grid Grid, sampleRate int) *BarRenderer {
	return &BarRenderer{grid: grid, sampleRate: sampleRate}
}

// Render draws one frame from snap. Geometry is re-read from the grid on
// every call, so a resize between frames is handled by a full clear before
// any diffing; there is no partial redraw across a resize. Frames with a
// degenerate geometry are skipped entirely.
func (r *BarRenderer) Render(snap dsp.Snapshot, dropped uint64) {
	w, h := r.grid.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if w != r.width || h != r.height {
		r.grid.Clear()
		for i := range r.lastHeight {
			r.lastHeight[i] = 0
		}
		r.width, r.height = w, h
	}

	n := len(snap.Decibel)
	if n == 0 {
		return
	}
	cols := w
	if cols > maxColumns {
		cols = maxColumns
	}
	step := n / w
	if step < 1 {
		step = 1
	}

	r.frameMin, r.frameMax = math.MaxInt, math.MinInt
	for x := 0; x < cols-1; x++ {
		lo := x * step
		hi := (x + 1) * step
		if hi > n-1 {
			hi = n - 1
		}
		if lo >= hi {
			break
		}
		sum := 0.0
		for k := lo; k < hi; k++ {
			sum += snap.Decibel[k]
		}
		avgDb := sum / float64(hi-lo)

		level := int(math.Round(float64(h) * (avgDb + 100) / 256))
		if level < 0 {
			level = 0
		}
		if level > h {
			level = h
		}
		if level < r.frameMin {
			r.frameMin = level
		}
		if level > r.frameMax {
			r.frameMax = level
		}

		last := r.lastHeight[x]
		switch {
		case level > last:
			for y := last + 1; y <= level; y++ {
				r.grid.SetContent(x, h-y, barRune, nil, colorFor(y*100/h))
			}
		case level < last:
			for y := level + 1; y <= last; y++ {
				r.grid.SetContent(x, h-y, ' ', nil, blankStyle)
			}
		}
		r.lastHeight[x] = level
	}

	r.drawStatus(snap, dropped)
}

// LevelRange reports the lowest and highest bar level of the last frame.
func (r *BarRenderer) LevelRange() (int, int) {
	return r.frameMin, r.frameMax
}

// drawStatus writes the fixed axis labels and the status line on the bottom
// row, overwriting whatever the bars left there.
func (r *BarRenderer) drawStatus(snap dsp.Snapshot, dropped uint64) {
	bottom := r.height - 1
	left := "0Hz"
	right := fmt.Sprintf("%dHz", r.sampleRate/2)
	status := fmt.Sprintf(" dc %+.4f  dropped %d ", snap.DCOffset, dropped)

	r.printAt(0, bottom, left)
	r.printAt(r.width-len(right), bottom, right)
	r.printAt((r.width-len(status))/2, bottom, status)
}

func (r *BarRenderer) printAt(x, y int, s string) {
	for i, ch := range s {
		cx := x + i
		if cx < 0 || cx >= r.width {
			continue
		}
		r.grid.SetContent(cx, y, ch, nil, labelStyle)
	}
}
