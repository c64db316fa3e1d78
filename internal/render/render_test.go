package render

import (
	"testing"

	"github.com/davidnmbond/Spectrograph/internal/dsp"
	"github.com/gdamore/tcell/v2"
)

type cellWrite struct {
	x, y  int
	ch    rune
	style tcell.Style
}

type fakeGrid struct {
	w, h   int
	writes []cellWrite
	clears int
}

func (g *fakeGrid) Size() (int, int) { return g.w, g.h }

func (g *fakeGrid) SetContent(x, y int, ch rune, _ []rune, style tcell.Style) {
	g.writes = append(g.writes, cellWrite{x, y, ch, style})
}

func (g *fakeGrid) Clear() { g.clears++ }

// flatSnapshot builds a snapshot whose every bin sits at the same decibel
// value, which maps every column to the same bar level.
func flatSnapshot(n int, db float64) dsp.Snapshot {
	snap := dsp.Snapshot{
		Magnitude: make([]float64, n),
		Decibel:   make([]float64, n),
	}
	for k := range n {
		snap.Decibel[k] = db
	}
	return snap
}

func TestBarLevelMapping(t *testing.T) {
	grid := &fakeGrid{w: 80, h: 24}
	r := New(grid, 44100)

	// avgDb 28 over height 24: round(24 * 128 / 256) = 12 rows.
	r.Render(flatSnapshot(1024, 28), 0)

	rows := map[int]bool{}
	for _, wr := range grid.writes {
		if wr.x == 0 && wr.ch == barRune {
			rows[wr.y] = true
		}
	}
	if len(rows) != 12 {
		t.Fatalf("column 0 drew %d bar rows, want 12", len(rows))
	}
	// Bars grow upward from the bottom: rows h-1 down to h-level.
	for y := 12; y <= 23; y++ {
		if !rows[y] {
			t.Fatalf("column 0 missing bar cell at row %d", y)
		}
	}
	if lo, hi := r.LevelRange(); lo != 12 || hi != 12 {
		t.Fatalf("LevelRange() = %d,%d, want 12,12", lo, hi)
	}
}

func TestRepeatRenderWritesOnlyStatusRow(t *testing.T) {
	grid := &fakeGrid{w: 80, h: 24}
	r := New(grid, 44100)
	snap := flatSnapshot(1024, 28)

	r.Render(snap, 0)
	grid.writes = nil

	r.Render(snap, 0)
	for _, wr := range grid.writes {
		if wr.y != grid.h-1 {
			t.Fatalf("unchanged frame wrote cell at (%d,%d) outside the status row", wr.x, wr.y)
		}
	}
}

func TestFallingBarsEraseExactlyTheDelta(t *testing.T) {
	grid := &fakeGrid{w: 80, h: 24}
	r := New(grid, 44100)

	r.Render(flatSnapshot(1024, 28), 0) // level 12
	grid.writes = nil

	r.Render(flatSnapshot(1024, -100), 0) // level 0
	var erased int
	for _, wr := range grid.writes {
		if wr.x != 3 {
			continue
		}
		if wr.ch != ' ' {
			t.Fatalf("falling bar wrote %q at (%d,%d), want blank", wr.ch, wr.x, wr.y)
		}
		if wr.y < 12 || wr.y > 23 {
			t.Fatalf("erase outside previous bar at row %d", wr.y)
		}
		erased++
	}
	if erased != 12 {
		t.Fatalf("column 3 erased %d cells, want 12", erased)
	}
}

func TestResizeClearsAndRedrawsFromZero(t *testing.T) {
	grid := &fakeGrid{w: 80, h: 24}
	r := New(grid, 44100)
	snap := flatSnapshot(1024, 28)

	r.Render(snap, 0)
	if grid.clears != 1 {
		t.Fatalf("first render cleared %d times, want 1 (geometry adoption)", grid.clears)
	}

	grid.w, grid.h = 100, 30
	grid.writes = nil
	r.Render(snap, 0)
	if grid.clears != 2 {
		t.Fatalf("resize did not force a clear, clears = %d", grid.clears)
	}

	// Heights were reset, so column 0 is redrawn in full at the new geometry:
	// round(30 * 128 / 256) = 15 rows.
	var bars int
	for _, wr := range grid.writes {
		if wr.x == 0 && wr.ch == barRune {
			bars++
		}
	}
	if bars != 15 {
		t.Fatalf("column 0 redrew %d rows after resize, want 15", bars)
	}
}

func TestDegenerateGeometrySkipsFrame(t *testing.T) {
	grid := &fakeGrid{w: 0, h: 0}
	r := New(grid, 44100)
	r.Render(flatSnapshot(1024, 28), 0)
	if len(grid.writes) != 0 || grid.clears != 0 {
		t.Fatalf("degenerate geometry still touched the grid: %d writes, %d clears", len(grid.writes), grid.clears)
	}
}

func TestColorBandsAreDiscrete(t *testing.T) {
	tests := []struct {
		percent int
		want    tcell.Style
	}{
		{100, hotStyle},
		{86, hotStyle},
		{85, midStyle},
		{31, midStyle},
		{30, quietStyle},
		{0, quietStyle},
	}
	for _, tt := range tests {
		if got := colorFor(tt.percent); got != tt.want {
			t.Fatalf("colorFor(%d) picked the wrong band", tt.percent)
		}
	}
}
