package router

import (
	"testing"

	"github.com/milk9111/walkrouter/walkdata"
	"github.com/milk9111/walkrouter/walkgrid"
)

// per-frame foot movement, north first then clockwise
var testSteps = [numDirections][2]int{
	{0, -2}, {2, -1}, {3, 0}, {2, 1}, {0, 2}, {-2, 1}, {-3, 0}, {-2, -1},
}

// testProfile walks 12 frames per cycle with constant per-frame movement,
// so a step east is 18 px and a step south-east is (12, 6).
func testProfile(t *testing.T, mutate func(p *walkdata.Profile)) *walkdata.Profile {
	t.Helper()
	p := &walkdata.Profile{Name: "test", WalkFrames: 12}
	for _, s := range testSteps {
		st := walkdata.Steps{DX: make([]int, 12), DY: make([]int, 12)}
		for i := range 12 {
			st.DX[i] = s[0]
			st.DY[i] = s[1]
		}
		p.Steps = append(p.Steps, st)
	}
	if mutate != nil {
		mutate(p)
	}
	if err := p.Prepare(); err != nil {
		t.Fatalf("prepare profile: %v", err)
	}
	return p
}

func newTestRouter(t *testing.T, cfg Config, grids ...*walkgrid.Grid) *Router {
	t.Helper()
	lib := walkgrid.NewLibrary()
	reg := walkgrid.NewRegistry(lib, cfg.GridLimits())
	for _, g := range grids {
		lib.Put(g)
		if err := reg.Add(g.ID); err != nil {
			t.Fatalf("add grid %d: %v", g.ID, err)
		}
	}
	return New(cfg, reg)
}

func testActor(dir int) Actor {
	return Actor{ID: 1, FeetX: 100, FeetY: 100, Dir: dir, ScaleB: 1 << 16}
}

// walkFrames returns the buffer without its end sentinels, failing if they
// are missing.
func walkFrames(t *testing.T, r *Router, id int) []Frame {
	t.Helper()
	buf, ok := r.Buffer(id)
	if !ok {
		t.Fatalf("actor %d has no buffer", id)
	}
	if len(buf) < endFrames+1 {
		t.Fatalf("buffer too short: %d frames", len(buf))
	}
	for _, f := range buf[len(buf)-endFrames:] {
		if !f.IsEnd() || f.Step != endStep {
			t.Fatalf("buffer does not end with sentinels: %+v", buf[len(buf)-endFrames:])
		}
	}
	return buf[:len(buf)-endFrames]
}

func assertNoCrossing(t *testing.T, bars []walkgrid.Bar, frames []Frame) {
	t.Helper()
	pc := &PathContext{bars: bars}
	for i := 1; i < len(frames); i++ {
		a, b := frames[i-1], frames[i]
		if !pc.check(a.X, a.Y, b.X, b.Y) {
			t.Fatalf("frames %d-%d cross a bar: (%d,%d) -> (%d,%d)", i-1, i, a.X, a.Y, b.X, b.Y)
		}
	}
}

func wallGrid() *walkgrid.Grid {
	return walkgrid.NewGrid(1, "wall",
		[]walkgrid.BarSpec{{X1: 200, Y1: 90, X2: 200, Y2: 190}},
		[]walkgrid.Point{{X: 170, Y: 20}, {X: 230, Y: 20}},
	)
}
