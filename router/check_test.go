package router

import (
	"testing"

	"github.com/milk9111/walkrouter/walkgrid"
)

func barsOf(specs ...walkgrid.BarSpec) []walkgrid.Bar {
	return walkgrid.NewGrid(1, "test", specs, nil).BarList()
}

func TestDistance(t *testing.T) {
	cases := []struct {
		name           string
		x1, y1, x2, y2 int
		want           int
	}{
		{"same_point", 10, 10, 10, 10, 1},
		{"flat", 100, 100, 300, 100, 4},
		{"steep", 100, 100, 170, 20, 7},
		{"vertical_costs_more", 100, 100, 100, 300, 15},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := distance(c.x1, c.y1, c.x2, c.y2); got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
			if got := distance(c.x2, c.y2, c.x1, c.y1); got != c.want {
				t.Fatalf("distance is not symmetric: %d", got)
			}
		})
	}
}

func TestTurnStep(t *testing.T) {
	cases := []struct {
		from, to int
		want     int
	}{
		{North, North, 0},
		{North, East, 1},
		{North, West, -1},
		{North, South, 1},
		{West, North, 1},
		{NorthEast, NorthWest, -1},
		{SouthWest, NorthEast, 1},
	}

	for _, c := range cases {
		if got := turnStep(c.from, c.to); got != c.want {
			t.Fatalf("turnStep(%d, %d): expected %d, got %d", c.from, c.to, c.want, got)
		}
	}
}

func TestHeadings(t *testing.T) {
	pc := &PathContext{diagX: 12, diagY: 6}

	cases := []struct {
		name       string
		x2, y2     int
		dirS, dirD int
	}{
		{"east", 200, 110, East, SouthEast},
		{"west", 0, 90, West, NorthWest},
		{"north", 110, 0, North, NorthEast},
		{"south", 90, 200, South, SouthWest},
		{"steep_north_east", 170, 20, North, NorthEast},
		{"flat_south_west", 0, 140, West, SouthWest},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, d := pc.headings(100, 100, c.x2, c.y2)
			if s != c.dirS || d != c.dirD {
				t.Fatalf("expected (%d,%d), got (%d,%d)", c.dirS, c.dirD, s, d)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	pc := &PathContext{bars: barsOf(
		walkgrid.BarSpec{X1: 200, Y1: 90, X2: 200, Y2: 190},
		walkgrid.BarSpec{X1: 0, Y1: 300, X2: 100, Y2: 250},
	)}

	cases := []struct {
		name           string
		x1, y1, x2, y2 int
		want           bool
	}{
		{"point", 200, 100, 200, 100, true},
		{"horizontal_through_wall", 100, 100, 300, 100, false},
		{"horizontal_above_wall", 100, 50, 300, 50, true},
		{"horizontal_short_of_wall", 100, 100, 198, 100, true},
		{"horizontal_onto_wall", 100, 100, 200, 100, false},
		{"vertical_along_wall", 200, 10, 200, 80, true},
		{"vertical_into_wall", 200, 10, 200, 95, false},
		{"diagonal_through_wall", 100, 50, 300, 150, false},
		{"diagonal_over_wall", 100, 80, 300, 0, true},
		{"vertical_through_slope", 50, 200, 50, 300, false},
		{"diagonal_through_slope", 0, 250, 100, 300, false},
		{"parallel_to_slope", 0, 290, 100, 240, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pc.check(c.x1, c.y1, c.x2, c.y2); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCheckTarget(t *testing.T) {
	pc := &PathContext{bars: barsOf(
		walkgrid.BarSpec{X1: 200, Y1: 90, X2: 200, Y2: 190},
		walkgrid.BarSpec{X1: 0, Y1: 300, X2: 100, Y2: 250},
	)}

	cases := []struct {
		name string
		x, y int
		want bool
	}{
		{"on_wall", 200, 100, true},
		{"beside_wall", 201, 150, true},
		{"clear_of_wall", 202, 150, false},
		{"past_wall_end", 200, 192, false},
		{"on_slope", 50, 275, true},
		{"under_slope", 50, 278, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pc.checkTarget(c.x, c.y); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestSmoothestPathAroundWall(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(), wallGrid())
	snap, err := r.grids.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	pc := newPathContext(snap, testActor(East), testProfile(t, nil), 300, 100, DirAny, r.cfg)

	res, err := pc.getRoute()
	if err != nil || res != Found {
		t.Fatalf("expected Found, got %v %v", res, err)
	}
	if len(pc.route) != 3 || pc.route[1].x != 170 || pc.route[1].y != 20 {
		t.Fatalf("expected a route through (170,20), got %+v", pc.route)
	}

	if err := pc.smoothestPath(); err != nil {
		t.Fatalf("smooth: %v", err)
	}
	want := []PathStep{
		{X: 100, Y: 100, Dir: East},
		{X: 100, Y: 55, Dir: North, Num: 4},
		{X: 170, Y: 20, Dir: NorthEast, Num: 6},
		{X: 300, Y: 85, Dir: SouthEast, Num: 11},
		{X: 300, Y: 100, Dir: South, Num: 1},
		{X: 300, Y: 100, Dir: dirEnd, Num: routeEnd},
	}
	if len(pc.smooth) != len(want) {
		t.Fatalf("expected %d steps, got %+v", len(want), pc.smooth)
	}
	for i := range want {
		if pc.smooth[i] != want[i] {
			t.Fatalf("step %d: expected %+v, got %+v", i, want[i], pc.smooth[i])
		}
	}

	pc.solidPath()
	if got := len(pc.modular); got != 6 {
		t.Fatalf("expected every run to be a module, got %+v", pc.modular)
	}
}

func TestReducePathDropsShortRuns(t *testing.T) {
	pc := &PathContext{
		layout: testProfile(t, nil).Layout(),
		scaleB: 1 << 16,
		smooth: []PathStep{
			{X: 100, Y: 100, Dir: East},
			{X: 110, Y: 100, Dir: East, Num: 1},
			{X: 110, Y: 105, Dir: South, Num: 0},
			{X: 110, Y: 105, Dir: dirEnd, Num: routeEnd},
		},
		targetDir: DirAny,
	}

	if got := pc.reducePath(solidShift); len(got) != 1 {
		t.Fatalf("expected no whole-step modules, got %+v", got)
	}
	if got := pc.reducePath(slidyShift); len(got) != 3 {
		t.Fatalf("expected both runs as slidy modules, got %+v", got)
	}

	pc.solidPath()
	if len(pc.modular) != 3 || pc.modular[1].Dir != East || pc.modular[1].X != 110 || pc.modular[1].Y != 105 {
		t.Fatalf("expected a pinned dummy module, got %+v", pc.modular)
	}
}

func TestFramesClear(t *testing.T) {
	post := barsOf(walkgrid.BarSpec{X1: 127, Y1: 110, X2: 127, Y2: 155})
	wall := barsOf(walkgrid.BarSpec{X1: 100, Y1: 50, X2: 100, Y2: 150})
	end := endFrame()

	cases := []struct {
		name   string
		bars   []walkgrid.Bar
		frames []Frame
		want   bool
	}{
		{"clear", post, []Frame{{X: 100, Y: 100}, {X: 103, Y: 100}, {X: 106, Y: 100}, end}, true},
		{"clips_bar_end", post, []Frame{{X: 124, Y: 108}, {X: 127, Y: 109}, {X: 129, Y: 110}, end}, false},
		// the jump to the sentinels is not a move
		{"stops_at_sentinels", wall, []Frame{{X: 200, Y: 100}, {X: 203, Y: 100}, end, end, end}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pc := &PathContext{bars: c.bars}
			if got := pc.framesClear(c.frames); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestSolidRejectsModuleThroughBar(t *testing.T) {
	snap := &walkgrid.Snapshot{Bars: barsOf(walkgrid.BarSpec{X1: 150, Y1: 50, X2: 150, Y2: 150})}
	pc := newPathContext(snap, testActor(East), testProfile(t, nil), 200, 100, DirAny, DefaultConfig())
	// a module straight through the bar, as a stale reduction would give
	pc.modular = []PathStep{
		{X: 100, Y: 100, Dir: East},
		{X: 200, Y: 100, Dir: East, Num: 1},
		endStepAt(200, 100),
	}

	ok, err := pc.solidWalkAnimator()
	if err != nil {
		t.Fatalf("solid walk: %v", err)
	}
	if ok {
		t.Fatalf("expected the walk to be rejected")
	}
	if pc.frames != nil {
		t.Fatalf("a rejected walk must not leave frames, got %d", len(pc.frames))
	}
	// the module end is pulled back to the last whole step
	if pc.modular[1].X != 190 {
		t.Fatalf("expected module end at x=190, got %d", pc.modular[1].X)
	}
}
