package router

import (
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/milk9111/walkrouter/walkgrid"
)

type node struct {
	x, y  int
	level int
	prev  int
	dist  int
}

type routeEntry struct {
	x, y int
	// dirS is the axis heading to the next entry, dirD the diagonal one.
	dirS, dirD int
}

// PathContext is the working state of a single route request. Each request
// gets a fresh one built from a mesh snapshot.
type PathContext struct {
	bars []walkgrid.Bar
	// node 0 is the actor, the last node the target
	nodes []node

	startX, startY, startDir    int
	targetX, targetY, targetDir int
	scaleA, scaleB              int

	profile *walkdata.Profile
	layout  *walkdata.Layout
	diagX   int
	diagY   int

	maxRoute  int
	maxFrames int

	route   []routeEntry
	smooth  []PathStep
	modular []PathStep
	frames  []Frame
}

func newPathContext(snap *walkgrid.Snapshot, a Actor, p *walkdata.Profile, x, y, dir int, cfg Config) *PathContext {
	l := p.Layout()
	pc := &PathContext{
		bars:      snap.Bars,
		startX:    a.FeetX,
		startY:    a.FeetY,
		startDir:  a.Dir,
		targetX:   x,
		targetY:   y,
		targetDir: dir,
		scaleA:    a.ScaleA,
		scaleB:    a.ScaleB,
		profile:   p,
		layout:    l,
		diagX:     l.DiagX,
		diagY:     l.DiagY,
		maxRoute:  cfg.MaxRoute,
		maxFrames: cfg.MaxFrames,
	}

	pc.nodes = make([]node, 0, len(snap.Nodes)+2)
	pc.nodes = append(pc.nodes, node{x: a.FeetX, y: a.FeetY, level: 1})
	for _, n := range snap.Nodes {
		pc.nodes = append(pc.nodes, node{x: n.X, y: n.Y, dist: unreached})
	}
	pc.nodes = append(pc.nodes, node{x: x, y: y, dist: unreached})
	return pc
}

func (pc *PathContext) target() int {
	return len(pc.nodes) - 1
}

// getRoute finds the cheapest node route to the target and extracts it.
func (pc *PathContext) getRoute() (Result, error) {
	if pc.startX == pc.targetX && pc.startY == pc.targetY {
		return TrivialTurn, nil
	}
	if pc.checkTarget(pc.targetX, pc.targetY) {
		return NoRoute, nil
	}

	for level := 1; pc.scan(level); level++ {
	}

	if pc.nodes[pc.target()].dist >= unreached {
		return NoRoute, nil
	}
	if err := pc.extractRoute(); err != nil {
		return NoRoute, err
	}
	return Found, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sign splits v into its magnitude and a ±1 direction; zero counts as
// positive.
func sign(v int) (int, int) {
	if v < 0 {
		return -v, -1
	}
	return v, 1
}
