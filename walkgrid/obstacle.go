package walkgrid

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BoxAround returns the box of half extents hw, hh centred on (x, y).
func BoxAround(x, y int, hw, hh float64) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: float64(x), Y: float64(y)}, hw, hh)
}

// ObstacleBox turns a box into four closed bars plus a node just outside each
// corner, so routes can be found around it.
func ObstacleBox(bb cp.BB, margin int) ([]Bar, []Point) {
	l := int(math.Floor(bb.L))
	r := int(math.Ceil(bb.R))
	b := int(math.Floor(bb.B))
	t := int(math.Ceil(bb.T))

	bars := []Bar{
		NewBar(l, b, r, b),
		NewBar(r, b, r, t),
		NewBar(r, t, l, t),
		NewBar(l, t, l, b),
	}
	nodes := []Point{
		{X: l - margin, Y: b - margin},
		{X: r + margin, Y: b - margin},
		{X: r + margin, Y: t + margin},
		{X: l - margin, Y: t + margin},
	}
	return bars, nodes
}

// SetObstacleBox registers a box obstacle owned by owner, replacing any
// obstacle it had before.
func (r *Registry) SetObstacleBox(owner string, bb cp.BB, margin int) {
	bars, nodes := ObstacleBox(bb, margin)
	r.SetExtra(owner, bars, nodes)
}
