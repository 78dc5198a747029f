package router

import (
	"fmt"
	"sort"
)

// turnCost is the cost of turning by n*45°.
var turnCost = [numDirections]int{0, 1, 3, 5, 7, 5, 3, 1}

// splitPenalty is added to the split shapes, which look busy on screen.
const splitPenalty = 3

type rankedShape struct {
	bit  int
	cost int
}

// smoothestPath turns the waypoint route into exact straight runs in the
// eight walk directions. For each section it ranks the four shapes by how
// much turning they need, coming in from the previous run and going out into
// the next section, and takes the cheapest one that is walkable.
func (pc *PathContext) smoothestPath() error {
	pc.smooth = append(pc.smooth[:0], PathStep{X: pc.startX, Y: pc.startY, Dir: pc.startDir})
	lastDir := pc.startDir

	for p := 0; p < len(pc.route)-1; p++ {
		cur, next := pc.route[p], pc.route[p+1]

		dS := turnCost[wrapDir(cur.dirS-lastDir)]
		dD := turnCost[wrapDir(cur.dirD-lastDir)]
		dSS := turnCost[wrapDir(cur.dirS-next.dirS)]
		dDD := turnCost[wrapDir(cur.dirD-next.dirD)]
		dSD := turnCost[wrapDir(cur.dirS-next.dirD)]
		dDS := turnCost[wrapDir(cur.dirD-next.dirS)]

		// assume the next section starts the cheaper way
		dSS = min(dSS, dSD)
		dDD = min(dDD, dDS)

		ranked := []rankedShape{
			{shapeSplitAxis, dS + dSS + splitPenalty},
			{shapeAxisDiag, dS + dDD},
			{shapeDiagAxis, dD + dSS},
			{shapeSplitDiag, dD + dDD + splitPenalty},
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].cost < ranked[j].cost
		})

		options := pc.shapeOptions(cur.x, cur.y, next.x, next.y)
		chosen := 0
		for _, r := range ranked {
			if options&r.bit != 0 {
				chosen = r.bit
				break
			}
		}
		if chosen == 0 {
			return fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrNoSmoothPath, cur.x, cur.y, next.x, next.y)
		}

		pc.emitShape(chosen, cur, next)
		lastDir = pc.smooth[len(pc.smooth)-1].Dir
	}

	last := pc.smooth[len(pc.smooth)-1]
	pc.smooth = append(pc.smooth, endStepAt(last.X, last.Y))
	return nil
}

// emitShape appends the runs of one shape, with step estimates rounded to
// whole steps.
func (pc *PathContext) emitShape(bit int, cur, next routeEntry) {
	l := pc.layout
	x, y := cur.x, cur.y
	dirS, dirD := cur.dirS, cur.dirD
	ldx, dirX := sign(next.x - x)
	ldy, dirY := sign(next.y - y)

	var dsx, dsy, ddx, ddy, ss0, sd0 int
	if dirS == North || dirS == South {
		ddx = ldx
		ddy = ldx * pc.diagY / pc.diagX
		dsy = ldy - ddy
		ddx *= dirX
		ddy *= dirY
		dsy *= dirY

		sd0 = (ddx + l.ModX[dirD]/2) / l.ModX[dirD]
		ss0 = (dsy + l.ModY[dirS]/2) / l.ModY[dirS]
	} else {
		ddy = ldy
		ddx = ldy * pc.diagX / pc.diagY
		dsx = ldx - ddx
		ddy *= dirY
		ddx *= dirX
		dsx *= dirX

		sd0 = (ddy + l.ModY[dirD]/2) / l.ModY[dirD]
		ss0 = (dsx + l.ModX[dirS]/2) / l.ModX[dirS]
	}
	sd1 := sd0 / 2
	ss1 := ss0 / 2
	sd2 := sd0 - sd1
	ss2 := ss0 - ss1

	switch bit {
	case shapeSplitAxis:
		pc.smooth = append(pc.smooth,
			PathStep{X: x + dsx/2, Y: y + dsy/2, Dir: dirS, Num: ss1},
			PathStep{X: x + dsx/2 + ddx, Y: y + dsy/2 + ddy, Dir: dirD, Num: sd0},
			PathStep{X: x + dsx + ddx, Y: y + dsy + ddy, Dir: dirS, Num: ss2},
		)
	case shapeAxisDiag:
		pc.smooth = append(pc.smooth,
			PathStep{X: x + dsx, Y: y + dsy, Dir: dirS, Num: ss0},
			PathStep{X: next.x, Y: next.y, Dir: dirD, Num: sd0},
		)
	case shapeDiagAxis:
		pc.smooth = append(pc.smooth,
			PathStep{X: x + ddx, Y: y + ddy, Dir: dirD, Num: sd0},
			PathStep{X: next.x, Y: next.y, Dir: dirS, Num: ss0},
		)
	default:
		pc.smooth = append(pc.smooth,
			PathStep{X: x + ddx/2, Y: y + ddy/2, Dir: dirD, Num: sd1},
			PathStep{X: x + dsx + ddx/2, Y: y + dsy + ddy/2, Dir: dirS, Num: ss0},
			PathStep{X: next.x, Y: next.y, Dir: dirD, Num: sd2},
		)
	}
}
