package router

import "fmt"

// headings returns the axis and diagonal directions that lead from (x1,y1)
// towards (x2,y2).
func (pc *PathContext) headings(x1, y1, x2, y2 int) (dirS, dirD int) {
	ldx, dirx := sign(x2 - x1)
	ldy, diry := sign(y2 - y1)

	if pc.diagY*ldx > pc.diagX*ldy {
		// East or West
		dirS = 4 - 2*dirx
	} else {
		// North or South
		dirS = 2 + 2*diry
	}
	dirD = 4 - 2*dirx + diry*dirx
	return dirS, dirD
}

// extractRoute follows the prev links back from the target and writes the
// waypoints start first, each with the headings to the next one.
func (pc *PathContext) extractRoute() error {
	idx := []int{pc.target()}
	for last := pc.target(); last > 0; {
		last = pc.nodes[last].prev
		idx = append(idx, last)
		if len(idx) > pc.maxRoute {
			return fmt.Errorf("%w: more than %d waypoints", ErrRouteTooLong, pc.maxRoute)
		}
	}

	pc.route = make([]routeEntry, len(idx))
	for i, n := range idx {
		r := &pc.route[len(idx)-1-i]
		r.x = pc.nodes[n].x
		r.y = pc.nodes[n].y
	}

	last := len(pc.route) - 1
	for p := 0; p < last; p++ {
		pc.route[p].dirS, pc.route[p].dirD = pc.headings(pc.route[p].x, pc.route[p].y, pc.route[p+1].x, pc.route[p+1].y)
	}

	// the last waypoint keeps heading on unless a direction was asked for
	if pc.targetDir == DirAny {
		pc.route[last].dirS = pc.route[last-1].dirS
		pc.route[last].dirD = pc.route[last-1].dirD
	} else {
		pc.route[last].dirS = pc.targetDir
		pc.route[last].dirD = pc.targetDir
	}
	return nil
}
