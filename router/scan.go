package router

// distance is the walking cost between two nodes. Movement is cheaper along
// x than along y, matching the foreshortened floor.
func distance(x1, y1, x2, y2 int) int {
	dx, dy := abs(x2-x1), abs(y2-y1)
	// dx > 4.5*dy
	if 2*dx > 9*dy {
		return (8*dx+18*dy)/(54*8) + 1
	}
	return (6*dx+36*dy)/(36*14) + 1
}

// scan relaxes every node reached at the given level and reports whether
// any node improved. Nodes already further away than the best route to the
// target are skipped.
func (pc *PathContext) scan(level int) bool {
	t := pc.target()
	changed := false

	for i := 0; i < t; i++ {
		from := &pc.nodes[i]
		if from.dist >= pc.nodes[t].dist || from.level != level {
			continue
		}
		for k := t; k > 0; k-- {
			to := &pc.nodes[k]
			if to.dist <= from.dist {
				continue
			}
			d := from.dist + distance(from.x, from.y, to.x, to.y)
			if d >= pc.nodes[t].dist || d >= to.dist {
				continue
			}
			if !pc.firstShape(from.x, from.y, to.x, to.y) {
				continue
			}
			to.level = level + 1
			to.dist = d
			to.prev = i
			changed = true
		}
	}
	return changed
}
