package router

// Route shapes tried between two points. Each one is a pair of straight runs
// in one axis and one diagonal direction.
const (
	// half axis, diagonal, half axis
	shapeSplitAxis = 1 << iota
	// axis then diagonal
	shapeAxisDiag
	// diagonal then axis
	shapeDiagAxis
	// half diagonal, axis, half diagonal
	shapeSplitDiag
)

type point struct{ x, y int }

type shape struct {
	bit int
	pts [4]point
	n   int
}

// shapes builds the four candidate walks from (x1,y1) to (x2,y2) in the
// order the search tries them.
func (pc *PathContext) shapes(x1, y1, x2, y2 int) [4]shape {
	ldx, dirX := sign(x2 - x1)
	ldy, dirY := sign(y2 - y1)
	start, end := point{x1, y1}, point{x2, y2}

	if pc.diagY*ldx > pc.diagX*ldy {
		// mostly horizontal
		dly := ldy
		dlx := ldy * pc.diagX / pc.diagY
		ldx -= dlx
		dlx *= dirX
		dly *= dirY
		ldx *= dirX

		return [4]shape{
			{bit: shapeAxisDiag, n: 3, pts: [4]point{start, {x1 + ldx, y1}, end}},
			{bit: shapeDiagAxis, n: 3, pts: [4]point{start, {x1 + dlx, y2}, end}},
			{bit: shapeSplitAxis, n: 4, pts: [4]point{start, {x1 + ldx/2, y1}, {x1 + ldx/2 + dlx, y2}, end}},
			{bit: shapeSplitDiag, n: 4, pts: [4]point{start, {x1 + dlx/2, y1 + dly/2}, {x1 + ldx + dlx/2, y1 + dly/2}, end}},
		}
	}

	dlx := ldx
	dly := ldx * pc.diagY / pc.diagX
	ldy -= dly
	dlx *= dirX
	dly *= dirY
	ldy *= dirY

	return [4]shape{
		{bit: shapeAxisDiag, n: 3, pts: [4]point{start, {x1, y1 + ldy}, end}},
		{bit: shapeDiagAxis, n: 3, pts: [4]point{start, {x2, y1 + dly}, end}},
		{bit: shapeSplitAxis, n: 4, pts: [4]point{start, {x1, y1 + ldy/2}, {x2, y1 + ldy/2 + dly}, end}},
		{bit: shapeSplitDiag, n: 4, pts: [4]point{start, {x1 + dlx/2, y1 + dly/2}, {x1 + dlx/2, y1 + ldy + dly/2}, end}},
	}
}

// walkable returns the number of legs of s, or 0 if any leg crosses a bar.
func (pc *PathContext) walkable(s shape) int {
	for i := 1; i < s.n; i++ {
		a, b := s.pts[i-1], s.pts[i]
		if !pc.check(a.x, a.y, b.x, b.y) {
			return 0
		}
	}
	return s.n - 1
}

// firstShape reports whether any shape gets from (x1,y1) to (x2,y2); it is
// what the search uses to link two nodes.
func (pc *PathContext) firstShape(x1, y1, x2, y2 int) bool {
	for _, s := range pc.shapes(x1, y1, x2, y2) {
		if pc.walkable(s) != 0 {
			return true
		}
	}
	return false
}

// shapeOptions returns the bitmask of every walkable shape.
func (pc *PathContext) shapeOptions(x1, y1, x2, y2 int) int {
	options := 0
	for _, s := range pc.shapes(x1, y1, x2, y2) {
		if pc.walkable(s) != 0 {
			options |= s.bit
		}
	}
	return options
}

// check reports whether the segment crosses no bar, allowing 1 px of slack.
func (pc *PathContext) check(x1, y1, x2, y2 int) bool {
	switch {
	case x1 == x2 && y1 == y2:
		return true
	case x1 == x2:
		return pc.vertCheck(x1, y1, y2)
	case y1 == y2:
		return pc.horizCheck(x1, y1, x2)
	}
	return pc.lineCheck(x1, y1, x2, y2)
}

func (pc *PathContext) lineCheck(x1, y1, x2, y2 int) bool {
	xmin, xmax := min(x1, x2), max(x1, x2)
	ymin, ymax := min(y1, y2), max(y1, y2)

	dirx := x2 - x1
	diry := y2 - y1
	co := y1*dirx - x1*diry

	for _, b := range pc.bars {
		if !b.Overlaps(xmin, ymin, xmax, ymax) {
			continue
		}
		slope := b.DX*diry - b.DY*dirx
		// parallel lines don't cross
		if slope == 0 {
			continue
		}
		xc := (b.Co*dirx - co*b.DX) / slope
		if xc < xmin-1 || xc > xmax+1 || xc < b.XMin-1 || xc > b.XMax+1 {
			continue
		}
		yc := (b.Co*diry - co*b.DY) / slope
		if yc < ymin-1 || yc > ymax+1 || yc < b.YMin-1 || yc > b.YMax+1 {
			continue
		}
		return false
	}
	return true
}

func (pc *PathContext) horizCheck(x1, y, x2 int) bool {
	xmin, xmax := min(x1, x2), max(x1, x2)

	for _, b := range pc.bars {
		if !b.Overlaps(xmin, y, xmax, y) {
			continue
		}
		if b.DY == 0 {
			return false
		}
		xc := b.X1 + b.DX*(y-b.Y1)/b.DY
		if xc >= xmin-1 && xc <= xmax+1 {
			return false
		}
	}
	return true
}

func (pc *PathContext) vertCheck(x, y1, y2 int) bool {
	ymin, ymax := min(y1, y2), max(y1, y2)

	for _, b := range pc.bars {
		if !b.Overlaps(x, ymin, x, ymax) {
			continue
		}
		if b.DX == 0 {
			return false
		}
		yc := b.Y1 + b.DY*(x-b.X1)/b.DX
		if yc >= ymin-1 && yc <= ymax+1 {
			return false
		}
	}
	return true
}

// checkTarget reports whether a bar passes within 1 px of (x, y).
func (pc *PathContext) checkTarget(x, y int) bool {
	for _, b := range pc.bars {
		if !b.Overlaps(x-1, y-1, x+1, y+1) {
			continue
		}
		// axis-aligned bars overlapping the box touch the point
		if b.DX == 0 || b.DY == 0 {
			return true
		}
		yc := b.Y1 + b.DY*(x-b.X1)/b.DX
		if yc >= y-1 && yc <= y+1 {
			return true
		}
		xc := b.X1 + b.DX*(y-b.Y1)/b.DY
		if xc >= x-1 && xc <= x+1 {
			return true
		}
	}
	return false
}

// framesClear reports whether the feet cross no bar between any two
// consecutive frames of a walk.
func (pc *PathContext) framesClear(frames []Frame) bool {
	for i := 1; i < len(frames) && !frames[i].IsEnd(); i++ {
		a, b := frames[i-1], frames[i]
		if !pc.check(a.X, a.Y, b.X, b.Y) {
			return false
		}
	}
	return true
}
