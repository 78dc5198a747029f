package walkgrid

// Point is a walk-grid node position in room pixels.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Bar is an impassable segment. The bounding box and line coefficients are
// precomputed so that every point on the bar's line satisfies
// y*DX == x*DY + Co.
type Bar struct {
	X1, Y1, X2, Y2 int

	XMin, YMin int
	XMax, YMax int

	DX, DY int
	Co     int
}

// NewBar builds a bar between two end points.
func NewBar(x1, y1, x2, y2 int) Bar {
	b := Bar{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		XMin: min(x1, x2), XMax: max(x1, x2),
		YMin: min(y1, y2), YMax: max(y1, y2),
		DX: x2 - x1,
		DY: y2 - y1,
	}
	b.Co = y1*b.DX - x1*b.DY
	return b
}

// Overlaps reports whether the bar's bounding box intersects the box
// [xmin,xmax]x[ymin,ymax].
func (b Bar) Overlaps(xmin, ymin, xmax, ymax int) bool {
	return xmax >= b.XMin && xmin <= b.XMax && ymax >= b.YMin && ymin <= b.YMax
}
