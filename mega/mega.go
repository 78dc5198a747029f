package mega

import "github.com/milk9111/walkrouter/router"

// Mega is a walking character as the game sees it: where its feet are, which
// way it faces and which megaset frame is on screen.
type Mega struct {
	ID    int
	FeetX int
	FeetY int
	Dir   int
	Frame int
	// perspective scale at y is ScaleA*y + ScaleB, 16.16 fixed point
	ScaleA int
	ScaleB int

	Walking bool
}

// New returns a full-size mega standing at (x, y).
func New(id, x, y, dir int) *Mega {
	return &Mega{ID: id, FeetX: x, FeetY: y, Dir: dir, ScaleB: 1 << 16}
}

// Actor is the view of m the router plans from.
func (m *Mega) Actor() router.Actor {
	return router.Actor{
		ID:     m.ID,
		FeetX:  m.FeetX,
		FeetY:  m.FeetY,
		Dir:    m.Dir,
		ScaleA: m.ScaleA,
		ScaleB: m.ScaleB,
	}
}

func (m *Mega) apply(f router.Frame) {
	m.Frame = f.Index
	m.Dir = f.Dir
	m.FeetX = f.X
	m.FeetY = f.Y
}
