package router

const (
	// slidy modules need at least a quarter step of movement
	slidyShift = 19
	// solid modules need a whole step
	solidShift = 16
)

// reducePath keeps the smooth runs that are long enough to walk at the
// actor's scale, as modules of the modular path. The first module is the
// start position.
func (pc *PathContext) reducePath(shift int) []PathStep {
	mp := []PathStep{{X: pc.smooth[0].X, Y: pc.smooth[0].Y, Dir: pc.smooth[0].Dir}}

	for n := 1; pc.smooth[n].Dir != dirEnd; n++ {
		s := pc.smooth[n]
		scale := pc.scaleA*s.Y + pc.scaleB
		prev := mp[len(mp)-1]
		stepX := (pc.layout.ModX[s.Dir] * scale) >> shift
		stepY := (pc.layout.ModY[s.Dir] * scale) >> shift
		if abs(s.X-prev.X) >= abs(stepX) && abs(s.Y-prev.Y) >= abs(stepY) {
			mp = append(mp, PathStep{X: s.X, Y: s.Y, Dir: s.Dir, Num: 1})
		}
	}
	return mp
}

// slidyPath builds the modular path for a walk that slides its feet to hit
// the target exactly.
func (pc *PathContext) slidyPath() {
	mp := pc.reducePath(slidyShift)
	end := pc.smooth[len(pc.smooth)-2]

	// in case the last bit had no steps
	if len(mp) > 1 {
		mp[len(mp)-1].X = end.X
		mp[len(mp)-1].Y = end.Y
	}

	mp = append(mp,
		PathStep{X: end.X, Y: end.Y, Dir: pc.targetDir},
		endStepAt(end.X, end.Y),
	)
	pc.modular = mp
}

// solidPath builds the modular path for a walk made of whole steps only.
func (pc *PathContext) solidPath() {
	mp := pc.reducePath(solidShift)
	end := pc.smooth[len(pc.smooth)-2]

	if len(mp) == 1 {
		// nothing long enough to walk, put in a dummy module
		mp = append(mp, PathStep{Dir: pc.smooth[0].Dir})
	}
	mp[len(mp)-1].X = end.X
	mp[len(mp)-1].Y = end.Y

	pc.modular = append(mp, endStepAt(end.X, end.Y))
}
