package router

// solidWalkAnimator writes a walk made of whole steps only, stopping at the
// last step before each module end. It reports false when a module or a
// frame of the result crosses a bar, or when the walk ends on one; the
// caller then falls back to a slidy walk.
func (pc *PathContext) solidWalkAnimator() (bool, error) {
	a := newAnimator(pc)
	mp := pc.modular

	startDir := mp[0].Dir
	cur := mp[1].Dir

	a.stand(startDir)
	a.turnOnSpot(startDir, cur)

	slowStart := a.slowIn(cur, mp[1].Num > 0)
	a.leadOff(cur)
	a.lastCount = len(a.frames)

	lastDir := noDir
	cur = noDir
	end := 1
	for ; mp[end].Dir < numDirections; end++ {
		m := &mp[end]
		if m.Num > 0 {
			cur = m.Dir
			if err := a.walkModule(*m); err != nil {
				return false, err
			}
			a.rollback()
			a.settle()
			m.X, m.Y = a.x, a.y

			if len(a.frames)-a.lastCount < a.fps {
				// no step taken, so no slow-in either
				if slowStart {
					n := a.prof.SlowInFrames[cur]
					a.frames = a.frames[:len(a.frames)-n]
					a.lastCount -= n
				}
				cur = noDir
			}
			if lastDir != noDir && cur != noDir {
				a.walkingTurn(lastDir, cur)
			}
			a.lastCount = len(a.frames)
		}
		lastDir = cur
		// only the first module can undo the slow-in
		slowStart = false
	}

	a.slowOut()
	a.stand(mp[end-1].Dir)
	if a.err != nil {
		return false, a.err
	}
	frames := a.finish()

	for i := 0; i < end-1; i++ {
		if !pc.check(mp[i].X, mp[i].Y, mp[i+1].X, mp[i+1].Y) {
			return false, nil
		}
	}
	if pc.checkTarget(a.x, a.y) || !pc.framesClear(frames) {
		return false, nil
	}
	pc.frames = frames
	return true, nil
}
