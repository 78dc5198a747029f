package router

// scootRatio decides between keeping an overshooting step and sliding back
// to the previous one: the previous stop wins when it was this many times
// closer to the module end.
const scootRatio = 3

// slidyWalkAnimator writes a walk that hits every module end exactly. Whole
// steps are taken until one passes the end, then the error is spread over
// the module's frames so the feet slide onto the target.
func (pc *PathContext) slidyWalkAnimator() error {
	a := newAnimator(pc)
	mp := pc.modular

	startDir := mp[0].Dir
	cur := mp[1].Dir
	if cur == DirAny {
		cur = startDir
	}

	// a stand frame first, so nothing moves before collisions are known
	a.stand(startDir)
	a.turnOnSpot(startDir, cur)
	lastRealDir := cur

	a.slowIn(cur, mp[1].Num > 0)
	a.leadOff(cur)
	a.lastCount = len(a.frames)

	// no walking turn into the first module
	lastDir := noDir

	for _, m := range mp[1:] {
		if m.Dir == dirEnd {
			break
		}
		if m.Num == 0 {
			continue
		}
		cur = m.Dir
		if err := a.walkModule(m); err != nil {
			return err
		}

		frames := len(a.frames) - a.lastCount
		if frames > a.fps {
			now := a.frames[len(a.frames)-1]
			prev := a.frames[len(a.frames)-a.fps-1]
			var errNow, errPrev int
			if a.l.ModX[cur] == 0 {
				errNow, errPrev = m.Y-now.Y, m.Y-prev.Y
			} else {
				errNow, errPrev = m.X-now.X, m.X-prev.X
			}
			if scootRatio*abs(errPrev) < abs(errNow) {
				a.rollback()
			}
		}
		a.spread(m)

		if len(a.frames)-a.lastCount < a.fps {
			cur = noDir
		}
		if cur != noDir {
			lastRealDir = cur
			if lastDir != noDir {
				a.walkingTurn(lastDir, cur)
			}
		}
		a.lastCount = len(a.frames)
		a.settle()
		lastDir = cur
	}

	a.slowOut()

	target := pc.targetDir
	if target == DirAny {
		a.stand(lastRealDir)
		target = lastRealDir
	}
	if target != lastRealDir {
		a.turnToEnd(lastRealDir, target)
	} else {
		a.stand(lastRealDir)
	}

	if a.err != nil {
		return a.err
	}
	pc.frames = a.finish()
	return nil
}

// spread shares the remaining error to m's end point across the frames of
// the module, so its last frame lands on it.
func (a *animator) spread(m PathStep) {
	last := a.frames[len(a.frames)-1]
	errX := m.X - last.X
	errY := m.Y - last.Y
	n := len(a.frames) - a.lastCount
	for j := 1; j <= n; j++ {
		f := &a.frames[a.lastCount+j-1]
		f.X += errX * j / n
		f.Y += errY * j / n
	}
}
