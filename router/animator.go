package router

import (
	"fmt"

	"github.com/milk9111/walkrouter/walkdata"
)

// animator builds a frame buffer for one walk. Positions are tracked in
// 16.16 fixed point so perspective scaling accumulates without drift.
type animator struct {
	pc   *PathContext
	prof *walkdata.Profile
	l    *walkdata.Layout
	fps  int

	frames []Frame
	limit  int
	err    error

	x, y     int
	x16, y16 int
	// leg is 0 or fps: which half of the walk cycle the next step uses
	leg int
	// steps retained so far
	steps int
	// lastCount is where the module being walked started
	lastCount int
}

func newAnimator(pc *PathContext) *animator {
	a := &animator{
		pc:    pc,
		prof:  pc.profile,
		l:     pc.layout,
		fps:   pc.layout.FramesPerStep,
		limit: pc.maxFrames - endFrames,
	}
	a.frames = make([]Frame, 0, min(pc.maxFrames, 128))
	a.moveTo(pc.startX, pc.startY)
	return a
}

func (a *animator) moveTo(x, y int) {
	a.x, a.y = x, y
	a.x16, a.y16 = x<<16, y<<16
}

// settle moves the module position to the last frame written.
func (a *animator) settle() {
	f := a.frames[len(a.frames)-1]
	a.moveTo(f.X, f.Y)
}

func (a *animator) emit(index, step, dir, x, y int) {
	if a.err != nil {
		return
	}
	if len(a.frames) >= a.limit {
		a.err = fmt.Errorf("%w: more than %d frames", ErrWalkTooLong, a.pc.maxFrames)
		return
	}
	a.frames = append(a.frames, Frame{Index: index, Step: step, Dir: dir, X: x, Y: y})
}

func (a *animator) stand(dir int) {
	a.emit(a.l.StandFrame(dir), 0, dir, a.x, a.y)
}

func (a *animator) turnFrame(turn, dir int) int {
	if turn < 0 {
		return a.l.FirstStandingTurnLeft + dir
	}
	return a.l.FirstStandingTurnRight + dir
}

// turnOnSpot turns from one direction to another 45° at a time. The head
// leads the body by 45°, so the frame that faces the new direction is
// dropped and the walk itself completes the turn.
func (a *animator) turnOnSpot(from, to int) {
	turn := turnStep(from, to)
	if turn == 0 {
		return
	}
	if a.prof.StandingTurnFrames {
		a.emit(a.turnFrame(turn, from), 0, from, a.x, a.y)
	}
	for d := from; d != to; {
		d = wrapDir(d + turn)
		a.emit(a.turnFrame(turn, d), 0, d, a.x, a.y)
	}
	if a.err == nil {
		a.frames = a.frames[:len(a.frames)-1]
	}
}

// turnToEnd turns to face the target direction once the walk is over. The
// last turn frame becomes the stand frame.
func (a *animator) turnToEnd(from, to int) {
	turn := turnStep(from, to)
	if a.prof.StandingTurnFrames {
		a.emit(a.turnFrame(turn, from), 0, from, a.x, a.y)
	}
	for d := from; d != to; {
		d = wrapDir(d + turn)
		a.emit(a.turnFrame(turn, d), 0, d, a.x, a.y)
	}
	if a.err == nil {
		a.frames[len(a.frames)-1].Index = a.l.StandFrame(to)
	}
}

// slowIn adds the start-up frames for dir if the walk actually moves.
func (a *animator) slowIn(dir int, moving bool) bool {
	if !a.prof.UsingSlowIn() || !moving {
		return false
	}
	for i := range a.prof.SlowInFrames[dir] {
		a.emit(a.l.FirstSlowIn[dir]+i, 0, dir, a.x, a.y)
	}
	return true
}

// leadOff picks the leg the walk starts on, to follow on from the slow-in.
func (a *animator) leadOff(dir int) {
	if a.prof.Leg(dir) == 0 {
		a.leg = 0
	} else {
		a.leg = a.fps
	}
}

// step walks one step (half a walk cycle) in dir. The scale is sampled at
// the start of the step.
func (a *animator) step(dir int) {
	module := dir*a.fps*2 + a.leg
	a.leg = a.fps - a.leg
	scale := a.pc.scaleA*a.y + a.pc.scaleB

	for s := range a.fps {
		dx, dy := a.prof.Step(module + s)
		a.x16 += dx * scale
		a.y16 += dy * scale
		a.x = a.x16 >> 16
		a.y = a.y16 >> 16
		a.emit(module+s, s, dir, a.x, a.y)
	}
	a.steps++
}

// rollback takes back the last step.
func (a *animator) rollback() {
	a.frames = a.frames[:len(a.frames)-a.fps]
	a.leg = a.fps - a.leg
	a.steps--
}

// overshot reports whether the position has gone past the module end on
// either axis.
func (a *animator) overshot(m PathStep) bool {
	errX := (m.X - a.x) * a.l.ModX[m.Dir]
	errY := (m.Y - a.y) * a.l.ModY[m.Dir]
	return errX < 0 || errY < 0
}

// walkModule steps in m's direction until it passes m's end point.
func (a *animator) walkModule(m PathStep) error {
	for {
		a.step(m.Dir)
		if a.err != nil {
			return a.err
		}
		if a.overshot(m) {
			return nil
		}
	}
}

// walkingTurn swaps the previous module's last step for walking-turn frames
// when this module turns 45° or 90° from it.
func (a *animator) walkingTurn(from, to int) {
	if !a.prof.WalkingTurnFrames || a.lastCount < a.fps {
		return
	}
	var base int
	switch to - from {
	case -1, 7, -2, 6:
		base = a.l.FirstWalkingTurnLeft
	case 1, -7, 2, -6:
		base = a.l.FirstWalkingTurnRight
	default:
		return
	}
	for f := a.lastCount - a.fps; f < a.lastCount; f++ {
		a.frames[f].Index += base
	}
}

// slowOut replaces the last step with slow-out frames and adds the
// stationary ones.
func (a *animator) slowOut() {
	if !a.prof.UsingSlowOut() || a.steps == 0 || a.err != nil {
		return
	}
	n := len(a.frames)
	for f := n - a.fps; f < n; f++ {
		a.frames[f].Index = a.slowOutFrame(a.frames[f].Index)
		a.frames[f].Step = 0
	}
	a.stillFrames()
}

// slowOutFrame maps a walk frame to its slow-out frame. There may be more
// slow-out frames per leg than walk frames.
func (a *animator) slowOutFrame(walk int) int {
	return walk + a.l.FirstSlowOut + (walk/a.fps)*(a.prof.SlowOutFrames-a.fps)
}

// stillFrames appends the slow-out frames past the length of a step, where
// the feet no longer move.
func (a *animator) stillFrames() {
	for i := a.fps; i < a.prof.SlowOutFrames; i++ {
		prev := a.frames[len(a.frames)-1]
		a.emit(prev.Index+1, 0, prev.Dir, prev.X, prev.Y)
	}
}

func (a *animator) finish() []Frame {
	for range endFrames {
		a.frames = append(a.frames, endFrame())
	}
	return a.frames
}
