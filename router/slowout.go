package router

import (
	"fmt"

	"github.com/milk9111/walkrouter/walkdata"
)

// earlySlowOut rewrites buf from frame pc on so the walk stops after the
// step that starts there.
func earlySlowOut(buf []Frame, p *walkdata.Profile, pc int) ([]Frame, error) {
	if pc < 1 || pc+1 >= len(buf) || buf[pc].IsEnd() || buf[pc].Step != 0 || buf[pc+1].Step != 1 {
		return nil, fmt.Errorf("%w: frame %d", ErrBadFrame, pc)
	}
	l := p.Layout()
	fps := l.FramesPerStep

	out := make([]Frame, pc, pc+p.SlowOutFrames+endFrames+1)
	copy(out, buf[:pc])
	if !p.UsingSlowOut() {
		// stand in the current direction
		prev := buf[pc-1]
		out = append(out, Frame{Index: l.StandFrame(prev.Dir), Dir: prev.Dir, X: prev.X, Y: prev.Y})
	} else {
		i := pc
		for ; i < len(buf) && !buf[i].IsEnd(); i++ {
			if i > pc && buf[i].Step == 0 {
				break
			}
			f := buf[i]
			walk := f.Index
			// walking-turn frames map back to the plain walk frame first
			if l.FirstWalkingTurnRight > 0 && walk >= l.FirstWalkingTurnRight {
				walk -= l.FirstWalkingTurnRight
			} else if l.FirstWalkingTurnLeft > 0 && walk >= l.FirstWalkingTurnLeft {
				walk -= l.FirstWalkingTurnLeft
			}
			f.Index = walk + l.FirstSlowOut + (walk/fps)*(p.SlowOutFrames-fps)
			f.Step = 0
			out = append(out, f)
		}
		for n := fps; n < p.SlowOutFrames; n++ {
			prev := out[len(out)-1]
			out = append(out, Frame{Index: prev.Index + 1, Dir: prev.Dir, X: prev.X, Y: prev.Y})
		}
	}

	for range endFrames {
		out = append(out, endFrame())
	}
	return out, nil
}
