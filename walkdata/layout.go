package walkdata

import "fmt"

// Layout gives the first frame number of each frame set in a megaset.
// Frames are packed in this order: walk, stand, standing turn left/right,
// walking turn left/right, slow-in (per direction), slow-out.
type Layout struct {
	FramesPerStep int
	FramesPerChar int

	FirstStand             int
	FirstStandingTurnLeft  int
	FirstStandingTurnRight int
	// 0 when the megaset has no walking turns
	FirstWalkingTurnLeft  int
	FirstWalkingTurnRight int
	FirstSlowIn           [numDirections]int
	FirstSlowOut          int

	// ModX/ModY are the foot displacement of one step (half a cycle) per
	// direction.
	ModX [numDirections]int
	ModY [numDirections]int
	// DiagX:DiagY is the ratio of diagonal movement.
	DiagX int
	DiagY int
}

func newLayout(p *Profile) Layout {
	var l Layout
	for d := range numDirections {
		for i := 0; i < p.WalkFrames/2; i++ {
			l.ModX[d] += p.Steps[d].DX[i]
			l.ModY[d] += p.Steps[d].DY[i]
		}
	}
	l.DiagX = l.ModX[3]
	l.DiagY = l.ModY[3]

	l.FramesPerStep = p.WalkFrames / 2
	l.FramesPerChar = p.WalkFrames * numDirections

	frame := l.FramesPerChar

	l.FirstStand = frame
	frame += numDirections

	if p.StandingTurnFrames {
		l.FirstStandingTurnLeft = frame
		frame += numDirections
		l.FirstStandingTurnRight = frame
		frame += numDirections
	} else {
		l.FirstStandingTurnLeft = l.FirstStand
		l.FirstStandingTurnRight = l.FirstStand
	}

	if p.WalkingTurnFrames {
		l.FirstWalkingTurnLeft = frame
		frame += l.FramesPerChar
		l.FirstWalkingTurnRight = frame
		frame += l.FramesPerChar
	}

	if p.UsingSlowIn() {
		for d := range numDirections {
			l.FirstSlowIn[d] = frame
			frame += p.SlowInFrames[d]
		}
	}

	if p.UsingSlowOut() {
		l.FirstSlowOut = frame
	}
	return l
}

// step signs per direction, clockwise from north
var (
	signX = [numDirections]int{0, 1, 1, 1, 0, -1, -1, -1}
	signY = [numDirections]int{-1, -1, 0, 1, 1, 1, 0, -1}
)

func (l *Layout) validate() error {
	for d := range numDirections {
		if !sameSign(l.ModX[d], signX[d]) || !sameSign(l.ModY[d], signY[d]) {
			return fmt.Errorf("%w: direction %d steps (%d,%d) do not head that way", ErrInvalidProfile, d, l.ModX[d], l.ModY[d])
		}
	}
	return nil
}

func sameSign(v, want int) bool {
	switch want {
	case 0:
		return v == 0
	case 1:
		return v > 0
	}
	return v < 0
}

// StandFrame is the stand frame for dir.
func (l *Layout) StandFrame(dir int) int {
	return l.FirstStand + dir
}
