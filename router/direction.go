package router

// Directions, clockwise from north.
const (
	North = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	// DirAny ends a walk facing whichever way the actor arrives.
	DirAny
	// dirEnd marks the last step of smooth and modular paths.
	dirEnd
)

const (
	numDirections = 8
	// noDir stands for "no committed direction" while animating.
	noDir = 99
)

// turnStep returns the 45° increment that turns from one direction to another
// the short way round: -1 anticlockwise, 1 clockwise, 0 when already facing
// it. A half turn goes clockwise.
func turnStep(from, to int) int {
	d := wrapDir(to - from)
	switch {
	case d == 0:
		return 0
	case d > 4:
		return -1
	}
	return 1
}

func wrapDir(d int) int {
	d %= numDirections
	if d < 0 {
		d += numDirections
	}
	return d
}

func validDir(d int) bool {
	return d >= 0 && d < numDirections
}
