package router

import (
	"errors"

	"github.com/milk9111/walkrouter/walkgrid"
)

var (
	ErrBadDirection = errors.New("router: direction out of range")
	ErrRouteTooLong = errors.New("router: route too long")
	ErrWalkTooLong  = errors.New("router: walk animation too long")
	ErrNoFreeSlot   = errors.New("router: no free route slot")
	ErrNoSmoothPath = errors.New("router: no walkable turn option")
	ErrNoRoute      = errors.New("router: no route buffer")
	ErrBadFrame     = errors.New("router: frame is not the start of a step")

	ErrGridListFull = walkgrid.ErrGridListFull
	ErrTooManyBars  = walkgrid.ErrTooManyBars
	ErrTooManyNodes = walkgrid.ErrTooManyNodes
)

// Result is the outcome of FindRoute.
type Result int

const (
	NoRoute Result = iota
	Found
	// TrivialTurn means the actor is already at the target and at most turns
	// on the spot.
	TrivialTurn
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case TrivialTurn:
		return "trivial-turn"
	}
	return "no-route"
}

const (
	// EndFrame is the frame index of the sentinels that close a buffer.
	EndFrame = 512
	endStep  = 99
	// endFrames sentinels follow the last real frame.
	endFrames = 3
	routeEnd  = 255
	unreached = 9999
)

// Frame is one animation frame of a walk: which megaset frame to show, where
// the feet are and which way the actor faces. Step counts frames within a
// step (0 .. FramesPerStep-1) and is 0 for every non-stepping frame.
type Frame struct {
	Index int
	Step  int
	Dir   int
	X     int
	Y     int
}

// IsEnd reports whether f is an end-of-walk sentinel.
func (f Frame) IsEnd() bool {
	return f.Index == EndFrame
}

func endFrame() Frame {
	return Frame{Index: EndFrame, Step: endStep}
}

// Actor is the part of a mega the router reads.
type Actor struct {
	ID    int
	FeetX int
	FeetY int
	Dir   int
	// perspective scale at y is ScaleA*y + ScaleB, 16.16 fixed point
	ScaleA int
	ScaleB int
}

// PathStep is an entry of the smooth and modular paths: walk in Dir until
// (X, Y). Num is the step estimate (smooth) or 1 for a live module, 0 for a
// finished one.
type PathStep struct {
	X   int
	Y   int
	Dir int
	Num int
}

func endStepAt(x, y int) PathStep {
	return PathStep{X: x, Y: y, Dir: dirEnd, Num: routeEnd}
}
