package mega

import (
	"errors"
	"fmt"

	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/router"
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/sirupsen/logrus"
)

var (
	ErrBadDirection = errors.New("mega: direction out of range")
	// ErrWalkLost means the walk's buffer was released while it was playing,
	// e.g. by a room change.
	ErrWalkLost = errors.New("mega: walk buffer released")
)

// Status is what a Walk call tells the caller to do next.
type Status int

const (
	// Walking means call again next tick.
	Walking Status = iota
	// Arrived means the walk is over and the mega stands at the target.
	Arrived
	// Blocked means no route was found; the mega has not moved.
	Blocked
	// Interrupted means the walk was cut short by Interrupt.
	Interrupted
)

func (s Status) String() string {
	switch s {
	case Walking:
		return "walking"
	case Arrived:
		return "arrived"
	case Interrupted:
		return "interrupted"
	}
	return "blocked"
}

type walk struct {
	pc        int
	interrupt bool
	// the router could not cut the walk short; it plays out in full
	slowOutFailed bool
}

// Planner is the part of the router a Walker needs.
type Planner interface {
	FindRoute(a router.Actor, p *walkdata.Profile, x, y, dir int) (router.Result, error)
	Buffer(id int) ([]router.Frame, bool)
	EarlySlowOut(id int, p *walkdata.Profile, pc int) error
	ReleaseBuffer(id int)
}

// Walker plays routed walks one frame per tick.
type Walker struct {
	router Planner
	walks  map[int]*walk
	log    *logrus.Entry
}

func NewWalker(r Planner) *Walker {
	return &Walker{
		router: r,
		walks:  make(map[int]*walk),
		log:    logger.For("mega"),
	}
}

// Walk moves m towards (x, y), ending facing dir (router.DirAny for any).
// The first call plans the route; every call, the first included, puts the
// next frame of the walk on m. Keep calling while it returns Walking; the
// target is only read on the first call.
func (w *Walker) Walk(m *Mega, p *walkdata.Profile, x, y, dir int) (Status, error) {
	st, ok := w.walks[m.ID]
	if !ok {
		if m.FeetX == x && m.FeetY == y && m.Dir == dir {
			return Arrived, nil
		}
		res, err := w.router.FindRoute(m.Actor(), p, x, y, dir)
		if err != nil {
			return Blocked, fmt.Errorf("mega: walk %d: %w", m.ID, err)
		}
		if res == router.NoRoute {
			return Blocked, nil
		}
		st = &walk{}
		w.walks[m.ID] = st
		m.Walking = true
	}

	buf, ok := w.router.Buffer(m.ID)
	if !ok {
		w.end(m)
		return Blocked, fmt.Errorf("%w: mega %d", ErrWalkLost, m.ID)
	}

	// an interrupt takes effect at the start of the next step
	if st.interrupt && !st.slowOutFailed && st.pc > 0 && buf[st.pc].Step == 0 && buf[st.pc+1].Step == 1 {
		if err := w.router.EarlySlowOut(m.ID, p, st.pc); err != nil {
			st.slowOutFailed = true
			w.log.WithError(err).WithField("mega", m.ID).Warn("early slow-out failed, finishing walk")
		} else {
			buf, _ = w.router.Buffer(m.ID)
		}
	}

	m.apply(buf[st.pc])

	if buf[st.pc+1].IsEnd() {
		w.end(m)
		if st.interrupt {
			return Interrupted, nil
		}
		return Arrived, nil
	}
	st.pc++
	return Walking, nil
}

// Turn turns m on the spot to face dir. It is a walk to its own feet and is
// driven the same way.
func (w *Walker) Turn(m *Mega, p *walkdata.Profile, dir int) (Status, error) {
	if dir < 0 || dir >= router.DirAny {
		return Blocked, fmt.Errorf("%w: %d", ErrBadDirection, dir)
	}
	return w.Walk(m, p, m.FeetX, m.FeetY, dir)
}

// StandAt puts m at (x, y) facing dir, dropping any walk in progress.
func (w *Walker) StandAt(m *Mega, p *walkdata.Profile, x, y, dir int) error {
	if dir < 0 || dir >= router.DirAny {
		return fmt.Errorf("%w: %d", ErrBadDirection, dir)
	}
	if _, ok := w.walks[m.ID]; ok {
		w.end(m)
	}
	m.FeetX, m.FeetY, m.Dir = x, y, dir
	m.Frame = p.Layout().StandFrame(dir)
	return nil
}

// Interrupt asks m's walk to stop at the end of the current step. It
// reports false if m is not walking.
func (w *Walker) Interrupt(id int) bool {
	st, ok := w.walks[id]
	if !ok {
		return false
	}
	st.interrupt = true
	return true
}

func (w *Walker) IsWalking(id int) bool {
	_, ok := w.walks[id]
	return ok
}

func (w *Walker) end(m *Mega) {
	delete(w.walks, m.ID)
	w.router.ReleaseBuffer(m.ID)
	m.Walking = false
}
