package router

import (
	"errors"
	"fmt"

	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/milk9111/walkrouter/walkgrid"
	"github.com/sirupsen/logrus"
)

// Router plans walks across the active walk grids and compiles them into
// per-actor frame buffers.
type Router struct {
	cfg   Config
	grids *walkgrid.Registry
	slots *Slots
	log   *logrus.Entry
}

// New returns a router planning against grids. The registry takes cfg's
// grid, bar and node limits.
func New(cfg Config, grids *walkgrid.Registry) *Router {
	cfg = cfg.withDefaults()
	grids.SetLimits(cfg.GridLimits())
	return &Router{
		cfg:   cfg,
		grids: grids,
		slots: NewSlots(cfg.MaxSlots),
		log:   logger.For("router"),
	}
}

// Grids returns the registry routes are planned against.
func (r *Router) Grids() *walkgrid.Registry {
	return r.grids
}

func (r *Router) AddWalkGrid(id int) error {
	return r.grids.Add(id)
}

func (r *Router) RemoveWalkGrid(id int) {
	r.grids.Remove(id)
}

func (r *Router) ClearWalkGrids() {
	r.grids.Clear()
}

func (r *Router) AllocateBuffer(id int) error {
	return r.slots.Allocate(id)
}

func (r *Router) ReleaseBuffer(id int) {
	r.slots.Release(id)
}

func (r *Router) ReleaseAllBuffers() {
	r.slots.ReleaseAll()
}

// Buffer returns the frames of id's current walk.
func (r *Router) Buffer(id int) ([]Frame, bool) {
	return r.slots.Buffer(id)
}

// FindRoute plans a walk for a from its feet to (x, y), ending facing dir
// (DirAny for whichever way it arrives). On Found or TrivialTurn the frames
// are in Buffer(a.ID); on NoRoute the actor holds no buffer.
func (r *Router) FindRoute(a Actor, p *walkdata.Profile, x, y, dir int) (Result, error) {
	if dir < 0 || dir > DirAny {
		return NoRoute, fmt.Errorf("%w: target %d", ErrBadDirection, dir)
	}
	if !validDir(a.Dir) {
		return NoRoute, fmt.Errorf("%w: actor %d faces %d", ErrBadDirection, a.ID, a.Dir)
	}
	if p == nil || p.Layout().FramesPerStep == 0 {
		return NoRoute, fmt.Errorf("router: profile not prepared: %w", walkdata.ErrInvalidProfile)
	}

	log := r.log.WithFields(logrus.Fields{
		"actor": a.ID,
		"from":  fmt.Sprintf("%d,%d", a.FeetX, a.FeetY),
		"to":    fmt.Sprintf("%d,%d", x, y),
		"dir":   dir,
	})

	if err := r.slots.Allocate(a.ID); err != nil {
		log.WithError(err).Warn("no route slot")
		return NoRoute, err
	}

	res, pc, err := r.plan(a, p, x, y, dir, log)
	if err != nil || res == NoRoute {
		r.slots.Release(a.ID)
		if err != nil {
			log.WithError(err).Warn("route failed")
		} else {
			log.Debug("no route")
		}
		return NoRoute, err
	}

	r.slots.store(a.ID, pc.frames)
	log.WithFields(logrus.Fields{
		"result": res.String(),
		"frames": len(pc.frames),
	}).Debug("route ready")
	return res, nil
}

func (r *Router) plan(a Actor, p *walkdata.Profile, x, y, dir int, log *logrus.Entry) (Result, *PathContext, error) {
	snap, err := r.grids.Snapshot()
	if err != nil {
		return NoRoute, nil, err
	}
	pc := newPathContext(snap, a, p, x, y, dir, r.cfg)

	res, err := pc.getRoute()
	if err != nil || res == NoRoute {
		return NoRoute, nil, err
	}

	if res == TrivialTurn {
		if pc.targetDir == DirAny {
			pc.targetDir = pc.startDir
		}
		pc.modular = []PathStep{
			{X: pc.startX, Y: pc.startY, Dir: pc.startDir},
			{X: pc.startX, Y: pc.startY, Dir: pc.targetDir},
			endStepAt(pc.startX, pc.startY),
		}
		if err := pc.slidyWalkAnimator(); err != nil {
			return NoRoute, nil, err
		}
		return TrivialTurn, pc, nil
	}

	if err := pc.smoothestPath(); err != nil {
		return NoRoute, nil, err
	}

	if pc.targetDir == DirAny && !r.cfg.ForceSlidy {
		pc.solidPath()
		ok, err := pc.solidWalkAnimator()
		if err != nil && !errors.Is(err, ErrWalkTooLong) {
			return NoRoute, nil, err
		}
		if ok {
			return Found, pc, nil
		}
		log.Debug("solid walk rejected, sliding instead")
	}

	pc.slidyPath()
	if err := pc.slidyWalkAnimator(); err != nil {
		return NoRoute, nil, err
	}
	// sliding onto module ends can clip a bar the modules themselves clear
	if !pc.framesClear(pc.frames) {
		log.Debug("slidy walk touches a bar")
		return NoRoute, nil, nil
	}
	return Found, pc, nil
}

// EarlySlowOut cuts id's walk short: the step starting at frame pc becomes
// the slow-out and the walk ends there.
func (r *Router) EarlySlowOut(id int, p *walkdata.Profile, pc int) error {
	buf, ok := r.slots.Buffer(id)
	if !ok {
		return fmt.Errorf("%w: actor %d", ErrNoRoute, id)
	}
	out, err := earlySlowOut(buf, p, pc)
	if err != nil {
		return err
	}
	r.slots.store(id, out)
	r.log.WithFields(logrus.Fields{"actor": id, "frame": pc}).Debug("early slow-out")
	return nil
}
