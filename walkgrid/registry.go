package walkgrid

import (
	"errors"
	"fmt"
)

var (
	ErrGridListFull = errors.New("walkgrid: grid list full")
	ErrTooManyBars  = errors.New("walkgrid: too many bars")
	ErrTooManyNodes = errors.New("walkgrid: too many nodes")
)

// Limits bounds the size of a merged snapshot.
type Limits struct {
	MaxGrids int
	// MaxBars counts every bar in the snapshot.
	MaxBars int
	// MaxNodes counts grid nodes plus the start and target nodes the router
	// adds around them.
	MaxNodes int
}

func DefaultLimits() Limits {
	return Limits{MaxGrids: 10, MaxBars: 200, MaxNodes: 200}
}

type extra struct {
	owner string
	bars  []Bar
	nodes []Point
}

// Registry is the list of walk grids active in the current room plus the
// transient obstacles actors place around themselves.
type Registry struct {
	src    Source
	limits Limits
	// grid id per slot, 0 marks a free slot
	slots  []int
	extras []extra
}

func NewRegistry(src Source, limits Limits) *Registry {
	if limits.MaxGrids <= 0 {
		limits.MaxGrids = DefaultLimits().MaxGrids
	}
	return &Registry{
		src:    src,
		limits: limits,
		slots:  make([]int, limits.MaxGrids),
	}
}

// SetLimits replaces the registry's limits. Active grids stay active even
// past a lower MaxGrids, but Add fails until enough have been removed.
func (r *Registry) SetLimits(limits Limits) {
	if limits.MaxGrids <= 0 {
		limits.MaxGrids = DefaultLimits().MaxGrids
	}
	r.limits = limits
	active := r.Active()
	r.slots = make([]int, max(limits.MaxGrids, len(active)))
	copy(r.slots, active)
}

// Add activates a grid. Adding a grid that is already active does nothing.
func (r *Registry) Add(id int) error {
	if id <= 0 {
		return ErrBadGridID
	}
	for _, s := range r.slots {
		if s == id {
			return nil
		}
	}
	if len(r.Active()) >= r.limits.MaxGrids {
		return fmt.Errorf("walkgrid: add grid %d: %w", id, ErrGridListFull)
	}
	for i, s := range r.slots {
		if s == 0 {
			r.slots[i] = id
			return nil
		}
	}
	return fmt.Errorf("walkgrid: add grid %d: %w", id, ErrGridListFull)
}

// Remove deactivates a grid; unknown ids are ignored.
func (r *Registry) Remove(id int) {
	for i, s := range r.slots {
		if s == id {
			r.slots[i] = 0
			return
		}
	}
}

// Clear deactivates every grid, e.g. when the room changes.
func (r *Registry) Clear() {
	for i := range r.slots {
		r.slots[i] = 0
	}
}

// Active returns the active grid ids in slot order.
func (r *Registry) Active() []int {
	out := make([]int, 0, len(r.slots))
	for _, s := range r.slots {
		if s != 0 {
			out = append(out, s)
		}
	}
	return out
}

// SetExtra replaces the obstacle bars and nodes owned by owner.
func (r *Registry) SetExtra(owner string, bars []Bar, nodes []Point) {
	for i := range r.extras {
		if r.extras[i].owner == owner {
			r.extras[i].bars = bars
			r.extras[i].nodes = nodes
			return
		}
	}
	r.extras = append(r.extras, extra{owner: owner, bars: bars, nodes: nodes})
}

func (r *Registry) RemoveExtra(owner string) {
	for i := range r.extras {
		if r.extras[i].owner == owner {
			r.extras = append(r.extras[:i], r.extras[i+1:]...)
			return
		}
	}
}

func (r *Registry) ClearExtras() {
	r.extras = nil
}

// Snapshot is the merged mesh for one route request.
type Snapshot struct {
	Bars  []Bar
	Nodes []Point
}

// Snapshot merges the active grids (in slot order) and the extras (in
// insertion order). It fails rather than truncating when the limits are hit.
func (r *Registry) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}
	for _, id := range r.slots {
		if id == 0 {
			continue
		}
		g, err := r.src.Grid(id)
		if err != nil {
			return nil, err
		}
		snap.Bars = append(snap.Bars, g.BarList()...)
		snap.Nodes = append(snap.Nodes, g.Nodes...)
	}
	for _, e := range r.extras {
		snap.Bars = append(snap.Bars, e.bars...)
		snap.Nodes = append(snap.Nodes, e.nodes...)
	}

	if r.limits.MaxBars > 0 && len(snap.Bars) > r.limits.MaxBars {
		return nil, fmt.Errorf("walkgrid: %d bars, max %d: %w", len(snap.Bars), r.limits.MaxBars, ErrTooManyBars)
	}
	if r.limits.MaxNodes > 0 && len(snap.Nodes)+2 > r.limits.MaxNodes {
		return nil, fmt.Errorf("walkgrid: %d nodes, max %d: %w", len(snap.Nodes)+2, r.limits.MaxNodes, ErrTooManyNodes)
	}
	return snap, nil
}
