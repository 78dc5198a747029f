package walkdata

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const numDirections = 8

var ErrInvalidProfile = errors.New("walkdata: invalid walk profile")

// Steps holds the per-frame foot movement for one direction over a full walk
// cycle (two steps).
type Steps struct {
	DX []int `yaml:"dx"`
	DY []int `yaml:"dy"`
}

// Profile describes how one character's megaset walks: the walk cycle, the
// optional turn/slow-in/slow-out frame sets, and which leg leads off in each
// direction.
type Profile struct {
	Name       string `yaml:"name"`
	WalkFrames int    `yaml:"walk_frames"`

	StandingTurnFrames bool `yaml:"standing_turn_frames"`
	WalkingTurnFrames  bool `yaml:"walking_turn_frames"`
	// SlowInFrames is empty when the megaset has no slow-in, otherwise one
	// count per direction.
	SlowInFrames []int `yaml:"slow_in_frames"`
	// SlowOutFrames is the slow-out length per leg, 0 when unused.
	SlowOutFrames int `yaml:"slow_out_frames"`

	// LeadingLeg is 0 (left) or 1 (right) per direction.
	LeadingLeg []int   `yaml:"leading_leg"`
	Steps      []Steps `yaml:"steps"`

	layout Layout
}

// ParseProfile decodes, validates and lays out a YAML megaset profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("walkdata: unmarshal: %w", err)
	}
	if err := p.Prepare(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Prepare validates a profile built in code and derives its frame layout.
// ParseProfile calls it for YAML profiles.
func (p *Profile) Prepare() error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("walkdata: profile %q: %w", p.Name, err)
	}
	p.layout = newLayout(p)
	if err := p.layout.validate(); err != nil {
		return fmt.Errorf("walkdata: profile %q: %w", p.Name, err)
	}
	return nil
}

// Layout returns the frame layout derived by Prepare.
func (p *Profile) Layout() *Layout {
	return &p.layout
}

// UsingSlowIn reports whether the megaset has slow-in frames.
func (p *Profile) UsingSlowIn() bool {
	return len(p.SlowInFrames) > 0
}

// UsingSlowOut reports whether the megaset has slow-out frames.
func (p *Profile) UsingSlowOut() bool {
	return p.SlowOutFrames > 0
}

// Step returns the foot movement for walk frame f, where f counts across all
// directions (direction d owns frames d*WalkFrames .. (d+1)*WalkFrames-1).
func (p *Profile) Step(f int) (dx, dy int) {
	d := f / p.WalkFrames
	i := f % p.WalkFrames
	return p.Steps[d].DX[i], p.Steps[d].DY[i]
}

// Leg returns the leading leg for dir.
func (p *Profile) Leg(dir int) int {
	if len(p.LeadingLeg) == 0 {
		return 0
	}
	return p.LeadingLeg[dir]
}

func (p *Profile) validate() error {
	if p.WalkFrames <= 0 || p.WalkFrames%2 != 0 {
		return fmt.Errorf("%w: walk_frames must be a positive even number, got %d", ErrInvalidProfile, p.WalkFrames)
	}
	if len(p.Steps) != numDirections {
		return fmt.Errorf("%w: need %d step tables, got %d", ErrInvalidProfile, numDirections, len(p.Steps))
	}
	for d, s := range p.Steps {
		if len(s.DX) != p.WalkFrames || len(s.DY) != p.WalkFrames {
			return fmt.Errorf("%w: direction %d needs %d dx and dy entries", ErrInvalidProfile, d, p.WalkFrames)
		}
	}
	if len(p.LeadingLeg) != 0 && len(p.LeadingLeg) != numDirections {
		return fmt.Errorf("%w: leading_leg needs %d entries", ErrInvalidProfile, numDirections)
	}
	for d, leg := range p.LeadingLeg {
		if leg != 0 && leg != 1 {
			return fmt.Errorf("%w: leading_leg[%d] must be 0 or 1", ErrInvalidProfile, d)
		}
	}
	if len(p.SlowInFrames) != 0 && len(p.SlowInFrames) != numDirections {
		return fmt.Errorf("%w: slow_in_frames needs %d entries", ErrInvalidProfile, numDirections)
	}
	for d, n := range p.SlowInFrames {
		if n < 0 {
			return fmt.Errorf("%w: slow_in_frames[%d] is negative", ErrInvalidProfile, d)
		}
	}
	if p.SlowOutFrames != 0 && p.SlowOutFrames < p.WalkFrames/2 {
		return fmt.Errorf("%w: slow_out_frames must cover a whole step (%d), got %d", ErrInvalidProfile, p.WalkFrames/2, p.SlowOutFrames)
	}
	return nil
}
