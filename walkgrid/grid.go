package walkgrid

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	ErrBadGridID   = errors.New("walkgrid: grid id must be positive")
	ErrUnknownGrid = errors.New("walkgrid: unknown grid")
)

// BarSpec is the resource form of a bar: just the two end points.
type BarSpec struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// Grid is one walk-grid resource: the floor outline of part of a room as
// bars, plus the nodes a route may pass through.
type Grid struct {
	ID    int       `yaml:"id"`
	Name  string    `yaml:"name"`
	Bars  []BarSpec `yaml:"bars"`
	Nodes []Point   `yaml:"nodes"`

	bars []Bar
}

// ParseGrid decodes and validates a YAML walk grid.
func ParseGrid(data []byte) (*Grid, error) {
	var g Grid
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("walkgrid: unmarshal: %w", err)
	}
	if g.ID <= 0 {
		return nil, fmt.Errorf("walkgrid: grid %q: %w", g.Name, ErrBadGridID)
	}
	g.build()
	return &g, nil
}

// NewGrid builds a grid in code, mostly for tests and tools.
func NewGrid(id int, name string, bars []BarSpec, nodes []Point) *Grid {
	g := &Grid{ID: id, Name: name, Bars: bars, Nodes: nodes}
	g.build()
	return g
}

func (g *Grid) build() {
	g.bars = make([]Bar, 0, len(g.Bars))
	for _, b := range g.Bars {
		g.bars = append(g.bars, NewBar(b.X1, b.Y1, b.X2, b.Y2))
	}
}

// BarList returns the grid's bars with their line coefficients.
func (g *Grid) BarList() []Bar {
	if g == nil {
		return nil
	}
	return g.bars
}
