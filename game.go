package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/mega"
	"github.com/milk9111/walkrouter/router"
	"github.com/milk9111/walkrouter/script"
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/milk9111/walkrouter/walkgrid"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	baseWidth     = 320
	roomHeight    = 200
	toolbarHeight = 24
	baseHeight    = roomHeight + toolbarHeight

	heroID = 1
	npcID  = 2

	// the second mega blocks the hero's routes with a box this size
	npcHalfW  = 10
	npcHalfH  = 4
	npcMargin = 3
	npcOwner  = "npc"
)

var turnKeys = [8]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// facing vectors, north first then clockwise
var facing = [8][2]float32{
	{0, -1}, {0.7, -0.7}, {1, 0}, {0.7, 0.7},
	{0, 1}, {-0.7, 0.7}, {-1, 0}, {-0.7, -0.7},
}

type order struct {
	x, y, dir int
	turn      bool
}

type Game struct {
	frames int

	lib     *walkgrid.Library
	grids   *walkgrid.Registry
	gridIDs []int
	watcher *walkgrid.Watcher
	router  *router.Router
	walker  *mega.Walker
	profile *walkdata.Profile

	hero *mega.Mega
	npc  *mega.Mega
	// npcScript drives the second mega; nil when it just stands
	npcScript *script.Runtime

	current *order
	next    *order
	status  string

	ui *ebitenui.UI

	log *logrus.Entry
}

func NewGame(lib *walkgrid.Library, cfg router.Config, gridIDs []int, megaset, scriptName string, watcher *walkgrid.Watcher) (*Game, error) {
	profile, err := walkdata.LoadProfile(megaset)
	if err != nil {
		return nil, err
	}

	grids := walkgrid.NewRegistry(lib, cfg.GridLimits())
	r := router.New(cfg, grids)
	for _, id := range gridIDs {
		if err := r.AddWalkGrid(id); err != nil {
			return nil, err
		}
	}

	g := &Game{
		lib:     lib,
		grids:   grids,
		gridIDs: gridIDs,
		watcher: watcher,
		router:  r,
		walker:  mega.NewWalker(r),
		profile: profile,
		hero:    mega.New(heroID, 60, 170, router.East),
		npc:     mega.New(npcID, 120, 160, router.West),
		status:  "click to walk",
		log:     logger.For("sandbox"),
	}
	if err := g.walker.StandAt(g.hero, profile, g.hero.FeetX, g.hero.FeetY, g.hero.Dir); err != nil {
		return nil, err
	}
	if err := g.walker.StandAt(g.npc, profile, g.npc.FeetX, g.npc.FeetY, g.npc.Dir); err != nil {
		return nil, err
	}

	ui, err := buildToolbar([]toolbarAction{
		{"Clear", g.clearGrids},
		{"Grids", g.restoreGrids},
		{"Stop", g.stopHero},
	})
	if err != nil {
		return nil, err
	}
	g.ui = ui

	if scriptName != "" {
		rt, err := script.Load(scriptName, r, g.walker, g.npc, profile)
		if err != nil {
			return nil, err
		}
		g.npcScript = rt
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.ui.Update()
	g.reloadGrids()
	g.handleInput()

	// the npc must not route around its own box
	g.grids.RemoveExtra(npcOwner)
	if g.npcScript != nil {
		if err := g.npcScript.Tick(); err != nil {
			g.log.WithError(err).Warn("npc script stopped")
			g.npcScript = nil
		}
	}
	g.grids.SetObstacleBox(npcOwner, walkgrid.BoxAround(g.npc.FeetX, g.npc.FeetY, npcHalfW, npcHalfH), npcMargin)

	g.stepHero()
	return nil
}

func (g *Game) reloadGrids() {
	if g.watcher == nil {
		return
	}
	ids, errs := g.watcher.Apply(g.lib)
	for _, err := range errs {
		g.log.WithError(err).Warn("grid reload failed")
	}
	if len(ids) > 0 {
		g.log.WithField("grids", ids).Info("walk grids reloaded")
	}
}

func (g *Game) handleInput() {
	var o *order
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		// clicks below the room belong to the toolbar
		if x, y := ebiten.CursorPosition(); y < roomHeight {
			o = &order{x: x, y: y, dir: router.DirAny}
		}
	}
	for dir, k := range turnKeys {
		if inpututil.IsKeyJustPressed(k) {
			o = &order{dir: dir, turn: true}
		}
	}

	if o == nil {
		return
	}
	if g.current != nil {
		// finish the current step first, then take the new order
		g.walker.Interrupt(heroID)
		g.next = o
		return
	}
	g.current = o
}

func (g *Game) clearGrids() {
	g.router.ClearWalkGrids()
	g.status = "walk grids cleared"
}

func (g *Game) restoreGrids() {
	for _, id := range g.gridIDs {
		if err := g.router.AddWalkGrid(id); err != nil {
			g.log.WithError(err).WithField("grid", id).Warn("add walk grid")
		}
	}
	g.status = fmt.Sprintf("walk grids %v", g.grids.Active())
}

func (g *Game) stopHero() {
	if g.walker.Interrupt(heroID) {
		g.next = nil
		g.status = "stopping"
	}
}

func (g *Game) stepHero() {
	if g.current == nil {
		return
	}
	o := g.current

	var st mega.Status
	var err error
	if o.turn {
		st, err = g.walker.Turn(g.hero, g.profile, o.dir)
	} else {
		st, err = g.walker.Walk(g.hero, g.profile, o.x, o.y, o.dir)
	}

	switch {
	case err != nil:
		g.status = err.Error()
		if !errors.Is(err, mega.ErrWalkLost) {
			g.log.WithError(err).Warn("hero walk failed")
		}
	case st == mega.Walking:
		return
	default:
		g.status = st.String()
	}

	g.current, g.next = g.next, nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	snap, err := g.grids.Snapshot()
	if err == nil {
		for _, b := range snap.Bars {
			vector.StrokeLine(screen, float32(b.X1), float32(b.Y1), float32(b.X2), float32(b.Y2), 1, colornames.Crimson, false)
		}
		for _, n := range snap.Nodes {
			vector.FillRect(screen, float32(n.X)-1, float32(n.Y)-1, 3, 3, colornames.Gold, false)
		}
	}

	if buf, ok := g.router.Buffer(heroID); ok {
		for _, f := range buf {
			if f.IsEnd() {
				break
			}
			vector.FillRect(screen, float32(f.X), float32(f.Y), 1, 1, colornames.Lightgrey, false)
		}
	}

	drawMega(screen, g.npc, colornames.Steelblue)
	drawMega(screen, g.hero, colornames.Lime)
	g.ui.Draw(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d  %s\n%d,%d dir %d", g.hero.Frame, g.status, g.hero.FeetX, g.hero.FeetY, g.hero.Dir))
}

func drawMega(screen *ebiten.Image, m *mega.Mega, clr color.Color) {
	x, y := float32(m.FeetX), float32(m.FeetY)
	vector.StrokeRect(screen, x-npcHalfW, y-npcHalfH, 2*npcHalfW, 2*npcHalfH, 1, clr, false)
	if m.Dir >= 0 && m.Dir < len(facing) {
		d := facing[m.Dir]
		vector.StrokeLine(screen, x, y, x+d[0]*12, y+d[1]*12, 1, clr, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
