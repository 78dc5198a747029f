package walkgrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewBar(t *testing.T) {
	b := NewBar(10, 40, 30, 20)
	if b.XMin != 10 || b.XMax != 30 || b.YMin != 20 || b.YMax != 40 {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if b.DX != 20 || b.DY != -20 {
		t.Fatalf("unexpected deltas %+v", b)
	}
	// every point on the line satisfies y*DX == x*DY + Co
	for _, p := range []Point{{X: 10, Y: 40}, {X: 20, Y: 30}, {X: 30, Y: 20}} {
		if p.Y*b.DX != p.X*b.DY+b.Co {
			t.Fatalf("point %v not on bar line", p)
		}
	}
	if !b.Overlaps(0, 0, 15, 25) {
		t.Fatalf("expected bbox overlap")
	}
	if b.Overlaps(31, 0, 50, 50) {
		t.Fatalf("expected no bbox overlap")
	}
}

func TestParseGrid(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr error
		bars    int
		nodes   int
	}{
		{
			name:  "ok",
			data:  "id: 4\nname: hall\nbars:\n  - {x1: 0, y1: 0, x2: 10, y2: 0}\nnodes:\n  - {x: 5, y: 5}\n",
			bars:  1,
			nodes: 1,
		},
		{
			name:    "missing_id",
			data:    "name: hall\nbars: []\n",
			wantErr: ErrBadGridID,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := ParseGrid([]byte(c.data))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(g.BarList()) != c.bars || len(g.Nodes) != c.nodes {
				t.Fatalf("expected %d bars %d nodes, got %d %d", c.bars, c.nodes, len(g.BarList()), len(g.Nodes))
			}
		})
	}
}

func TestLibraryLoadAllEmbedded(t *testing.T) {
	lib := NewLibrary()
	if err := lib.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}
	g, err := lib.Grid(1)
	if err != nil {
		t.Fatalf("grid 1: %v", err)
	}
	if g.Name != "lobby" || len(g.BarList()) != 4 {
		t.Fatalf("unexpected lobby grid %+v", g)
	}
	if _, err := lib.Grid(2); err != nil {
		t.Fatalf("grid 2: %v", err)
	}
	if _, err := lib.Grid(99); !errors.Is(err, ErrUnknownGrid) {
		t.Fatalf("expected ErrUnknownGrid, got %v", err)
	}
}

func TestLibraryReloadReplacesID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.yaml")
	if err := os.WriteFile(path, []byte("id: 7\nname: room\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib := NewLibrary()
	if id, err := lib.Reload(path); err != nil || id != 7 {
		t.Fatalf("reload: id %d err %v", id, err)
	}
	if err := os.WriteFile(path, []byte("id: 8\nname: room\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if id, err := lib.Reload(path); err != nil || id != 8 {
		t.Fatalf("reload: id %d err %v", id, err)
	}
	if ids := lib.IDs(); len(ids) != 1 || ids[0] != 8 {
		t.Fatalf("expected only grid 8, got %v", ids)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "edit.yaml")
	if err := os.WriteFile(path, []byte("id: 5\nname: edit\nbars:\n  - {x1: 0, y1: 0, x2: 4, y2: 0}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ids, _ := w.Apply(lib)
		if len(ids) > 0 {
			if _, err := lib.Grid(5); err != nil {
				t.Fatalf("grid 5 not loaded: %v", err)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("no change reported for %s", path)
}

func TestPendingGridsSettle(t *testing.T) {
	p := newPendingGrids(150 * time.Millisecond)
	t0 := time.Unix(0, 0)

	p.note("grids/b.yaml", t0)
	p.note("grids/a.yml", t0)
	p.note("grids/notes.txt", t0)
	// a second write restarts the wait for b
	p.note("grids/b.yaml", t0.Add(100*time.Millisecond))

	if got := p.settled(t0.Add(100 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("expected nothing settled yet, got %v", got)
	}
	if got := p.settled(t0.Add(150 * time.Millisecond)); len(got) != 1 || got[0] != "grids/a.yml" {
		t.Fatalf("expected only a.yml settled, got %v", got)
	}
	if got := p.settled(t0.Add(250 * time.Millisecond)); len(got) != 1 || got[0] != "grids/b.yaml" {
		t.Fatalf("expected b.yaml settled after its last write, got %v", got)
	}
	if got := p.settled(t0.Add(time.Second)); len(got) != 0 {
		t.Fatalf("settled files should be reported once, got %v", got)
	}
}

func TestCleanGridPath(t *testing.T) {
	cases := map[string]string{
		"lobby":                    "lobby.yaml",
		"lobby.yaml":               "lobby.yaml",
		"grids/lobby.yaml":         "lobby.yaml",
		"walkgrid/grids/lobby.yml": "lobby.yml",
	}
	for in, want := range cases {
		if got := cleanGridPath(in); got != want {
			t.Fatalf("cleanGridPath(%q) = %q, want %q", in, got, want)
		}
	}
}
