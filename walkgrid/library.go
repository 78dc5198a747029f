package walkgrid

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Source resolves grid ids to grid resources.
type Source interface {
	Grid(id int) (*Grid, error)
}

// Library caches parsed grids by id. It is safe for concurrent use so a
// Watcher goroutine can feed reloads while the router reads.
type Library struct {
	mu   sync.RWMutex
	byID map[int]*Grid
	// file name -> id, so a reload of an edited file replaces the old entry
	files map[string]int
}

func NewLibrary() *Library {
	return &Library{
		byID:  map[int]*Grid{},
		files: map[string]int{},
	}
}

// LoadAll parses every embedded grid plus any extra grid files found in
// DiskDir.
func (l *Library) LoadAll() error {
	names, err := fs.Glob(GridsFS, "grids/*.yaml")
	if err != nil {
		return fmt.Errorf("walkgrid: list embedded grids: %w", err)
	}
	seen := map[string]bool{}
	for _, n := range names {
		name := filepath.Base(n)
		seen[name] = true
		data, err := Load(name)
		if err != nil {
			return fmt.Errorf("walkgrid: load %s: %w", name, err)
		}
		if err := l.add(name, data); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(DiskDir)
	if err != nil {
		// no disk overrides is the normal case for an installed binary
		return nil
	}
	for _, e := range entries {
		if e.IsDir() || !isGridFile(e.Name()) || seen[e.Name()] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(DiskDir, e.Name()))
		if err != nil {
			return fmt.Errorf("walkgrid: read %s: %w", e.Name(), err)
		}
		if err := l.add(e.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads one grid file from disk and replaces its cached copy.
func (l *Library) Reload(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("walkgrid: reload %s: %w", path, err)
	}
	name := filepath.Base(path)
	if err := l.add(name, data); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.files[name], nil
}

func (l *Library) add(name string, data []byte) error {
	g, err := ParseGrid(data)
	if err != nil {
		return fmt.Errorf("walkgrid: %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if old, ok := l.files[name]; ok && old != g.ID {
		delete(l.byID, old)
	}
	l.files[name] = g.ID
	l.byID[g.ID] = g
	return nil
}

// Put stores a grid built in code.
func (l *Library) Put(g *Grid) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID[g.ID] = g
}

// Grid implements Source.
func (l *Library) Grid(id int) (*Grid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("walkgrid: grid %d: %w", id, ErrUnknownGrid)
	}
	return g, nil
}

// IDs lists the cached grid ids in ascending order.
func (l *Library) IDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]int, 0, len(l.byID))
	for id := range l.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
