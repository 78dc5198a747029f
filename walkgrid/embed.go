package walkgrid

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed grids/*.yaml
var GridsFS embed.FS

// DiskDir is where on-disk grids that override the embedded ones live,
// relative to the working directory.
var DiskDir = filepath.Join("walkgrid", "grids")

// Load returns the named grid file, preferring a copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanGridPath(name)
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return GridsFS.ReadFile("grids/" + clean)
}

func cleanGridPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "walkgrid/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "grids/"); ok {
		s = after
	}
	if !isGridFile(s) {
		s += ".yaml"
	}
	return s
}

func isGridFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
