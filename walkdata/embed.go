package walkdata

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed megasets/*.yaml
var MegasetsFS embed.FS

// DiskDir is checked before the embedded megasets so profiles can be tuned
// without a rebuild.
var DiskDir = filepath.Join("walkdata", "megasets")

// LoadProfile loads and prepares the named megaset profile.
func LoadProfile(name string) (*Profile, error) {
	clean := cleanMegasetPath(name)
	data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean)))
	if err != nil {
		data, err = MegasetsFS.ReadFile("megasets/" + clean)
		if err != nil {
			return nil, fmt.Errorf("walkdata: load %s: %w", name, err)
		}
	}
	return ParseProfile(data)
}

func cleanMegasetPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "walkdata/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "megasets/"); ok {
		s = after
	}
	ext := strings.ToLower(filepath.Ext(s))
	if ext != ".yaml" && ext != ".yml" {
		s += ".yaml"
	}
	return s
}
