package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/router"
	"github.com/milk9111/walkrouter/walkgrid"
)

func main() {
	grids := flag.String("grids", "1,2", "comma-separated walk grid ids to activate")
	megaset := flag.String("megaset", "george", "megaset walk profile name in walkdata/megasets/")
	configPath := flag.String("config", "", "router config YAML (defaults when empty)")
	watch := flag.Bool("watch", false, "reload edited walk grid files from disk")
	scriptName := flag.String("script", "patrol", "script driving the second mega (empty for none)")
	flag.Parse()

	logger.Init()
	log := logger.For("sandbox")

	cfg := router.DefaultConfig()
	if *configPath != "" {
		c, err := router.LoadConfig(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = c
	}

	ids, err := parseIDs(*grids)
	if err != nil {
		log.WithError(err).Fatal("parse -grids")
	}

	lib := walkgrid.NewLibrary()
	if err := lib.LoadAll(); err != nil {
		log.WithError(err).Fatal("load walk grids")
	}

	var watcher *walkgrid.Watcher
	if *watch {
		watcher, err = walkgrid.NewWatcher(walkgrid.DiskDir)
		if err != nil {
			log.WithError(err).Warn("grid watcher disabled")
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(lib, cfg, ids, *megaset, *scriptName, watcher)
	if err != nil {
		log.WithError(err).Fatal("start sandbox")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("walkrouter sandbox")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("run")
	}
}

func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
