package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/router"
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/milk9111/walkrouter/walkgrid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type frameDump struct {
	Result string         `yaml:"result"`
	Frames []router.Frame `yaml:"frames"`
}

func main() {
	grids := flag.String("grids", "1", "comma-separated walk grid ids to activate")
	megaset := flag.String("megaset", "george", "megaset walk profile name")
	configPath := flag.String("config", "", "router config YAML (defaults when empty)")
	from := flag.String("from", "60,170,2", "start feet x,y,dir")
	to := flag.String("to", "280,120", "target x,y[,dir]; dir defaults to any")
	dump := flag.Bool("yaml", false, "write the frame buffer to stdout as YAML")
	flag.Parse()

	logger.Init()
	log := logger.For("walkroute")

	if err := run(log, *grids, *megaset, *configPath, *from, *to, *dump); err != nil {
		log.WithError(err).Error("walkroute failed")
		os.Exit(1)
	}
}

func run(log *logrus.Entry, grids, megaset, configPath, from, to string, dump bool) error {
	cfg := router.DefaultConfig()
	if configPath != "" {
		c, err := router.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	start, err := parseInts(from, 3, 3)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	target, err := parseInts(to, 2, 3)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	if len(target) == 2 {
		target = append(target, router.DirAny)
	}

	profile, err := walkdata.LoadProfile(megaset)
	if err != nil {
		return err
	}

	lib := walkgrid.NewLibrary()
	if err := lib.LoadAll(); err != nil {
		return err
	}
	r := router.New(cfg, walkgrid.NewRegistry(lib, cfg.GridLimits()))
	ids, err := parseInts(grids, 0, cfg.MaxGrids)
	if err != nil {
		return fmt.Errorf("-grids: %w", err)
	}
	for _, id := range ids {
		if _, err := lib.Grid(id); err != nil {
			return err
		}
		if err := r.AddWalkGrid(id); err != nil {
			return err
		}
	}

	actor := router.Actor{ID: 1, FeetX: start[0], FeetY: start[1], Dir: start[2], ScaleB: 1 << 16}
	res, err := r.FindRoute(actor, profile, target[0], target[1], target[2])
	if err != nil {
		return err
	}

	buf, _ := r.Buffer(actor.ID)
	log.WithFields(logrus.Fields{
		"result": res.String(),
		"frames": len(buf),
		"grids":  ids,
	}).Info("route computed")

	if dump {
		return yaml.NewEncoder(os.Stdout).Encode(frameDump{Result: res.String(), Frames: buf})
	}
	for i, f := range buf {
		if f.IsEnd() {
			break
		}
		log.WithFields(logrus.Fields{
			"pc":    i,
			"frame": f.Index,
			"step":  f.Step,
			"dir":   f.Dir,
			"x":     f.X,
			"y":     f.Y,
		}).Debug("frame")
	}
	return nil
}

// parseInts reads a comma-separated list of between lo and hi integers.
func parseInts(s string, lo, hi int) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) < lo || len(out) > hi {
		return nil, fmt.Errorf("expected %d to %d values, got %d", lo, hi, len(out))
	}
	return out, nil
}
