package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/cavegen/internal/config"
	"github.com/OCharnyshevich/cavegen/internal/export"
	"github.com/OCharnyshevich/cavegen/internal/scene"
	"github.com/OCharnyshevich/cavegen/internal/storage"
	"github.com/OCharnyshevich/cavegen/pkg/cave"
)

func main() {
	cfg := config.DefaultConfig()
	p := &cfg.Cave

	var (
		src     = flag.String("config", "", "config file path or go-getter URL (.json, .toml, .yaml)")
		watch   = flag.Bool("watch", false, "regenerate whenever the config file changes")
		verbose = flag.Bool("v", false, "debug logging")
		dryRun  = flag.Bool("dry-run", false, "build into an in-memory scene and write nothing")
	)
	flag.Int64Var(&p.Seed, "seed", p.Seed, "noise seed, -1 picks one at random")
	flag.IntVar(&p.PointsPerRing, "points", p.PointsPerRing, "vertices per ring")
	flag.Float64Var(&p.CaveLength, "length", p.CaveLength, "total path length")
	flag.Float64Var(&p.SegmentLength, "segment", p.SegmentLength, "distance between ring centers")
	flag.Float64Var(&p.BaseRadius, "radius", p.BaseRadius, "nominal tunnel radius")
	flag.Float64Var(&p.BlockThreshold, "threshold", p.BlockThreshold, "noise cutoff for block protrusions")
	flag.Float64Var(&p.BlockStrength, "strength", p.BlockStrength, "block protrusion scale")
	flag.Float64Var(&p.Jitter3D, "jitter", p.Jitter3D, "per-axis vertex jitter scale")
	flag.BoolVar(&p.Smooth, "smooth", p.Smooth, "smooth shading instead of flat faces")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: simplex or perlin")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "mesh format: obj or stl")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	load := func() (*config.Config, error) {
		if *src == "" {
			return cfg, nil
		}
		fromFile := config.DefaultConfig()
		if err := config.Load(ctx, *src, fromFile); err != nil {
			return nil, err
		}
		merged := *cfg
		config.Merge(&merged, fromFile, explicit)
		return &merged, nil
	}

	// A dry run keeps one scene for the whole process, so each watch
	// regeneration replaces the previous cave in it.
	var sc *scene.Scene
	if *dryRun {
		sc = scene.New()
	}

	if err := generate(load, sc, log); err != nil {
		log.Error("generate cave", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}
	if *src == "" || config.IsRemote(*src) {
		log.Error("-watch needs a local -config file")
		os.Exit(1)
	}
	if err := watchConfig(ctx, *src, log, func() error { return generate(load, sc, log) }); err != nil {
		log.Error("watch config", "error", err)
		os.Exit(1)
	}
}

// generate loads the config and builds one cave, into sc when it is set and
// into the configured output directory otherwise.
func generate(load func() (*config.Config, error), sc *scene.Scene, log *slog.Logger) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	noise, err := cave.NewNoise(cfg.Noise)
	if err != nil {
		return err
	}
	g, err := cave.New(cfg.Cave, cave.WithNoise(noise), cave.WithLogger(log))
	if err != nil {
		return err
	}
	if sc != nil {
		_, m, err := g.Build(sc)
		if err != nil {
			return err
		}
		active := sc.Active()
		objects, meshes := sc.Len()
		log.Info("scene updated", "active", active.Name, "id", active.ID, "objects", objects, "meshes", meshes)
		fmt.Printf("cave %s built, seed %d (%d faces), dry run\n", m.Object, m.Seed, len(m.Faces))
		return nil
	}

	store, err := storage.New(cfg.OutDir, format, log)
	if err != nil {
		return err
	}

	h, m, err := g.Build(store)
	if err != nil {
		return err
	}
	fmt.Printf("cave %s generated, seed %d (%d faces) -> %s\n", m.Object, m.Seed, len(m.Faces), h.Location)
	return nil
}
