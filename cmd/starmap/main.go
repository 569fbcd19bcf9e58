// Command starmap runs the pipeline once and writes the star map to an
// SVG file: the batch counterpart of the starfield server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/astrovis/starfield/internal/config"
	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/units"
	"github.com/astrovis/starfield/internal/domain/visual"
	logpkg "github.com/astrovis/starfield/internal/logger"
	"github.com/astrovis/starfield/internal/metrics"
	svgrender "github.com/astrovis/starfield/internal/render/svg"
	"github.com/astrovis/starfield/internal/transport/gaia"
	starmapuc "github.com/astrovis/starfield/internal/usecase/starmap"
)

func main() {
	distance := flag.String("distance", "", "maximum distance (required, e.g. 12.5)")
	unit := flag.String("unit", "ly", "distance unit: pc, kpc, ly, au, km, mi, m")
	output := flag.String("o", "starmap.svg", "output SVG path")
	flag.Parse()

	if err := run(*distance, *unit, *output); err != nil {
		fmt.Fprintln(os.Stderr, "starmap:", err)
		os.Exit(1)
	}
}

func run(distance, unit, output string) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Input is rejected here, before any query descriptor exists.
	d, err := units.Parse(distance, unit)
	if err != nil {
		return err
	}

	metrics.RegisterCatalogMetrics()

	catalog := gaia.NewClient(&gaia.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: time.Duration(cfg.Catalog.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	svc := starmapuc.New(catalog).
		WithSizeScale(visual.SizeScale{MinSize: cfg.Render.MinSize, MaxSize: cfg.Render.MaxSize}).
		WithTable(cfg.Catalog.Table).
		WithRowLimit(cfg.Catalog.RowLimit)

	m, err := svc.Build(context.Background(), d)
	if errors.Is(err, domain.ErrEmptySample) {
		// Valid terminal state: report it and write nothing.
		fmt.Println("No nearby stars found within the specified distance.")
		return nil
	}
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := svgrender.NewRenderer(svgrender.DefaultStyle()).Render(f, m); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	logger.Info("star map written",
		zap.String("path", output),
		zap.Int("stars", len(m.Points)),
		zap.Float64("dmin_pc", m.DMin),
		zap.Float64("dmax_pc", m.DMax),
	)
	return nil
}
