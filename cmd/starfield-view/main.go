// Command starfield-view is the interactive counterpart of starmap: a
// desktop window with a distance field that re-runs the pipeline on
// every Enter press. A thin adapter only — all logic lives in the
// starmap usecase, and each trigger runs one pipeline to completion
// before the next is accepted.
package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
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

const (
	screenW = 800
	screenH = 860
	plotTop = 20
	plotPad = 40
)

func main() {
	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

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

	v := &viewer{svc: svc, logger: logger, status: "Enter the maximum distance in light-years and press Enter"}

	ebiten.SetWindowTitle("Nearby Stars")
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil {
		logger.Fatal("viewer exited", zap.Error(err))
	}
}

// viewer holds the text field state and the last rendered map.
type viewer struct {
	svc    *starmapuc.Service
	logger *zap.Logger

	input  string
	status string
	m      *domain.StarMap
}

func (v *viewer) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			v.input += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(v.input) > 0 {
		v.input = v.input[:len(v.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		v.plot()
	}
	return nil
}

// plot runs one full pipeline synchronously. A new result simply
// replaces the previous one; a failed run leaves it in place.
func (v *viewer) plot() {
	d, err := units.Parse(v.input, string(units.LightYear))
	if err != nil {
		v.status = "Invalid distance: enter a positive number of light-years"
		return
	}

	m, err := v.svc.Build(context.Background(), d)
	switch {
	case errors.Is(err, domain.ErrEmptySample):
		v.status = "No nearby stars found within the specified distance."
	case err != nil:
		v.status = "Query failed: " + err.Error()
		v.logger.Warn("interactive query failed", zap.Error(err))
	default:
		v.m = m
		v.status = fmt.Sprintf("%s — %d stars, %.2f..%.2f pc", m.Title, len(m.Points), m.DMin, m.DMax)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if v.m != nil {
		v.drawMap(screen, v.m)
	}

	ebitenutil.DebugPrintAt(screen, v.status, 10, screenH-40)
	ebitenutil.DebugPrintAt(screen, "distance (ly): "+v.input+"_", 10, screenH-20)
}

// drawMap scatters the points with the same geometry as the SVG
// renderer: observer at the center, axis box at ±AxisBound parsecs.
func (v *viewer) drawMap(screen *ebiten.Image, m *domain.StarMap) {
	plot := float32(screenW - 2*plotPad)
	toPx := func(val float64) float32 {
		return plotPad + float32((val+m.AxisBound)/(2*m.AxisBound))*plot
	}

	// Axis box
	gray := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	vector.StrokeRect(screen, plotPad, plotTop+plotPad, plot, plot, 1, gray, false)

	yOff := float32(plotTop)
	for _, p := range m.Points {
		r, g, b := svgrender.DivergingRGB(p.Color)
		vector.DrawFilledCircle(screen,
			toPx(p.X), yOff+toPx(-p.Y), radius(p.Size),
			color.NRGBA{R: r, G: g, B: b, A: 0xCC}, true)
	}

	// Observer marker with glow, drawn last and outside the sample.
	cx, cy := toPx(0), yOff+toPx(0)
	vector.DrawFilledCircle(screen, cx, cy, radius(200)*2.4,
		color.NRGBA{R: 0xFF, G: 0xA5, A: 0x4D}, true)
	vector.DrawFilledCircle(screen, cx, cy, radius(200),
		color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}, true)

	ebitenutil.DebugPrintAt(screen, m.Title, plotPad, 2)
}

// radius converts a marker size (an area) to a pixel radius.
func radius(size float64) float32 {
	if size < 0 {
		size = 0
	}
	return float32(math.Sqrt(size / math.Pi))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
