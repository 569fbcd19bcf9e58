// Package svg renders a star map as a stylized scatter plot. The
// renderer is a stateless sink: each call receives a fully formed point
// set and writes one self-contained document.
package svg

import (
	"fmt"
	"io"
	"math"

	"github.com/astrovis/starfield/internal/domain"
)

// Style holds presentation constants for the scatter plot.
type Style struct {
	Size          int     // canvas edge in pixels
	Margin        int     // plot margin in pixels
	Background    string  // canvas fill
	GridColor     string  // grid stroke
	TextColor     string  // labels and title
	ObserverSize  float64 // observer marker area, same scale as star sizes
	ObserverColor string
	GlowColor     string
	GridLines     int // grid divisions per axis
}

// DefaultStyle mirrors the classic dark nearby-stars plot: black canvas,
// yellow observer with an orange glow, dotted gray grid.
func DefaultStyle() Style {
	return Style{
		Size:          800,
		Margin:        70,
		Background:    "black",
		GridColor:     "gray",
		TextColor:     "white",
		ObserverSize:  200,
		ObserverColor: "yellow",
		GlowColor:     "orange",
		GridLines:     8,
	}
}

// Renderer writes star maps as SVG documents.
type Renderer struct {
	style Style
}

// NewRenderer creates an SVG renderer with the given style.
func NewRenderer(style Style) *Renderer {
	if style.Size <= 0 {
		style = DefaultStyle()
	}
	return &Renderer{style: style}
}

// Render writes the map as a complete SVG document. The axis box spans
// ±AxisBound parsecs, the observer sits at the origin outside the
// sample's color normalization, and the legend is keyed to [DMin, DMax].
func (r *Renderer) Render(w io.Writer, m *domain.StarMap) error {
	st := r.style
	plot := float64(st.Size - 2*st.Margin)
	origin := float64(st.Margin)

	// parsecs -> pixels, observer at the canvas center
	toPx := func(v float64) float64 {
		return origin + (v+m.AxisBound)/(2*m.AxisBound)*plot
	}

	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		st.Size, st.Size, st.Size, st.Size)
	p(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", st.Background)

	r.grid(p, m)

	// Stars first, so the observer marker stays on top at the origin.
	for _, pt := range m.Points {
		p(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="0.8"/>`+"\n",
			toPx(pt.X), toPx(-pt.Y), markerRadius(pt.Size), Diverging(pt.Color))
	}

	// Observer: fixed marker with a soft glow, never part of the sample.
	cx, cy := toPx(0), toPx(0)
	glowR := markerRadius(st.ObserverSize) * 2.4
	p(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="0.3"/>`+"\n",
		cx, cy, glowR, st.GlowColor)
	p(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		cx, cy, markerRadius(st.ObserverSize), st.ObserverColor)

	r.legend(p, m)

	p(`<text x="%d" y="%.2f" fill="%s" font-size="20" text-anchor="middle" font-family="sans-serif">%s</text>`+"\n",
		st.Size/2, origin/2, st.TextColor, m.Title)

	p("</svg>\n")
	return err
}

// grid draws the axis box, grid lines, and parsec tick labels.
func (r *Renderer) grid(p func(string, ...any), m *domain.StarMap) {
	st := r.style
	plot := float64(st.Size - 2*st.Margin)
	origin := float64(st.Margin)

	p(`<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		st.Margin, st.Margin, plot, plot, st.GridColor)

	for i := 1; i < st.GridLines; i++ {
		offset := origin + plot*float64(i)/float64(st.GridLines)
		p(`<line x1="%.2f" y1="%.0f" x2="%.2f" y2="%.0f" stroke="%s" stroke-width="0.5" stroke-dasharray="2,4" opacity="0.5"/>`+"\n",
			offset, origin, offset, origin+plot, st.GridColor)
		p(`<line x1="%.0f" y1="%.2f" x2="%.0f" y2="%.2f" stroke="%s" stroke-width="0.5" stroke-dasharray="2,4" opacity="0.5"/>`+"\n",
			origin, offset, origin+plot, offset, st.GridColor)
	}

	// Tick labels at the box corners and center, in parsecs.
	for _, v := range []float64{-m.AxisBound, 0, m.AxisBound} {
		x := origin + (v+m.AxisBound)/(2*m.AxisBound)*plot
		p(`<text x="%.2f" y="%.2f" fill="%s" font-size="12" text-anchor="middle" font-family="sans-serif">%.1f</text>`+"\n",
			x, origin+plot+20, st.TextColor, v)
		p(`<text x="%.2f" y="%.2f" fill="%s" font-size="12" text-anchor="end" font-family="sans-serif">%.1f</text>`+"\n",
			origin-8, origin+plot-(v+m.AxisBound)/(2*m.AxisBound)*plot+4, st.TextColor, v)
	}
	p(`<text x="%d" y="%.2f" fill="%s" font-size="14" text-anchor="middle" font-family="sans-serif">Distance (parsecs)</text>`+"\n",
		st.Size/2, origin+plot+45, st.TextColor)
}

// legend draws the distance color bar keyed to the sample's [DMin, DMax].
func (r *Renderer) legend(p func(string, ...any), m *domain.StarMap) {
	st := r.style
	origin := float64(st.Margin)
	plot := float64(st.Size - 2*st.Margin)
	x := origin + plot + 16
	barW := 14.0
	steps := 24

	// Top of the bar is the nearest distance (color scalar 1).
	for i := 0; i < steps; i++ {
		t := 1 - float64(i)/float64(steps-1)
		y := origin + plot*float64(i)/float64(steps)
		p(`<rect x="%.2f" y="%.2f" width="%.1f" height="%.2f" fill="%s"/>`+"\n",
			x, y, barW, plot/float64(steps)+1, Diverging(t))
	}
	p(`<text x="%.2f" y="%.2f" fill="%s" font-size="11" font-family="sans-serif">%.1f pc</text>`+"\n",
		x+barW+4, origin+10, st.TextColor, m.DMin)
	p(`<text x="%.2f" y="%.2f" fill="%s" font-size="11" font-family="sans-serif">%.1f pc</text>`+"\n",
		x+barW+4, origin+plot, st.TextColor, m.DMax)
}

// markerRadius converts a marker size (an area, matching scatter-plot
// convention) to a circle radius in pixels.
func markerRadius(size float64) float64 {
	if size < 0 {
		size = 0
	}
	return math.Sqrt(size / math.Pi)
}

// Diverging maps a scalar in [0,1] through a blue-white-red diverging
// colormap, as an SVG hex color. The pipeline hands the scalar over
// pre-inverted, so nearby stars (scalar near 1) come out red and
// distant ones blue.
func Diverging(t float64) string {
	r, g, b := DivergingRGB(t)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// DivergingRGB is the colormap as 8-bit channels, for renderers that
// draw pixels instead of markup. Piecewise-linear through the cool
// half, a neutral midpoint, and the warm half.
func DivergingRGB(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	var r, g, b float64
	if t < 0.5 {
		u := t * 2
		r = lerp(59, 221, u)
		g = lerp(76, 221, u)
		b = lerp(192, 221, u)
	} else {
		u := (t - 0.5) * 2
		r = lerp(221, 180, u)
		g = lerp(221, 4, u)
		b = lerp(221, 38, u)
	}
	return uint8(r + 0.5), uint8(g + 0.5), uint8(b + 0.5)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
