// Package plot draws detector shots.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/canbuoy/thor/logging"
)

// Shot is the part of a detector shot the polar plot needs.
type Shot interface {
	// PolarGrid returns one (q, phi) pair per pixel: the radius in column
	// 0 and the angle in radians in column 1.
	PolarGrid() [][2]float64
	// PolarIntensities returns one intensity per PolarGrid row.
	PolarIntensities() []float64
}

var ErrShapeMismatch = errors.New("plot: grid and intensities differ in length")

const (
	size   = 6 * vg.Inch
	radius = 1.5

	// 0.75 opacity
	alpha uint8 = 191
)

// PolarIntensities saves a scatter of the shot's polar grid coloured by
// intensity to output; the image format follows the file extension. With
// an empty output the image goes to a PNG in the temp directory. The path
// written is logged.
func PolarIntensities(shot Shot, output string) error {
	if output == "" {
		f, err := os.CreateTemp("", "polar-intensities-*.png")
		if err != nil {
			return fmt.Errorf("plot: create temp file: %w", err)
		}
		output = f.Name()
		_ = f.Close()
	}

	p, err := newPolarPlot(shot)
	if err != nil {
		return err
	}
	if err := p.Save(size, size, output); err != nil {
		return fmt.Errorf("plot: save %s: %w", output, err)
	}

	logging.Named("plot").Info("saved polar intensities", "file", output)
	return nil
}

// WritePolarIntensities renders the plot in format ("png", "svg", "pdf",
// ...) to w.
func WritePolarIntensities(w io.Writer, shot Shot, format string) error {
	p, err := newPolarPlot(shot)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return fmt.Errorf("plot: %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot: write %s: %w", format, err)
	}
	return nil
}

func newPolarPlot(shot Shot) (*plot.Plot, error) {
	grid := shot.PolarGrid()
	intensities := shot.PolarIntensities()
	if len(grid) != len(intensities) {
		return nil, fmt.Errorf("%w: %d points, %d intensities", ErrShapeMismatch, len(grid), len(intensities))
	}

	pts := make(plotter.XYs, len(grid))
	for i, g := range grid {
		q, phi := g[0], g[1]
		pts[i].X = q * math.Cos(phi)
		pts[i].Y = q * math.Sin(phi)
	}

	p := plot.New()
	p.Title.Text = "polar intensities"
	p.X.Label.Text = "q cos(phi)"
	p.Y.Label.Text = "q sin(phi)"
	p.Add(plotter.NewGrid())

	if len(pts) == 0 {
		return p, nil
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("plot: scatter: %w", err)
	}
	colors := intensityColors(intensities)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  colors[i],
			Radius: vg.Points(radius),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)

	return p, nil
}

// intensityColors maps intensities linearly onto a full-circle hue wheel.
// The range is taken over finite values; +Inf takes the top colour, -Inf
// and NaN the bottom one.
func intensityColors(intensities []float64) []color.Color {
	wheel := palette.Rainbow(256, palette.Red, palette.Magenta, 1, 1, 1).Colors()
	top := float64(len(wheel) - 1)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range intensities {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]color.Color, len(intensities))
	for i, v := range intensities {
		pos := 0.0
		switch {
		case math.IsNaN(v):
		case hi > lo:
			pos = math.Max(0, math.Min(top, (v-lo)/(hi-lo)*top))
		case math.IsInf(v, 1):
			pos = top
		}
		r, g, b, _ := wheel[int(pos)].RGBA()
		out[i] = color.NRGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: alpha,
		}
	}
	return out
}
