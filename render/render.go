// Package render draws quick-look images of moment maps and spectra with
// gonum/plot. The output format follows the file extension (png, svg, pdf).
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cube/fits"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	ErrNotImage = errors.New("render: map must be two-dimensional")
	ErrNoData   = errors.New("render: no finite values to draw")
)

// Size of saved figures.
var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// grid adapts a C-ordered image to plotter.GridXYZ. Row 0 is drawn at the
// bottom, as FITS viewers do.
type grid struct {
	ny, nx int
	z      []float64
	fill   float64
}

func (g grid) Dims() (c, r int) { return g.nx, g.ny }
func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(r) }
func (g grid) Z(c, r int) float64 { return g.value(g.z[r*g.nx+c]) }

func (g grid) value(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return g.fill
	}
	return v
}

// Map saves a heat map of the 2-D array arr to path. Non-finite pixels are
// drawn in the colour of the minimum.
func Map(arr *fits.Array, title, path string) error {
	shape := arr.Shape()
	if len(shape) != 2 {
		return fmt.Errorf("%w: shape %v", ErrNotImage, shape)
	}

	g := grid{ny: shape[0], nx: shape[1], z: arr.Values()}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.z {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return ErrNoData
	}
	g.fill = lo

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (pixel)"
	p.Y.Label.Text = "y (pixel)"

	hm := plotter.NewHeatMap(g, palette.Heat(64, 1))
	hm.Min, hm.Max = lo, hi
	if hi == lo {
		hm.Max = lo + 1
	}
	p.Add(hm)

	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// Spectrum saves a line plot of y against x to path. Points where either
// coordinate is not finite are skipped.
func Spectrum(x, y []float64, xlabel, title, path string) error {
	if len(x) != len(y) {
		return fmt.Errorf("render: %d x values for %d y values", len(x), len(y))
	}

	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if isFinite(x[i]) && isFinite(y[i]) {
			pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	if len(pts) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Intensity"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
