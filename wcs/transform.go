package wcs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

func (w *WCS) checkCoords(coords [][]float64) (int, error) {
	if len(coords) != len(w.axes) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(coords), len(w.axes))
	}
	n := len(coords[0])
	for _, c := range coords[1:] {
		if len(c) != n {
			return 0, ErrLength
		}
	}
	return n, nil
}

// PixelToWorld converts pixel coordinates, one slice per axis in FITS order,
// to world coordinates in the header units. origin is 0 for 0-based pixel
// indices and 1 for FITS 1-based pixel numbers.
func (w *WCS) PixelToWorld(origin int, pix ...[]float64) ([][]float64, error) {
	n, err := w.checkCoords(pix)
	if err != nil {
		return nil, err
	}

	naxis := len(w.axes)
	out := make([][]float64, naxis)
	for i := range out {
		out[i] = make([]float64, n)
	}

	d := mat.NewVecDense(naxis, nil)
	var world mat.VecDense
	for k := 0; k < n; k++ {
		for j, a := range w.axes {
			d.SetVec(j, pix[j][k]+float64(1-origin)-a.CRPix)
		}
		world.MulVec(w.m, d)
		for i, a := range w.axes {
			out[i][k] = a.CRVal + world.AtVec(i)
		}
	}
	return out, nil
}

// WorldToPixel is the inverse of PixelToWorld.
func (w *WCS) WorldToPixel(origin int, world ...[]float64) ([][]float64, error) {
	if w.inv == nil {
		return nil, ErrSingular
	}
	n, err := w.checkCoords(world)
	if err != nil {
		return nil, err
	}

	naxis := len(w.axes)
	out := make([][]float64, naxis)
	for i := range out {
		out[i] = make([]float64, n)
	}

	d := mat.NewVecDense(naxis, nil)
	var pix mat.VecDense
	for k := 0; k < n; k++ {
		for i, a := range w.axes {
			d.SetVec(i, world[i][k]-a.CRVal)
		}
		pix.MulVec(w.inv, d)
		for j, a := range w.axes {
			out[j][k] = pix.AtVec(j) + a.CRPix - float64(1-origin)
		}
	}
	return out, nil
}
