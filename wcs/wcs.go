package wcs

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-cube/fits"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoAxes      = errors.New("wcs: header has no axes")
	ErrNoSuchAxis  = errors.New("wcs: no such axis")
	ErrDimension   = errors.New("wcs: coordinate count does not match axes")
	ErrLength      = errors.New("wcs: coordinate arrays differ in length")
	ErrSingular    = errors.New("wcs: linear transform is singular")
	ErrInvalidKind = errors.New("wcs: invalid axis kind")
)

// WCS is a linear world coordinate system.
type WCS struct {
	axes     []Axis
	m        *mat.Dense
	inv      *mat.Dense
	restFreq float64
	hasRest  bool
	specSys  string
}

// FromHeader builds a WCS from the axis keywords of hdr. The number of axes
// is WCSAXES when present, otherwise NAXIS.
func FromHeader(hdr *fits.Header) (*WCS, error) {
	n, ok := hdr.Int("WCSAXES")
	if !ok {
		n, _ = hdr.Int("NAXIS")
	}
	if n <= 0 {
		return nil, ErrNoAxes
	}

	axes := make([]Axis, n)
	for i := range axes {
		k := i + 1
		a := Axis{Index: i, CDelt: 1}
		a.CType, _ = hdr.String(fits.Nth("CTYPE", k))
		a.CUnit, _ = hdr.String(fits.Nth("CUNIT", k))
		a.CRPix, _ = hdr.Float(fits.Nth("CRPIX", k))
		a.CRVal, _ = hdr.Float(fits.Nth("CRVAL", k))
		if v, ok := hdr.Float(fits.Nth("CDELT", k)); ok {
			a.CDelt = v
		}
		a.N, _ = hdr.Int(fits.Nth("NAXIS", k))
		axes[i] = a
	}

	m := mat.NewDense(n, n, nil)
	useCD := hasCD(hdr, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if useCD {
				v, _ := hdr.Float(fmt.Sprintf("CD%d_%d", i+1, j+1))
				m.Set(i, j, v)
				continue
			}
			pc := 0.0
			if i == j {
				pc = 1
			}
			if v, ok := hdr.Float(fmt.Sprintf("PC%d_%d", i+1, j+1)); ok {
				pc = v
			}
			m.Set(i, j, axes[i].CDelt*pc)
		}
	}

	w := &WCS{axes: axes, m: m}
	if v, ok := hdr.Float("RESTFRQ"); ok {
		w.restFreq, w.hasRest = v, true
	} else if v, ok := hdr.Float("RESTFREQ"); ok {
		w.restFreq, w.hasRest = v, true
	}
	w.specSys, _ = hdr.String("SPECSYS")
	w.invert()
	return w, nil
}

func hasCD(hdr *fits.Header, n int) bool {
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if hdr.Has(fmt.Sprintf("CD%d_%d", i, j)) {
				return true
			}
		}
	}
	return false
}

// invert caches the inverse of the linear part; a singular matrix leaves
// inv nil and WorldToPixel fails.
func (w *WCS) invert() {
	var inv mat.Dense
	if err := inv.Inverse(w.m); err != nil {
		w.inv = nil
		return
	}
	w.inv = &inv
}

// Naxis returns the number of axes.
func (w *WCS) Naxis() int { return len(w.axes) }

// Axis returns axis i (0-based, FITS order).
func (w *WCS) Axis(i int) Axis { return w.axes[i] }

// Axes returns a copy of all axes in FITS order.
func (w *WCS) Axes() []Axis { return append([]Axis(nil), w.axes...) }

// Matrix returns M_ij, the combined CDELT·PC (or CD) element.
func (w *WCS) Matrix(i, j int) float64 { return w.m.At(i, j) }

// RestFrequency returns the rest frequency in Hz and whether it was set.
func (w *WCS) RestFrequency() (float64, bool) { return w.restFreq, w.hasRest }

// SpecSys returns the SPECSYS keyword, or "" when absent.
func (w *WCS) SpecSys() string { return w.specSys }

func (w *WCS) find(kind AxisKind) int {
	for i, a := range w.axes {
		if a.Kind() == kind {
			return i
		}
	}
	return -1
}

// Spec returns the index of the spectral axis, or -1.
func (w *WCS) Spec() int { return w.find(Spectral) }

// Lng returns the index of the longitude axis, or -1.
func (w *WCS) Lng() int { return w.find(Longitude) }

// Lat returns the index of the latitude axis, or -1.
func (w *WCS) Lat() int { return w.find(Latitude) }

// Sub returns a WCS restricted to the first axis of each kind, in the order
// given. Cross terms to dropped axes are discarded.
func (w *WCS) Sub(kinds ...AxisKind) (*WCS, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: none requested", ErrInvalidKind)
	}
	idx := make([]int, len(kinds))
	for k, kind := range kinds {
		i := w.find(kind)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchAxis, kind)
		}
		idx[k] = i
	}

	n := len(idx)
	sub := &WCS{
		axes:     make([]Axis, n),
		m:        mat.NewDense(n, n, nil),
		restFreq: w.restFreq,
		hasRest:  w.hasRest,
		specSys:  w.specSys,
	}
	for r, i := range idx {
		sub.axes[r] = w.axes[i]
		for c, j := range idx {
			sub.m.Set(r, c, w.m.At(i, j))
		}
	}
	sub.invert()
	return sub, nil
}

// Spectral returns the one-axis spectral sub-WCS.
func (w *WCS) Spectral() (*WCS, error) { return w.Sub(Spectral) }

// Celestial returns the two-axis (longitude, latitude) sub-WCS.
func (w *WCS) Celestial() (*WCS, error) { return w.Sub(Longitude, Latitude) }
