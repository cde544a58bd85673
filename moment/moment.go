package moment

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/units"
	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrUnsupportedKind = errors.New("moment: unsupported kind")
	ErrMaskShape       = errors.New("moment: mask shape matches neither a plane nor the cube")
)

// Kind selects the moment order.
type Kind int

const (
	Zeroth Kind = 0
	First  Kind = 1
)

func (k Kind) String() string {
	switch k {
	case Zeroth:
		return "zeroth"
	case First:
		return "first"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source is the cube view an Integrator needs.
type Source interface {
	Data() *fits.Array
	SpectralAxis() (int, error)
	RadioVelocities() (units.Quantity, error)
	RadioVelocitiesToChannels(q units.Quantity) ([]int, units.Quantity, error)
}

// Integrator computes moment maps of a Source.
type Integrator struct {
	src Source
}

// New returns an Integrator over src.
func New(src Source) *Integrator {
	return &Integrator{src: src}
}

// layout describes the data as (outer, channel, inner) blocks around the
// spectral axis.
type layout struct {
	outer, nchan, inner int
	plane               []int
}

func newLayout(shape []int, axis int) layout {
	l := layout{outer: 1, inner: 1, nchan: shape[axis]}
	for i, n := range shape {
		switch {
		case i < axis:
			l.outer *= n
		case i > axis:
			l.inner *= n
		}
		if i != axis {
			l.plane = append(l.plane, n)
		}
	}
	return l
}

// Compute returns the moment map of kind over r. mask may be nil, shaped
// like one spatial plane, or shaped like the whole cube.
func (m *Integrator) Compute(r Range, kind Kind, mask *fits.Array) (*fits.Array, error) {
	if kind != Zeroth && kind != First {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(kind))
	}

	data := m.src.Data()
	axis, err := m.src.SpectralAxis()
	if err != nil {
		return nil, err
	}
	shape := data.Shape()
	l := newLayout(shape, axis)

	planeMask, err := checkMask(mask, shape, l.plane)
	if err != nil {
		return nil, err
	}

	lo, hi, err := r.bounds(m.src, l.nchan)
	if err != nil {
		return nil, err
	}

	var vel []float64
	if kind == First {
		v, err := m.src.RadioVelocities()
		if err != nil {
			return nil, err
		}
		vel = v.Values
	}

	sum0 := make([]float64, l.outer*l.inner)
	var sum1 []float64
	if kind == First {
		sum1 = make([]float64, len(sum0))
	}

	row := make([]float64, l.inner)
	wts := make([]float64, l.inner)
	prod := make([]float64, l.inner)
	for o := 0; o < l.outer; o++ {
		acc0 := sum0[o*l.inner : (o+1)*l.inner]
		for ch := lo; ch < hi; ch++ {
			off := (o*l.nchan + ch) * l.inner
			data.CopyTo(row, off)
			switch {
			case mask == nil:
				copy(prod, row)
			case planeMask:
				mask.CopyTo(wts, o*l.inner)
				vecmath.MulBlock(prod, row, wts)
			default:
				mask.CopyTo(wts, off)
				vecmath.MulBlock(prod, row, wts)
			}
			nanToZero(prod)
			vecmath.AddBlockInPlace(acc0, prod)

			if kind == First {
				vecmath.ScaleBlock(prod, prod, vel[ch])
				vecmath.AddBlockInPlace(sum1[o*l.inner:(o+1)*l.inner], prod)
			}
		}
	}

	out := sum0
	if kind == First {
		for i := range sum1 {
			sum1[i] /= sum0[i]
		}
		out = sum1
	}
	return fits.NewFloat64(l.plane, out)
}

// Zeroth is shorthand for Compute(r, Zeroth, mask).
func (m *Integrator) Zeroth(r Range, mask *fits.Array) (*fits.Array, error) {
	return m.Compute(r, Zeroth, mask)
}

// First is shorthand for Compute(r, First, mask).
func (m *Integrator) First(r Range, mask *fits.Array) (*fits.Array, error) {
	return m.Compute(r, First, mask)
}

// checkMask reports whether mask is plane shaped.
func checkMask(mask *fits.Array, cube, plane []int) (bool, error) {
	if mask == nil {
		return false, nil
	}
	switch shape := mask.Shape(); {
	case fits.EqualShape(shape, plane):
		return true, nil
	case fits.EqualShape(shape, cube):
		return false, nil
	default:
		return false, fmt.Errorf("%w: mask %v, cube %v", ErrMaskShape, shape, cube)
	}
}

func nanToZero(x []float64) {
	for i, v := range x {
		if math.IsNaN(v) {
			x[i] = 0
		}
	}
}
