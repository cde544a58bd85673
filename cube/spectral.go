package cube

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-cube/units"
)

var ErrUnsupportedSpectralType = errors.New("cube: unsupported spectral type")

func (c *Cube) restFrequency() float64 {
	rest, _ := c.wcs.RestFrequency()
	return rest
}

// Frequencies returns the frequency of every channel in Hz. The axis is
// computed once; each call returns a fresh copy.
func (c *Cube) Frequencies() (units.Quantity, error) {
	if c.frequencies != nil {
		return c.frequencies.Clone(), nil
	}

	w, err := c.WCS()
	if err != nil {
		return units.Quantity{}, err
	}
	axis, err := c.SpectralAxis()
	if err != nil {
		return units.Quantity{}, err
	}
	specW, err := c.SpectralWCS()
	if err != nil {
		return units.Quantity{}, err
	}
	axisUnits, err := c.AxisUnits()
	if err != nil {
		return units.Quantity{}, err
	}

	spec := w.Spec()
	channels := make([]float64, c.Data().Shape()[axis])
	for i := range channels {
		channels[i] = float64(i)
	}
	world, err := specW.PixelToWorld(0, channels)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("cube: %w", err)
	}
	q := units.NewQuantity(axisUnits[spec], world[0]...)

	var eqs []units.Equivalency
	ctype := w.Axis(spec).CType
	switch {
	case strings.Contains(ctype, "VRAD"):
		eq, err := units.DopplerRadio(c.restFrequency())
		if err != nil {
			return units.Quantity{}, fmt.Errorf("cube: %w", err)
		}
		eqs = append(eqs, eq)
	case strings.Contains(ctype, "VOPT"):
		eq, err := units.DopplerOptical(c.restFrequency())
		if err != nil {
			return units.Quantity{}, fmt.Errorf("cube: %w", err)
		}
		eqs = append(eqs, eq)
	case strings.Contains(ctype, "FREQ"):
	default:
		return units.Quantity{}, fmt.Errorf("%w %q in header", ErrUnsupportedSpectralType, ctype)
	}

	f, err := q.To(units.Hertz, eqs...)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("cube: %w", err)
	}
	c.frequencies = &f
	return f.Clone(), nil
}

func (c *Cube) velocities(doppler func(float64) (units.Equivalency, error)) (units.Quantity, error) {
	f, err := c.Frequencies()
	if err != nil {
		return units.Quantity{}, err
	}
	eq, err := doppler(c.restFrequency())
	if err != nil {
		return units.Quantity{}, fmt.Errorf("cube: %w", err)
	}
	v, err := f.To(units.KilometrePerSecond, eq)
	if err != nil {
		return units.Quantity{}, fmt.Errorf("cube: %w", err)
	}
	return v, nil
}

// RadioVelocities returns the radio velocity of every channel in km/s, as a
// copy of the cached axis.
func (c *Cube) RadioVelocities() (units.Quantity, error) {
	if c.radio == nil {
		v, err := c.velocities(units.DopplerRadio)
		if err != nil {
			return units.Quantity{}, err
		}
		c.radio = &v
	}
	return c.radio.Clone(), nil
}

// OpticalVelocities returns the optical velocity of every channel in km/s, as
// a copy of the cached axis.
func (c *Cube) OpticalVelocities() (units.Quantity, error) {
	if c.optical == nil {
		v, err := c.velocities(units.DopplerOptical)
		if err != nil {
			return units.Quantity{}, err
		}
		c.optical = &v
	}
	return c.optical.Clone(), nil
}

// RadioVelocitiesToChannels returns, for every velocity in q, the first
// channel whose radio velocity is not below it (searching in increasing
// velocity order), clamped to the valid channel range. It also returns the
// radio velocities of those channels. Dimensionless input is taken to be
// in km/s.
func (c *Cube) RadioVelocitiesToChannels(q units.Quantity) ([]int, units.Quantity, error) {
	rv, err := c.RadioVelocities()
	if err != nil {
		return nil, units.Quantity{}, err
	}

	query := q.Values
	if !q.Unit.IsDimensionless() {
		conv, err := q.To(rv.Unit)
		if err != nil {
			return nil, units.Quantity{}, fmt.Errorf("cube: %w", err)
		}
		query = conv.Values
	}

	n := rv.Len()
	if n == 0 {
		return nil, units.Quantity{}, fmt.Errorf("cube: empty spectral axis")
	}
	sorted := rv.Values
	descending := sorted[0] > sorted[n-1]
	if descending {
		sorted = make([]float64, n)
		for i, v := range rv.Values {
			sorted[n-1-i] = v
		}
	}

	channels := make([]int, len(query))
	values := make([]float64, len(query))
	for i, v := range query {
		j := sort.SearchFloat64s(sorted, v)
		if j > n-1 {
			j = n - 1
		}
		if descending {
			j = n - 1 - j
		}
		channels[i] = j
		values[i] = rv.Values[j]
	}
	return channels, units.NewQuantity(rv.Unit, values...), nil
}
