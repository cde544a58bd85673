package units

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/unit/constant"
)

var ErrRestFrequency = errors.New("units: rest frequency must be positive")

// SpeedOfLight is c in m/s.
var SpeedOfLight = float64(constant.LightSpeedInVacuum)

// Equivalency relates velocity and frequency through a Doppler convention
// at a fixed rest frequency.
type Equivalency struct {
	name        string
	rest        float64
	toFrequency func(v float64) float64
	toVelocity  func(f float64) float64
}

// DopplerRadio returns the radio convention at rest frequency rest (Hz):
// f = f0 (1 - v/c).
func DopplerRadio(rest float64) (Equivalency, error) {
	if !(rest > 0) {
		return Equivalency{}, fmt.Errorf("%w: %v", ErrRestFrequency, rest)
	}
	c := SpeedOfLight
	return Equivalency{
		name: "doppler_radio",
		rest: rest,
		toFrequency: func(v float64) float64 {
			return rest * (1 - v/c)
		},
		toVelocity: func(f float64) float64 {
			return c * (rest - f) / rest
		},
	}, nil
}

// DopplerOptical returns the optical convention at rest frequency rest (Hz):
// f = f0 / (1 + v/c).
func DopplerOptical(rest float64) (Equivalency, error) {
	if !(rest > 0) {
		return Equivalency{}, fmt.Errorf("%w: %v", ErrRestFrequency, rest)
	}
	c := SpeedOfLight
	return Equivalency{
		name: "doppler_optical",
		rest: rest,
		toFrequency: func(v float64) float64 {
			return rest / (1 + v/c)
		},
		toVelocity: func(f float64) float64 {
			return c * (rest - f) / f
		},
	}, nil
}

// Name returns the convention name.
func (e Equivalency) Name() string { return e.name }

// RestFrequency returns the rest frequency in Hz.
func (e Equivalency) RestFrequency() float64 { return e.rest }

func (e Equivalency) convert(q Quantity, target Unit) (Quantity, bool) {
	var fn func(float64) float64
	switch {
	case e.toFrequency == nil:
		return Quantity{}, false
	case q.Unit.IsVelocity() && target.IsFrequency():
		fn = e.toFrequency
	case q.Unit.IsFrequency() && target.IsVelocity():
		fn = e.toVelocity
	default:
		return Quantity{}, false
	}

	out := make([]float64, len(q.Values))
	for i, v := range q.Values {
		out[i] = fn(v*q.Unit.scale) / target.scale
	}
	return Quantity{Values: out, Unit: target}, true
}
