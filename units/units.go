package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/unit"
)

var (
	ErrUnknownUnit  = errors.New("units: unknown unit")
	ErrIncompatible = errors.New("units: incompatible units")
)

// Unit is a named physical unit: one Unit equals Scale() in SI base units of
// the given dimensions.
type Unit struct {
	name  string
	scale float64
	dims  unit.Dimensions
}

var (
	frequencyDims = unit.Dimensions{unit.TimeDim: -1}
	velocityDims  = unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -1}
	lengthDims    = unit.Dimensions{unit.LengthDim: 1}
	timeDims      = unit.Dimensions{unit.TimeDim: 1}
	angleDims     = unit.Dimensions{unit.AngleDim: 1}
	tempDims      = unit.Dimensions{unit.TemperatureDim: 1}
)

// Common units.
var (
	Dimensionless      = Unit{name: "", scale: 1}
	Hertz              = Unit{name: "Hz", scale: 1, dims: frequencyDims}
	MetrePerSecond     = Unit{name: "m/s", scale: 1, dims: velocityDims}
	KilometrePerSecond = Unit{name: "km/s", scale: 1e3, dims: velocityDims}
	Degree             = Unit{name: "deg", scale: math.Pi / 180, dims: angleDims}
)

// known maps accepted spellings to units. Prefixes are spelled out rather
// than parsed so that "mHz" and "MHz" cannot be confused.
var known = map[string]Unit{
	"":  Dimensionless,
	"1": Dimensionless,

	"Hz":  Hertz,
	"kHz": {name: "kHz", scale: 1e3, dims: frequencyDims},
	"MHz": {name: "MHz", scale: 1e6, dims: frequencyDims},
	"GHz": {name: "GHz", scale: 1e9, dims: frequencyDims},
	"THz": {name: "THz", scale: 1e12, dims: frequencyDims},

	"m/s":  MetrePerSecond,
	"km/s": KilometrePerSecond,
	"cm/s": {name: "cm/s", scale: 1e-2, dims: velocityDims},

	"m":        {name: "m", scale: 1, dims: lengthDims},
	"km":       {name: "km", scale: 1e3, dims: lengthDims},
	"cm":       {name: "cm", scale: 1e-2, dims: lengthDims},
	"mm":       {name: "mm", scale: 1e-3, dims: lengthDims},
	"um":       {name: "um", scale: 1e-6, dims: lengthDims},
	"nm":       {name: "nm", scale: 1e-9, dims: lengthDims},
	"Angstrom": {name: "Angstrom", scale: 1e-10, dims: lengthDims},

	"s": {name: "s", scale: 1, dims: timeDims},

	"deg":    Degree,
	"rad":    {name: "rad", scale: 1, dims: angleDims},
	"arcmin": {name: "arcmin", scale: math.Pi / (180 * 60), dims: angleDims},
	"arcsec": {name: "arcsec", scale: math.Pi / (180 * 3600), dims: angleDims},

	"K": {name: "K", scale: 1, dims: tempDims},
}

// velocityAliases normalizes the FITS spellings of "per second".
var velocityAliases = strings.NewReplacer(
	" s-1", "/s",
	".s-1", "/s",
	" s^-1", "/s",
	".s^-1", "/s",
	" s**-1", "/s",
	".s**-1", "/s",
	" s**(-1)", "/s",
)

// Parse parses a CUNIT-style unit string.
func Parse(s string) (Unit, error) {
	key := velocityAliases.Replace(strings.TrimSpace(s))
	switch strings.ToLower(key) {
	case "degree", "degrees":
		key = "deg"
	case "hz":
		key = "Hz"
	case "angstrom":
		key = "Angstrom"
	}
	if u, ok := known[key]; ok {
		return u, nil
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the canonical spelling.
func (u Unit) String() string { return u.name }

// Scale returns the value of one u in SI base units.
func (u Unit) Scale() float64 { return u.scale }

// Dimensions returns a copy of the gonum dimensions of u.
func (u Unit) Dimensions() unit.Dimensions {
	d := make(unit.Dimensions, len(u.dims))
	for k, v := range u.dims {
		d[k] = v
	}
	return d
}

// SI returns one u as a gonum unit value.
func (u Unit) SI() *unit.Unit { return unit.New(u.scale, u.dims) }

// IsDimensionless reports whether u carries no dimensions.
func (u Unit) IsDimensionless() bool { return len(u.dims) == 0 }

// Compatible reports whether u and o differ only by scale.
func (u Unit) Compatible(o Unit) bool {
	return unit.DimensionsMatch(u.SI(), o.SI())
}

// IsFrequency reports whether u measures frequency.
func (u Unit) IsFrequency() bool { return u.Compatible(Hertz) }

// IsVelocity reports whether u measures velocity.
func (u Unit) IsVelocity() bool { return u.Compatible(MetrePerSecond) }

// Equal reports whether u and o are the same unit.
func (u Unit) Equal(o Unit) bool {
	return u.scale == o.scale && u.Compatible(o)
}
