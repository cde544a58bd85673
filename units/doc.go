// Package units parses the physical units found in FITS CUNITn keywords and
// converts spectral coordinates between frequency and velocity.
//
// Dimension bookkeeping is delegated to gonum.org/v1/gonum/unit: a [Unit]
// is a named SI scale factor plus a set of gonum dimensions, and two units
// convert into each other by rescaling only when their dimensions match.
// Frequency and velocity have different dimensions, so converting between
// them requires an [Equivalency]:
//
//	eq, _ := units.DopplerRadio(1.42040575177e9) // HI rest frequency in Hz
//	v := units.NewQuantity(units.KilometrePerSecond, -50, 0, 50)
//	f, err := v.To(units.Hertz, eq)
//
// The radio convention is linear in frequency, v = c (f0 - f) / f0; the
// optical convention is linear in wavelength, v = c (f0 - f) / f.
package units
