// Package moment reduces a spectral cube along its spectral axis.
//
// An [Integrator] borrows a [Source] (usually a *cube.Cube) and computes
// the zeroth moment (integrated intensity) or the first moment
// (intensity-weighted mean radio velocity) over a sub-range of channels:
//
//	m0 := moment.Zeroth
//	r := moment.Velocities(units.NewQuantity(units.KilometrePerSecond, -20, 20))
//	img, err := moment.New(c).Compute(r, m0, nil)
//
// NaN voxels contribute nothing to either sum. The first moment divides
// by the zeroth moment without guarding against zero, so empty pixels come
// out as NaN or ±Inf.
package moment
