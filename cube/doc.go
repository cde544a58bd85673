// Package cube wraps a spectral-line data cube read from FITS.
//
// A [Cube] holds one image HDU and derives its spectral axes on demand.
// The coordinate system, the parsed axis units and the frequency and
// velocity axes are computed on first use and cached for the lifetime of
// the cube; the data array is converted to the configured floating type
// whenever it is accessed with a different type.
//
// # Usage
//
//	c, err := cube.Open("tile.fits", cube.WithConvention(cube.EBHIS))
//	if err != nil {
//		return err
//	}
//	v, err := c.RadioVelocities() // km/s, one per channel
//	m0, err := c.Moment(moment.Velocities(
//		units.NewQuantity(units.KilometrePerSecond, -50, 50)), moment.Zeroth, nil)
//
// Spectral axes of type FREQ, VRAD and VOPT are supported. Velocity axes
// need a rest frequency (RESTFRQ or RESTFREQ).
package cube
