package cube

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/internal/monitoring"
	"github.com/cwbudde/algo-cube/moment"
	"github.com/cwbudde/algo-cube/smooth"
	"github.com/cwbudde/algo-cube/units"
	"github.com/cwbudde/algo-cube/wcs"
)

var ErrNoSource = errors.New("cube: either a path or both data and header must be set")

// Source names where a cube comes from. Path wins when set.
type Source struct {
	Path   string
	Data   *fits.Array
	Header *fits.Header
}

// Cube is a spectral-line data cube.
type Cube struct {
	cfg Config
	hdu *fits.HDU

	wcs       *wcs.WCS
	axisUnits []units.Unit

	frequencies *units.Quantity
	radio       *units.Quantity
	optical     *units.Quantity
}

var _ moment.Source = (*Cube)(nil)

// Load builds a cube from src.
func Load(src Source, opts ...Option) (*Cube, error) {
	cfg := ApplyOptions(opts...)

	var hdu *fits.HDU
	switch {
	case src.Path != "":
		var err error
		if hdu, err = fits.Open(src.Path); err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
	case src.Data != nil && src.Header != nil:
		hdr := src.Header.Clone()
		syncShape(hdr, src.Data.Shape())
		hdu = &fits.HDU{Header: hdr, Data: src.Data}
	default:
		return nil, ErrNoSource
	}

	if cfg.Convention != nil {
		cfg.Convention(hdu.Header)
		monitoring.Logger().Debug("applied header convention", "path", src.Path)
	}

	return &Cube{cfg: cfg, hdu: hdu}, nil
}

// Open loads the first image HDU with data from path.
func Open(path string, opts ...Option) (*Cube, error) {
	return Load(Source{Path: path}, opts...)
}

// New wraps an in-memory array and header. The header is copied; the array
// is not.
func New(data *fits.Array, header *fits.Header, opts ...Option) (*Cube, error) {
	return Load(Source{Data: data, Header: header}, opts...)
}

// syncShape writes the NAXIS keywords that describe shape.
func syncShape(h *fits.Header, shape []int) {
	h.Set("NAXIS", len(shape))
	for i, n := range shape {
		h.Set(fits.Nth("NAXIS", len(shape)-i), n)
	}
}

// Config returns the configuration the cube was loaded with.
func (c *Cube) Config() Config { return c.cfg }

// Data returns the data array in the configured type, converting and
// storing it back on first access.
func (c *Cube) Data() *fits.Array {
	if c.hdu.Data.DType() != c.cfg.DType {
		c.hdu.Data = c.hdu.Data.Convert(c.cfg.DType)
	}
	return c.hdu.Data
}

// Header returns the header. Changes after the first coordinate lookup
// are not seen by the cached axes.
func (c *Cube) Header() *fits.Header { return c.hdu.Header }

// HDU returns the underlying header/data unit.
func (c *Cube) HDU() *fits.HDU { return c.hdu }

// WCS returns the coordinate system, building it on first call.
func (c *Cube) WCS() (*wcs.WCS, error) {
	if c.wcs == nil {
		w, err := wcs.FromHeader(c.hdu.Header)
		if err != nil {
			return nil, fmt.Errorf("cube: %w", err)
		}
		c.wcs = w
	}
	return c.wcs, nil
}

// SpectralWCS returns the spectral sub-system. It is not cached.
func (c *Cube) SpectralWCS() (*wcs.WCS, error) {
	w, err := c.WCS()
	if err != nil {
		return nil, err
	}
	return w.Spectral()
}

// CelestialWCS returns the longitude/latitude sub-system. It is not cached.
func (c *Cube) CelestialWCS() (*wcs.WCS, error) {
	w, err := c.WCS()
	if err != nil {
		return nil, err
	}
	return w.Celestial()
}

// AxisUnits returns the unit of every axis in FITS order.
func (c *Cube) AxisUnits() ([]units.Unit, error) {
	if c.axisUnits != nil {
		return c.axisUnits, nil
	}
	w, err := c.WCS()
	if err != nil {
		return nil, err
	}

	out := make([]units.Unit, w.Naxis())
	for i, a := range w.Axes() {
		if a.CUnit == "" {
			out[i] = defaultUnit(a)
			continue
		}
		u, err := units.Parse(a.CUnit)
		if err != nil {
			return nil, fmt.Errorf("cube: CUNIT%d: %w", i+1, err)
		}
		out[i] = u
	}
	c.axisUnits = out
	return out, nil
}

func defaultUnit(a wcs.Axis) units.Unit {
	switch a.Kind() {
	case wcs.Longitude, wcs.Latitude:
		return units.Degree
	case wcs.Spectral:
		switch a.Code() {
		case "FREQ":
			return units.Hertz
		case "VRAD", "VOPT", "VELO", "FELO":
			return units.MetrePerSecond
		}
	}
	return units.Dimensionless
}

// SpectralAxis returns the index of the spectral axis in Data().Shape().
func (c *Cube) SpectralAxis() (int, error) {
	w, err := c.WCS()
	if err != nil {
		return 0, err
	}
	spec := w.Spec()
	if spec < 0 {
		return 0, fmt.Errorf("cube: %w: spectral", wcs.ErrNoSuchAxis)
	}
	ndim := c.Data().NDim()
	if spec >= ndim {
		return 0, fmt.Errorf("cube: spectral axis %d beyond %d data dimensions", spec+1, ndim)
	}
	return ndim - 1 - spec, nil
}

// Moment computes a moment map over r.
func (c *Cube) Moment(r moment.Range, kind moment.Kind, mask *fits.Array) (*fits.Array, error) {
	return moment.New(c).Compute(r, kind, mask)
}

// Smooth returns a new cube whose spectra are convolved with k. The header
// is copied; the convention is not applied again.
func (c *Cube) Smooth(k smooth.Kernel) (*Cube, error) {
	axis, err := c.SpectralAxis()
	if err != nil {
		return nil, err
	}
	arr, err := smooth.Spectra(c.Data(), axis, k)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}

	return New(arr.Convert(c.cfg.DType), c.hdu.Header, WithDType(c.cfg.DType))
}
