package testutil

import (
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-cube/fits"
)

// HIRestFrequency is the rest frequency of the 21 cm hydrogen line in Hz.
const HIRestFrequency = 1.42040575177e9

// SpectralCube describes a synthetic (spectral, y, x) cube with a linear
// spectral axis along FITS axis 3 and a small RA/Dec grid on axes 1 and 2.
type SpectralCube struct {
	NChan, NY, NX int

	CType    string
	CUnit    string
	CRPix    float64
	CRVal    float64
	CDelt    float64
	RestFreq float64

	// Fill returns the value at (channel, y, x). Nil fills with zeros.
	Fill func(ch, y, x int) float64
}

// HICube returns a cube description resembling an HI survey tile: a VRAD
// axis in m/s centred on zero velocity.
func HICube(nchan, ny, nx int) SpectralCube {
	return SpectralCube{
		NChan: nchan, NY: ny, NX: nx,
		CType:    "VRAD",
		CUnit:    "m/s",
		CRPix:    float64(nchan/2 + 1),
		CRVal:    0,
		CDelt:    1000,
		RestFreq: HIRestFrequency,
	}
}

// Header returns the FITS header describing s.
func (s SpectralCube) Header() *fits.Header {
	h := fits.NewHeader(
		fitsio.Card{Name: "BITPIX", Value: -64},
		fitsio.Card{Name: "NAXIS", Value: 3},
		fitsio.Card{Name: "NAXIS1", Value: s.NX},
		fitsio.Card{Name: "NAXIS2", Value: s.NY},
		fitsio.Card{Name: "NAXIS3", Value: s.NChan},
		fitsio.Card{Name: "CTYPE1", Value: "RA---CAR"},
		fitsio.Card{Name: "CUNIT1", Value: "deg"},
		fitsio.Card{Name: "CRPIX1", Value: 1.0},
		fitsio.Card{Name: "CRVAL1", Value: 180.0},
		fitsio.Card{Name: "CDELT1", Value: -0.1},
		fitsio.Card{Name: "CTYPE2", Value: "DEC--CAR"},
		fitsio.Card{Name: "CUNIT2", Value: "deg"},
		fitsio.Card{Name: "CRPIX2", Value: 1.0},
		fitsio.Card{Name: "CRVAL2", Value: 30.0},
		fitsio.Card{Name: "CDELT2", Value: 0.1},
		fitsio.Card{Name: "CTYPE3", Value: s.CType},
		fitsio.Card{Name: "CUNIT3", Value: s.CUnit},
		fitsio.Card{Name: "CRPIX3", Value: s.CRPix},
		fitsio.Card{Name: "CRVAL3", Value: s.CRVal},
		fitsio.Card{Name: "CDELT3", Value: s.CDelt},
		fitsio.Card{Name: "BUNIT", Value: "K"},
	)
	if s.RestFreq > 0 {
		h.Set("RESTFRQ", s.RestFreq)
	}
	return h
}

// Values returns the cube data in C order.
func (s SpectralCube) Values() []float64 {
	out := make([]float64, s.NChan*s.NY*s.NX)
	if s.Fill == nil {
		return out
	}
	i := 0
	for ch := 0; ch < s.NChan; ch++ {
		for y := 0; y < s.NY; y++ {
			for x := 0; x < s.NX; x++ {
				out[i] = s.Fill(ch, y, x)
				i++
			}
		}
	}
	return out
}

// Build returns the data array and header, failing t on error.
func (s SpectralCube) Build(t testing.TB) (*fits.Array, *fits.Header) {
	t.Helper()
	arr, err := fits.NewFloat64([]int{s.NChan, s.NY, s.NX}, s.Values())
	if err != nil {
		t.Fatalf("build cube: %v", err)
	}
	return arr, s.Header()
}

// WriteFile writes the cube to path as a FITS file.
func (s SpectralCube) WriteFile(t testing.TB, path string) {
	t.Helper()
	arr, hdr := s.Build(t)
	if err := fits.WriteFile(path, &fits.HDU{Header: hdr, Data: arr}); err != nil {
		t.Fatalf("write cube: %v", err)
	}
}
