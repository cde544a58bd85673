package smooth

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrKernel = errors.New("smooth: invalid kernel")

// Kernel is an odd-length convolution kernel normalized to unit sum.
type Kernel struct {
	name   string
	coeffs []float64
}

// Name returns the kernel family, e.g. "hanning".
func (k Kernel) Name() string { return k.name }

// Len returns the number of taps.
func (k Kernel) Len() int { return len(k.coeffs) }

// Coeffs returns a copy of the taps.
func (k Kernel) Coeffs() []float64 { return append([]float64(nil), k.coeffs...) }

func (k Kernel) String() string { return fmt.Sprintf("%s(%d)", k.name, len(k.coeffs)) }

func validateWidth(name string, n int) error {
	if n < 1 || n%2 == 0 {
		return fmt.Errorf("%w: %s width must be odd and >= 1: %d", ErrKernel, name, n)
	}
	return nil
}

func normalized(name string, c []float64) Kernel {
	floats.Scale(1/floats.Sum(c), c)
	return Kernel{name: name, coeffs: c}
}

// Boxcar returns an n-tap running mean.
func Boxcar(n int) (Kernel, error) {
	if err := validateWidth("boxcar", n); err != nil {
		return Kernel{}, err
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = 1
	}
	return normalized("boxcar", c), nil
}

// Hanning returns an n-tap Hann kernel without the zero end points, so
// Hanning(3) is [0.25 0.5 0.25].
func Hanning(n int) (Kernel, error) {
	if err := validateWidth("hanning", n); err != nil {
		return Kernel{}, err
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i+1)/float64(n+1)))
	}
	return normalized("hanning", c), nil
}

// Gaussian returns a Gaussian kernel with the given full width at half
// maximum in channels, truncated at ±3σ.
func Gaussian(fwhm float64) (Kernel, error) {
	if !(fwhm > 0) || math.IsInf(fwhm, 0) {
		return Kernel{}, fmt.Errorf("%w: gaussian fwhm must be > 0: %v", ErrKernel, fwhm)
	}
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	half := int(math.Ceil(3 * sigma))
	c := make([]float64, 2*half+1)
	for i := range c {
		d := float64(i-half) / sigma
		c[i] = math.Exp(-0.5 * d * d)
	}
	return normalized("gaussian", c), nil
}

// ByName builds a kernel from a family name and width. Width is the tap
// count for boxcar and hanning and the FWHM for gaussian.
func ByName(name string, width float64) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boxcar", "box":
		return Boxcar(int(width))
	case "hanning", "hann":
		return Hanning(int(width))
	case "gaussian", "gauss":
		return Gaussian(width)
	default:
		return Kernel{}, fmt.Errorf("%w: unknown kernel %q", ErrKernel, name)
	}
}
