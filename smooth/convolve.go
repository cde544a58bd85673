package smooth

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-cube/fits"
)

var (
	ErrEmptyInput     = errors.New("smooth: empty input")
	ErrLengthMismatch = errors.New("smooth: buffer length mismatch")
	ErrAxis           = errors.New("smooth: axis out of range")
)

// Convolver smooths signals of a fixed length with one kernel. It keeps the
// FFT plan, the transformed kernel and scratch buffers between calls and is
// not safe for concurrent use.
type Convolver struct {
	kernelFFT []complex128
	kernelLen int
	signalLen int
	fftSize   int

	plan *algofft.Plan[complex128]
	buf  []complex128
}

// NewConvolver prepares a convolver for signals of length n.
func NewConvolver(k Kernel, n int) (*Convolver, error) {
	if k.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", ErrKernel)
	}
	if n <= 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(n + k.Len() - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	c := &Convolver{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: k.Len(),
		signalLen: n,
		fftSize:   fftSize,
		plan:      plan,
		buf:       make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range k.coeffs {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(c.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("smooth: failed to compute kernel FFT: %w", err)
	}
	return c, nil
}

// FFTSize returns the transform length.
func (c *Convolver) FFTSize() int { return c.fftSize }

// Process writes the same-size convolution of src into dst. dst and src
// must both have the length the convolver was built for and may alias.
func (c *Convolver) Process(dst, src []float64) error {
	if len(src) != c.signalLen || len(dst) != c.signalLen {
		return fmt.Errorf("%w: expected %d, got src %d dst %d", ErrLengthMismatch, c.signalLen, len(src), len(dst))
	}

	for i := range c.buf {
		c.buf[i] = 0
	}
	for i, v := range src {
		if !math.IsNaN(v) {
			c.buf[i] = complex(v, 0)
		}
	}

	if err := c.plan.Forward(c.buf, c.buf); err != nil {
		return fmt.Errorf("smooth: forward FFT failed: %w", err)
	}
	for i := range c.buf {
		c.buf[i] *= c.kernelFFT[i]
	}
	if err := c.plan.Inverse(c.buf, c.buf); err != nil {
		return fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	shift := c.kernelLen / 2
	for i := range dst {
		dst[i] = real(c.buf[i+shift])
	}
	return nil
}

// Convolve returns the same-size convolution of signal with k.
func Convolve(signal []float64, k Kernel) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	c, err := NewConvolver(k, len(signal))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(signal))
	if err := c.Process(out, signal); err != nil {
		return nil, err
	}
	return out, nil
}

// Spectra convolves every 1-D line of arr along axis with k and returns a
// new Float64 array of the same shape.
func Spectra(arr *fits.Array, axis int, k Kernel) (*fits.Array, error) {
	shape := arr.Shape()
	if axis < 0 || axis >= len(shape) {
		return nil, fmt.Errorf("%w: %d for %d dimensions", ErrAxis, axis, len(shape))
	}

	outer, inner, n := 1, 1, shape[axis]
	for i, d := range shape {
		switch {
		case i < axis:
			outer *= d
		case i > axis:
			inner *= d
		}
	}

	c, err := NewConvolver(k, n)
	if err != nil {
		return nil, err
	}

	src := arr.Values()
	out := make([]float64, len(src))
	line := make([]float64, n)
	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			base := o*n*inner + j
			for ch := range line {
				line[ch] = src[base+ch*inner]
			}
			if err := c.Process(line, line); err != nil {
				return nil, err
			}
			for ch, v := range line {
				out[base+ch*inner] = v
			}
		}
	}
	return fits.NewFloat64(shape, out)
}

const minFFTSize = 16

func nextPowerOf2(n int) int {
	p := minFFTSize
	for p < n {
		p <<= 1
	}
	return p
}
