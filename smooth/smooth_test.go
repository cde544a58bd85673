package smooth

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestKernels(t *testing.T) {
	h, err := Hanning(3)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, h.Coeffs(), []float64{0.25, 0.5, 0.25}, 1e-15)

	b, err := Boxcar(5)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, b.Coeffs(), testutil.Constant(0.2, 5), 1e-15)

	g, err := Gaussian(4)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len()%2)
	assert.InDelta(t, 1, floats.Sum(g.Coeffs()), 1e-12)
	mid := g.Len() / 2
	assert.Equal(t, floats.MaxIdx(g.Coeffs()), mid)

	for _, n := range []int{1, 7, 15} {
		h, err := Hanning(n)
		require.NoError(t, err)
		assert.InDelta(t, 1, floats.Sum(h.Coeffs()), 1e-12, "hanning(%d)", n)
	}
}

func TestKernelErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (Kernel, error)
	}{
		{"boxcar even", func() (Kernel, error) { return Boxcar(4) }},
		{"boxcar zero", func() (Kernel, error) { return Boxcar(0) }},
		{"hanning negative", func() (Kernel, error) { return Hanning(-3) }},
		{"gaussian zero", func() (Kernel, error) { return Gaussian(0) }},
		{"gaussian nan", func() (Kernel, error) { return Gaussian(math.NaN()) }},
		{"unknown", func() (Kernel, error) { return ByName("triangle", 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if !errors.Is(err, ErrKernel) {
				t.Fatalf("err = %v, want ErrKernel", err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	k, err := ByName("Hann", 5)
	require.NoError(t, err)
	assert.Equal(t, "hanning", k.Name())
	assert.Equal(t, "hanning(5)", k.String())

	k, err = ByName("gaussian", 2.5)
	require.NoError(t, err)
	assert.Equal(t, "gaussian", k.Name())
}

func TestConvolveImpulseReturnsKernel(t *testing.T) {
	k, err := Hanning(5)
	require.NoError(t, err)

	out, err := Convolve(testutil.Impulse(11, 5), k)
	require.NoError(t, err)

	want := make([]float64, 11)
	copy(want[3:], k.Coeffs())
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestConvolveConstant(t *testing.T) {
	k, err := Boxcar(3)
	require.NoError(t, err)

	out, err := Convolve(testutil.Constant(2, 8), k)
	require.NoError(t, err)

	// Interior is unchanged; edges see zero padding.
	testutil.RequireSliceNearlyEqual(t, out[1:7], testutil.Constant(2, 6), 1e-12)
	assert.InDelta(t, 4.0/3, out[0], 1e-12)
	assert.InDelta(t, 4.0/3, out[7], 1e-12)
}

func TestConvolveMatchesDirect(t *testing.T) {
	k, err := Gaussian(3)
	require.NoError(t, err)
	signal := testutil.DeterministicNoise(7, 1, 40)
	signal[12] = math.NaN()

	got, err := Convolve(signal, k)
	require.NoError(t, err)

	c := k.Coeffs()
	half := len(c) / 2
	want := make([]float64, len(signal))
	for i := range want {
		for j, h := range c {
			n := i + half - j
			if n < 0 || n >= len(signal) || math.IsNaN(signal[n]) {
				continue
			}
			want[i] += h * signal[n]
		}
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
	testutil.RequireFinite(t, got)
}

func TestConvolverLengthMismatch(t *testing.T) {
	k, _ := Boxcar(3)
	c, err := NewConvolver(k, 8)
	require.NoError(t, err)
	assert.Equal(t, 16, c.FFTSize())

	err = c.Process(make([]float64, 8), make([]float64, 7))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Convolve(nil, k)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSpectra(t *testing.T) {
	s := testutil.HICube(9, 2, 3)
	line := testutil.GaussianLine(9, 1, 4, 1)
	s.Fill = func(ch, y, x int) float64 { return float64(1+y*3+x) * line[ch] }
	arr, _ := s.Build(t)

	k, err := Hanning(3)
	require.NoError(t, err)

	got, err := Spectra(arr, 0, k)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 2, 3}, got.Shape())
	assert.Equal(t, fits.Float64, got.DType())

	want, err := Convolve(line, k)
	require.NoError(t, err)
	vals := got.Float64s()
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			scale := float64(1 + y*3 + x)
			for ch := 0; ch < 9; ch++ {
				assert.InDelta(t, scale*want[ch], vals[ch*6+y*3+x], 1e-9)
			}
		}
	}

	_, err = Spectra(arr, 3, k)
	assert.ErrorIs(t, err, ErrAxis)
}
