package moment

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/internal/testutil"
	"github.com/cwbudde/algo-cube/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an ascending-velocity cube. The spectral axis is first
// unless axis says otherwise.
type fakeSource struct {
	data *fits.Array
	vel  []float64
	axis int
}

func (f *fakeSource) Data() *fits.Array { return f.data }
func (f *fakeSource) SpectralAxis() (int, error) { return f.axis, nil }

func (f *fakeSource) RadioVelocities() (units.Quantity, error) {
	return units.NewQuantity(units.KilometrePerSecond, f.vel...), nil
}

func (f *fakeSource) RadioVelocitiesToChannels(q units.Quantity) ([]int, units.Quantity, error) {
	out := make([]int, q.Len())
	vals := make([]float64, q.Len())
	for i, v := range q.Values {
		j := sort.SearchFloat64s(f.vel, v)
		if j > len(f.vel)-1 {
			j = len(f.vel) - 1
		}
		out[i], vals[i] = j, f.vel[j]
	}
	return out, units.NewQuantity(units.KilometrePerSecond, vals...), nil
}

func newFake(t *testing.T, nchan, ny, nx int, fill func(ch, y, x int) float64) *fakeSource {
	t.Helper()
	s := testutil.HICube(nchan, ny, nx)
	s.Fill = fill
	arr, _ := s.Build(t)
	vel := make([]float64, nchan)
	for i := range vel {
		vel[i] = float64(i-nchan/2) * 1.0
	}
	return &fakeSource{data: arr, vel: vel}
}

func TestZerothFullRangeIsNaNSum(t *testing.T) {
	src := newFake(t, 6, 2, 3, func(ch, y, x int) float64 {
		if ch == 2 && x == 1 {
			return math.NaN()
		}
		return float64(ch + y + x)
	})

	got, err := New(src).Zeroth(Channels(0, 6), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got.Shape())
	assert.Equal(t, fits.Float64, got.DType())

	want := make([]float64, 6)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			for ch := 0; ch < 6; ch++ {
				if ch == 2 && x == 1 {
					continue
				}
				want[y*3+x] += float64(ch + y + x)
			}
		}
	}
	testutil.RequireSliceNearlyEqual(t, got.Float64s(), want, 1e-12)
}

func TestFirstSingleChannel(t *testing.T) {
	// All flux in channel 4; other channels hold NaN or zero.
	src := newFake(t, 7, 2, 2, func(ch, y, x int) float64 {
		switch {
		case ch == 4:
			return 3 + float64(x)
		case ch%2 == 0:
			return math.NaN()
		default:
			return 0
		}
	})

	got, err := New(src).First(Channels(0, 7), nil)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got.Float64s(), testutil.Constant(src.vel[4], 4), 1e-12)
}

func TestFirstEmptyPixelPropagates(t *testing.T) {
	src := newFake(t, 3, 1, 2, func(ch, y, x int) float64 {
		if x == 0 {
			return 0
		}
		return math.NaN()
	})
	got, err := New(src).First(Channels(0, 3), nil)
	require.NoError(t, err)
	for i, v := range got.Float64s() {
		assert.True(t, math.IsNaN(v), "pixel %d = %v", i, v)
	}
}

func TestPlaneMaskBroadcasts(t *testing.T) {
	src := newFake(t, 5, 2, 2, func(ch, y, x int) float64 {
		return float64(1 + ch*y + x)
	})
	plane := []float64{1, 0, 0.5, 2}

	planeMask, err := fits.NewFloat64([]int{2, 2}, plane)
	require.NoError(t, err)
	full := make([]float64, 0, 20)
	for ch := 0; ch < 5; ch++ {
		full = append(full, plane...)
	}
	cubeMask, err := fits.NewFloat64([]int{5, 2, 2}, full)
	require.NoError(t, err)

	for _, kind := range []Kind{Zeroth, First} {
		a, err := New(src).Compute(Channels(1, 4), kind, planeMask)
		require.NoError(t, err)
		b, err := New(src).Compute(Channels(1, 4), kind, cubeMask)
		require.NoError(t, err)
		testutil.RequireSliceNearlyEqual(t, a.Float64s(), b.Float64s(), 1e-12)
	}
}

func TestCubeMaskFollowsChannels(t *testing.T) {
	src := newFake(t, 5, 2, 2, func(ch, y, x int) float64 {
		return float64(1 + ch + y + 2*x)
	})

	// Each mask channel holds its own index.
	weights := make([]float64, 0, 20)
	for ch := 0; ch < 5; ch++ {
		weights = append(weights, testutil.Constant(float64(ch), 4)...)
	}
	mask, err := fits.NewFloat64([]int{5, 2, 2}, weights)
	require.NoError(t, err)

	sum0 := make([]float64, 4)
	sum1 := make([]float64, 4)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for ch := 1; ch < 4; ch++ {
				w := float64(1+ch+y+2*x) * float64(ch)
				sum0[y*2+x] += w
				sum1[y*2+x] += w * src.vel[ch]
			}
		}
	}

	m0, err := New(src).Zeroth(Channels(1, 4), mask)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, m0.Float64s(), sum0, 1e-12)

	m1, err := New(src).First(Channels(1, 4), mask)
	require.NoError(t, err)
	want := make([]float64, 4)
	for i := range want {
		want[i] = sum1[i] / sum0[i]
	}
	testutil.RequireSliceNearlyEqual(t, m1.Float64s(), want, 1e-12)
}

func TestSpectralAxisLast(t *testing.T) {
	const ny, nx, nchan = 2, 3, 4
	value := func(y, x, ch int) float64 { return float64(1 + y + 10*x + 100*ch) }

	data := make([]float64, 0, ny*nx*nchan)
	weights := make([]float64, 0, ny*nx*nchan)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			for ch := 0; ch < nchan; ch++ {
				data = append(data, value(y, x, ch))
				weights = append(weights, float64(ch+x))
			}
		}
	}
	arr, err := fits.NewFloat64([]int{ny, nx, nchan}, data)
	require.NoError(t, err)
	mask, err := fits.NewFloat64([]int{ny, nx, nchan}, weights)
	require.NoError(t, err)
	src := &fakeSource{data: arr, vel: []float64{-2, -1, 0, 1}, axis: 2}

	tests := []struct {
		name string
		mask *fits.Array
		w    func(x, ch int) float64
	}{
		{"no mask", nil, func(x, ch int) float64 { return 1 }},
		{"cube mask", mask, func(x, ch int) float64 { return float64(ch + x) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(src).Zeroth(Channels(1, 3), tt.mask)
			require.NoError(t, err)
			assert.Equal(t, []int{ny, nx}, got.Shape())

			want := make([]float64, ny*nx)
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					for ch := 1; ch < 3; ch++ {
						want[y*nx+x] += value(y, x, ch) * tt.w(x, ch)
					}
				}
			}
			testutil.RequireSliceNearlyEqual(t, got.Float64s(), want, 1e-12)
		})
	}
}

func TestVelocityRangeAboveAxisIsEmpty(t *testing.T) {
	src := newFake(t, 7, 1, 2, func(ch, y, x int) float64 { return 1 })

	r := Velocities(units.NewQuantity(units.KilometrePerSecond, 5, 9))
	m0, err := New(src).Zeroth(r, nil)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, m0.Float64s(), []float64{0, 0}, 0)

	m1, err := New(src).First(r, nil)
	require.NoError(t, err)
	for i, v := range m1.Float64s() {
		assert.True(t, math.IsNaN(v), "pixel %d = %v", i, v)
	}
}

func TestMaskShape(t *testing.T) {
	src := newFake(t, 4, 2, 2, nil)
	bad, err := fits.NewFloat64([]int{3}, []float64{1, 1, 1})
	require.NoError(t, err)

	_, err = New(src).Zeroth(Channels(0, 4), bad)
	if !errors.Is(err, ErrMaskShape) {
		t.Fatalf("err = %v, want ErrMaskShape", err)
	}
}

func TestUnsupportedKind(t *testing.T) {
	src := newFake(t, 4, 2, 2, nil)
	_, err := New(src).Compute(Channels(0, 4), Kind(2), nil)
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err = %v, want ErrUnsupportedKind", err)
	}
}

func TestNoRange(t *testing.T) {
	src := newFake(t, 4, 2, 2, nil)
	_, err := New(src).Zeroth(Range{}, nil)
	if !errors.Is(err, ErrNoRange) {
		t.Fatalf("err = %v, want ErrNoRange", err)
	}

	_, err = New(src).Zeroth(Velocities(units.NewQuantity(units.KilometrePerSecond, 1)), nil)
	if !errors.Is(err, ErrVelocityRange) {
		t.Fatalf("err = %v, want ErrVelocityRange", err)
	}
}

func TestRangeBounds(t *testing.T) {
	// Velocities are -3..3 km/s on channels 0..6.
	src := newFake(t, 7, 1, 1, nil)

	tests := []struct {
		name   string
		r      Range
		lo, hi int
	}{
		{"fractional channels widen", Channels(1.5, 3.2), 1, 4},
		{"clamped", Channels(-2, 99), 0, 7},
		{"velocity inclusive", Velocities(units.NewQuantity(units.KilometrePerSecond, -1, 1)), 2, 5},
		{"velocity reversed", Velocities(units.NewQuantity(units.KilometrePerSecond, 1, -1)), 2, 5},
		{"velocity in m/s", Velocities(units.NewQuantity(units.MetrePerSecond, 0, 2000)), 3, 6},
		{"velocity wins", Velocities(units.NewQuantity(units.KilometrePerSecond, 0, 0)).WithChannels(0, 7), 3, 4},
		{"velocity above axis", Velocities(units.NewQuantity(units.KilometrePerSecond, 5, 9)), 0, 0},
		{"velocity above axis reversed", Velocities(units.NewQuantity(units.KilometrePerSecond, 9, 5)), 0, 0},
		{"velocity past upper end", Velocities(units.NewQuantity(units.KilometrePerSecond, 2, 9)), 5, 7},
		{"velocity below axis", Velocities(units.NewQuantity(units.KilometrePerSecond, -9, -5)), 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.r.velocity
			if tt.r.hasVel && !q.Unit.Equal(units.KilometrePerSecond) {
				conv, err := q.To(units.KilometrePerSecond)
				require.NoError(t, err)
				tt.r.velocity = conv
			}
			lo, hi, err := tt.r.bounds(src, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestEmptyRange(t *testing.T) {
	src := newFake(t, 4, 1, 2, func(ch, y, x int) float64 { return 1 })
	got, err := New(src).Zeroth(Channels(3, 1), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got.Float64s())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "zeroth", Zeroth.String())
	assert.Equal(t, "first", First.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
	assert.Equal(t, "no range", Range{}.String())
}
