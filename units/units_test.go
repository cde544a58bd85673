package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		scale float64
	}{
		{"Hz", "Hz", 1},
		{"HZ", "Hz", 1},
		{"MHz", "MHz", 1e6},
		{"GHz", "GHz", 1e9},
		{"m/s", "m/s", 1},
		{"m s-1", "m/s", 1},
		{"km s-1", "km/s", 1e3},
		{"m.s-1", "m/s", 1},
		{"km.s**-1", "km/s", 1e3},
		{" km/s ", "km/s", 1e3},
		{"deg", "deg", Degree.Scale()},
		{"degrees", "deg", Degree.Scale()},
		{"arcsec", "arcsec", Degree.Scale() / 3600},
		{"K", "K", 1},
		{"", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.name, u.String())
			assert.InDelta(t, tt.scale, u.Scale(), tt.scale*1e-12)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("furlong/fortnight")
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("err = %v, want ErrUnknownUnit", err)
	}
	assert.Contains(t, err.Error(), "furlong/fortnight")
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("bogus") })
	assert.Equal(t, Hertz, MustParse("Hz"))
}

func TestCompatible(t *testing.T) {
	assert.True(t, MetrePerSecond.Compatible(KilometrePerSecond))
	assert.True(t, MustParse("GHz").IsFrequency())
	assert.True(t, MustParse("km s-1").IsVelocity())
	assert.False(t, Hertz.Compatible(MetrePerSecond))
	assert.False(t, Degree.IsVelocity())
	assert.True(t, Dimensionless.IsDimensionless())
	assert.False(t, Hertz.IsDimensionless())
	assert.True(t, Hertz.Equal(MustParse("hz")))
	assert.False(t, Hertz.Equal(MustParse("MHz")))
}
