package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/moment"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobYAML = `
input: tile.fits
dtype: float64
convention: ebhis
kind: 1
velocity: [-50, 50]
smooth:
  kernel: hanning
  width: 3
output: m1.fits
preview: m1.png
`

func TestParse(t *testing.T) {
	j, err := Parse([]byte(jobYAML))
	require.NoError(t, err)

	want := Job{
		Input:        "tile.fits",
		DType:        "float64",
		Convention:   "ebhis",
		Kind:         1,
		Velocity:     []float64{-50, 50},
		VelocityUnit: "km/s",
		Smooth:       Smoothing{Kernel: "hanning", Width: 3},
		Output:       "m1.fits",
		Preview:      "m1.png",
	}
	if diff := cmp.Diff(want, j); diff != "" {
		t.Fatalf("job mismatch (-want +got):\n%s", diff)
	}

	d, err := j.DTypeValue()
	require.NoError(t, err)
	assert.Equal(t, fits.Float64, d)

	conv, err := j.ConventionValue()
	require.NoError(t, err)
	assert.NotNil(t, conv)

	k, err := j.Kernel()
	require.NoError(t, err)
	require.NotNil(t, k)
	assert.Equal(t, 3, k.Len())
}

func TestValidate(t *testing.T) {
	base := func() Job {
		j := Default()
		j.Input, j.Output = "in.fits", "out.fits"
		j.Channels = []float64{0, 10}
		return j
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name string
		edit func(*Job)
	}{
		{"no input", func(j *Job) { j.Input = "" }},
		{"no output", func(j *Job) { j.Output = "" }},
		{"bad dtype", func(j *Job) { j.DType = "int8" }},
		{"bad convention", func(j *Job) { j.Convention = "hipass" }},
		{"bad kind", func(j *Job) { j.Kind = 2 }},
		{"no range", func(j *Job) { j.Channels = nil }},
		{"short channels", func(j *Job) { j.Channels = []float64{1} }},
		{"three velocities", func(j *Job) { j.Velocity = []float64{1, 2, 3} }},
		{"frequency unit", func(j *Job) { j.Velocity = []float64{1, 2}; j.VelocityUnit = "MHz" }},
		{"bad kernel", func(j *Job) { j.Smooth = Smoothing{Kernel: "boxcar", Width: 4} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := base()
			tt.edit(&j)
			if err := j.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestRangePrecedence(t *testing.T) {
	j := Default()
	j.Channels = []float64{0, 3}
	j.Velocity = []float64{-1, 1}
	r, err := j.Range()
	require.NoError(t, err)
	assert.Contains(t, r.String(), "velocities")

	j.Velocity = nil
	r, err = j.Range()
	require.NoError(t, err)
	assert.Equal(t, moment.Channels(0, 3), r)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("input: a.fits\noutput: b.fits\nchannels: [0, 1]\nbogus: 1\n"))
	assert.Error(t, err)
}

func TestLoadAndAsYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jobYAML), 0o600))

	j, err := Load(path)
	require.NoError(t, err)

	out, err := j.AsYaml()
	require.NoError(t, err)
	back, err := Parse([]byte(out))
	require.NoError(t, err)
	if diff := cmp.Diff(j, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
