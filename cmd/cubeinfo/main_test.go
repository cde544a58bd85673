package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-cube/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.fits")
	s := testutil.HICube(5, 2, 2)
	line := testutil.GaussianLine(5, 2, 2, 1)
	s.Fill = func(ch, y, x int) float64 { return line[ch] }
	s.WriteFile(t, path)

	var out bytes.Buffer
	plot := filepath.Join(dir, "spec.png")
	err := run(&out, path, options{dtype: "float32", channels: true, plot: plot, ebhis: true})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Shape:    [5 2 2] float32")
	assert.Contains(t, text, "VRAD")
	assert.Contains(t, text, "Vrad:     -2.000 .. 2.000 km/s")
	assert.Contains(t, text, "Chan")
	assert.FileExists(t, plot)
}

func TestRunUnsupportedSpectralAxis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.fits")
	s := testutil.HICube(3, 1, 1)
	s.CType, s.CUnit = "WAVE", "m"
	s.WriteFile(t, path)

	var out bytes.Buffer
	require.NoError(t, run(&out, path, options{dtype: "float64", channels: true}))
	assert.NotContains(t, out.String(), "Chan")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, "x.fits", options{dtype: "int"}))
	assert.Error(t, run(&out, filepath.Join(t.TempDir(), "missing.fits"), options{dtype: "float32"}))
}
