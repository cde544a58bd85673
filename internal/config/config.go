// Package config reads moment-map job descriptions from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-cube/cube"
	"github.com/cwbudde/algo-cube/fits"
	"github.com/cwbudde/algo-cube/moment"
	"github.com/cwbudde/algo-cube/smooth"
	"github.com/cwbudde/algo-cube/units"
	"gopkg.in/yaml.v2"
)

var ErrInvalid = errors.New("config: invalid job")

// Smoothing selects an optional spectral smoothing kernel.
type Smoothing struct {
	Kernel string  `yaml:"kernel,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
}

// Job describes one moment-map computation.
type Job struct {
	Input      string `yaml:"input"`
	DType      string `yaml:"dtype"`
	Convention string `yaml:"convention,omitempty"`

	Kind         int       `yaml:"kind"`
	Velocity     []float64 `yaml:"velocity,omitempty"`
	VelocityUnit string    `yaml:"velocity_unit,omitempty"`
	Channels     []float64 `yaml:"channels,omitempty"`
	Mask         string    `yaml:"mask,omitempty"`

	Smooth Smoothing `yaml:"smooth,omitempty"`

	Output  string `yaml:"output"`
	Preview string `yaml:"preview,omitempty"`
}

// Default returns a job with float32 data, a zeroth moment and velocities
// in km/s.
func Default() Job {
	return Job{
		DType:        "float32",
		Kind:         int(moment.Zeroth),
		VelocityUnit: "km/s",
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(b []byte) (Job, error) {
	j := Default()
	if err := yaml.UnmarshalStrict(b, &j); err != nil {
		return Job{}, fmt.Errorf("config: %w", err)
	}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Load reads and parses the job file at path.
func Load(path string) (Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	j, err := Parse(b)
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	return j, nil
}

// AsYaml encodes the job.
func (j Job) AsYaml() (string, error) {
	b, err := yaml.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("config: marshal: %w", err)
	}
	return string(b), nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that the job can run.
func (j Job) Validate() error {
	if j.Input == "" {
		return invalid("input is required")
	}
	if j.Output == "" {
		return invalid("output is required")
	}
	if _, err := j.DTypeValue(); err != nil {
		return invalid("%v", err)
	}
	if _, err := j.ConventionValue(); err != nil {
		return invalid("%v", err)
	}
	if moment.Kind(j.Kind) != moment.Zeroth && moment.Kind(j.Kind) != moment.First {
		return invalid("kind must be 0 or 1, got %d", j.Kind)
	}
	if _, err := j.Range(); err != nil {
		return invalid("%v", err)
	}
	if _, err := j.Kernel(); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// DTypeValue parses DType.
func (j Job) DTypeValue() (fits.DType, error) {
	return fits.ParseDType(j.DType)
}

// ConventionValue resolves Convention; nil means none.
func (j Job) ConventionValue() (cube.Convention, error) {
	return cube.ConventionByName(j.Convention)
}

// Range returns the spectral range. A velocity range wins over channels.
func (j Job) Range() (moment.Range, error) {
	switch {
	case len(j.Velocity) > 0:
		if len(j.Velocity) != 2 {
			return moment.Range{}, fmt.Errorf("velocity needs two values, got %d", len(j.Velocity))
		}
		unit := j.VelocityUnit
		if unit == "" {
			unit = "km/s"
		}
		u, err := units.Parse(unit)
		if err != nil {
			return moment.Range{}, err
		}
		if !u.IsVelocity() {
			return moment.Range{}, fmt.Errorf("velocity_unit %q is not a velocity", unit)
		}
		return moment.Velocities(units.NewQuantity(u, j.Velocity...)), nil
	case len(j.Channels) > 0:
		if len(j.Channels) != 2 {
			return moment.Range{}, fmt.Errorf("channels needs two values, got %d", len(j.Channels))
		}
		return moment.Channels(j.Channels[0], j.Channels[1]), nil
	default:
		return moment.Range{}, moment.ErrNoRange
	}
}

// Kernel returns the smoothing kernel, or nil when smoothing is off.
func (j Job) Kernel() (*smooth.Kernel, error) {
	if j.Smooth.Kernel == "" {
		return nil, nil
	}
	k, err := smooth.ByName(j.Smooth.Kernel, j.Smooth.Width)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
