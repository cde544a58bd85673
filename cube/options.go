package cube

import "github.com/cwbudde/algo-cube/fits"

// Config defines how a cube is loaded.
type Config struct {
	// DType is the element type Data returns.
	DType fits.DType
	// Convention, when set, rewrites the header right after loading.
	Convention Convention
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns float32 data and no header convention.
func DefaultConfig() Config {
	return Config{DType: fits.Float32}
}

// WithDType sets the element type of the data array.
func WithDType(d fits.DType) Option {
	return func(cfg *Config) {
		if d == fits.Float32 || d == fits.Float64 {
			cfg.DType = d
		}
	}
}

// WithConvention sets a header convention applied at load time.
func WithConvention(conv Convention) Option {
	return func(cfg *Config) {
		cfg.Convention = conv
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
