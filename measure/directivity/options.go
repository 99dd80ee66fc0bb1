package directivity

import (
	"runtime"

	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
	"github.com/maredm/dunkadunka.se-sub000/measure/transfer"
)

// Config controls a directivity measurement.
type Config struct {
	// Fraction is the smoothing width in octaves.
	Fraction float64
	// NormalizeHz is where the on-axis curve is pinned to 0 dB.
	NormalizeHz float64
	Workers     int

	Smoothing []smoothing.Option
	Transfer  []transfer.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 1/6-octave smoothing normalized at 1 kHz with one
// worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Fraction:    1.0 / 6,
		NormalizeHz: 1000,
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// WithFraction sets the smoothing width in octaves.
func WithFraction(octaves float64) Option {
	return func(cfg *Config) {
		if octaves >= 0 {
			cfg.Fraction = octaves
		}
	}
}

// WithNormalization sets the frequency at which the on-axis curve is 0 dB.
func WithNormalization(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.NormalizeHz = hz
		}
	}
}

// WithWorkers bounds the number of captures estimated at once.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithSmoothingOptions forwards options to smoothing.SmoothSpectrum.
func WithSmoothingOptions(opts ...smoothing.Option) Option {
	return func(cfg *Config) {
		cfg.Smoothing = append(cfg.Smoothing, opts...)
	}
}

// WithTransferOptions forwards options to transfer.Estimate.
func WithTransferOptions(opts ...transfer.Option) Option {
	return func(cfg *Config) {
		cfg.Transfer = append(cfg.Transfer, opts...)
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
