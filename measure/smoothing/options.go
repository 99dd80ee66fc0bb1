package smoothing

// Config controls the grid SmoothSpectrum builds.
type Config struct {
	// Resolution is the grid step in decades.
	Resolution float64
	LowHz      float64
	// HighHz of zero means the Nyquist frequency.
	HighHz float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 1/96-decade grid from 20 Hz to Nyquist.
func DefaultConfig() Config {
	return Config{
		Resolution: 1.0 / 96,
		LowHz:      20,
	}
}

// WithResolution sets the grid step in decades.
func WithResolution(decades float64) Option {
	return func(cfg *Config) {
		if decades > 0 {
			cfg.Resolution = decades
		}
	}
}

// WithBand limits the grid to lowHz..highHz.
func WithBand(lowHz, highHz float64) Option {
	return func(cfg *Config) {
		if lowHz > 0 && highHz > lowHz {
			cfg.LowHz = lowHz
			cfg.HighHz = highHz
		}
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
