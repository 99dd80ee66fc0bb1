package transfer

// DefaultEpsilon is the regularization added to |B|².
const DefaultEpsilon = 1e-20

// Config holds the estimator settings.
type Config struct {
	// Epsilon is added to the reference power spectrum before division.
	Epsilon float64
	// PhaseReferenceHz is the frequency at which whole phase turns are
	// removed from the returned spectrum.
	PhaseReferenceHz float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns ε = 1e-20 and a 1 kHz phase reference.
func DefaultConfig() Config {
	return Config{
		Epsilon:          DefaultEpsilon,
		PhaseReferenceHz: 1000,
	}
}

// WithEpsilon sets the regularization constant. Non-positive values are
// ignored.
func WithEpsilon(eps float64) Option {
	return func(cfg *Config) {
		if eps > 0 {
			cfg.Epsilon = eps
		}
	}
}

// WithPhaseReference sets the phase normalization frequency.
func WithPhaseReference(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.PhaseReferenceHz = hz
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
