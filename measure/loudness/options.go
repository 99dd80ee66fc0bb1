package loudness

import "github.com/maredm/dunkadunka.se-sub000/dsp/core"

// Config defines the loudness meter configuration.
//
// SampleRate is always the rate passed to NewState. BlockSize is the chunk,
// in frames, that Measure feeds to the state.
type Config struct {
	core.ProcessorConfig

	// Weights are the per-channel gains G_i. Nil selects the default
	// layout weights for the channel count.
	Weights []float64
	// Gated enables the absolute and relative gates. When false every
	// block counts (RMS mode).
	Gated bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a gated configuration with default channel weights.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Gated:           true,
	}
}

// WithChannelWeights overrides the per-channel weights. The slice length
// must equal the channel count given to NewState.
func WithChannelWeights(weights ...float64) Option {
	return func(cfg *Config) {
		if len(weights) > 0 {
			cfg.Weights = append([]float64(nil), weights...)
		}
	}
}

// WithoutGating disables gating so every block contributes, as used for
// background-noise measurements.
func WithoutGating() Option {
	return func(cfg *Config) {
		cfg.Gated = false
	}
}

// WithBlockSize sets how many frames Measure processes per call.
func WithBlockSize(frames int) Option {
	return func(cfg *Config) {
		core.WithBlockSize(frames)(&cfg.ProcessorConfig)
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

// Default channel layouts: '0' weight 1.0, '1' a surround position
// (|elevation| < 30°, 60° <= |azimuth| <= 120°) weight 1.41, 'L' the LFE
// channel weight 0.
const (
	layout18 = "000L1100011000000"
	layout24 = "000L11000L11000000000000"
)

// DefaultWeights returns the layout weights for the given channel count.
// Channels beyond the layout table get weight 1.0.
func DefaultWeights(channels int) []float64 {
	layout := layout18
	if channels > 18 {
		layout = layout24
	}

	w := make([]float64, max(channels, 0))
	for i := range w {
		w[i] = 1

		if i >= len(layout) {
			continue
		}

		switch layout[i] {
		case '1':
			w[i] = 1.41
		case 'L':
			w[i] = 0
		}
	}

	return w
}
