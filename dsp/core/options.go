package core

// ProcessorConfig is embedded by the configs of the streaming meters.
// SampleRate has no default: it stays zero until a meter copies in the rate
// passed to its constructor. BlockSize is how many frames a one-shot
// measurement feeds the meter per call.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 4096-frame blocks and an unset sample rate.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{BlockSize: 4096}
}

// WithBlockSize sets BlockSize. Non-positive sizes are ignored.
func WithBlockSize(frames int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frames > 0 {
			cfg.BlockSize = frames
		}
	}
}
