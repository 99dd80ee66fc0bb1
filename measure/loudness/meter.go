package loudness

import (
	"fmt"
	"math"
	"sort"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/filter/biquad"
	"github.com/maredm/dunkadunka.se-sub000/dsp/filter/weighting"
)

const (
	lkfsOffset      = -0.691
	absThreshold    = -70.0
	relThreshold    = -10.0
	subBlockSeconds = 0.1
	subBlocks       = 4 // per 400 ms gating block, 75% overlap
	lraLow          = 0.10
	lraHigh         = 0.95
)

// Errors returned by the loudness meter.
var (
	ErrInvalidSampleRate = fmt.Errorf("loudness: sample rate must be positive: %w", core.ErrInvalidParameter)
	ErrInvalidChannels   = fmt.Errorf("loudness: channel count must be positive: %w", core.ErrInvalidParameter)
	ErrWeightCount       = fmt.Errorf("loudness: channel weight count differs from channel count: %w", core.ErrInvalidParameter)
	ErrPartialFrame      = fmt.Errorf("loudness: interleaved length is not a multiple of the channel count: %w", core.ErrInvalidParameter)
	ErrTooShort          = fmt.Errorf("loudness: input shorter than one 400 ms gating block: %w", core.ErrInsufficientData)
)

// Result is the outcome of a loudness measurement.
//
// When no block passes the absolute gate, IntegratedLoudness is -Inf,
// LoudnessRange is 0 and ZeroPassed is set. ZeroInput additionally reports
// that every block had zero energy.
type Result struct {
	IntegratedLoudness float64 // LKFS
	LoudnessRange      float64 // LU
	ZeroPassed         bool
	ZeroInput          bool
	Blocks             int
}

// State holds the running ITU-R BS.1770 measurement of one interleaved
// stream: the K-weighting filter memories per channel, the energies of the
// four most recent 100 ms sub-blocks and every completed gating block.
//
// A State is owned by one stream and is not safe for concurrent use.
type State struct {
	sampleRate float64
	channels   int
	weights    []float64
	gated      bool

	filters []*biquad.Chain // K-weighting per channel

	step      int
	blockSize int
	sub       [subBlocks]float64
	completed int
	pos       int

	energies []float64
	peaks    []float64
}

// NewState returns a meter for channels interleaved channels at sampleRate.
func NewState(sampleRate float64, channels int, opts ...Option) (*State, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	cfg := ApplyOptions(opts...)
	cfg.SampleRate = sampleRate

	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights(channels)
	}

	if len(weights) != channels {
		return nil, fmt.Errorf("%w: %d weights for %d channels", ErrWeightCount, len(weights), channels)
	}

	filters := make([]*biquad.Chain, channels)
	for ch := range filters {
		k, err := weighting.New(weighting.TypeK, sampleRate)
		if err != nil {
			return nil, err
		}

		filters[ch] = k
	}

	step := max(int(math.Floor(subBlockSeconds*sampleRate)), 1)

	return &State{
		sampleRate: sampleRate,
		channels:   channels,
		weights:    weights,
		gated:      cfg.Gated,
		filters:    filters,
		step:       step,
		blockSize:  subBlocks * step,
		peaks:      make([]float64, channels),
	}, nil
}

// Channels returns the number of interleaved channels.
func (s *State) Channels() int { return s.channels }

// SampleRate returns the rate the state was built for.
func (s *State) SampleRate() float64 { return s.sampleRate }

// BlockSize returns the gating block length in frames.
func (s *State) BlockSize() int { return s.blockSize }

// Process K-weights interleaved frames and accumulates their energy. Each
// completed 100 ms sub-block closes a 400 ms gating block once four
// sub-blocks exist. Frames may be delivered in chunks of any size.
func (s *State) Process(interleaved []float64) error {
	if len(interleaved)%s.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(interleaved), s.channels)
	}

	for f := 0; f < len(interleaved); f += s.channels {
		slot := s.completed % subBlocks

		for ch := range s.channels {
			x := interleaved[f+ch]
			s.peaks[ch] = max(s.peaks[ch], math.Abs(x))

			y := s.filters[ch].ProcessSample(x)
			s.sub[slot] += s.weights[ch] * y * y
		}

		s.pos++
		if s.pos < s.step {
			continue
		}

		s.pos = 0
		s.completed++

		if s.completed >= subBlocks {
			sum := s.sub[0] + s.sub[1] + s.sub[2] + s.sub[3]
			s.energies = append(s.energies, sum/float64(s.blockSize))
		}

		s.sub[s.completed%subBlocks] = 0
	}

	return nil
}

// Momentary returns the loudness of the most recent gating block, or -Inf
// before the first block completes.
func (s *State) Momentary() float64 {
	if len(s.energies) == 0 {
		return math.Inf(-1)
	}

	return toLKFS(s.energies[len(s.energies)-1])
}

// Peaks returns the largest absolute input sample per channel.
func (s *State) Peaks() []float64 {
	return append([]float64(nil), s.peaks...)
}

// Energies returns a copy of the gating block energies.
func (s *State) Energies() []float64 {
	return append([]float64(nil), s.energies...)
}

// Result computes the integrated loudness and loudness range of all blocks
// processed so far. It does not modify the state.
func (s *State) Result() Result {
	res := Result{Blocks: len(s.energies)}

	zeroInput := true
	for _, e := range s.energies {
		if e != 0 {
			zeroInput = false
			break
		}
	}

	abs, n := s.gatedLoudness(absThreshold)
	if zeroInput || n == 0 {
		res.IntegratedLoudness = math.Inf(-1)
		res.ZeroPassed = true
		res.ZeroInput = zeroInput

		return res
	}

	rel := max(abs+relThreshold, absThreshold)

	res.IntegratedLoudness, n = s.gatedLoudness(rel)
	if n == 0 {
		res.IntegratedLoudness = math.Inf(-1)
		res.ZeroPassed = true

		return res
	}

	res.LoudnessRange = s.loudnessRange()

	return res
}

// Reset clears the filter memories, sub-block accumulators, gating blocks
// and peaks.
func (s *State) Reset() {
	for _, f := range s.filters {
		f.Reset()
	}

	clear(s.peaks)

	s.sub = [subBlocks]float64{}
	s.completed = 0
	s.pos = 0
	s.energies = s.energies[:0]
}

// gatedLoudness averages the energies of blocks louder than threshold, or
// of every block in RMS mode, and returns the loudness and block count.
func (s *State) gatedLoudness(threshold float64) (float64, int) {
	sum, n := 0.0, 0

	for _, e := range s.energies {
		if !s.gated || toLKFS(e) > threshold {
			sum += e
			n++
		}
	}

	if n == 0 {
		return math.Inf(-1), 0
	}

	return toLKFS(sum / float64(n)), n
}

func (s *State) loudnessRange() float64 {
	levels := make([]float64, 0, len(s.energies))

	for _, e := range s.energies {
		if l := toLKFS(e + 1e-20); l > absThreshold {
			levels = append(levels, l)
		}
	}

	if len(levels) < 2 {
		return 0
	}

	sort.Float64s(levels)

	n := float64(len(levels))

	return levels[int(math.Floor(lraHigh*n))] - levels[int(math.Floor(lraLow*n))]
}

// Measure runs a fresh State over buffer, which holds channels interleaved
// channels, and returns its result.
func Measure(buffer core.SampleBuffer, channels int, opts ...Option) (Result, error) {
	if err := buffer.Validate(); err != nil {
		return Result{}, fmt.Errorf("loudness: %w", err)
	}

	s, err := NewState(buffer.SampleRate, channels, opts...)
	if err != nil {
		return Result{}, err
	}

	if frames := len(buffer.Samples) / channels; frames < s.blockSize {
		return Result{}, fmt.Errorf("%w: %d frames, need %d", ErrTooShort, frames, s.blockSize)
	}

	chunk := ApplyOptions(opts...).BlockSize * channels

	for off := 0; off < len(buffer.Samples); off += chunk {
		if err := s.Process(buffer.Samples[off:min(off+chunk, len(buffer.Samples))]); err != nil {
			return Result{}, err
		}
	}

	return s.Result(), nil
}

func toLKFS(energy float64) float64 {
	return lkfsOffset + 10*math.Log10(energy)
}
