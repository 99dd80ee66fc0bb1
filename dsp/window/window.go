// Package window provides the tapering windows used to isolate impulse
// responses and harmonic components.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTukey
	TypeGamma
)

// Types lists every supported window in declaration order.
var Types = []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeTukey, TypeGamma}

// String returns the window name.
func (t Type) String() string {
	return Info(t).Name
}

// Parse resolves a window by its case-insensitive name. "hanning" is accepted
// as an alias for Hann.
func Parse(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "hanning" {
		return TypeHann, nil
	}

	for _, t := range Types {
		if strings.ToLower(Info(t).Name) == n {
			return t, nil
		}
	}

	return TypeRectangular, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Slope controls which edge(s) of the window are tapered.
type Slope int

const (
	SlopeSymmetric Slope = iota
	SlopeLeft
	SlopeRight
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name         string
	ENBW         float64
	CoherentGain float64
	// CorrectionFactor is the amplitude factor a windowed capture is divided
	// by to bring its peak level back to that of a rectangular window.
	CorrectionFactor float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular: {Name: "Rectangular", ENBW: 1, CoherentGain: 1, CorrectionFactor: 1},
	TypeHann:        {Name: "Hann", ENBW: 1.5, CoherentGain: 0.5, CorrectionFactor: 2},
	TypeHamming:     {Name: "Hamming", ENBW: 1.3628, CoherentGain: 0.54, CorrectionFactor: 1.852},
	TypeBlackman:    {Name: "Blackman", ENBW: 1.7268, CoherentGain: 0.42, CorrectionFactor: 2.381},
	TypeTukey:       {Name: "Tukey", ENBW: 1.2227, CoherentGain: 0.75, CorrectionFactor: 1.333},
	TypeGamma:       {Name: "Gamma", CorrectionFactor: 1.878},
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

const (
	defaultTukeyAlpha = 0.5
	gammaAlpha        = 2
	gammaExponent     = 0.5
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
	slope    Slope
	correct  bool
}

func defaultConfig() config {
	return config{
		alpha: defaultTukeyAlpha,
		slope: SlopeSymmetric,
	}
}

// WithAlpha sets the taper fraction of the Tukey window (0 rectangular,
// 1 Hann).
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 1 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithSlope configures edge tapering mode.
func WithSlope(s Slope) Option {
	return func(c *config) {
		c.slope = s
	}
}

// WithCorrection divides the coefficients by the window's amplitude
// correction factor.
func WithCorrection() Option {
	return func(c *config) {
		c.correct = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	if t == TypeGamma && cfg.slope == SlopeSymmetric {
		normalizePeak(out)
	}

	if cfg.correct {
		if f := Info(t).CorrectionFactor; f > 0 {
			for i := range out {
				out[i] /= f
			}
		}
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{Name: "Unknown"}
}

// Tukey returns Tukey window coefficients.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha < 0 || alpha > 1 {
		return nil, validateTukey(size, alpha)
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, ErrZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, ErrMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch cfg.slope {
	case SlopeLeft:
		if x >= 0.5 {
			return 1
		}
	case SlopeRight:
		if x <= 0.5 {
			return 1
		}
	}

	x = math.Max(0, math.Min(1, x))

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeGamma:
		return math.Pow(x, gammaAlpha) * math.Pow(1-x, gammaExponent)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	if x > 0.5 {
		x = 1 - x
	}

	if x < alpha/2 {
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	}

	return 1
}

func normalizePeak(coeffs []float64) {
	peak := 0.0
	for _, v := range coeffs {
		peak = math.Max(peak, v)
	}

	if peak == 0 {
		return
	}

	for i := range coeffs {
		coeffs[i] /= peak
	}
}
