// Package wavio moves PCM WAV files in and out of the engine's float
// buffers.
package wavio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

const pcmFormat = 1

// Errors returned by the WAV adapter.
var (
	ErrInvalidFile         = fmt.Errorf("wavio: not a valid WAV file: %w", core.ErrInvalidParameter)
	ErrUnsupportedFormat   = fmt.Errorf("wavio: only integer PCM is supported: %w", core.ErrInvalidParameter)
	ErrUnsupportedBitDepth = fmt.Errorf("wavio: bit depth must be 16, 24 or 32: %w", core.ErrInvalidParameter)
	ErrChannel             = fmt.Errorf("wavio: channel out of range: %w", core.ErrInvalidParameter)
	ErrFrameMismatch       = fmt.Errorf("wavio: sample count is not a multiple of the channel count: %w", core.ErrInvalidParameter)
)

// Audio is an interleaved multichannel signal normalized to [-1, 1).
type Audio struct {
	Samples    []float64
	Channels   int
	SampleRate float64
	BitDepth   int
}

// Frames returns the number of sample frames.
func (a Audio) Frames() int {
	if a.Channels <= 0 {
		return 0
	}

	return len(a.Samples) / a.Channels
}

// Buffer returns the interleaved samples as one buffer, the layout the
// loudness meter consumes.
func (a Audio) Buffer() core.SampleBuffer {
	return core.NewSampleBuffer(a.Samples, a.SampleRate)
}

// Channel returns a copy of channel ch.
func (a Audio) Channel(ch int) (core.SampleBuffer, error) {
	if ch < 0 || ch >= a.Channels {
		return core.SampleBuffer{}, fmt.Errorf("%w: %d of %d", ErrChannel, ch, a.Channels)
	}

	out := make([]float64, a.Frames())
	for i := range out {
		out[i] = a.Samples[i*a.Channels+ch]
	}

	return core.NewSampleBuffer(out, a.SampleRate), nil
}

func checkBitDepth(bits int) error {
	switch bits {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
}

// Decode reads a whole PCM WAV stream.
func Decode(r io.ReadSeeker) (Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Audio{}, ErrInvalidFile
	}

	if dec.WavAudioFormat != pcmFormat {
		return Audio{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if err := checkBitDepth(bits); err != nil {
		return Audio{}, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Audio{}, fmt.Errorf("wavio: read PCM: %w", err)
	}

	scale := 1 / math.Ldexp(1, bits-1)

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * scale
	}

	return Audio{
		Samples:    samples,
		Channels:   buf.Format.NumChannels,
		SampleRate: float64(buf.Format.SampleRate),
		BitDepth:   bits,
	}, nil
}

// Encode writes a as integer PCM. Samples outside [-1, 1) are clipped.
func Encode(w io.WriteSeeker, a Audio) error {
	if err := checkBitDepth(a.BitDepth); err != nil {
		return err
	}

	if a.Channels <= 0 || a.SampleRate <= 0 {
		return fmt.Errorf("wavio: %d channels at %v Hz: %w", a.Channels, a.SampleRate, core.ErrInvalidParameter)
	}

	if len(a.Samples)%a.Channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrFrameMismatch, len(a.Samples), a.Channels)
	}

	full := math.Ldexp(1, a.BitDepth-1)

	data := make([]int, len(a.Samples))
	for i, v := range a.Samples {
		data[i] = int(core.Clamp(math.Round(v*full), -full, full-1))
	}

	rate := int(math.Round(a.SampleRate))

	enc := wav.NewEncoder(w, rate, a.BitDepth, a.Channels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: a.Channels,
			SampleRate:  rate,
		},
		Data:           data,
		SourceBitDepth: a.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}

	return enc.Close()
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return Audio{}, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile encodes a to path, replacing any existing file.
func WriteFile(path string, a Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	if err := Encode(f, a); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Mono wraps a single-channel buffer for encoding.
func Mono(b core.SampleBuffer, bitDepth int) Audio {
	return Audio{Samples: b.Samples, Channels: 1, SampleRate: b.SampleRate, BitDepth: bitDepth}
}
