package main

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/wavio"
	timestats "github.com/maredm/dunkadunka.se-sub000/stats/time"
)

// dcWarnLevel is the mean offset above which a capture is flagged.
const dcWarnLevel = 0.01

var octaveCentres = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// bands returns the octave centres inside [low, high].
func bands(low, high float64) []float64 {
	var out []float64

	for _, f := range octaveCentres {
		if f >= low && f <= high {
			out = append(out, f)
		}
	}

	return out
}

func hz(f float64) string {
	if f >= 1000 {
		return fmt.Sprintf("%gk", f/1000)
	}

	return fmt.Sprintf("%g", f)
}

func (g *Globals) inspect(path string, a wavio.Audio) {
	for ch := range a.Channels {
		buf, err := a.Channel(ch)
		if err != nil {
			return
		}

		st := timestats.Calculate(buf.Samples)
		fields := logrus.Fields{
			"file":    path,
			"channel": ch,
			"seconds": st.Duration(a.SampleRate),
			"peak_db": st.Peak_dB,
			"rms_db":  st.RMS_dB,
		}

		g.Log.WithFields(fields).Info("capture loaded")

		if st.IsClipped() {
			g.Log.WithFields(fields).WithField("clipped", st.Clipped).Warn("capture clips")
		}

		if math.Abs(st.DC) > dcWarnLevel {
			g.Log.WithFields(fields).WithField("dc", st.DC).Warn("capture has a DC offset")
		}
	}
}

// load reads a WAV file and logs the level of each channel.
func (g *Globals) load(path string) (wavio.Audio, error) {
	a, err := wavio.ReadFile(path)
	if err != nil {
		return wavio.Audio{}, err
	}

	g.inspect(path, a)

	return a, nil
}

// capture reads one channel of a WAV file.
func (g *Globals) capture(path string, ch int) (core.SampleBuffer, error) {
	a, err := g.load(path)
	if err != nil {
		return core.SampleBuffer{}, err
	}

	return a.Channel(ch)
}
