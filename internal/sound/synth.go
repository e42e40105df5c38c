// Package sound synthesizes the game's sound effects and plays them through
// the system speaker. No audio assets are loaded; every effect is built
// from oscillators and envelopes at startup.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/invaders/internal/invaders"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// voice describes one synthesized layer: a waveform swept linearly from
// startHz to endHz under an attack/release envelope.
type voice struct {
	wave           int
	startHz, endHz float64
	duration       time.Duration
	attack         time.Duration
	release        time.Duration
	gain           float64
}

// effectVoices defines every effect the simulation can request.
var effectVoices = map[invaders.Sound][]voice{
	invaders.SoundShipFire: {
		{wave: waveSquare, startHz: 1200, endHz: 500, duration: 120 * time.Millisecond,
			attack: 2 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.5},
	},
	invaders.SoundAlienFire: {
		{wave: waveSaw, startHz: 700, endHz: 250, duration: 100 * time.Millisecond,
			attack: 2 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.4},
	},
	invaders.SoundAlienDeath: {
		{wave: waveSine, startHz: 420, endHz: 90, duration: 150 * time.Millisecond,
			attack: time.Millisecond, release: 80 * time.Millisecond, gain: 0.6},
		{wave: waveNoise, duration: 60 * time.Millisecond,
			attack: time.Millisecond, release: 50 * time.Millisecond, gain: 0.3},
	},
	invaders.SoundShipDeath: {
		{wave: waveNoise, duration: 500 * time.Millisecond,
			attack: 5 * time.Millisecond, release: 420 * time.Millisecond, gain: 0.7},
		{wave: waveSquare, startHz: 160, endHz: 40, duration: 400 * time.Millisecond,
			attack: 5 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.3},
	},
}

// synthesize renders an effect to mono samples in [-1, 1].
func synthesize(s invaders.Sound, sr beep.SampleRate) []float64 {
	var out []float64
	noise := uint64(0x9E3779B97F4A7C15) // fixed seed: effects sound identical every run
	for _, v := range effectVoices[s] {
		buf := oscillate(v, sr, &noise)
		applyEnvelope(buf, sr.N(v.attack), sr.N(v.release))
		out = mixInto(out, buf, v.gain)
	}
	for i := range out {
		out[i] = math.Max(-1, math.Min(1, out[i]))
	}
	return out
}

func oscillate(v voice, sr beep.SampleRate, noise *uint64) []float64 {
	n := sr.N(v.duration)
	buf := make([]float64, n)
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(max(n-1, 1))
		freq := v.startHz + (v.endHz-v.startHz)*t

		switch v.wave {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1
			} else {
				buf[i] = -1
			}
		case waveSaw:
			buf[i] = 2 * (phase - 0.5)
		case waveNoise:
			*noise = *noise*6364136223846793005 + 1442695040888963407
			buf[i] = float64(*noise>>11)/float64(1<<53)*2 - 1
		}

		phase += freq / float64(sr)
		phase -= math.Floor(phase)
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf []float64, attack, release int) {
	total := len(buf)
	releaseStart := max(total-release, attack)
	for i := range buf {
		vol := 1.0
		if i < attack && attack > 0 {
			vol = float64(i) / float64(attack)
		} else if i >= releaseStart && release > 0 {
			vol = float64(total-i) / float64(release)
		}
		buf[i] *= vol
	}
}

// mixInto adds b scaled by gain into a, extending a if needed.
func mixInto(a, b []float64, gain float64) []float64 {
	if len(b) > len(a) {
		a = append(a, make([]float64, len(b)-len(a))...)
	}
	for i := range b {
		a[i] += b[i] * gain
	}
	return a
}

// sampleStreamer plays a mono buffer on both channels.
type sampleStreamer struct {
	samples []float64
	pos     int
}

func (s *sampleStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.samples) {
		v := s.samples[s.pos]
		samples[n][0], samples[n][1] = v, v
		n++
		s.pos++
	}
	return n, true
}

func (s *sampleStreamer) Err() error { return nil }
