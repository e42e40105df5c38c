package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/invaders/internal/invaders"
)

const sampleRate = beep.SampleRate(44100)

// Player plays synthesized effects through the speaker. Play never blocks
// on audio; effects are mixed in by the speaker's own goroutine.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	cache  map[invaders.Sound][]float64
	open   bool
}

// New initializes the speaker and starts an empty mixer on it.
// volume is linear in [0, 1].
func New(volume float64) (*Player, error) {
	p := newPlayer(volume)
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.open = true
	return p, nil
}

func newPlayer(volume float64) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
		cache:  make(map[invaders.Sound][]float64, len(effectVoices)),
	}
	for s := range effectVoices {
		p.cache[s] = synthesize(s, sampleRate)
	}
	return p
}

// Play implements invaders.SoundPlayer.
func (p *Player) Play(s invaders.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return
	}
	st := p.streamer(s)
	if st == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(st)
	speaker.Unlock()
}

// streamer builds a fresh volume-scaled stream for s.
func (p *Player) streamer(s invaders.Sound) beep.Streamer {
	samples, ok := p.cache[s]
	if !ok {
		return nil
	}
	src := &sampleStreamer{samples: samples}
	if p.volume <= 0 {
		return &effects.Volume{Streamer: src, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: src, Base: 2, Volume: math.Log2(p.volume)}
}

// Close silences all effects in flight and stops accepting new ones.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.open = false
}

var _ invaders.SoundPlayer = (*Player)(nil)
