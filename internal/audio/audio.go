// Package audio plays the short sounds of the game.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	bumpFrequency = 90.0
	bumpDuration  = 120 * time.Millisecond
	// BumpCooldown is the minimum time between two bump sounds.
	BumpCooldown = 250 * time.Millisecond
)

// Sounds owns the speaker and mixes the effects into it.
type Sounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastBump    time.Time

	now func() time.Time
}

func New() *Sounds {
	return &Sounds{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Init opens the audio device. The game stays silent when it fails.
func (s *Sounds) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.New("opening audio device failed").Wrap(err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Bump plays the wall bump thud unless one played very recently. It reports
// whether a sound was queued.
func (s *Sounds) Bump() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastBump) < BumpCooldown {
		return false
	}
	s.lastBump = now

	if !s.initialized {
		return false
	}
	speaker.Lock()
	s.mixer.Add(newThud(sampleRate, bumpFrequency, bumpDuration))
	speaker.Unlock()
	return true
}

// Close silences everything still playing.
func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	s.initialized = false
}

// thud is a sine that fades out exponentially.
type thud struct {
	freq     float64
	rate     beep.SampleRate
	length   int
	position int
}

func newThud(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return beep.Take(rate.N(d), &thud{freq: freq, rate: rate, length: rate.N(d)})
}

func (t *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		p := float64(t.position)
		env := math.Exp(-5 * p / float64(t.length))
		v := 0.6 * env * math.Sin(2*math.Pi*t.freq*p/float64(t.rate))
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *thud) Err() error { return nil }
