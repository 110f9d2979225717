package ui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-controller/game/event"
)

const sampleRate = beep.SampleRate(48000)

const (
	scoreToneHz   = 880
	loseToneHz    = 110
	scoreDuration = 80 * time.Millisecond
	loseDuration  = 400 * time.Millisecond
)

// Sound forwards score messages to the wrapped port and plays a short tone for each one.
// Without an initialized speaker it only forwards.
type Sound struct {
	inner event.Port

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *slog.Logger
}

var _ event.Port = (*Sound)(nil)

func NewSound(inner event.Port, logger *slog.Logger) *Sound {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sound{
		inner:  inner,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the audio device.
func (s *Sound) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

func (s *Sound) Send(e event.Event) {
	s.inner.Send(e)

	switch e.Kind() {
	case event.KindScoreIncrement:
		s.play(scoreToneHz, scoreDuration)
	case event.KindLoseNotification:
		s.play(loseToneHz, loseDuration)
	}
}

func (s *Sound) play(freq float64, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		s.logger.Warn("tone generation failed", "freq", freq, "err", err)
		return
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), tone),
		Base:     2,
		Volume:   -2,
	}

	speaker.Lock()
	s.mixer.Add(quiet)
	speaker.Unlock()
}
