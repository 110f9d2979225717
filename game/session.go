package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"snake-controller/game/event"
	"snake-controller/game/types"
)

// ErrSessionFinished is returned by Post once the snake has lost.
var ErrSessionFinished = errors.New("session finished")

const defaultInboxSize = 64

// Steerer is an input source asked for a heading right before every clock tick.
type Steerer interface {
	Steer() (types.Direction, bool)
}

type SessionOption func(*Session)

// WithSteerer makes the session ask st for a DirectionChange before each clock tick.
func WithSteerer(st Steerer) SessionOption {
	return func(s *Session) {
		s.steerer = st
	}
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session delivers events to a Controller one at a time, in arrival order, and drives the
// movement clock. Post may be called from any goroutine.
type Session struct {
	interval time.Duration
	steerer  Steerer

	inbox      chan event.Event
	done       chan struct{}
	finishOnce sync.Once

	ticks  int
	logger *slog.Logger
}

// NewSession creates a session ticking every interval. A non-positive interval disables the
// clock; ticks then arrive only through Post.
func NewSession(interval time.Duration, opts ...SessionOption) *Session {
	s := &Session{
		interval: interval,
		inbox:    make(chan event.Event, defaultInboxSize),
		done:     make(chan struct{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post queues an inbound event for delivery.
func (s *Session) Post(ctx context.Context, e event.Event) error {
	select {
	case <-s.done:
		return ErrSessionFinished
	default:
	}

	select {
	case s.inbox <- e:
		return nil
	case <-s.done:
		return ErrSessionFinished
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScorePort wraps the score sink so the session ends when a LoseNotification goes out.
func (s *Session) ScorePort(inner event.Port) event.Port {
	return event.PortFunc(func(e event.Event) {
		inner.Send(e)
		if e.Kind() == event.KindLoseNotification {
			s.finish()
		}
	})
}

// Done is closed once the session has finished.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Run delivers events to c until the snake loses, the context ends or c reports an
// unexpected event. Losing is a normal end and returns nil.
func (s *Session) Run(ctx context.Context, c *Controller) error {
	var clock <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		clock = ticker.C
	}

	s.logger.InfoContext(ctx, "session started", "interval", s.interval)

	for {
		var err error
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session stopped", "reason", ctx.Err(), "ticks", s.ticks)
			return nil
		case <-s.done:
			s.logger.InfoContext(ctx, "session finished", "ticks", s.ticks)
			return nil
		case e := <-s.inbox:
			err = s.deliver(c, e)
		case <-clock:
			err = s.tick(c)
		}

		if err != nil {
			s.logger.ErrorContext(ctx, "session aborted", "err", err)
			s.finish()
			return err
		}
		if s.Finished() {
			s.logger.InfoContext(ctx, "session finished", "ticks", s.ticks)
			return nil
		}
	}
}

func (s *Session) tick(c *Controller) error {
	if s.steerer != nil {
		if dir, ok := s.steerer.Steer(); ok {
			if err := s.deliver(c, event.DirectionChange{Direction: dir}); err != nil {
				return err
			}
		}
	}
	return s.deliver(c, event.TimeoutTick{})
}

func (s *Session) deliver(c *Controller, e event.Event) error {
	if s.Finished() {
		return nil
	}
	if e != nil && e.Kind() == event.KindTimeoutTick {
		s.ticks++
	}
	return c.Receive(e)
}

func (s *Session) finish() {
	s.finishOnce.Do(func() {
		close(s.done)
	})
}
