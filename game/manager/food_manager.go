package manager

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"snake-controller/game"
	"snake-controller/game/event"
	"snake-controller/game/types"
)

// Poster delivers inbound events back to the controller's dispatcher.
type Poster interface {
	Post(ctx context.Context, e event.Event) error
}

type FoodOption func(*FoodManager)

// WithRelocation makes the food source move the food unprompted every d.
func WithRelocation(d time.Duration) FoodOption {
	return func(fm *FoodManager) {
		fm.relocateEvery = d
	}
}

func WithFoodLogger(logger *slog.Logger) FoodOption {
	return func(fm *FoodManager) {
		if logger != nil {
			fm.logger = logger
		}
	}
}

// FoodManager is the food source. It answers every FoodRequest with a random FoodOffered
// candidate and may relocate the food on its own with FoodPlaced. It does not track the
// snake; the controller rejects occupied candidates and asks again.
type FoodManager struct {
	grid          types.Dimension
	rng           *rand.Rand
	relocateEvery time.Duration

	mu      sync.Mutex
	pending int
	wake    chan struct{}

	logger *slog.Logger
}

var _ event.Port = (*FoodManager)(nil)

func NewFoodManager(grid types.Dimension, rng *rand.Rand, opts ...FoodOption) *FoodManager {
	fm := &FoodManager{
		grid:   grid,
		rng:    rng,
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(fm)
	}
	return fm
}

// Send records a FoodRequest. It never blocks; Run answers queued requests.
func (fm *FoodManager) Send(e event.Event) {
	if e.Kind() != event.KindFoodRequest {
		fm.logger.Warn("food source ignored event", "kind", e.Kind())
		return
	}

	fm.mu.Lock()
	fm.pending++
	fm.mu.Unlock()

	select {
	case fm.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of requests not answered yet.
func (fm *FoodManager) Pending() int {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.pending
}

// Run answers requests through p until ctx ends or p reports the session finished.
func (fm *FoodManager) Run(ctx context.Context, p Poster) error {
	var relocate <-chan time.Time
	if fm.relocateEvery > 0 {
		ticker := time.NewTicker(fm.relocateEvery)
		defer ticker.Stop()
		relocate = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fm.wake:
			if err := fm.answer(ctx, p); err != nil {
				return ignoreFinished(err)
			}
		case <-relocate:
			food := fm.GenerateFood()
			fm.logger.DebugContext(ctx, "relocating food", "position", food)
			if err := p.Post(ctx, event.FoodPlaced{Position: food}); err != nil {
				return ignoreFinished(err)
			}
		}
	}
}

func (fm *FoodManager) answer(ctx context.Context, p Poster) error {
	for {
		fm.mu.Lock()
		if fm.pending == 0 {
			fm.mu.Unlock()
			return nil
		}
		fm.pending--
		fm.mu.Unlock()

		food := fm.GenerateFood()
		fm.logger.DebugContext(ctx, "offering food", "position", food)
		if err := p.Post(ctx, event.FoodOffered{Position: food}); err != nil {
			return err
		}
	}
}

// GenerateFood returns a uniformly random cell inside the grid.
func (fm *FoodManager) GenerateFood() types.Position {
	return types.Position{
		X: fm.rng.Intn(fm.grid.Width),
		Y: fm.rng.Intn(fm.grid.Height),
	}
}

func ignoreFinished(err error) error {
	if errors.Is(err, game.ErrSessionFinished) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
