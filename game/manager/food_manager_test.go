package manager

import (
	"context"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"snake-controller/game"
	"snake-controller/game/event"
	"snake-controller/game/types"
)

type chanPoster struct {
	events chan event.Event
	err    error
}

func (p *chanPoster) Post(ctx context.Context, e event.Event) error {
	if p.err != nil {
		return p.err
	}
	select {
	case p.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestFoodManager_AnswersEveryRequest(t *testing.T) {
	grid := types.Dimension{Width: 8, Height: 6}
	fm := NewFoodManager(grid, rand.New(rand.NewSource(1)))
	poster := &chanPoster{events: make(chan event.Event, 8)}

	// requests queued before Run starts are not lost
	for i := 0; i < 3; i++ {
		fm.Send(event.FoodRequest{})
	}
	if got := fm.Pending(); got != 3 {
		t.Fatalf("Pending() = %d, want 3", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fm.Run(ctx, poster) }()

	for i := 0; i < 3; i++ {
		select {
		case e := <-poster.events:
			offer, ok := e.(event.FoodOffered)
			if !ok {
				t.Fatalf("got %T, want FoodOffered", e)
			}
			if !grid.Contains(offer.Position) {
				t.Fatalf("offer %v outside grid", offer.Position)
			}
		case <-ctx.Done():
			t.Fatalf("only %d offers received", i)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run = %v", err)
	}
}

func TestFoodManager_IgnoresOtherEvents(t *testing.T) {
	fm := NewFoodManager(types.Dimension{Width: 2, Height: 2}, rand.New(rand.NewSource(1)))
	fm.Send(event.ScoreIncrement{})
	if got := fm.Pending(); got != 0 {
		t.Fatalf("Pending() = %d after unrelated event", got)
	}
}

func TestFoodManager_Relocates(t *testing.T) {
	grid := types.Dimension{Width: 5, Height: 5}
	fm := NewFoodManager(grid, rand.New(rand.NewSource(3)), WithRelocation(5*time.Millisecond))
	poster := &chanPoster{events: make(chan event.Event, 1)}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go fm.Run(ctx, poster)

	select {
	case e := <-poster.events:
		placed, ok := e.(event.FoodPlaced)
		if !ok {
			t.Fatalf("got %T, want FoodPlaced", e)
		}
		if !grid.Contains(placed.Position) {
			t.Fatalf("placed %v outside grid", placed.Position)
		}
	case <-ctx.Done():
		t.Fatal("no relocation posted")
	}
}

func TestFoodManager_StopsWhenSessionFinished(t *testing.T) {
	fm := NewFoodManager(types.Dimension{Width: 5, Height: 5}, rand.New(rand.NewSource(3)))
	poster := &chanPoster{err: game.ErrSessionFinished}
	fm.Send(event.FoodRequest{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := fm.Run(ctx, poster); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run only returned on context timeout")
	}
}

func TestGenerateFood_CoversGrid(t *testing.T) {
	grid := types.Dimension{Width: 3, Height: 2}
	fm := NewFoodManager(grid, rand.New(rand.NewSource(42)))

	seen := make(map[types.Position]bool)
	for i := 0; i < 500; i++ {
		p := fm.GenerateFood()
		if !grid.Contains(p) {
			t.Fatalf("GenerateFood() = %v outside grid", p)
		}
		seen[p] = true
	}
	if len(seen) != grid.Area() {
		t.Fatalf("visited %d of %d cells", len(seen), grid.Area())
	}
}
