package entity

import (
	"testing"

	"pgregory.net/rapid"

	"snake-controller/game/types"
)

func newBody(heading types.Direction, parts ...types.Position) *Segments {
	s := NewSegments(heading)
	for _, p := range parts {
		s.AddSegment(p)
	}
	return s
}

func TestSegmentsNextHead(t *testing.T) {
	tests := []struct {
		heading types.Direction
		want    types.Position
	}{
		{types.Up, types.Position{X: 5, Y: 4}},
		{types.Down, types.Position{X: 5, Y: 6}},
		{types.Left, types.Position{X: 4, Y: 5}},
		{types.Right, types.Position{X: 6, Y: 5}},
	}
	for _, tt := range tests {
		s := newBody(tt.heading, types.Position{X: 5, Y: 5})
		if got := s.NextHead(); got != tt.want {
			t.Errorf("heading %v: NextHead() = %v, want %v", tt.heading, got, tt.want)
		}
		if s.Len() != 1 || s.Head() != (types.Position{X: 5, Y: 5}) {
			t.Errorf("heading %v: NextHead mutated the body", tt.heading)
		}
	}
}

func TestSegmentsUpdateDirection(t *testing.T) {
	for _, current := range types.Directions {
		for _, requested := range types.Directions {
			s := newBody(current, types.Position{X: 1, Y: 1})
			s.UpdateDirection(requested)

			want := requested
			if requested == current.Opposite() {
				want = current
			}
			if got := s.Heading(); got != want {
				t.Errorf("heading %v, requested %v: got %v, want %v", current, requested, got, want)
			}
		}
	}
}

func TestSegmentsMoveAndCollision(t *testing.T) {
	s := newBody(types.Right,
		types.Position{X: 0, Y: 0},
		types.Position{X: 1, Y: 0},
		types.Position{X: 2, Y: 0},
	)

	if !s.IsCollision(types.Position{X: 1, Y: 0}) {
		t.Error("expected collision with middle segment")
	}
	if s.IsCollision(types.Position{X: 3, Y: 0}) {
		t.Error("unexpected collision ahead of head")
	}

	s.AddHead(s.NextHead())
	if got := s.Head(); got != (types.Position{X: 3, Y: 0}) {
		t.Fatalf("Head() = %v", got)
	}
	if got := s.Tail(); got != (types.Position{X: 0, Y: 0}) {
		t.Fatalf("Tail() = %v", got)
	}
	tail := s.RemoveTail()
	if tail != (types.Position{X: 0, Y: 0}) {
		t.Errorf("RemoveTail() = %v", tail)
	}
	if got := s.Tail(); got != (types.Position{X: 1, Y: 0}) {
		t.Errorf("Tail() after RemoveTail = %v", got)
	}
	if s.IsCollision(tail) {
		t.Error("removed tail still collides")
	}

	want := []types.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	got := s.Positions()
	if len(got) != len(want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Positions() = %v, want %v", got, want)
		}
	}
}

func TestSegmentsRemoveLastTailPanics(t *testing.T) {
	s := newBody(types.Up, types.Position{X: 0, Y: 0})
	defer func() {
		if recover() == nil {
			t.Error("RemoveTail on a single segment did not panic")
		}
	}()
	s.RemoveTail()
}

func TestSegmentsPositionsIsCopy(t *testing.T) {
	s := newBody(types.Up, types.Position{X: 2, Y: 2})
	parts := s.Positions()
	parts[0] = types.Position{X: 9, Y: 9}
	if s.Head() != (types.Position{X: 2, Y: 2}) {
		t.Error("Positions() exposed internal storage")
	}
}

func TestSegmentsHeadingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.SampledFrom(types.Directions[:]).Draw(t, "start")
		requests := rapid.SliceOf(rapid.SampledFrom(types.Directions[:])).Draw(t, "requests")

		s := newBody(start, types.Position{X: 0, Y: 0})
		for _, r := range requests {
			before := s.Heading()
			s.UpdateDirection(r)
			after := s.Heading()
			if r == before.Opposite() && after != before {
				t.Fatalf("reversal %v -> %v was applied", before, r)
			}
			if r != before.Opposite() && after != r {
				t.Fatalf("turn %v -> %v was ignored", before, r)
			}
		}
	})
}

func TestSegmentsLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newBody(types.Right, types.Position{X: 0, Y: 0}, types.Position{X: 1, Y: 0})
		steps := rapid.SliceOf(rapid.Bool()).Draw(t, "grow")

		for _, grow := range steps {
			before := s.Len()
			s.AddHead(s.NextHead())
			if !grow {
				s.RemoveTail()
			}
			if s.Len() < before {
				t.Fatalf("length dropped from %d to %d", before, s.Len())
			}
			if grow && s.Len() != before+1 {
				t.Fatalf("growth step: length %d, want %d", s.Len(), before+1)
			}
		}
	})
}
