package entity

import (
	"fmt"

	"snake-controller/game/types"
)

// Segments is the snake body, ordered from tail (index 0) to head (last index).
type Segments struct {
	body    []types.Position
	heading types.Direction
}

func NewSegments(heading types.Direction) *Segments {
	return &Segments{
		body:    make([]types.Position, 0, 16),
		heading: heading,
	}
}

// AddSegment appends p while the initial body is being loaded.
func (s *Segments) AddSegment(p types.Position) {
	s.body = append(s.body, p)
}

// AddHead grows the body by one cell at the head end.
func (s *Segments) AddHead(p types.Position) {
	s.body = append(s.body, p)
}

// RemoveTail drops the tail cell and returns it.
// The body must hold at least two segments.
func (s *Segments) RemoveTail() types.Position {
	if len(s.body) < 2 {
		panic(fmt.Sprintf("entity: RemoveTail on a body of %d segments", len(s.body)))
	}
	tail := s.body[0]
	s.body = s.body[1:]
	return tail
}

// NextHead returns the cell the head moves into on the next step.
func (s *Segments) NextHead() types.Position {
	return s.Head().Add(s.heading.Delta())
}

// UpdateDirection changes the heading unless dir reverses it.
func (s *Segments) UpdateDirection(dir types.Direction) {
	if !dir.Valid() || dir == s.heading.Opposite() {
		return
	}
	s.heading = dir
}

// IsCollision reports whether p is occupied by any segment.
func (s *Segments) IsCollision(p types.Position) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}

func (s *Segments) Head() types.Position {
	return s.body[len(s.body)-1]
}

func (s *Segments) Tail() types.Position {
	return s.body[0]
}

func (s *Segments) Heading() types.Direction {
	return s.heading
}

func (s *Segments) Len() int {
	return len(s.body)
}

// Positions returns a copy of the body, tail first.
func (s *Segments) Positions() []types.Position {
	body := make([]types.Position, len(s.body))
	copy(body, s.body)
	return body
}
