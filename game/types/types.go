package types

import "fmt"

// Position is a grid cell coordinate. The y axis grows downward.
type Position struct {
	X int
	Y int
}

// Add returns the position shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dimension represents the game grid extent
type Dimension struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid.
func (d Dimension) Contains(p Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// Area returns the number of cells in the grid.
func (d Dimension) Area() int {
	return d.Width * d.Height
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every heading in declaration order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta converts a Direction into a unit step
func (d Direction) Delta() Position {
	switch d {
	case Up:
		return Position{X: 0, Y: -1}
	case Down:
		return Position{X: 0, Y: 1}
	case Left:
		return Position{X: -1, Y: 0}
	case Right:
		return Position{X: 1, Y: 0}
	default:
		return Position{}
	}
}

// TurnLeft returns the heading after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the heading after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

// Letter returns the single-letter code used by the configuration text.
func (d Direction) Letter() byte {
	switch d {
	case Up:
		return 'U'
	case Down:
		return 'D'
	case Left:
		return 'L'
	case Right:
		return 'R'
	default:
		return '?'
	}
}

// ParseDirection decodes a U/D/L/R letter.
func ParseDirection(c byte) (Direction, bool) {
	switch c {
	case 'U':
		return Up, true
	case 'D':
		return Down, true
	case 'L':
		return Left, true
	case 'R':
		return Right, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Cell is the value the display shows for a grid position.
type Cell uint8

const (
	Free Cell = iota
	Snake
	Food
)

func (c Cell) String() string {
	switch c {
	case Free:
		return "free"
	case Snake:
		return "snake"
	case Food:
		return "food"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Rune returns the glyph used by text front ends.
func (c Cell) Rune() rune {
	switch c {
	case Snake:
		return '█'
	case Food:
		return '●'
	default:
		return ' '
	}
}

// Game constants
const (
	FoodSpawnCycles = 30 // Ticks between unsolicited food relocations
	MinSnakeLength  = 1
	MaxGridSide     = 1024
)
