// Package display keeps the grid picture painted by the controller's display messages.
package display

import (
	"log/slog"
	"sync"

	"snake-controller/game/config"
	"snake-controller/game/event"
	"snake-controller/game/types"
)

// Snapshot is a point-in-time copy of the board.
type Snapshot struct {
	Dimension types.Dimension
	Cells     []types.Cell // row major
	Head      types.Position
	Food      types.Position
	Length    int
}

// At returns the cell at p. Positions outside the grid read as Free.
func (s Snapshot) At(p types.Position) types.Cell {
	if !s.Dimension.Contains(p) {
		return types.Free
	}
	return s.Cells[p.Y*s.Dimension.Width+p.X]
}

// Board is the display port. It keeps the grid the controller paints through DisplayUpdate
// messages and is safe to read from a render loop while the session writes to it.
type Board struct {
	mu    sync.RWMutex
	dim   types.Dimension
	cells []types.Cell
	body  []types.Position // tail first
	head  types.Position
	food  types.Position
	eaten bool // the snake covers food and no new food was painted yet

	logger *slog.Logger
}

var _ event.Port = (*Board)(nil)

// NewBoard paints the initial configuration. The controller does not announce it.
func NewBoard(cfg *config.Config, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Board{
		dim:    cfg.Dimension,
		cells:  make([]types.Cell, cfg.Dimension.Area()),
		logger: logger,
	}
	for _, p := range cfg.Segments {
		b.paintSnake(p)
	}
	if b.dim.Contains(cfg.Food) {
		b.cells[b.index(cfg.Food)] = types.Food
	}
	b.food = cfg.Food
	return b
}

// Send applies one DisplayUpdate. A FREE aimed at the body is applied only to the tail; the
// clear of a food cell the snake has already eaten is dropped.
func (b *Board) Send(e event.Event) {
	update, ok := e.(event.DisplayUpdate)
	if !ok {
		b.logger.Warn("display ignored event", "kind", e.Kind())
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := update.Position
	if !b.dim.Contains(p) {
		b.logger.Warn("display update outside grid", "position", p, "value", update.Value)
		return
	}
	i := b.index(p)

	switch update.Value {
	case types.Snake:
		b.paintSnake(p)
	case types.Food:
		if b.cells[i] == types.Snake {
			b.logger.Warn("display food on the snake", "position", p)
			return
		}
		b.cells[i] = types.Food
		b.food = p
		b.eaten = false
	case types.Free:
		if b.cells[i] == types.Snake {
			if b.eaten && p == b.food {
				b.eaten = false
				b.logger.Debug("display kept eaten food cell", "position", p)
				return
			}
			if len(b.body) == 0 || b.body[0] != p {
				b.logger.Debug("display kept body cell", "position", p)
				return
			}
			b.body = b.body[1:]
		}
		b.cells[i] = types.Free
	}
}

// paintSnake grows the body at p. Callers hold the lock or own b.
func (b *Board) paintSnake(p types.Position) {
	if !b.dim.Contains(p) {
		return
	}
	i := b.index(p)
	switch b.cells[i] {
	case types.Snake:
	case types.Food:
		b.eaten = true
		fallthrough
	default:
		b.body = append(b.body, p)
	}
	b.cells[i] = types.Snake
	b.head = p
}

func (b *Board) index(p types.Position) int {
	return p.Y*b.dim.Width + p.X
}

func (b *Board) Dimension() types.Dimension {
	return b.dim
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cells := make([]types.Cell, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{
		Dimension: b.dim,
		Cells:     cells,
		Head:      b.head,
		Food:      b.food,
		Length:    len(b.body),
	}
}
