package entity

import "snake-controller/game/types"

// World holds the grid extent and the current food cell.
// Callers keep the food inside the grid; World does not check it.
type World struct {
	dimension types.Dimension
	food      types.Position
}

func NewWorld(dimension types.Dimension, food types.Position) *World {
	return &World{
		dimension: dimension,
		food:      food,
	}
}

func (w *World) Dimension() types.Dimension {
	return w.dimension
}

func (w *World) SetFoodPosition(p types.Position) {
	w.food = p
}

func (w *World) FoodPosition() types.Position {
	return w.food
}

// Contains reports whether p lies inside the grid
func (w *World) Contains(p types.Position) bool {
	return w.dimension.Contains(p)
}
