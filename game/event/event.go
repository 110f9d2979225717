// Package event defines the messages exchanged between the controller and its collaborators.
//
// Inbound events (TimeoutTick, DirectionChange, FoodPlaced, FoodOffered) are delivered to the
// controller one at a time. Outbound events (DisplayUpdate, ScoreIncrement, LoseNotification,
// FoodRequest) are sent by the controller through a Port.
package event

import (
	"fmt"

	"snake-controller/game/types"
)

// Kind is the message discriminant.
type Kind uint8

const (
	KindUnknown Kind = iota

	// inbound
	KindTimeoutTick
	KindDirectionChange
	KindFoodPlaced
	KindFoodOffered

	// outbound
	KindDisplayUpdate
	KindScoreIncrement
	KindLoseNotification
	KindFoodRequest
)

func (k Kind) String() string {
	switch k {
	case KindTimeoutTick:
		return "TimeoutTick"
	case KindDirectionChange:
		return "DirectionChange"
	case KindFoodPlaced:
		return "FoodPlaced"
	case KindFoodOffered:
		return "FoodOffered"
	case KindDisplayUpdate:
		return "DisplayUpdate"
	case KindScoreIncrement:
		return "ScoreIncrement"
	case KindLoseNotification:
		return "LoseNotification"
	case KindFoodRequest:
		return "FoodRequest"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Inbound reports whether the controller accepts events of this kind.
func (k Kind) Inbound() bool {
	return k >= KindTimeoutTick && k <= KindFoodOffered
}

// Event is the closed set of messages. Only types in this package implement it.
type Event interface {
	Kind() Kind
	sealed()
}

// TimeoutTick is one clock-driven movement step.
type TimeoutTick struct{}

// DirectionChange requests a new heading, applied on the next tick.
type DirectionChange struct {
	Direction types.Direction
}

// FoodPlaced is an unsolicited relocation of the food.
type FoodPlaced struct {
	Position types.Position
}

// FoodOffered answers a FoodRequest with a candidate cell.
type FoodOffered struct {
	Position types.Position
}

// DisplayUpdate sets a single cell on the display.
type DisplayUpdate struct {
	Position types.Position
	Value    types.Cell
}

type ScoreIncrement struct{}

type LoseNotification struct{}

type FoodRequest struct{}

func (TimeoutTick) Kind() Kind      { return KindTimeoutTick }
func (DirectionChange) Kind() Kind  { return KindDirectionChange }
func (FoodPlaced) Kind() Kind       { return KindFoodPlaced }
func (FoodOffered) Kind() Kind      { return KindFoodOffered }
func (DisplayUpdate) Kind() Kind    { return KindDisplayUpdate }
func (ScoreIncrement) Kind() Kind   { return KindScoreIncrement }
func (LoseNotification) Kind() Kind { return KindLoseNotification }
func (FoodRequest) Kind() Kind      { return KindFoodRequest }

func (TimeoutTick) sealed()      {}
func (DirectionChange) sealed()  {}
func (FoodPlaced) sealed()       {}
func (FoodOffered) sealed()      {}
func (DisplayUpdate) sealed()    {}
func (ScoreIncrement) sealed()   {}
func (LoseNotification) sealed() {}
func (FoodRequest) sealed()      {}

func (e DirectionChange) String() string {
	return fmt.Sprintf("DirectionChange(%v)", e.Direction)
}

func (e FoodPlaced) String() string {
	return fmt.Sprintf("FoodPlaced%v", e.Position)
}

func (e FoodOffered) String() string {
	return fmt.Sprintf("FoodOffered%v", e.Position)
}

func (e DisplayUpdate) String() string {
	return fmt.Sprintf("DisplayUpdate(%v, %v)", e.Position, e.Value)
}
