package game

import (
	"errors"
	"fmt"
	"log/slog"

	"snake-controller/game/config"
	"snake-controller/game/entity"
	"snake-controller/game/event"
	"snake-controller/game/types"
)

// ErrUnexpectedEvent is returned by Receive for any event that is not one of the four
// inbound kinds.
var ErrUnexpectedEvent = errors.New("unexpected event received")

type Option func(*Controller)

// WithLogger sets the logger used for event tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the world and the snake body and turns each inbound event into state
// changes and outbound messages. It is not safe for concurrent use; deliver events from
// one goroutine.
type Controller struct {
	displayPort event.Port
	foodPort    event.Port
	scorePort   event.Port

	world    *entity.World
	segments *entity.Segments

	logger *slog.Logger
}

// NewController parses the configuration text and builds a controller. Nothing is sent to
// any port during construction.
func NewController(displayPort, foodPort, scorePort event.Port, text string, opts ...Option) (*Controller, error) {
	cfg, err := config.Parse(text)
	if err != nil {
		return nil, err
	}
	return NewControllerFromConfig(displayPort, foodPort, scorePort, cfg, opts...)
}

// NewControllerFromConfig builds a controller from an already parsed configuration.
func NewControllerFromConfig(displayPort, foodPort, scorePort event.Port, cfg *config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	segments := entity.NewSegments(cfg.Heading)
	for _, p := range cfg.Segments {
		segments.AddSegment(p)
	}

	c := &Controller{
		displayPort: displayPort,
		foodPort:    foodPort,
		scorePort:   scorePort,
		world:       entity.NewWorld(cfg.Dimension, cfg.Food),
		segments:    segments,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Receive processes one inbound event to completion.
func (c *Controller) Receive(e event.Event) error {
	switch ev := e.(type) {
	case event.TimeoutTick:
		c.handleTimeout()
	case event.DirectionChange:
		c.segments.UpdateDirection(ev.Direction)
	case event.FoodPlaced:
		c.updateFoodPosition(ev.Position, c.sendClearOldFood)
	case event.FoodOffered:
		c.updateFoodPosition(ev.Position, func() {})
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, describe(e))
	}

	c.logger.Debug("event handled", "kind", e.Kind(), "head", c.segments.Head(), "length", c.segments.Len())
	return nil
}

// State returns the current world and body as a configuration.
func (c *Controller) State() *config.Config {
	return &config.Config{
		Dimension: c.world.Dimension(),
		Food:      c.world.FoodPosition(),
		Heading:   c.segments.Heading(),
		Segments:  c.segments.Positions(),
	}
}

func (c *Controller) handleTimeout() {
	newHead := c.segments.NextHead()
	c.updateSegmentsIfSuccessfulMove(newHead)
}

func (c *Controller) updateSegmentsIfSuccessfulMove(newHead types.Position) {
	if c.segments.IsCollision(newHead) || !c.world.Contains(newHead) {
		c.logger.Info("snake lost", "head", newHead, "length", c.segments.Len())
		c.scorePort.Send(event.LoseNotification{})
		return
	}

	c.addHeadSegment(newHead)
	c.removeTailSegmentIfNotScored(newHead)
}

func (c *Controller) addHeadSegment(p types.Position) {
	c.segments.AddHead(p)
	c.displayPort.Send(event.DisplayUpdate{Position: p, Value: types.Snake})
}

func (c *Controller) removeTailSegmentIfNotScored(head types.Position) {
	if head == c.world.FoodPosition() {
		c.scorePort.Send(event.ScoreIncrement{})
		c.foodPort.Send(event.FoodRequest{})
		return
	}

	tail := c.segments.RemoveTail()
	c.displayPort.Send(event.DisplayUpdate{Position: tail, Value: types.Free})
}

// updateFoodPosition places food at p unless p is on the body, in which case another
// candidate is requested. clearOld runs only when the placement is accepted.
func (c *Controller) updateFoodPosition(p types.Position, clearOld func()) {
	if c.segments.IsCollision(p) {
		c.foodPort.Send(event.FoodRequest{})
		return
	}

	clearOld()
	c.sendPlaceNewFood(p)
}

func (c *Controller) sendClearOldFood() {
	c.displayPort.Send(event.DisplayUpdate{Position: c.world.FoodPosition(), Value: types.Free})
}

func (c *Controller) sendPlaceNewFood(p types.Position) {
	c.world.SetFoodPosition(p)
	c.displayPort.Send(event.DisplayUpdate{Position: p, Value: types.Food})
}

func describe(e event.Event) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T (%v)", e, e.Kind())
}
