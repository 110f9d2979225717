package ai

import (
	"log/slog"
	"sync"

	"snake-controller/game/display"
	"snake-controller/game/event"
	"snake-controller/game/types"
)

// Rewards for one step.
const (
	RewardFood    = 1.0
	RewardCloser  = 0.5
	RewardFarther = -0.3
	RewardDanger  = -1.0
	RewardLose    = -1.0
)

// Observer supplies the board the pilot looks at.
type Observer interface {
	Snapshot() display.Snapshot
}

// Pilot steers the snake with a Q-learning table. It learns from the board it observes
// before each tick and from the LoseNotification it receives as a score port.
type Pilot struct {
	board   Observer
	learner *QLearning
	heading types.Direction

	mu       sync.Mutex
	last     *step
	finished bool

	logger *slog.Logger
}

// step remembers the last decision until its outcome is visible.
type step struct {
	state    State
	action   Action
	distance int
	length   int
	danger   bool
}

var _ event.Port = (*Pilot)(nil)

// NewPilot starts steering from heading, which must be the snake's configured heading.
func NewPilot(board Observer, learner *QLearning, heading types.Direction, logger *slog.Logger) *Pilot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pilot{
		board:   board,
		learner: learner,
		heading: heading,
		logger:  logger,
	}
}

// Steer learns from the previous move and chooses the next heading.
func (p *Pilot) Steer() (types.Direction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return 0, false
	}

	snap := p.board.Snapshot()
	state := Observe(snap)
	distance := manhattan(snap.Head, snap.Food)

	if p.last != nil {
		p.learner.Update(p.last.state, p.last.action, p.reward(snap.Length, distance), &state)
	}

	action := p.learner.GetAction(state)
	p.heading = turn(p.heading, action)
	p.last = &step{
		state:    state,
		action:   action,
		distance: distance,
		length:   snap.Length,
		danger:   state.DangerDirs[p.heading],
	}
	return p.heading, true
}

func (p *Pilot) reward(length, distance int) float64 {
	switch {
	case length > p.last.length:
		return RewardFood
	case p.last.danger:
		return RewardDanger
	case distance < p.last.distance:
		return RewardCloser
	case distance > p.last.distance:
		return RewardFarther
	default:
		return 0
	}
}

// Send closes the episode on LoseNotification. Other messages are ignored.
func (p *Pilot) Send(e event.Event) {
	if e.Kind() != event.KindLoseNotification {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	if p.last != nil {
		p.learner.Update(p.last.state, p.last.action, RewardLose, nil)
	}
	p.logger.Info("pilot episode finished", "total_reward", p.learner.TotalReward)
}

// Observe extracts the learner state from a board snapshot. Walls and body cells count as
// danger.
func Observe(snap display.Snapshot) State {
	var s State
	s.FoodDir = [2]int{sign(snap.Food.X - snap.Head.X), sign(snap.Food.Y - snap.Head.Y)}
	for _, d := range types.Directions {
		next := snap.Head.Add(d.Delta())
		s.DangerDirs[d] = !snap.Dimension.Contains(next) || snap.At(next) == types.Snake
	}
	return s
}

func turn(d types.Direction, a Action) types.Direction {
	switch a {
	case TurnLeft:
		return d.TurnLeft()
	case TurnRight:
		return d.TurnRight()
	default:
		return d
	}
}

func manhattan(a, b types.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
