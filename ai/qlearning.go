package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/rand"
)

// Action is a turn relative to the current heading.
type Action int

const (
	TurnLeft Action = iota
	Straight
	TurnRight
)

var actions = [...]Action{TurnLeft, Straight, TurnRight}

// preference orders actions for tie breaking.
var preference = [...]Action{Straight, TurnLeft, TurnRight}

func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "left"
	case Straight:
		return "straight"
	case TurnRight:
		return "right"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// State is what the learner sees of the board.
type State struct {
	FoodDir    [2]int  // sign of the food offset from the head (x, y)
	DangerDirs [4]bool // danger next to the head, indexed by types.Direction
}

// Key encodes s as a Q-table key such as "1,-1,0100".
func (s State) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.FoodDir[0]))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(s.FoodDir[1]))
	b.WriteByte(',')
	for _, d := range s.DangerDirs {
		if d {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

type QTable map[string]map[Action]float64

type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64

	rng *rand.Rand
	mu  sync.RWMutex
}

func NewQLearning(rng *rand.Rand) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rng,
	}
}

// GetAction picks a random action with probability Epsilon and the best known one otherwise.
func (q *QLearning) GetAction(state State) Action {
	if q.rng.Float64() < q.Epsilon {
		return actions[q.rng.Intn(len(actions))]
	}
	return q.BestAction(state)
}

// BestAction returns the highest valued action. Ties prefer going straight.
func (q *QLearning) BestAction(state State) Action {
	q.mu.RLock()
	defer q.mu.RUnlock()

	values := q.QTable[state.Key()]
	best := Straight
	bestValue := math.Inf(-1)
	for _, a := range preference {
		if values[a] > bestValue {
			bestValue = values[a]
			best = a
		}
	}
	return best
}

// Update applies one Q-learning step. A nil next marks a terminal transition.
func (q *QLearning) Update(state State, action Action, reward float64, next *State) {
	q.mu.Lock()
	defer q.mu.Unlock()

	values := q.row(state.Key())

	future := 0.0
	if next != nil {
		nextValues := q.row(next.Key())
		future = math.Inf(-1)
		for _, a := range actions {
			future = math.Max(future, nextValues[a])
		}
	}

	current := values[action]
	values[action] = current + q.LearningRate*(reward+q.Discount*future-current)
	q.TotalReward += reward
}

// Value returns the stored value of action in state.
func (q *QLearning) Value(state State, action Action) float64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.QTable[state.Key()][action]
}

func (q *QLearning) row(key string) map[Action]float64 {
	values, ok := q.QTable[key]
	if !ok {
		values = make(map[Action]float64, len(actions))
		for _, a := range actions {
			values[a] = 0
		}
		q.QTable[key] = values
	}
	return values
}

// SaveQTable writes the table as JSON, creating the directory if needed.
func (q *QLearning) SaveQTable(filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	q.mu.RLock()
	data, err := json.MarshalIndent(q.QTable, "", "  ")
	q.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding q-table: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadQTable replaces the table with the file contents. A missing file leaves it unchanged.
func (q *QLearning) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("decoding %s: %w", filename, err)
	}

	q.mu.Lock()
	q.QTable = table
	q.mu.Unlock()
	return nil
}
