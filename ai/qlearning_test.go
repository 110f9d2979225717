package ai

import (
	"math"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"
)

func newLearner(epsilon float64) *QLearning {
	q := NewQLearning(rand.New(rand.NewSource(1)))
	q.Epsilon = epsilon
	return q
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStateKey(t *testing.T) {
	s := State{FoodDir: [2]int{1, -1}, DangerDirs: [4]bool{false, true, false, false}}
	if got := s.Key(); got != "1,-1,0100" {
		t.Fatalf("Key() = %q", got)
	}
}

func TestBestAction_PrefersStraightOnTies(t *testing.T) {
	q := newLearner(0)
	if got := q.BestAction(State{}); got != Straight {
		t.Fatalf("BestAction on unknown state = %v", got)
	}
}

func TestUpdate(t *testing.T) {
	q := newLearner(0)
	s1 := State{FoodDir: [2]int{1, 0}}
	s2 := State{FoodDir: [2]int{0, 1}}

	q.Update(s1, TurnRight, 1, nil)
	if got := q.Value(s1, TurnRight); !approx(got, 0.1) {
		t.Fatalf("terminal update = %v, want 0.1", got)
	}
	if got := q.BestAction(s1); got != TurnRight {
		t.Fatalf("BestAction = %v, want right", got)
	}

	q.Update(s2, TurnLeft, 0, &s1)
	if got := q.Value(s2, TurnLeft); !approx(got, 0.009) {
		t.Fatalf("discounted update = %v, want 0.009", got)
	}
	if !approx(q.TotalReward, 1) {
		t.Fatalf("TotalReward = %v", q.TotalReward)
	}
}

func TestGetAction_ExploresWithEpsilon(t *testing.T) {
	q := newLearner(1)
	seen := make(map[Action]bool)
	for i := 0; i < 200; i++ {
		seen[q.GetAction(State{})] = true
	}
	if len(seen) != len(actions) {
		t.Fatalf("explored %v", seen)
	}
}

func TestQTable_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables", "q.json")
	s := State{FoodDir: [2]int{-1, 0}, DangerDirs: [4]bool{true, false, false, true}}

	q := newLearner(0)
	q.Update(s, TurnLeft, 1, nil)
	if err := q.SaveQTable(path); err != nil {
		t.Fatalf("SaveQTable: %v", err)
	}

	loaded := newLearner(0)
	if err := loaded.LoadQTable(path); err != nil {
		t.Fatalf("LoadQTable: %v", err)
	}
	if got := loaded.Value(s, TurnLeft); !approx(got, 0.1) {
		t.Fatalf("loaded value = %v", got)
	}
}

func TestLoadQTable_Missing(t *testing.T) {
	q := newLearner(0)
	if err := q.LoadQTable(filepath.Join(t.TempDir(), "none.json")); err != nil {
		t.Fatalf("LoadQTable: %v", err)
	}
	if len(q.QTable) != 0 {
		t.Fatalf("table = %v", q.QTable)
	}
}
