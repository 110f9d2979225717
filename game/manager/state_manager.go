package manager

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"snake-controller/game/event"
)

type StateOption func(*StateManager)

// WithStatsFile makes the score keeper save the stats to path after every game.
func WithStatsFile(path string) StateOption {
	return func(sm *StateManager) {
		sm.statsPath = path
	}
}

func WithClock(now func() time.Time) StateOption {
	return func(sm *StateManager) {
		sm.now = now
	}
}

func WithStateLogger(logger *slog.Logger) StateOption {
	return func(sm *StateManager) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// StateManager is the score keeper. It counts ScoreIncrement messages and closes the game
// into a GameRecord on LoseNotification.
type StateManager struct {
	mu        sync.RWMutex
	stats     *GameStats
	statsPath string

	sessionID string
	startTime time.Time
	score     int
	highScore int
	gameOver  bool

	now    func() time.Time
	logger *slog.Logger
}

var _ event.Port = (*StateManager)(nil)

func NewStateManager(stats *GameStats, opts ...StateOption) *StateManager {
	if stats == nil {
		stats = NewGameStats(DefaultGroupSize)
	}
	sm := &StateManager{
		stats:     stats,
		sessionID: uuid.NewString(),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(sm)
	}
	sm.startTime = sm.now()
	sm.highScore = stats.MaxScore()
	return sm
}

func (sm *StateManager) Send(e event.Event) {
	switch e.Kind() {
	case event.KindScoreIncrement:
		sm.updateScore()
	case event.KindLoseNotification:
		sm.endGame()
	default:
		sm.logger.Warn("score keeper ignored event", "kind", e.Kind())
	}
}

func (sm *StateManager) updateScore() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.gameOver {
		return
	}
	sm.score++
	if sm.score > sm.highScore {
		sm.highScore = sm.score
	}
}

func (sm *StateManager) endGame() {
	sm.mu.Lock()
	if sm.gameOver {
		sm.mu.Unlock()
		return
	}
	sm.gameOver = true
	score := sm.score
	sm.stats.AddGame(sm.sessionID, score, sm.startTime, sm.now())
	sm.mu.Unlock()

	sm.logger.Info("game over", "session", sm.sessionID, "score", score, "games", sm.stats.GamesPlayed())

	if sm.statsPath == "" {
		return
	}
	if err := sm.stats.Save(sm.statsPath); err != nil {
		sm.logger.Error("saving stats failed", "path", sm.statsPath, "err", err)
	}
}

func (sm *StateManager) Score() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.score
}

func (sm *StateManager) HighScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

func (sm *StateManager) GameOver() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.gameOver
}

func (sm *StateManager) SessionID() string {
	return sm.sessionID
}

func (sm *StateManager) Stats() *GameStats {
	return sm.stats
}
