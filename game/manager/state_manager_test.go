package manager

import (
	"path/filepath"
	"testing"
	"time"

	"snake-controller/game/event"
)

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[min(i, len(times)-1)]
		i++
		return t
	}
}

func TestStateManager_CountsScore(t *testing.T) {
	sm := NewStateManager(nil)
	for i := 0; i < 3; i++ {
		sm.Send(event.ScoreIncrement{})
	}
	if sm.Score() != 3 || sm.HighScore() != 3 {
		t.Fatalf("Score() = %d, HighScore() = %d", sm.Score(), sm.HighScore())
	}
	if sm.GameOver() {
		t.Fatal("game over before LoseNotification")
	}
	if sm.SessionID() == "" {
		t.Fatal("empty session id")
	}
}

func TestStateManager_RecordsGameOnLose(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "data", "stats.json")

	stats := NewGameStats(DefaultGroupSize)
	sm := NewStateManager(stats, WithStatsFile(path), WithClock(fixedClock(start, start.Add(90*time.Second))))

	sm.Send(event.ScoreIncrement{})
	sm.Send(event.ScoreIncrement{})
	sm.Send(event.LoseNotification{})
	// late traffic after the game ended changes nothing
	sm.Send(event.ScoreIncrement{})
	sm.Send(event.LoseNotification{})

	if !sm.GameOver() {
		t.Fatal("GameOver() = false")
	}
	if sm.Score() != 2 {
		t.Fatalf("Score() = %d, want 2", sm.Score())
	}

	records := stats.Records()
	if len(records) != 1 {
		t.Fatalf("%d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Score != 2 || rec.SessionID != sm.SessionID() || rec.AverageDuration != 90 {
		t.Fatalf("record = %+v", rec)
	}

	loaded, err := LoadGameStats(path, DefaultGroupSize)
	if err != nil {
		t.Fatalf("LoadGameStats: %v", err)
	}
	if loaded.GamesPlayed() != 1 || loaded.MaxScore() != 2 {
		t.Fatalf("loaded stats: games %d, max %d", loaded.GamesPlayed(), loaded.MaxScore())
	}
}

func TestStateManager_HighScoreFromHistory(t *testing.T) {
	stats := NewGameStats(DefaultGroupSize)
	now := time.Now()
	stats.AddGame("earlier", 7, now, now)

	sm := NewStateManager(stats)
	sm.Send(event.ScoreIncrement{})
	if sm.HighScore() != 7 {
		t.Fatalf("HighScore() = %d, want 7", sm.HighScore())
	}
}
