package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// DefaultGroupSize is the number of records folded into one compressed record.
const DefaultGroupSize = 100

// GameRecord is one finished game, or a group of games once compressed.
type GameRecord struct {
	SessionID        string    `json:"sessionId,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	CompressionIndex int       `json:"compressionIndex"` // 0 for single games
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// GameStats keeps the history of finished games. Every groupSize records of one compression
// level are folded into a single record of the next level, so the history stays bounded.
type GameStats struct {
	Games []GameRecord `json:"games"`

	groupSize int
	mu        sync.RWMutex
}

func NewGameStats(groupSize int) *GameStats {
	if groupSize < 2 {
		groupSize = DefaultGroupSize
	}
	return &GameStats{
		Games:     make([]GameRecord, 0),
		groupSize: groupSize,
	}
}

// LoadGameStats reads stats from path. A missing file yields empty stats.
func LoadGameStats(path string, groupSize int) (*GameStats, error) {
	s := NewGameStats(groupSize)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read stats: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode stats %s: %w", path, err)
	}
	return s, nil
}

// AddGame records a finished game.
func (s *GameStats) AddGame(sessionID string, score int, startTime, endTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	duration := endTime.Sub(startTime).Seconds()
	s.Games = append(s.Games, GameRecord{
		SessionID:       sessionID,
		StartTime:       startTime,
		EndTime:         endTime,
		Score:           score,
		GamesCount:      1,
		AverageScore:    float64(score),
		MedianScore:     float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
	})
	s.groupGames()
}

func (s *GameStats) groupGames() {
	sort.SliceStable(s.Games, func(i, j int) bool {
		if s.Games[i].CompressionIndex != s.Games[j].CompressionIndex {
			return s.Games[i].CompressionIndex < s.Games[j].CompressionIndex
		}
		return s.Games[i].StartTime.Before(s.Games[j].StartTime)
	})

	for level := 0; ; level++ {
		var records, others []GameRecord
		for _, g := range s.Games {
			if g.CompressionIndex == level {
				records = append(records, g)
			} else {
				others = append(others, g)
			}
		}
		if len(records) < s.groupSize {
			return
		}

		var grouped []GameRecord
		for i := 0; i < len(records); i += s.groupSize {
			end := i + s.groupSize
			if end > len(records) {
				grouped = append(grouped, records[i:]...)
				break
			}
			grouped = append(grouped, compress(records[i:end], level+1))
		}
		s.Games = append(others, grouped...)
	}
}

func compress(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}

	var totalScore, totalDuration float64
	medians := make([]float64, 0, len(group))
	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxDuration = max(out.MaxDuration, g.MaxDuration)
		out.MinDuration = min(out.MinDuration, g.MinDuration)
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = median(medians)
	out.Score = out.MaxScore
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}

// Records returns a copy of the stored records.
func (s *GameStats) Records() []GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]GameRecord, len(s.Games))
	copy(out, s.Games)
	return out
}

// GamesPlayed returns the total number of games, compressed ones included.
func (s *GameStats) GamesPlayed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, g := range s.Games {
		total += g.GamesCount
	}
	return total
}

// AverageScore returns the mean score over all games.
func (s *GameStats) AverageScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	var games int
	for _, g := range s.Games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// MedianScore returns the median of the per-record medians weighted by game count.
func (s *GameStats) MedianScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]float64, 0)
	for _, g := range s.Games {
		for i := 0; i < g.GamesCount; i++ {
			values = append(values, g.MedianScore)
		}
	}
	return median(values)
}

func (s *GameStats) MaxScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := 0
	for _, g := range s.Games {
		best = max(best, g.MaxScore)
	}
	return best
}

// Save writes the stats as JSON, creating the parent directory if needed.
func (s *GameStats) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
