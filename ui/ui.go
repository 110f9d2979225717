// Package ui holds the interactive front ends: a raylib window, a tcell terminal and sound.
package ui

// Scoreboard is the read side of the score keeper shown next to the grid.
type Scoreboard interface {
	Score() int
	HighScore() int
	GameOver() bool
}
