package ui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-controller/game/display"
	"snake-controller/game/manager"
	"snake-controller/game/types"
)

const (
	maxScores     = 200 // Maximum number of scores to show in graph
	borderPadding = 10
	windowTitle   = "Snake"
)

// Renderer draws a Board in a raylib window. All of its methods must run on the main
// goroutine.
type Renderer struct {
	board       *display.Board
	scores      Scoreboard
	stats       *manager.GameStats
	onDirection func(types.Direction)

	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

// NewRenderer opens the window. onDirection receives every steering key press.
func NewRenderer(board *display.Board, scores Scoreboard, stats *manager.GameStats, onDirection func(types.Direction)) *Renderer {
	rl.InitWindow(1280, 800, windowTitle)
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(60)

	r := &Renderer{
		board:       board,
		scores:      scores,
		stats:       stats,
		onDirection: onDirection,
	}
	r.UpdateDimensions()
	return r
}

// Run draws frames until the window closes, the player quits or ctx ends.
func (r *Renderer) Run(ctx context.Context) error {
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}
		r.handleInput()

		if rl.IsWindowResized() {
			r.UpdateDimensions()
		}
		r.Draw()
	}
	return nil
}

func (r *Renderer) Close() {
	rl.CloseWindow()
}

var keyDirections = []struct {
	keys []int32
	dir  types.Direction
}{
	{[]int32{rl.KeyUp, rl.KeyW}, types.Up},
	{[]int32{rl.KeyDown, rl.KeyS}, types.Down},
	{[]int32{rl.KeyLeft, rl.KeyA}, types.Left},
	{[]int32{rl.KeyRight, rl.KeyD}, types.Right},
}

func (r *Renderer) handleInput() {
	if r.onDirection == nil {
		return
	}
	for _, kd := range keyDirections {
		for _, k := range kd.keys {
			if rl.IsKeyPressed(k) {
				r.onDirection(kd.dir)
			}
		}
	}
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 7
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func (r *Renderer) Draw() {
	snap := r.board.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/45, r.statsPanel/15)
	lineHeight := min(r.screenHeight/35, r.statsPanel/12)

	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)

	cellW := availableWidth / int32(snap.Dimension.Width)
	cellH := availableHeight / int32(snap.Dimension.Height)
	r.cellSize = max(min(cellW, cellH), 1)

	r.totalGridWidth = r.cellSize * int32(snap.Dimension.Width)
	r.totalGridHeight = r.cellSize * int32(snap.Dimension.Height)

	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)

	for y := 0; y < snap.Dimension.Height; y++ {
		for x := 0; x < snap.Dimension.Width; x++ {
			p := types.Position{X: x, Y: y}
			px, py := r.cellOrigin(p)
			switch snap.At(p) {
			case types.Snake:
				color := rl.Green
				if p == snap.Head {
					color = rl.Lime
				}
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, color)
			case types.Food:
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, rl.Red)
			default:
				rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, rl.Gray)
			}
		}
	}

	if r.scores.GameOver() {
		text := fmt.Sprintf("Game Over! Score: %d", r.scores.Score())
		textWidth := rl.MeasureText(text, fontSize*2)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2,
			fontSize*2, rl.Yellow)
	}

	r.drawStatsPanel(snap, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) cellOrigin(p types.Position) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

func (r *Renderer) drawStatsPanel(snap display.Snapshot, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	lines := []string{
		fmt.Sprintf("Score: %d", r.scores.Score()),
		fmt.Sprintf("High: %d", r.scores.HighScore()),
		fmt.Sprintf("Length: %d", snap.Length),
	}
	if r.stats != nil {
		lines = append(lines,
			fmt.Sprintf("Games: %d", r.stats.GamesPlayed()),
			fmt.Sprintf("Avg: %.2f", r.stats.AverageScore()),
			fmt.Sprintf("Median: %.1f", r.stats.MedianScore()),
		)
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	r.drawPerformanceGraph(statsX, fontSize)
}

// drawPerformanceGraph plots the most recent records. Compressed records show their average.
func (r *Renderer) drawPerformanceGraph(graphX, fontSize int32) {
	if r.stats == nil {
		return
	}
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Performance", graphX, graphY-fontSize-5, fontSize, rl.White)

	records := r.stats.Records()
	if len(records) > maxScores {
		records = records[len(records)-maxScores:]
	}
	if len(records) < 2 {
		return
	}

	maxScore := 1.0
	for _, rec := range records {
		maxScore = max(maxScore, float64(rec.MaxScore))
	}

	point := func(i int, score float64) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores))
		y := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(score/maxScore))
		return x, y
	}
	for i := 1; i < len(records); i++ {
		x1, y1 := point(i-1, records[i-1].AverageScore)
		x2, y2 := point(i, records[i].AverageScore)
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}

	_, avgY := point(0, r.stats.AverageScore())
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}
