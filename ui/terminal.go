package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-controller/game/display"
	"snake-controller/game/types"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

var (
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	overStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// Terminal draws a Board on a tcell screen, two columns per cell.
type Terminal struct {
	screen      tcell.Screen
	board       *display.Board
	scores      Scoreboard
	onDirection func(types.Direction)
}

// NewTerminal takes over the terminal. Call Close to restore it.
func NewTerminal(board *display.Board, scores Scoreboard, onDirection func(types.Direction)) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	return newTerminal(screen, board, scores, onDirection), nil
}

func newTerminal(screen tcell.Screen, board *display.Board, scores Scoreboard, onDirection func(types.Direction)) *Terminal {
	return &Terminal{
		screen:      screen,
		board:       board,
		scores:      scores,
		onDirection: onDirection,
	}
}

// Run draws frames and handles keys until the player quits or ctx ends.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.draw()
		}
	}
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

// handleEvent returns false when the player asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.steer(types.Up)
		case tcell.KeyDown:
			t.steer(types.Down)
		case tcell.KeyLeft:
			t.steer(types.Left)
		case tcell.KeyRight:
			t.steer(types.Right)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'w', 'k':
				t.steer(types.Up)
			case 's', 'j':
				t.steer(types.Down)
			case 'a', 'h':
				t.steer(types.Left)
			case 'd', 'l':
				t.steer(types.Right)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) steer(dir types.Direction) {
	if t.onDirection != nil {
		t.onDirection(dir)
	}
}

func (t *Terminal) draw() {
	snap := t.board.Snapshot()
	t.screen.Clear()

	w, h := snap.Dimension.Width, snap.Dimension.Height

	// border
	for x := 0; x < w*2+2; x++ {
		t.screen.SetContent(x, 0, '─', nil, borderStyle)
		t.screen.SetContent(x, h+1, '─', nil, borderStyle)
	}
	for y := 0; y < h+2; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(w*2+1, y, '│', nil, borderStyle)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := types.Position{X: x, Y: y}
			cell := snap.At(p)
			style := tcell.StyleDefault
			switch {
			case cell == types.Snake && p == snap.Head:
				style = headStyle
			case cell == types.Snake:
				style = snakeStyle
			case cell == types.Food:
				style = foodStyle
			}
			r := cell.Rune()
			t.screen.SetContent(1+x*2, 1+y, r, nil, style)
			if cell == types.Snake {
				t.screen.SetContent(2+x*2, 1+y, r, nil, style)
			} else {
				t.screen.SetContent(2+x*2, 1+y, ' ', nil, style)
			}
		}
	}

	status := fmt.Sprintf(" Score: %d  High: %d  Length: %d ", t.scores.Score(), t.scores.HighScore(), snap.Length)
	t.drawText(0, h+2, status, textStyle)
	if t.scores.GameOver() {
		t.drawText(0, h+3, " Game over - press q to quit ", overStyle)
	}

	t.screen.Show()
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
