package types

import "testing"

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{Up, Down},
		{Down, Up},
		{Left, Right},
		{Right, Left},
	}
	for _, tt := range tests {
		if got := tt.dir.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.dir, got, tt.want)
		}
		if got := tt.dir.Opposite().Opposite(); got != tt.dir {
			t.Errorf("%v.Opposite().Opposite() = %v", tt.dir, got)
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Position
	}{
		{Up, Position{X: 0, Y: -1}},
		{Down, Position{X: 0, Y: 1}},
		{Left, Position{X: -1, Y: 0}},
		{Right, Position{X: 1, Y: 0}},
	}
	for _, tt := range tests {
		if got := tt.dir.Delta(); got != tt.want {
			t.Errorf("%v.Delta() = %v, want %v", tt.dir, got, tt.want)
		}
		// opposite steps cancel out
		if sum := tt.dir.Delta().Add(tt.dir.Opposite().Delta()); sum != (Position{}) {
			t.Errorf("%v delta plus opposite = %v", tt.dir, sum)
		}
	}
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range Directions {
		if got := d.TurnLeft().TurnRight(); got != d {
			t.Errorf("%v left then right = %v", d, got)
		}
		if got := d.TurnRight().TurnRight(); got != d.Opposite() {
			t.Errorf("%v two right turns = %v, want %v", d, got, d.Opposite())
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.Letter())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.Letter(), got, ok)
		}
	}
	for _, c := range []byte{'u', 'X', '0', ' '} {
		if _, ok := ParseDirection(c); ok {
			t.Errorf("ParseDirection(%q) accepted", c)
		}
	}
}

func TestDimensionContains(t *testing.T) {
	dim := Dimension{Width: 10, Height: 5}
	tests := []struct {
		p    Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{9, 4}, true},
		{Position{10, 0}, false},
		{Position{0, 5}, false},
		{Position{-1, 0}, false},
		{Position{0, -1}, false},
	}
	for _, tt := range tests {
		if got := dim.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
