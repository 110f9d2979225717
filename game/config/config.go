// Package config reads and writes the initial game state text:
//
//	W <width> <height> F <foodX> <foodY> S <U|D|L|R> <segmentCount> {<x> <y>}*
//
// Segments are listed tail first.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"snake-controller/game/types"
)

// ErrConfiguration is wrapped by every parse or validation failure.
var ErrConfiguration = errors.New("bad configuration")

type Config struct {
	Dimension types.Dimension
	Food      types.Position
	Heading   types.Direction
	Segments  []types.Position
}

// Parse decodes and validates a configuration string.
func Parse(text string) (*Config, error) {
	p := parser{tokens: strings.Fields(text)}

	cfg := &Config{}
	p.tag("W")
	cfg.Dimension.Width = p.number("width")
	cfg.Dimension.Height = p.number("height")
	p.tag("F")
	cfg.Food.X = p.number("food x")
	cfg.Food.Y = p.number("food y")
	p.tag("S")
	cfg.Heading = p.direction()
	count := p.number("segment count")
	if p.err != nil {
		return nil, p.err
	}
	if count < types.MinSnakeLength {
		return nil, fmt.Errorf("%w: segment count %d", ErrConfiguration, count)
	}

	if left := len(p.remaining()) / 2; count > left {
		return nil, fmt.Errorf("%w: %d segments declared but only %d coordinates given", ErrConfiguration, count, left)
	}

	cfg.Segments = make([]types.Position, 0, count)
	for i := 0; i < count; i++ {
		x := p.number(fmt.Sprintf("segment %d x", i))
		y := p.number(fmt.Sprintf("segment %d y", i))
		if p.err != nil {
			return nil, p.err
		}
		cfg.Segments = append(cfg.Segments, types.Position{X: x, Y: y})
	}
	if rest := p.remaining(); len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d segments declared but trailing tokens %q", ErrConfiguration, count, strings.Join(rest, " "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the semantic constraints a parsed configuration must satisfy.
func (c *Config) Validate() error {
	if c.Dimension.Width <= 0 || c.Dimension.Height <= 0 ||
		c.Dimension.Width > types.MaxGridSide || c.Dimension.Height > types.MaxGridSide {
		return fmt.Errorf("%w: grid %dx%d", ErrConfiguration, c.Dimension.Width, c.Dimension.Height)
	}
	if !c.Heading.Valid() {
		return fmt.Errorf("%w: heading %v", ErrConfiguration, c.Heading)
	}
	if len(c.Segments) < types.MinSnakeLength {
		return fmt.Errorf("%w: empty snake", ErrConfiguration)
	}
	if !c.Dimension.Contains(c.Food) {
		return fmt.Errorf("%w: food %v outside grid", ErrConfiguration, c.Food)
	}

	seen := make(map[types.Position]struct{}, len(c.Segments))
	for _, seg := range c.Segments {
		if !c.Dimension.Contains(seg) {
			return fmt.Errorf("%w: segment %v outside grid", ErrConfiguration, seg)
		}
		if _, dup := seen[seg]; dup {
			return fmt.Errorf("%w: segment %v listed twice", ErrConfiguration, seg)
		}
		seen[seg] = struct{}{}
	}
	if _, onSnake := seen[c.Food]; onSnake {
		return fmt.Errorf("%w: food %v on the snake", ErrConfiguration, c.Food)
	}
	return nil
}

// String renders the configuration in the text form Parse accepts.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "W %d %d F %d %d S %c %d",
		c.Dimension.Width, c.Dimension.Height,
		c.Food.X, c.Food.Y,
		c.Heading.Letter(), len(c.Segments))
	for _, seg := range c.Segments {
		fmt.Fprintf(&b, " %d %d", seg.X, seg.Y)
	}
	return b.String()
}

// Random lays out a straight snake of the given length heading right along the middle row,
// with food on a random free cell.
func Random(dim types.Dimension, length int, rng *rand.Rand) (*Config, error) {
	if length < types.MinSnakeLength || length >= dim.Width || dim.Height <= 0 ||
		dim.Width > types.MaxGridSide || dim.Height > types.MaxGridSide {
		return nil, fmt.Errorf("%w: snake of %d does not fit a %dx%d grid", ErrConfiguration, length, dim.Width, dim.Height)
	}

	row := dim.Height / 2
	startX := (dim.Width - length) / 4
	cfg := &Config{
		Dimension: dim,
		Heading:   types.Right,
		Segments:  make([]types.Position, 0, length),
	}
	for i := 0; i < length; i++ {
		cfg.Segments = append(cfg.Segments, types.Position{X: startX + i, Y: row})
	}

	for {
		food := types.Position{
			X: rng.Intn(dim.Width),
			Y: rng.Intn(dim.Height),
		}
		if food.Y == row && food.X >= startX && food.X < startX+length {
			continue
		}
		cfg.Food = food
		return cfg, nil
	}
}

type parser struct {
	tokens []string
	pos    int
	err    error
}

func (p *parser) next(what string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	if p.pos >= len(p.tokens) {
		p.err = fmt.Errorf("%w: missing %s", ErrConfiguration, what)
		return "", false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) tag(want string) {
	tok, ok := p.next("tag " + want)
	if ok && tok != want {
		p.err = fmt.Errorf("%w: expected tag %s, got %q", ErrConfiguration, want, tok)
	}
}

func (p *parser) number(what string) int {
	tok, ok := p.next(what)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		p.err = fmt.Errorf("%w: %s %q is not an integer", ErrConfiguration, what, tok)
		return 0
	}
	return v
}

func (p *parser) direction() types.Direction {
	tok, ok := p.next("direction")
	if !ok {
		return 0
	}
	if len(tok) == 1 {
		if d, ok := types.ParseDirection(tok[0]); ok {
			return d
		}
	}
	p.err = fmt.Errorf("%w: unknown direction %q", ErrConfiguration, tok)
	return 0
}

func (p *parser) remaining() []string {
	return p.tokens[p.pos:]
}
