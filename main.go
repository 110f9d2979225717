package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"snake-controller/ai"
	"snake-controller/game"
	"snake-controller/game/config"
	"snake-controller/game/display"
	"snake-controller/game/event"
	"snake-controller/game/manager"
	"snake-controller/game/types"
	"snake-controller/ui"
)

const (
	frontendRaylib   = "raylib"
	frontendTerminal = "terminal"
	frontendHeadless = "headless"
)

type options struct {
	configText string
	configFile string
	width      int
	height     int
	length     int
	seed       uint64

	speed      time.Duration
	relocate   time.Duration
	movingFood bool
	frontend   string
	autopilot  bool
	qtable     string
	stats      string
	sound      bool

	logLevel string
	logFile  string
}

func parseOptions(args []string) (*options, error) {
	o := &options{}
	flags := flag.NewFlagSet("snake", flag.ContinueOnError)

	flags.StringVar(&o.configText, "config", "", `initial configuration, e.g. "W 20 20 F 5 5 S R 3 0 10 1 10 2 10"`)
	flags.StringVar(&o.configFile, "config-file", "", "read the initial configuration from a file")
	flags.IntVar(&o.width, "width", getEnvInt("SNAKE_WIDTH", 30), "grid width when no configuration is given")
	flags.IntVar(&o.height, "height", getEnvInt("SNAKE_HEIGHT", 20), "grid height when no configuration is given")
	flags.IntVar(&o.length, "length", getEnvInt("SNAKE_LENGTH", 3), "snake length when no configuration is given")
	flags.Uint64Var(&o.seed, "seed", uint64(time.Now().UnixNano()), "random seed")

	speedMS := flags.Int("speed", getEnvInt("SNAKE_SPEED", 120), "tick interval in milliseconds (lower = faster)")
	flags.DurationVar(&o.relocate, "relocate", getEnvDuration("SNAKE_RELOCATE", 0), "move the food unprompted at this interval, 0 disables")
	flags.BoolVar(&o.movingFood, "moving-food", getEnvBool("SNAKE_MOVING_FOOD", false), "move the food every few ticks when -relocate is not set")
	flags.StringVar(&o.frontend, "frontend", getEnvDefault("SNAKE_FRONTEND", frontendRaylib), "raylib, terminal or headless")
	flags.BoolVar(&o.autopilot, "autopilot", getEnvBool("SNAKE_AUTOPILOT", false), "let the Q-learning pilot steer")
	flags.StringVar(&o.qtable, "qtable", getEnvDefault("SNAKE_QTABLE", "data/qtable.json"), "Q-table file for the autopilot")
	flags.StringVar(&o.stats, "stats", getEnvDefault("SNAKE_STATS", "data/stats.json"), "game history file, empty disables")
	flags.BoolVar(&o.sound, "sound", getEnvBool("SNAKE_SOUND", true), "play sounds")
	flags.StringVar(&o.logLevel, "log-level", getEnvDefault("SNAKE_LOG_LEVEL", "info"), "debug, info, warn or error")
	flags.StringVar(&o.logFile, "log-file", getEnvDefault("SNAKE_LOG_FILE", ""), "write logs to this file")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	o.speed = time.Duration(*speedMS) * time.Millisecond
	if o.movingFood && o.relocate == 0 {
		o.relocate = types.FoodSpawnCycles * o.speed
	}

	switch o.frontend {
	case frontendRaylib, frontendTerminal, frontendHeadless:
	default:
		return nil, fmt.Errorf("unknown frontend %q", o.frontend)
	}
	return o, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		slog.Error("snake failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(o *options) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case o.frontend == frontendTerminal:
		// the screen owns the terminal
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func loadConfig(o *options, rng *rand.Rand) (*config.Config, error) {
	text := o.configText
	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(string(data))
	}
	if text != "" {
		return config.Parse(text)
	}
	return config.Random(types.Dimension{Width: o.width, Height: o.height}, o.length, rng)
}

func run(o *options) error {
	logger, closeLog, err := newLogger(o)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(o, rand.New(rand.NewSource(o.seed)))
	if err != nil {
		return err
	}
	logger.Info("starting game", "config", cfg.String(), "frontend", o.frontend, "seed", o.seed)

	stats := manager.NewGameStats(manager.DefaultGroupSize)
	if o.stats != "" {
		if stats, err = manager.LoadGameStats(o.stats, manager.DefaultGroupSize); err != nil {
			return err
		}
	}
	scores := manager.NewStateManager(stats, manager.WithStatsFile(o.stats), manager.WithStateLogger(logger))
	board := display.NewBoard(cfg, logger)

	var scorePort event.Port = scores
	if o.sound && o.frontend != frontendHeadless {
		sound := ui.NewSound(scores, logger)
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sound.Close()
			scorePort = sound
		}
	}

	sessionOpts := []game.SessionOption{game.WithSessionLogger(logger)}
	var learner *ai.QLearning
	if o.autopilot {
		learner = ai.NewQLearning(rand.New(rand.NewSource(o.seed + 1)))
		if err := learner.LoadQTable(o.qtable); err != nil {
			return fmt.Errorf("loading q-table: %w", err)
		}
		pilot := ai.NewPilot(board, learner, cfg.Heading, logger)
		sessionOpts = append(sessionOpts, game.WithSteerer(pilot))
		scorePort = event.Tee(scorePort, pilot)
	}

	session := game.NewSession(o.speed, sessionOpts...)
	food := manager.NewFoodManager(cfg.Dimension, rand.New(rand.NewSource(o.seed+2)),
		manager.WithRelocation(o.relocate), manager.WithFoodLogger(logger))

	controller, err := game.NewControllerFromConfig(board, food, session.ScorePort(scorePort), cfg, game.WithLogger(logger))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		return session.Run(gctx, controller)
	})
	g.Go(func() error {
		return food.Run(gctx, session)
	})

	var steer func(types.Direction)
	if !o.autopilot {
		steer = func(d types.Direction) {
			if err := session.Post(ctx, event.DirectionChange{Direction: d}); err != nil && !errors.Is(err, game.ErrSessionFinished) {
				logger.Debug("direction dropped", "direction", d, "err", err)
			}
		}
	}

	if err := runFrontend(ctx, o, board, scores, stats, steer, session.Done()); err != nil {
		cancel()
		g.Wait()
		return err
	}
	cancel()
	err = g.Wait()

	if learner != nil {
		if saveErr := learner.SaveQTable(o.qtable); saveErr != nil {
			logger.Error("saving q-table failed", "path", o.qtable, "err", saveErr)
		}
	}
	logger.Info("game ended", "score", scores.Score(), "high_score", scores.HighScore(), "games", stats.GamesPlayed())
	return err
}

// runFrontend blocks on the main goroutine until the player quits. The headless front end
// returns once gameDone closes instead.
func runFrontend(ctx context.Context, o *options, board *display.Board, scores *manager.StateManager, stats *manager.GameStats,
	steer func(types.Direction), gameDone <-chan struct{}) error {
	switch o.frontend {
	case frontendRaylib:
		r := ui.NewRenderer(board, scores, stats, steer)
		defer r.Close()
		return r.Run(ctx)
	case frontendTerminal:
		t, err := ui.NewTerminal(board, scores, steer)
		if err != nil {
			return err
		}
		defer t.Close()
		return t.Run(ctx)
	default:
		select {
		case <-ctx.Done():
		case <-gameDone:
		}
		return nil
	}
}
