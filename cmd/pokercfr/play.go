package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/lox/pokercfr/internal/play"
	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/games"
	"github.com/lox/pokercfr/sdk/solver"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	Game    string `help:"game to play" default:"kuhn" enum:"kuhn,leduc"`
	Seat    int    `help:"your seat; seat 0 acts first" default:"0"`
	Bot     string `help:"opponent (random or trained)" default:"trained" enum:"random,trained"`
	Train   int    `help:"iterations to train the bot before play" default:"20000"`
	Seed    *int64 `help:"random seed; defaults to a time seed"`
	LogFile string `help:"debug log destination" default:"pokercfr-play.log"`
}

func (cmd *PlayCmd) Run(ctx context.Context) error {
	model, err := games.Lookup(cmd.Game)
	if err != nil {
		return err
	}
	if cmd.Seat != 0 && cmd.Seat != 1 {
		return fmt.Errorf("seat must be 0 or 1, got %d", cmd.Seat)
	}

	var seed int64
	if cmd.Seed != nil {
		seed = *cmd.Seed
	}
	seed = randutil.Seed(seed, time.Now())

	logFile, err := os.OpenFile(cmd.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create play log: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close play log")
		}
	}()
	logger := charmlog.NewWithOptions(logFile, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "PLAY",
		Level:           charmlog.DebugLevel,
	})
	logger.Info("Starting session", "game", model.Name(), "seat", cmd.Seat, "bot", cmd.Bot, "seed", seed)

	bot, err := cmd.buildBot(ctx, model, seed)
	if err != nil {
		return err
	}

	fmt.Print(titleStyle.Render(fmt.Sprintf("♠ %s poker vs %s bot ♥", model.Name(), cmd.Bot)))
	fmt.Println()
	fmt.Println()

	session := play.New(model, bot, play.Options{Seat: game.Player(cmd.Seat), Seed: seed, Logger: logger})
	final, err := tea.NewProgram(session, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run session: %w", err)
	}
	if m, ok := final.(*play.Model); ok {
		logger.Info("Session over", "hands", m.Hands(), "score", m.Score())
	}
	return nil
}

func (cmd *PlayCmd) buildBot(ctx context.Context, model game.Model, seed int64) (play.Bot, error) {
	rng := randutil.New(seed + 1)
	if cmd.Bot == "random" {
		return play.NewRandomBot(rng), nil
	}

	trainer, err := solver.NewTrainer(model, solver.TrainingConfig{Iterations: cmd.Train, Seed: seed})
	if err != nil {
		return nil, err
	}
	log.Info().Str("game", model.Name()).Str("iterations", humanize.Comma(int64(cmd.Train))).Msg("Training bot")
	if err := trainer.Run(ctx, nil); err != nil {
		return nil, fmt.Errorf("train bot: %w", err)
	}
	return play.NewStrategyBot(trainer.Table(), rng), nil
}
