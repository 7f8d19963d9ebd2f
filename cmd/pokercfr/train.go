package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/lox/pokercfr/internal/config"
	"github.com/lox/pokercfr/internal/plot"
	"github.com/lox/pokercfr/internal/report"
	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/games"
	"github.com/lox/pokercfr/sdk/solver"
)

type TrainCmd struct {
	Game          *string `help:"game to train (kuhn or leduc)"`
	Iterations    *int    `help:"number of CFR iterations"`
	SampleEvery   *int    `help:"iterations between exploitability samples (0 disables)"`
	Seed          *int64  `help:"dealing seed; 0 uses time seed"`
	ProgressEvery int     `help:"log progress every N iterations (0 => iterations/100)" default:"0"`
	Summary       string  `help:"write a JSON run summary to this path"`
	Plot          string  `help:"write an exploitability chart (PNG) to this path"`
	Strategies    bool    `help:"print the final strategy tables"`
	Track         string  `help:"report an info set's average strategy while training, e.g. 1/J/-/p"`
	Progress      bool    `help:"show a progress bar instead of progress logs"`
}

// apply layers command-line flags over the loaded session.
func (cmd *TrainCmd) apply(s *config.Session) {
	if cmd.Game != nil {
		s.Game = *cmd.Game
	}
	if cmd.Iterations != nil {
		s.Iterations = *cmd.Iterations
	}
	if cmd.SampleEvery != nil {
		s.SampleEvery = *cmd.SampleEvery
	}
	if cmd.Seed != nil {
		s.Seed = *cmd.Seed
	}
	if s.Output == nil {
		s.Output = &config.Output{}
	}
	if cmd.Summary != "" {
		s.Output.Summary = cmd.Summary
	}
	if cmd.Plot != "" {
		s.Output.Plot = cmd.Plot
	}
	if cmd.Strategies {
		s.Output.Strategies = true
	}
}

func (cmd *TrainCmd) Run(ctx context.Context, configPath string) error {
	session, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	cmd.apply(session)
	if err := session.Validate(); err != nil {
		return err
	}

	model, err := games.Lookup(session.Game)
	if err != nil {
		return err
	}

	trainCfg := session.TrainingConfig()
	trainCfg.ProgressEvery = cmd.ProgressEvery
	opts := []solver.Option{
		solver.WithLogger(log.Logger.With().Str("component", "solver").Logger()),
	}
	if cmd.Track != "" {
		key, err := solver.ParseInfoSetKey(cmd.Track)
		if err != nil {
			return err
		}
		opts = append(opts, solver.WithTrackedInfoSet(key))
	}

	trainer, err := solver.NewTrainer(model, trainCfg, opts...)
	if err != nil {
		return err
	}

	log.Info().
		Str("game", model.Name()).
		Str("iterations", humanize.Comma(int64(trainCfg.Iterations))).
		Int("sample_every", trainCfg.SampleEvery).
		Int64("seed", trainer.Seed()).
		Msg("Starting training")

	var bar *progressbar.ProgressBar
	if cmd.Progress {
		bar = progressbar.NewOptions(trainCfg.Iterations,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("training "+model.Name()),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	start := time.Now()
	err = trainer.Run(ctx, func(p solver.Progress) {
		if bar != nil {
			_ = bar.Set(p.Iteration)
		}
		logProgress(p, bar == nil)
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("training stopped after %s iterations: %w", humanize.Comma(int64(trainer.Iteration())), err)
	}

	eval := solver.NewEvaluator(model, trainer.Table())
	ev := eval.ExpectedValue()
	exploitability, err := eval.Exploitability(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("game", model.Name()).
		Str("iterations", humanize.Comma(int64(trainer.Iteration()))).
		Int("infosets", trainer.Table().Len()).
		Dur("elapsed", time.Since(start)).
		Float64("exploitability", exploitability).
		Msg("Training complete")
	for _, p := range []game.Player{game.Player0, game.Player1} {
		log.Info().Str("player", p.String()).Float64("expected_value", ev[p]).Msg("Expected value")
	}

	return writeOutputs(session.Output, trainer, ev)
}

func logProgress(p solver.Progress, verbose bool) {
	var e *zerolog.Event
	switch {
	case p.Sample != nil && verbose:
		e = log.Info()
	default:
		e = log.Debug()
	}
	e = e.Int("iteration", p.Iteration).
		Str("infosets", humanize.Comma(int64(p.InfoSets))).
		Int64("nodes", p.Stats.NodesVisited).
		Int("max_depth", p.Stats.MaxDepth).
		Dur("iteration_time", p.Stats.IterationTime)
	if p.Sample != nil {
		e = e.Float64("exploitability", p.Sample.Exploitability)
	}
	if p.Tracked != nil {
		e = e.Floats64("tracked", p.Tracked)
	}
	e.Msg("Training progress")
}

func writeOutputs(out *config.Output, trainer *solver.Trainer, ev [2]float64) error {
	if out.Strategies {
		if err := report.RenderStrategies(os.Stdout, trainer.Model(), trainer.Table()); err != nil {
			return fmt.Errorf("render strategies: %w", err)
		}
	}

	if out.Summary != "" {
		summary := report.NewSummary(trainer, ev, time.Now())
		if err := summary.Save(out.Summary); err != nil {
			return fmt.Errorf("save summary: %w", err)
		}
		log.Info().Str("path", out.Summary).Str("run_id", summary.RunID).Msg("Summary written")
	}

	if out.Plot != "" {
		samples := trainer.Samples()
		if len(samples) == 0 {
			log.Warn().Str("path", out.Plot).Msg("Sampling disabled; skipping exploitability chart")
			return nil
		}
		opts := plot.Options{Title: fmt.Sprintf("%s exploitability", trainer.Model().Name())}
		if err := plot.SavePNG(out.Plot, samples, opts); err != nil {
			return fmt.Errorf("save plot: %w", err)
		}
		log.Info().Str("path", out.Plot).Int("samples", len(samples)).Msg("Exploitability chart written")
	}
	return nil
}
