package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/pokercfr/internal/config"
)

var cli struct {
	Debug   bool   `help:"enable debug logging"`
	Config  string `help:"path to an HCL session file" default:"pokercfr.hcl" type:"path"`
	NoColor bool   `help:"disable colored output"`

	Train TrainCmd `cmd:"" help:"train CFR strategies and measure exploitability"`
	Play  PlayCmd  `cmd:"" help:"play hands against a bot in the terminal"`
	Env   EnvCmd   `cmd:"" help:"list the environment variables that override the session file"`
}

type EnvCmd struct{}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("pokercfr"),
		kong.Description("CFR training and best-response evaluation for Kuhn and Leduc poker"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "train":
		if err := cli.Train.Run(runCtx, cli.Config); err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
	case "play":
		if err := cli.Play.Run(runCtx); err != nil {
			log.Fatal().Err(err).Msg("play failed")
		}
	case "env":
		help, err := config.EnvHelp()
		if err != nil {
			log.Fatal().Err(err).Msg("describe environment")
		}
		fmt.Println(help)
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cli.NoColor}).Level(level)
}
