// Package config loads training sessions from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/lox/pokercfr/sdk/games"
	"github.com/lox/pokercfr/sdk/solver"
)

// DefaultPath is where the CLI looks for a session file.
const DefaultPath = "pokercfr.hcl"

// Session represents a complete training session.
type Session struct {
	Game        string
	Iterations  int
	SampleEvery int
	Seed        int64
	Output      *Output
}

// sessionFile mirrors Session with pointers so an explicit zero in the file
// (sample_every = 0 disables sampling) is distinguishable from an omission.
type sessionFile struct {
	Game        *string `hcl:"game,optional"`
	Iterations  *int    `hcl:"iterations,optional"`
	SampleEvery *int    `hcl:"sample_every,optional"`
	Seed        *int64  `hcl:"seed,optional"`
	Output      *Output `hcl:"output,block"`
}

// Output controls what a finished session writes.
type Output struct {
	Summary    string `hcl:"summary,optional"`
	Plot       string `hcl:"plot,optional"`
	Strategies bool   `hcl:"strategies,optional"`
}

// overrides are read from the environment. Unset variables leave the
// session untouched.
type overrides struct {
	Game        string `env:"POKERCFR_GAME" env-description:"game to train (kuhn or leduc)"`
	Iterations  int    `env:"POKERCFR_ITERATIONS" env-description:"number of CFR iterations"`
	SampleEvery int    `env:"POKERCFR_SAMPLE_EVERY" env-description:"iterations between exploitability samples"`
	Seed        int64  `env:"POKERCFR_SEED" env-description:"dealing seed, 0 for time-based"`
}

// Default returns the session used when no file exists.
func Default() *Session {
	return &Session{
		Game:        "kuhn",
		Iterations:  10000,
		SampleEvery: 1000,
		Seed:        1,
		Output:      &Output{},
	}
}

// Load reads filename, falling back to defaults when it does not exist, then
// applies environment overrides.
func Load(filename string) (*Session, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		s := Default()
		return s, s.ApplyEnv()
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	s, err := Parse(src, filename)
	if err != nil {
		return nil, err
	}
	return s, s.ApplyEnv()
}

// Parse decodes an HCL session. Attributes left out keep their defaults.
func Parse(src []byte, filename string) (*Session, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded sessionFile
	diags = gohcl.DecodeBody(file.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	s := Default()
	if decoded.Game != nil {
		s.Game = *decoded.Game
	}
	if decoded.Iterations != nil {
		s.Iterations = *decoded.Iterations
	}
	if decoded.SampleEvery != nil {
		s.SampleEvery = *decoded.SampleEvery
	}
	if decoded.Seed != nil {
		s.Seed = *decoded.Seed
	}
	if decoded.Output != nil {
		s.Output = decoded.Output
	}
	return s, nil
}

// ApplyEnv overlays POKERCFR_* environment variables.
func (s *Session) ApplyEnv() error {
	var env overrides
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if env.Game != "" {
		s.Game = env.Game
	}
	if env.Iterations != 0 {
		s.Iterations = env.Iterations
	}
	if env.SampleEvery != 0 {
		s.SampleEvery = env.SampleEvery
	}
	if env.Seed != 0 {
		s.Seed = env.Seed
	}
	return nil
}

// Validate checks the session can be trained.
func (s *Session) Validate() error {
	if _, err := games.Lookup(s.Game); err != nil {
		return err
	}
	if err := s.TrainingConfig().Validate(); err != nil {
		return fmt.Errorf("invalid training settings: %w", err)
	}
	return nil
}

// TrainingConfig converts the session into solver settings.
func (s *Session) TrainingConfig() solver.TrainingConfig {
	return solver.TrainingConfig{
		Iterations:  s.Iterations,
		SampleEvery: s.SampleEvery,
		Seed:        s.Seed,
	}
}

// EnvHelp describes the supported environment variables.
func EnvHelp() (string, error) {
	return cleanenv.GetDescription(&overrides{}, nil)
}
