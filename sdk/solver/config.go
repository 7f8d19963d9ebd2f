package solver

import (
	"errors"
)

// TrainingConfig aggregates parameters that control CFR execution.
type TrainingConfig struct {
	Iterations int
	// SampleEvery records an exploitability sample after every n completed
	// iterations and after the last one. Zero disables sampling.
	SampleEvery int
	// ProgressEvery overrides how often Run reports progress. Zero reports
	// roughly every percent.
	ProgressEvery int
	// Seed drives private card dealing. Zero picks a time-based seed.
	Seed int64
}

// Validate ensures the training parameters are safe to use.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.SampleEvery < 0 {
		return errors.New("sample interval cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// DefaultTrainingConfig returns a minimal configuration for local experimentation.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:  10000,
		SampleEvery: 1000,
		Seed:        1,
	}
}
