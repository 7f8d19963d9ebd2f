package report

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lox/pokercfr/internal/fileutil"
	"github.com/lox/pokercfr/sdk/solver"
)

const summaryFileVersion = 1

// Summary captures the outcome of a training run. It is written once at the
// end of a run and never read back by the tool.
type Summary struct {
	Version        int                           `json:"version"`
	RunID          string                        `json:"run_id"`
	Game           string                        `json:"game"`
	GeneratedAt    time.Time                     `json:"generated_at"`
	Iterations     int                           `json:"iterations"`
	Seed           int64                         `json:"seed"`
	InfoSets       int                           `json:"info_sets"`
	ExpectedValue  [2]float64                    `json:"expected_value"`
	Exploitability []solver.ExploitabilitySample `json:"exploitability"`
	Strategies     map[string]map[string]float64 `json:"strategies"`
}

// NewSummary collects a finished trainer's results. Strategies are keyed by
// InfoSetKey.String() and action name.
func NewSummary(trainer *solver.Trainer, ev [2]float64, now time.Time) *Summary {
	table := trainer.Table()
	strategies := make(map[string]map[string]float64, table.Len())
	for _, key := range table.Keys() {
		node, _ := table.Lookup(key)
		probs := make(map[string]float64, len(node.Actions))
		for i, a := range node.Actions {
			probs[a.String()] = node.FinalStrategy[i]
		}
		strategies[key.String()] = probs
	}
	return &Summary{
		Version:        summaryFileVersion,
		RunID:          uuid.NewString(),
		Game:           trainer.Model().Name(),
		GeneratedAt:    now.UTC(),
		Iterations:     trainer.Iteration(),
		Seed:           trainer.Seed(),
		InfoSets:       table.Len(),
		ExpectedValue:  ev,
		Exploitability: trainer.Samples(),
		Strategies:     strategies,
	}
}

// Encode writes the summary as indented JSON.
func (s *Summary) Encode(w io.Writer) error {
	if s == nil {
		return errors.New("nil summary")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Save writes the summary to path atomically.
func (s *Summary) Save(path string) error {
	if path == "" {
		return errors.New("destination path is required")
	}
	return fileutil.WriteAtomic(path, 0o644, s.Encode)
}
