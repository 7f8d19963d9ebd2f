package solver

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/sdk/game"
)

// TraversalStats captures instrumentation metrics for a single CFR iteration.
type TraversalStats struct {
	NodesVisited  int64
	TerminalNodes int64
	ChanceNodes   int64
	MaxDepth      int
	IterationTime time.Duration
}

// ExploitabilitySample is one point of the convergence curve.
type ExploitabilitySample struct {
	Iteration      int           `json:"iteration"`
	Exploitability float64       `json:"exploitability"`
	Elapsed        time.Duration `json:"elapsed_ns"`
}

// Progress contains metadata emitted during long-running solver operations.
type Progress struct {
	Iteration int
	InfoSets  int
	Stats     TraversalStats
	// Sample is set when this iteration recorded an exploitability sample.
	Sample *ExploitabilitySample
	// Tracked holds the average strategy of the tracked information set, if
	// one is configured and has been visited.
	Tracked []float64
}

// Option customises a Trainer.
type Option func(*Trainer)

// WithClock replaces the wall clock used for timings.
func WithClock(clock quartz.Clock) Option {
	return func(t *Trainer) { t.clock = clock }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trainer) { t.logger = logger }
}

// WithTable continues training into an existing table.
func WithTable(table *Table) Option {
	return func(t *Trainer) { t.table = table }
}

// WithTrackedInfoSet reports the average strategy at key with every progress
// update.
func WithTrackedInfoSet(key InfoSetKey) Option {
	return func(t *Trainer) { t.tracked = &key }
}

// Trainer runs vanilla CFR on a game model, sampling one private deal per
// iteration and enumerating public cards.
type Trainer struct {
	model     game.Model
	cfg       TrainingConfig
	table     *Table
	deck      []game.Card
	rng       *rand.Rand
	seed      int64
	clock     quartz.Clock
	logger    zerolog.Logger
	tracked   *InfoSetKey
	iteration int
	stats     TraversalStats
	samples   []ExploitabilitySample
	elapsed   time.Duration
}

// NewTrainer constructs a trainer for model.
func NewTrainer(model game.Model, cfg TrainingConfig, opts ...Option) (*Trainer, error) {
	if model == nil {
		return nil, errors.New("game model is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Trainer{
		model:  model,
		cfg:    cfg,
		deck:   model.Deck(),
		clock:  quartz.NewReal(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.table == nil {
		t.table = NewTable()
	}

	t.seed = randutil.Seed(cfg.Seed, t.clock.Now())
	t.rng = randutil.New(t.seed)
	if cfg.Seed == 0 {
		t.logger.Info().Int64("seed", t.seed).Msg("Picked time-based seed")
	}
	return t, nil
}

// RunIteration deals a fresh pair of private cards and performs one CFR
// pass from the root.
func (t *Trainer) RunIteration() TraversalStats {
	start := t.clock.Now()
	deal := game.DealPrivate(t.deck, t.rng)

	var stats TraversalStats
	ctx := &iterationContext{model: t.model, table: t.table, deck: t.deck, stats: &stats}
	ctx.traverse("", deal, [2]float64{1, 1}, 1, 0)

	stats.IterationTime = t.clock.Since(start)
	t.elapsed += stats.IterationTime
	t.stats = stats
	t.iteration++
	return stats
}

// Run executes the configured number of iterations, averaging strategies
// once at the end. Cancellation is honoured between iterations and leaves
// the table as trained so far.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	batch := t.cfg.Iterations / 100
	if batch == 0 {
		batch = 1
	}
	if t.cfg.ProgressEvery > 0 {
		batch = t.cfg.ProgressEvery
	}

	for t.iteration < t.cfg.Iterations {
		select {
		case <-ctx.Done():
			t.table.AverageStrategies()
			return ctx.Err()
		default:
		}

		stats := t.RunIteration()
		iter := t.iteration

		var sample *ExploitabilitySample
		if t.shouldSample(iter) {
			s, err := t.sample(ctx)
			if err != nil {
				return err
			}
			sample = &s
		}

		if progress != nil && (sample != nil || iter%batch == 0 || iter == t.cfg.Iterations) {
			progress(Progress{
				Iteration: iter,
				InfoSets:  t.table.Len(),
				Stats:     stats,
				Sample:    sample,
				Tracked:   t.trackedStrategy(),
			})
		}
	}

	t.table.AverageStrategies()
	return nil
}

func (t *Trainer) shouldSample(iter int) bool {
	every := t.cfg.SampleEvery
	return every > 0 && (iter%every == 0 || iter == t.cfg.Iterations)
}

func (t *Trainer) sample(ctx context.Context) (ExploitabilitySample, error) {
	t.table.AverageStrategies()
	value, err := NewEvaluator(t.model, t.table).Exploitability(ctx)
	if err != nil {
		return ExploitabilitySample{}, err
	}
	s := ExploitabilitySample{
		Iteration:      t.iteration,
		Exploitability: value,
		Elapsed:        t.elapsed,
	}
	t.samples = append(t.samples, s)
	t.logger.Debug().
		Int("iteration", s.Iteration).
		Float64("exploitability", s.Exploitability).
		Dur("elapsed", s.Elapsed).
		Msg("Exploitability sample")
	return s, nil
}

func (t *Trainer) trackedStrategy() []float64 {
	if t.tracked == nil {
		return nil
	}
	node, ok := t.table.Lookup(*t.tracked)
	if !ok {
		return nil
	}
	return node.AverageStrategy()
}

// Table returns the table being trained.
func (t *Trainer) Table() *Table {
	return t.table
}

// Model returns the game being trained.
func (t *Trainer) Model() game.Model {
	return t.model
}

// Iteration reports how many iterations have completed.
func (t *Trainer) Iteration() int {
	return t.iteration
}

// Seed reports the seed actually used for dealing.
func (t *Trainer) Seed() int64 {
	return t.seed
}

// Stats returns the most recent traversal statistics recorded by the trainer.
func (t *Trainer) Stats() TraversalStats {
	return t.stats
}

// Samples returns the exploitability curve recorded so far.
func (t *Trainer) Samples() []ExploitabilitySample {
	return append([]ExploitabilitySample(nil), t.samples...)
}

// Elapsed is the total time spent inside iterations, excluding sampling.
func (t *Trainer) Elapsed() time.Duration {
	return t.elapsed
}
