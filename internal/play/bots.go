// Package play runs interactive hands between a person and a bot.
package play

import (
	rand "math/rand/v2"

	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/solver"
)

// Bot chooses an action from what its seat can see.
type Bot interface {
	Act(key solver.InfoSetKey, actions []game.Action) game.Action
}

// BotFunc adapts a function to the Bot interface.
type BotFunc func(key solver.InfoSetKey, actions []game.Action) game.Action

func (f BotFunc) Act(key solver.InfoSetKey, actions []game.Action) game.Action {
	return f(key, actions)
}

// RandomBot picks uniformly among legal actions.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) Act(_ solver.InfoSetKey, actions []game.Action) game.Action {
	return actions[b.rng.IntN(len(actions))]
}

// StrategyBot samples from a trained table's final strategies. Unvisited
// information sets are played uniformly.
type StrategyBot struct {
	table *solver.Table
	rng   *rand.Rand
}

func NewStrategyBot(table *solver.Table, rng *rand.Rand) *StrategyBot {
	return &StrategyBot{table: table, rng: rng}
}

func (b *StrategyBot) Act(key solver.InfoSetKey, actions []game.Action) game.Action {
	return actions[randutil.Choice(b.rng, b.table.Policy(key, actions))]
}
