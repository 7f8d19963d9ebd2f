package solver

import (
	"github.com/lox/pokercfr/sdk/game"
)

type iterationContext struct {
	model game.Model
	table *Table
	deck  []game.Card
	stats *TraversalStats
}

// traverse runs one vanilla CFR pass below h and returns the value to the
// player acting at h. reach holds each player's own contribution to reaching
// h; chance is the probability of the public cards dealt so far.
func (ctx *iterationContext) traverse(h game.History, deal game.Deal, reach [2]float64, chance float64, depth int) float64 {
	if ctx.stats != nil {
		ctx.stats.NodesVisited++
		if depth > ctx.stats.MaxDepth {
			ctx.stats.MaxDepth = depth
		}
	}

	mover := ctx.model.ActingPlayer(h)
	if ctx.model.IsTerminal(h) {
		if ctx.stats != nil {
			ctx.stats.TerminalNodes++
		}
		return game.Utility(ctx.model, h, deal, mover)
	}

	if ctx.model.IsChance(h) {
		if ctx.stats != nil {
			ctx.stats.ChanceNodes++
		}
		next := h.NextRound()
		nextMover := ctx.model.ActingPlayer(next)
		value := 0.0
		// One branch per rank, so each information set is visited once per
		// iteration and keeps a single strategy.
		for _, o := range game.PublicRanks(ctx.deck, deal) {
			child := ctx.traverse(next, deal.WithPublic(o.Card), reach, chance*o.Probability, depth+1)
			value += o.Probability * orient(child, nextMover, mover)
		}
		return value
	}

	actions := ctx.model.LegalActions(h)
	node := ctx.table.GetOrInsert(KeyFor(mover, deal, h), actions)
	strategy := node.regretMatch()

	values := make([]float64, len(actions))
	nodeValue := 0.0
	for i, a := range actions {
		next := h.Append(a)
		childReach := reach
		childReach[mover] *= strategy[i]
		child := ctx.traverse(next, deal, childReach, chance, depth+1)
		values[i] = orient(child, ctx.model.ActingPlayer(next), mover)
		nodeValue += strategy[i] * values[i]
	}

	node.accumulate(values, nodeValue, reach[mover.Opponent()]*chance, reach[mover])
	return nodeValue
}

// orient converts a value held from one player's view to another's.
func orient(v float64, from, to game.Player) float64 {
	if from == to {
		return v
	}
	return -v
}
