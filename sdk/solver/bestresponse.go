package solver

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokercfr/sdk/game"
)

// Evaluator measures a table's averaged strategies. It only reads the table,
// so one evaluator may run several evaluations in parallel as long as
// training is paused.
type Evaluator struct {
	model game.Model
	table *Table
	deck  []game.Card
}

// NewEvaluator returns an evaluator of table under model's rules.
func NewEvaluator(model game.Model, table *Table) *Evaluator {
	return &Evaluator{model: model, table: table, deck: model.Deck()}
}

// Exploitability is the mean of both players' best-response values against
// the averaged profile. It is zero exactly at a Nash equilibrium.
func (e *Evaluator) Exploitability(ctx context.Context) (float64, error) {
	var values [2]float64
	g, ctx := errgroup.WithContext(ctx)
	for _, hero := range []game.Player{game.Player0, game.Player1} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			values[hero] = e.BestResponse(hero)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return (values[0] + values[1]) / 2, nil
}

// BestResponse returns hero's expected value when maximally exploiting the
// opponent's averaged strategy, averaged over hero's private card.
func (e *Evaluator) BestResponse(hero game.Player) float64 {
	n := len(e.deck)
	total := 0.0
	for heroCard := range e.deck {
		belief := make([]float64, n)
		for opp := range belief {
			if opp != heroCard {
				belief[opp] = 1 / float64(n-1)
			}
		}
		total += e.bestResponse("", hero, heroCard, game.NoCard, belief)
	}
	return total / float64(n)
}

// bestResponse carries the joint probability mass of each opponent card
// reaching h. Values are scaled by that mass, so hero's maximum over actions
// at a node picks the same action as it would with a normalised belief.
func (e *Evaluator) bestResponse(h game.History, hero game.Player, heroCard int, public game.Card, belief []float64) float64 {
	if e.model.IsTerminal(h) {
		value := 0.0
		for opp, w := range belief {
			if w == 0 {
				continue
			}
			value += w * game.Utility(e.model, h, e.deal(hero, heroCard, opp, public), hero)
		}
		return value
	}

	if e.model.IsChance(h) {
		next := h.NextRound()
		p := 1 / float64(len(e.deck)-2)
		value := 0.0
		for c, card := range e.deck {
			if c == heroCard {
				continue
			}
			child := make([]float64, len(belief))
			mass := 0.0
			for opp, w := range belief {
				if w == 0 || opp == c {
					continue
				}
				child[opp] = w * p
				mass += child[opp]
			}
			if mass == 0 {
				continue
			}
			value += e.bestResponse(next, hero, heroCard, card, child)
		}
		return value
	}

	actions := e.model.LegalActions(h)
	mover := e.model.ActingPlayer(h)
	if mover == hero {
		best := math.Inf(-1)
		for _, a := range actions {
			best = max(best, e.bestResponse(h.Append(a), hero, heroCard, public, belief))
		}
		return best
	}

	policies := make([][]float64, len(belief))
	for opp, w := range belief {
		if w == 0 {
			continue
		}
		key := InfoSetKey{Player: mover, Private: e.deck[opp].Rank, Public: public.Rank, History: h}
		policies[opp] = e.table.Policy(key, actions)
	}

	value := 0.0
	for i, a := range actions {
		child := make([]float64, len(belief))
		mass := 0.0
		for opp, w := range belief {
			if w == 0 {
				continue
			}
			child[opp] = w * policies[opp][i]
			mass += child[opp]
		}
		if mass == 0 {
			continue
		}
		value += e.bestResponse(h.Append(a), hero, heroCard, public, child)
	}
	return value
}

func (e *Evaluator) deal(hero game.Player, heroCard, oppCard int, public game.Card) game.Deal {
	var d game.Deal
	d.Private[hero] = e.deck[heroCard]
	d.Private[hero.Opponent()] = e.deck[oppCard]
	d.Public = public
	return d
}

// ExpectedValue returns each player's value when both follow the averaged
// strategies, enumerating every deal exactly.
func (e *Evaluator) ExpectedValue() [2]float64 {
	n := len(e.deck)
	total := 0.0
	for i := range e.deck {
		for j := range e.deck {
			if i == j {
				continue
			}
			d := game.Deal{Private: [2]game.Card{e.deck[i], e.deck[j]}, Public: game.NoCard}
			total += e.expected("", d)
		}
	}
	v := total / float64(n*(n-1))
	return [2]float64{v, -v}
}

// expected returns the value to player 0 below h.
func (e *Evaluator) expected(h game.History, d game.Deal) float64 {
	if e.model.IsTerminal(h) {
		return e.model.Payoff(h, d)
	}
	if e.model.IsChance(h) {
		value := 0.0
		for _, o := range game.PublicOutcomes(e.deck, d) {
			value += o.Probability * e.expected(h.NextRound(), d.WithPublic(o.Card))
		}
		return value
	}
	actions := e.model.LegalActions(h)
	policy := e.table.Policy(KeyFor(e.model.ActingPlayer(h), d, h), actions)
	value := 0.0
	for i, a := range actions {
		if policy[i] == 0 {
			continue
		}
		value += policy[i] * e.expected(h.Append(a), d)
	}
	return value
}
