// Package kuhn implements three-card Kuhn poker: one card each, a single
// betting round, one chip ante and one chip bets.
package kuhn

import "github.com/lox/pokercfr/sdk/game"

// Game is the Kuhn poker rule set. The zero value is ready to use.
type Game struct{}

// New returns the Kuhn model.
func New() *Game {
	return &Game{}
}

var deck = []game.Card{
	{Rank: game.Jack},
	{Rank: game.Queen},
	{Rank: game.King},
}

type kind uint8

const (
	decision kind = iota
	terminal
)

func classify(h game.History) kind {
	switch h {
	case "", "p", "b", "pb":
		return decision
	case "pp", "bb", "bp", "pbb", "pbp":
		return terminal
	}
	panic(game.Malformed(h, "not a kuhn history"))
}

func (*Game) Name() string { return "kuhn" }

func (*Game) Deck() []game.Card {
	return append([]game.Card(nil), deck...)
}

func (*Game) IsTerminal(h game.History) bool {
	return classify(h) == terminal
}

// IsChance is always false: Kuhn has no public card.
func (*Game) IsChance(h game.History) bool {
	classify(h)
	return false
}

func (*Game) ActingPlayer(h game.History) game.Player {
	classify(h)
	return game.Player(len(h) % 2)
}

func (*Game) LegalActions(h game.History) []game.Action {
	if classify(h) == terminal {
		panic(game.Malformed(h, "no actions at a terminal history"))
	}
	return []game.Action{game.Pass, game.Bet}
}

// Payoff returns the chips player 0 wins. A pass after a bet is a fold.
func (*Game) Payoff(h game.History, d game.Deal) float64 {
	if classify(h) != terminal {
		panic(game.Malformed(h, "payoff requested before the hand ended"))
	}
	switch h {
	case "bp":
		return 1
	case "pbp":
		return -1
	}
	stake := 1.0
	if h != "pp" {
		stake = 2
	}
	if d.Private[0].Rank > d.Private[1].Rank {
		return stake
	}
	return -stake
}
