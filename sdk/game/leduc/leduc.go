// Package leduc implements Leduc hold'em: a six card deck (J, Q, K in two
// suits), one private card each, a public card after the first betting
// round, and fixed-limit betting with a single raise per round.
package leduc

import (
	"fmt"

	"github.com/lox/pokercfr/sdk/game"
)

const (
	ante      = 1
	rounds    = 2
	maxRaises = 1 // raises allowed on top of the opening bet
)

var betSizes = [rounds]float64{1, 2}

var deck = []game.Card{
	{Rank: game.Jack, Suit: game.Hearts},
	{Rank: game.Queen, Suit: game.Hearts},
	{Rank: game.King, Suit: game.Hearts},
	{Rank: game.Jack, Suit: game.Spades},
	{Rank: game.Queen, Suit: game.Spades},
	{Rank: game.King, Suit: game.Spades},
}

// Game is the Leduc hold'em rule set. The zero value is ready to use.
type Game struct{}

// New returns the Leduc model.
func New() *Game {
	return &Game{}
}

// round summarises the betting inside one round.
type round struct {
	actions int
	bets    int // opening bet plus raises
	closed  bool
	folded  bool
}

func (r round) legal() []game.Action {
	switch {
	case r.bets == 0:
		return []game.Action{game.Pass, game.Raise}
	case r.bets <= maxRaises:
		return []game.Action{game.Fold, game.Call, game.Raise}
	default:
		return []game.Action{game.Fold, game.Call}
	}
}

func (r round) allows(a game.Action) bool {
	for _, x := range r.legal() {
		if x == a {
			return true
		}
	}
	return false
}

type kind uint8

const (
	decision kind = iota
	chance
	terminal
)

type state struct {
	rounds []game.History
	last   round
	kind   kind
}

// parse validates h token by token and reports where the hand stands.
func parse(h game.History) state {
	parts := h.Rounds()
	if len(parts) > rounds {
		panic(game.Malformed(h, "too many rounds"))
	}
	var r round
	for i, part := range parts {
		if i > 0 && !r.closed {
			panic(game.Malformed(h, fmt.Sprintf("round %d started before round %d closed", i+1, i)))
		}
		r = round{}
		for _, tok := range []byte(part) {
			a, ok := game.ParseAction(tok)
			if !ok {
				panic(game.Malformed(h, fmt.Sprintf("unknown token %q", tok)))
			}
			if r.closed || r.folded {
				panic(game.Malformed(h, "action after the round ended"))
			}
			if !r.allows(a) {
				panic(game.Malformed(h, fmt.Sprintf("%s not allowed here", a)))
			}
			switch a {
			case game.Pass:
				r.closed = r.actions == 1
			case game.Raise:
				r.bets++
			case game.Call:
				r.closed = true
			case game.Fold:
				r.folded = true
			}
			r.actions++
		}
	}

	s := state{rounds: parts, last: r, kind: decision}
	switch {
	case r.folded:
		s.kind = terminal
	case r.closed && len(parts) == rounds:
		s.kind = terminal
	case r.closed:
		s.kind = chance
	}
	return s
}

func (*Game) Name() string { return "leduc" }

func (*Game) Deck() []game.Card {
	return append([]game.Card(nil), deck...)
}

func (*Game) IsTerminal(h game.History) bool {
	return parse(h).kind == terminal
}

func (*Game) IsChance(h game.History) bool {
	return parse(h).kind == chance
}

// ActingPlayer counts actions within the current round; Player0 opens every
// round.
func (*Game) ActingPlayer(h game.History) game.Player {
	s := parse(h)
	if s.kind == chance {
		return game.Player0
	}
	return game.Player(s.last.actions % 2)
}

// LegalActions lists [Pass, Raise] when no bet is outstanding, otherwise
// [Fold, Call] plus Raise while a raise remains.
func (*Game) LegalActions(h game.History) []game.Action {
	s := parse(h)
	if s.kind != decision {
		panic(game.Malformed(h, "no actions outside a decision history"))
	}
	return s.last.legal()
}

// Payoff returns the chips player 0 wins. A fold forfeits everything the
// folder put in; a showdown pays the loser's commitment to the winner.
func (*Game) Payoff(h game.History, d game.Deal) float64 {
	s := parse(h)
	if s.kind != terminal {
		panic(game.Malformed(h, "payoff requested before the hand ended"))
	}

	committed := [2]float64{ante, ante}
	for i, part := range s.rounds {
		var bets [2]float64
		for n, tok := range []byte(part) {
			actor := n % 2
			switch game.Action(tok) {
			case game.Raise:
				bets[actor] = max(bets[0], bets[1]) + betSizes[i]
			case game.Call:
				bets[actor] = max(bets[0], bets[1])
			case game.Fold:
				committed[0] += bets[0]
				committed[1] += bets[1]
				if actor == 0 {
					return -committed[0]
				}
				return committed[1]
			}
		}
		committed[0] += bets[0]
		committed[1] += bets[1]
	}

	if !d.Public.Dealt() {
		panic(game.Malformed(h, "showdown without a public card"))
	}
	switch a, b := strength(d.Private[0], d.Public), strength(d.Private[1], d.Public); {
	case a > b:
		return committed[1]
	case a < b:
		return -committed[0]
	default:
		return 0
	}
}

// strength ranks a hand: any pair beats every high card.
func strength(private, public game.Card) int {
	if private.Rank == public.Rank {
		return 10 + int(private.Rank)
	}
	return int(private.Rank)
}
