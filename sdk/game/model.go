// Package game defines the contract shared by the small poker variants the
// solver trains on. Game state is the public history plus the deal; models
// are pure functions over that pair.
package game

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMalformedHistory is wrapped by panics raised when a model is handed
	// a history it could never have produced.
	ErrMalformedHistory = errors.New("malformed history")
	// ErrIllegalAction is returned when an action is not legal at a history.
	ErrIllegalAction = errors.New("illegal action")
)

// Player identifies a seat. Player0 acts first in every round.
type Player int8

const (
	Player0 Player = 0
	Player1 Player = 1
)

// Opponent returns the other seat.
func (p Player) Opponent() Player {
	return 1 - p
}

// Sign converts a player-0 payoff into p's payoff.
func (p Player) Sign() float64 {
	if p == Player0 {
		return 1
	}
	return -1
}

func (p Player) String() string {
	return fmt.Sprintf("P%d", int(p))
}

// Deal holds the cards of one hand. Public stays NoCard until the chance
// node between rounds has been resolved.
type Deal struct {
	Private [2]Card
	Public  Card
}

// Card returns p's private card.
func (d Deal) Card(p Player) Card {
	return d.Private[p]
}

// WithPublic returns a copy of d with the public card set.
func (d Deal) WithPublic(c Card) Deal {
	d.Public = c
	return d
}

// Model describes the rules of a two-player zero-sum poker variant.
type Model interface {
	Name() string
	// Deck returns the cards in play. Callers may modify the returned slice.
	Deck() []Card
	IsTerminal(h History) bool
	// IsChance reports whether a public card must be dealt before play
	// continues.
	IsChance(h History) bool
	// ActingPlayer is defined for every well-formed history. On terminal
	// histories it is the player who would act next; on chance histories it
	// is the first actor of the following round.
	ActingPlayer(h History) Player
	// LegalActions lists the actions available at a decision history in a
	// fixed order.
	LegalActions(h History) []Action
	// Payoff returns the terminal value to Player0.
	Payoff(h History, d Deal) float64
}

// Malformed builds the error value models panic with.
func Malformed(h History, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedHistory, string(h), reason)
}

// Utility orients the terminal payoff towards p.
func Utility(m Model, h History, d Deal, p Player) float64 {
	return p.Sign() * m.Payoff(h, d)
}

// Apply extends h by a when a is legal there.
func Apply(m Model, h History, a Action) (History, error) {
	switch {
	case m.IsTerminal(h):
		return h, fmt.Errorf("%w: hand %q is over", ErrIllegalAction, string(h))
	case m.IsChance(h):
		return h, fmt.Errorf("%w: hand %q awaits the public card", ErrIllegalAction, string(h))
	}
	if !slices.Contains(m.LegalActions(h), a) {
		return h, fmt.Errorf("%w: %s at %q", ErrIllegalAction, a, string(h))
	}
	return h.Append(a), nil
}

// MustApply is Apply for callers that have already checked legality.
func MustApply(m Model, h History, a Action) History {
	next, err := Apply(m, h, a)
	if err != nil {
		panic(err)
	}
	return next
}

// Visit walks every history reachable from the root depth first, calling fn
// on each before its children. Chance histories continue into the next round.
func Visit(m Model, fn func(h History)) {
	visit(m, "", fn)
}

func visit(m Model, h History, fn func(History)) {
	fn(h)
	switch {
	case m.IsTerminal(h):
		return
	case m.IsChance(h):
		visit(m, h.NextRound(), fn)
		return
	}
	for _, a := range m.LegalActions(h) {
		visit(m, h.Append(a), fn)
	}
}
