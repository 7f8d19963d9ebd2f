package game

import "slices"

// Rand is the subset of *rand.Rand (math/rand/v2) that dealing needs.
type Rand interface {
	IntN(n int) int
}

// DealPrivate draws two distinct private cards from deck, uniformly over
// ordered pairs. The public card is left undealt.
func DealPrivate(deck []Card, rng Rand) Deal {
	if len(deck) < 2 {
		panic("game: deck needs at least two cards")
	}
	i := rng.IntN(len(deck))
	j := rng.IntN(len(deck) - 1)
	if j >= i {
		j++
	}
	return Deal{Private: [2]Card{deck[i], deck[j]}, Public: NoCard}
}

// Outcome is one resolution of a chance node.
type Outcome struct {
	Card        Card
	Probability float64
}

// PublicOutcomes lists every card that can still be dealt face up given the
// private cards in d, each with its exact probability.
func PublicOutcomes(deck []Card, d Deal) []Outcome {
	remaining := Remaining(deck, d.Private[0], d.Private[1])
	if len(remaining) == 0 {
		return nil
	}
	p := 1 / float64(len(remaining))
	outcomes := make([]Outcome, len(remaining))
	for i, c := range remaining {
		outcomes[i] = Outcome{Card: c, Probability: p}
	}
	return outcomes
}

// PublicRanks is PublicOutcomes with cards of equal rank merged into one
// outcome, since suits never reach an information set or a payoff. Each
// outcome carries the first matching card in deck order.
func PublicRanks(deck []Card, d Deal) []Outcome {
	var outcomes []Outcome
	for _, o := range PublicOutcomes(deck, d) {
		i := slices.IndexFunc(outcomes, func(x Outcome) bool { return x.Card.Rank == o.Card.Rank })
		if i < 0 {
			outcomes = append(outcomes, o)
			continue
		}
		outcomes[i].Probability += o.Probability
	}
	return outcomes
}

// Remaining returns deck without the given cards. Each excluded card removes
// at most one matching entry.
func Remaining(deck []Card, exclude ...Card) []Card {
	used := make([]bool, len(exclude))
	out := make([]Card, 0, len(deck))
outer:
	for _, c := range deck {
		for i, x := range exclude {
			if !used[i] && x == c {
				used[i] = true
				continue outer
			}
		}
		out = append(out, c)
	}
	return out
}
