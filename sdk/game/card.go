package game

import (
	"fmt"
	"strings"
)

// Rank orders cards for showdowns; a higher rank beats a lower one.
type Rank int8

const (
	NoRank Rank = -1
	Jack   Rank = 0
	Queen  Rank = 1
	King   Rank = 2
)

// Suit distinguishes duplicate ranks. Kuhn cards carry SuitNone.
type Suit uint8

const (
	SuitNone Suit = iota
	Hearts
	Spades
)

const rankChars = "JQK"

func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankChars) {
		return "-"
	}
	return rankChars[r : r+1]
}

// Name returns the long form used in reports ("Jack", "Queen", "King").
func (r Rank) Name() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "none"
	}
}

// ParseRank accepts the short form (J, Q, K) or "-" for NoRank.
func ParseRank(s string) (Rank, error) {
	if s == "-" {
		return NoRank, nil
	}
	if len(s) == 1 {
		if i := strings.IndexByte(rankChars, strings.ToUpper(s)[0]); i >= 0 {
			return Rank(i), nil
		}
	}
	return NoRank, fmt.Errorf("invalid rank %q", s)
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return ""
	}
}

// Card is a single playing card from a small poker deck.
type Card struct {
	Rank Rank
	Suit Suit
}

// NoCard marks a card slot that has not been dealt.
var NoCard = Card{Rank: NoRank}

func (c Card) String() string {
	if c.Rank == NoRank {
		return "-"
	}
	return c.Rank.String() + c.Suit.String()
}

// Dealt reports whether c is a real card.
func (c Card) Dealt() bool {
	return c.Rank != NoRank
}
