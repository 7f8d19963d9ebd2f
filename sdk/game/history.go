package game

import "strings"

// Action is a single betting token in a history string.
type Action byte

const (
	Pass  Action = 'p'
	Bet   Action = 'b'
	Raise Action = 'r'
	Call  Action = 'c'
	Fold  Action = 'f'
)

// RoundSeparator closes a betting round once the public card is dealt.
const RoundSeparator = ':'

func (a Action) String() string {
	switch a {
	case Pass:
		return "pass"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Call:
		return "call"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// ParseAction maps a token byte back to an Action.
func ParseAction(b byte) (Action, bool) {
	switch a := Action(b); a {
	case Pass, Bet, Raise, Call, Fold:
		return a, true
	default:
		return 0, false
	}
}

// History is the public action sequence of a hand, e.g. "prc:rc". It is the
// only game state besides the deal.
type History string

// Append returns h extended by one action.
func (h History) Append(a Action) History {
	return h + History(rune(a))
}

// NextRound returns h with a round separator appended.
func (h History) NextRound() History {
	return h + History(rune(RoundSeparator))
}

// Rounds splits h into its per-round action strings.
func (h History) Rounds() []History {
	parts := strings.Split(string(h), string(RoundSeparator))
	rounds := make([]History, len(parts))
	for i, p := range parts {
		rounds[i] = History(p)
	}
	return rounds
}

// Round returns the 1-based index of the round h is currently in.
func (h History) Round() int {
	return strings.Count(string(h), string(RoundSeparator)) + 1
}

// Current returns the actions taken so far in the current round.
func (h History) Current() History {
	if i := strings.LastIndexByte(string(h), RoundSeparator); i >= 0 {
		return h[i+1:]
	}
	return h
}

// Last returns the most recent action of the current round.
func (h History) Last() (Action, bool) {
	cur := h.Current()
	if len(cur) == 0 {
		return 0, false
	}
	return Action(cur[len(cur)-1]), true
}

// String renders the empty history as "(root)" for logs and reports.
func (h History) String() string {
	if h == "" {
		return "(root)"
	}
	return string(h)
}
