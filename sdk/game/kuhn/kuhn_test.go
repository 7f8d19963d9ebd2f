package kuhn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercfr/sdk/game"
)

func deal(p0, p1 game.Rank) game.Deal {
	return game.Deal{Private: [2]game.Card{{Rank: p0}, {Rank: p1}}, Public: game.NoCard}
}

func TestPayoffs(t *testing.T) {
	t.Parallel()
	g := New()

	tests := []struct {
		history game.History
		deal    game.Deal
		want    float64
	}{
		{"bp", deal(game.Jack, game.King), 1},
		{"pbp", deal(game.King, game.Jack), -1},
		{"pp", deal(game.King, game.Queen), 1},
		{"pp", deal(game.Jack, game.Queen), -1},
		{"bb", deal(game.Queen, game.Jack), 2},
		{"bb", deal(game.Queen, game.King), -2},
		{"pbb", deal(game.King, game.Jack), 2},
		{"pbb", deal(game.Jack, game.Queen), -2},
	}
	for _, tt := range tests {
		t.Run(string(tt.history), func(t *testing.T) {
			assert.Equal(t, tt.want, g.Payoff(tt.history, tt.deal))
			assert.Equal(t, -tt.want, game.Utility(g, tt.history, tt.deal, game.Player1))
		})
	}
}

func TestTreeShape(t *testing.T) {
	t.Parallel()
	g := New()

	var terminals, decisions []game.History
	game.Visit(g, func(h game.History) {
		assert.False(t, g.IsChance(h))
		if g.IsTerminal(h) {
			terminals = append(terminals, h)
			return
		}
		decisions = append(decisions, h)
		assert.Equal(t, []game.Action{game.Pass, game.Bet}, g.LegalActions(h))
	})

	assert.ElementsMatch(t, []game.History{"pp", "pbp", "pbb", "bp", "bb"}, terminals)
	assert.ElementsMatch(t, []game.History{"", "p", "pb", "b"}, decisions)
}

func TestActingPlayerAlternates(t *testing.T) {
	t.Parallel()
	g := New()

	assert.Equal(t, game.Player0, g.ActingPlayer(""))
	assert.Equal(t, game.Player1, g.ActingPlayer("p"))
	assert.Equal(t, game.Player1, g.ActingPlayer("b"))
	assert.Equal(t, game.Player0, g.ActingPlayer("pb"))
	assert.Equal(t, game.Player0, g.ActingPlayer("bb"))
}

func TestMalformedHistoryPanics(t *testing.T) {
	t.Parallel()
	g := New()

	for _, h := range []game.History{"x", "ppp", "bbp", "r", "p:"} {
		t.Run(string(h), func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, game.ErrMalformedHistory))
			}()
			g.IsTerminal(h)
		})
	}
}

func TestApplyRejectsIllegalActions(t *testing.T) {
	t.Parallel()
	g := New()

	next, err := game.Apply(g, "p", game.Bet)
	require.NoError(t, err)
	assert.Equal(t, game.History("pb"), next)

	_, err = game.Apply(g, "p", game.Raise)
	assert.ErrorIs(t, err, game.ErrIllegalAction)

	_, err = game.Apply(g, "pp", game.Pass)
	assert.ErrorIs(t, err, game.ErrIllegalAction)

	assert.Panics(t, func() { game.MustApply(g, "bb", game.Pass) })
}

func TestDeckIsCopied(t *testing.T) {
	t.Parallel()
	g := New()

	d := g.Deck()
	require.Len(t, d, 3)
	d[0] = game.NoCard
	assert.Equal(t, game.Jack, g.Deck()[0].Rank)
}
