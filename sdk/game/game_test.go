package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercfr/internal/randutil"
)

func TestHistoryHelpers(t *testing.T) {
	t.Parallel()

	h := History("prc").NextRound().Append(Raise)
	assert.Equal(t, History("prc:r"), h)
	assert.Equal(t, 2, h.Round())
	assert.Equal(t, History("r"), h.Current())
	assert.Equal(t, []History{"prc", "r"}, h.Rounds())

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, Raise, last)

	_, ok = History("prc:").Last()
	assert.False(t, ok, "fresh round has no last action")

	assert.Equal(t, "(root)", History("").String())
	assert.Equal(t, 1, History("").Round())
}

func TestParseActionAndRank(t *testing.T) {
	t.Parallel()

	for _, b := range []byte("pbrcf") {
		a, ok := ParseAction(b)
		require.True(t, ok)
		assert.Equal(t, b, byte(a))
	}
	_, ok := ParseAction(':')
	assert.False(t, ok)

	tests := []struct {
		in   string
		want Rank
		err  bool
	}{
		{in: "J", want: Jack},
		{in: "q", want: Queen},
		{in: "K", want: King},
		{in: "-", want: NoRank},
		{in: "A", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRank(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "K", Card{Rank: King}.String())
	assert.Equal(t, "Qh", Card{Rank: Queen, Suit: Hearts}.String())
	assert.Equal(t, "Js", Card{Rank: Jack, Suit: Spades}.String())
	assert.Equal(t, "-", NoCard.String())
	assert.False(t, NoCard.Dealt())
}

func TestPlayerHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Player1, Player0.Opponent())
	assert.Equal(t, Player0, Player1.Opponent())
	assert.Equal(t, 1.0, Player0.Sign())
	assert.Equal(t, -1.0, Player1.Sign())
}

func TestDealPrivateDrawsDistinctCards(t *testing.T) {
	t.Parallel()

	deck := []Card{{Rank: Jack}, {Rank: Queen}, {Rank: King}}
	rng := randutil.New(7)
	counts := map[[2]Rank]int{}
	const draws = 6000
	for range draws {
		d := DealPrivate(deck, rng)
		require.NotEqual(t, d.Private[0], d.Private[1])
		assert.False(t, d.Public.Dealt())
		counts[[2]Rank{d.Private[0].Rank, d.Private[1].Rank}]++
	}

	require.Len(t, counts, 6, "every ordered pair should appear")
	for pair, n := range counts {
		assert.InDelta(t, draws/6, n, 150, "pair %v", pair)
	}
}

func TestPublicOutcomesExcludePrivateCards(t *testing.T) {
	t.Parallel()

	deck := []Card{
		{Rank: Jack, Suit: Hearts}, {Rank: Queen, Suit: Hearts}, {Rank: King, Suit: Hearts},
		{Rank: Jack, Suit: Spades}, {Rank: Queen, Suit: Spades}, {Rank: King, Suit: Spades},
	}
	d := Deal{Private: [2]Card{deck[2], deck[3]}, Public: NoCard}

	outcomes := PublicOutcomes(deck, d)
	require.Len(t, outcomes, 4)
	total := 0.0
	for _, o := range outcomes {
		assert.NotEqual(t, d.Private[0], o.Card)
		assert.NotEqual(t, d.Private[1], o.Card)
		total += o.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-12)

	withPublic := d.WithPublic(outcomes[0].Card)
	assert.Equal(t, outcomes[0].Card, withPublic.Public)
	assert.False(t, d.Public.Dealt(), "WithPublic must not modify the receiver")
}

func TestPublicRanksMergeSuits(t *testing.T) {
	t.Parallel()

	deck := []Card{
		{Rank: Jack, Suit: Hearts}, {Rank: Queen, Suit: Hearts}, {Rank: King, Suit: Hearts},
		{Rank: Jack, Suit: Spades}, {Rank: Queen, Suit: Spades}, {Rank: King, Suit: Spades},
	}
	d := Deal{Private: [2]Card{deck[0], deck[1]}, Public: NoCard}

	outcomes := PublicRanks(deck, d)
	require.Len(t, outcomes, 3)
	assert.Equal(t, deck[2], outcomes[0].Card)
	assert.InDelta(t, 0.5, outcomes[0].Probability, 1e-12)
	assert.Equal(t, deck[3], outcomes[1].Card)
	assert.InDelta(t, 0.25, outcomes[1].Probability, 1e-12)
	assert.Equal(t, deck[4], outcomes[2].Card)
	assert.InDelta(t, 0.25, outcomes[2].Probability, 1e-12)
}

func TestNextRoundAppendsSeparator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, History("rc:"), History("rc").NextRound())
	assert.Equal(t, []History{"rc", ""}, History("rc").NextRound().Rounds())
}

func TestRemainingRemovesOneCopyPerCard(t *testing.T) {
	t.Parallel()

	deck := []Card{{Rank: Jack}, {Rank: Jack}, {Rank: King}}
	got := Remaining(deck, Card{Rank: Jack})
	assert.Equal(t, []Card{{Rank: Jack}, {Rank: King}}, got)
}
