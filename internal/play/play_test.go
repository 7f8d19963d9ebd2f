package play

import (
	"context"
	"math"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/game/kuhn"
	"github.com/lox/pokercfr/sdk/game/leduc"
	"github.com/lox/pokercfr/sdk/solver"
)

func press(m *Model, k string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

// passive checks or calls whenever it can.
var passive = BotFunc(func(_ solver.InfoSetKey, actions []game.Action) game.Action {
	for _, want := range []game.Action{game.Pass, game.Call} {
		if slices.Contains(actions, want) {
			return want
		}
	}
	return actions[0]
})

func TestKuhnHandAgainstPassiveBot(t *testing.T) {
	m := New(kuhn.New(), passive, Options{Seat: game.Player0, Seed: 1})

	require.Equal(t, 1, m.Hands())
	assert.Equal(t, game.History(""), m.History())
	assert.False(t, m.Finished())

	press(m, "p")
	assert.Equal(t, game.History("pp"), m.History())
	require.True(t, m.Finished())
	assert.Equal(t, 1.0, math.Abs(m.Score()))

	press(m, "b")
	assert.Equal(t, game.History("pp"), m.History(), "actions are ignored once the hand is over")

	press(m, "n")
	assert.Equal(t, 2, m.Hands())
	assert.False(t, m.Finished())
	assert.Equal(t, game.History(""), m.History())
}

func TestBotActsFirstWhenHumanIsSecond(t *testing.T) {
	m := New(kuhn.New(), passive, Options{Seat: game.Player1, Seed: 2})

	assert.Equal(t, game.History("p"), m.History())
	assert.False(t, m.Finished())

	press(m, "b")
	// The passive bot folds to a bet in Kuhn.
	assert.Equal(t, game.History("pbp"), m.History())
	assert.True(t, m.Finished())
	assert.Equal(t, 1.0, m.Score())
}

func TestLeducHandCrossesRounds(t *testing.T) {
	m := New(leduc.New(), passive, Options{Seat: game.Player0, Seed: 3})

	press(m, "c")
	assert.Equal(t, game.History(""), m.History(), "call is not offered without a bet")

	press(m, "r")
	assert.Equal(t, game.History("rc:"), m.History())
	assert.True(t, m.Deal().Public.Dealt())
	assert.NotEqual(t, m.Deal().Public, m.Deal().Private[0])
	assert.NotEqual(t, m.Deal().Public, m.Deal().Private[1])

	press(m, "p")
	assert.Equal(t, game.History("rc:pp"), m.History())
	require.True(t, m.Finished())
	assert.Contains(t, []float64{-2, 0, 2}, m.Score())
}

func TestQuitKey(t *testing.T) {
	m := New(kuhn.New(), passive, Options{Seed: 4})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Final score after 1 hands")
}

func TestViewShowsHand(t *testing.T) {
	m := New(leduc.New(), passive, Options{Seat: game.Player0, Seed: 5})

	view := m.View()
	assert.Contains(t, view, "pokercfr · leduc")
	assert.Contains(t, view, "You (P0): "+m.Deal().Private[0].String())
	assert.Contains(t, view, "raise")
	assert.NotContains(t, view, "Public:")
	require.NotEmpty(t, m.Log())
	assert.Contains(t, m.Log()[0], "Hand #1")
}

func TestStrategyBotFollowsTable(t *testing.T) {
	model := kuhn.New()
	trainer, err := solver.NewTrainer(model, solver.TrainingConfig{Iterations: 10, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background(), nil))

	key := solver.InfoSetKey{Player: game.Player0, Private: game.King, Public: game.NoRank}
	node, ok := trainer.Table().Lookup(key)
	require.True(t, ok)
	node.FinalStrategy[0], node.FinalStrategy[1] = 0, 1

	bot := NewStrategyBot(trainer.Table(), randutil.New(6))
	for range 50 {
		assert.Equal(t, game.Bet, bot.Act(key, model.LegalActions("")))
	}
}

func TestRandomBotStaysLegal(t *testing.T) {
	bot := NewRandomBot(randutil.New(7))
	actions := []game.Action{game.Fold, game.Call}
	seen := map[game.Action]bool{}
	for range 100 {
		a := bot.Act(solver.InfoSetKey{}, actions)
		require.Contains(t, actions, a)
		seen[a] = true
	}
	assert.Len(t, seen, 2)
}
