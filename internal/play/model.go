package play

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/pokercfr/internal/randutil"
	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/solver"
)

const logLines = 10

// Options configure an interactive session.
type Options struct {
	// Seat is the human's seat.
	Seat   game.Player
	Seed   int64
	Logger *log.Logger
}

// Model is the Bubble Tea model for a heads-up session against a bot.
type Model struct {
	game   game.Model
	bot    Bot
	seat   game.Player
	rng    *rand.Rand
	deck   []game.Card
	logger *log.Logger

	keys keyMap
	help help.Model

	deal     game.Deal
	history  game.History
	finished bool
	hands    int
	score    float64
	gameLog  []string
	status   string
	quitting bool
}

// New creates a session and deals the first hand.
func New(g game.Model, bot Bot, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		game:   g,
		bot:    bot,
		seat:   opts.Seat,
		rng:    randutil.New(opts.Seed),
		deck:   g.Deck(),
		logger: logger.WithPrefix("play"),
		keys:   newKeyMap(),
		help:   help.New(),
	}
	m.startHand()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.finished {
				m.startHand()
			}
		default:
			for _, ab := range m.keys.actions {
				if key.Matches(msg, ab.binding) {
					m.act(ab.action)
					break
				}
			}
		}
	}
	return m, nil
}

func (m *Model) startHand() {
	m.hands++
	m.deal = game.DealPrivate(m.deck, m.rng)
	m.history = ""
	m.finished = false
	m.status = ""
	m.addLog(fmt.Sprintf("Hand #%d: you hold %s", m.hands, m.deal.Card(m.seat)))
	m.logger.Debug("Hand started", "hand", m.hands, "card", m.deal.Card(m.seat).String())
	m.advance()
}

// act applies the human's action and lets the bot respond.
func (m *Model) act(a game.Action) {
	if m.finished || m.game.ActingPlayer(m.history) != m.seat {
		return
	}
	next, err := game.Apply(m.game, m.history, a)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.history = next
	m.addLog("You: " + a.String())
	m.advance()
}

// advance resolves chance and bot decisions until the human must act or the
// hand ends.
func (m *Model) advance() {
	for {
		switch {
		case m.game.IsTerminal(m.history):
			m.settle()
			return
		case m.game.IsChance(m.history):
			outcomes := game.PublicOutcomes(m.deck, m.deal)
			weights := make([]float64, len(outcomes))
			for i, o := range outcomes {
				weights[i] = o.Probability
			}
			m.deal = m.deal.WithPublic(outcomes[randutil.Choice(m.rng, weights)].Card)
			m.history = m.history.NextRound()
			m.addLog("Public card: " + m.deal.Public.String())
			continue
		}

		mover := m.game.ActingPlayer(m.history)
		actions := m.game.LegalActions(m.history)
		if mover == m.seat {
			m.keys.enable(actions)
			return
		}
		a := m.bot.Act(solver.KeyFor(mover, m.deal, m.history), actions)
		m.history = game.MustApply(m.game, m.history, a)
		m.addLog("Bot: " + a.String())
	}
}

func (m *Model) settle() {
	value := game.Utility(m.game, m.history, m.deal, m.seat)
	m.score += value
	m.finished = true
	m.keys.enable(nil)

	var result string
	switch {
	case value > 0:
		result = WinStyle.Render(fmt.Sprintf("You win %g", value))
	case value < 0:
		result = LossStyle.Render(fmt.Sprintf("You lose %g", -value))
	default:
		result = "Split pot"
	}
	m.addLog(fmt.Sprintf("Bot held %s. %s", m.deal.Card(m.seat.Opponent()), result))
	m.logger.Info("Hand finished", "hand", m.hands, "history", string(m.history), "value", value, "score", m.score)
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > logLines {
		m.gameLog = m.gameLog[len(m.gameLog)-logLines:]
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Final score after %d hands: %+g\n", m.hands, m.score)
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("pokercfr · %s", m.game.Name())))
	b.WriteString("  ")
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand #%d  Score %+g", m.hands, m.score)))
	b.WriteString("\n\n")

	info := []string{
		"You (" + m.seat.String() + "): " + CardStyle.Render(m.deal.Card(m.seat).String()),
	}
	if m.deal.Public.Dealt() {
		info = append(info, "Public: "+CardStyle.Render(m.deal.Public.String()))
	}
	info = append(info, "History: "+m.history.String())
	b.WriteString(strings.Join(info, "   "))
	b.WriteString("\n\n")

	for _, line := range m.gameLog {
		b.WriteString(LogStyle.Render(line))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(ErrorStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.finished {
		b.WriteString(InfoStyle.Render("Hand over. Press n for the next hand."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// History returns the current hand's public history.
func (m *Model) History() game.History { return m.history }

// Deal returns the current hand's cards.
func (m *Model) Deal() game.Deal { return m.deal }

// Finished reports whether the current hand is over.
func (m *Model) Finished() bool { return m.finished }

// Score is the human's running total across hands.
func (m *Model) Score() float64 { return m.score }

// Hands counts hands dealt so far.
func (m *Model) Hands() int { return m.hands }

// Log returns the recent game log.
func (m *Model) Log() []string { return append([]string(nil), m.gameLog...) }
