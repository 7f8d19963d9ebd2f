// Package report renders trained strategies for people and files.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/solver"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Row is one information set with its final strategy.
type Row struct {
	Key           solver.InfoSetKey
	Actions       []game.Action
	Probabilities []float64
}

// Rows lists player's information sets in table key order.
func Rows(t *solver.Table, player game.Player) []Row {
	var rows []Row
	for _, key := range t.Keys() {
		if key.Player != player {
			continue
		}
		node, _ := t.Lookup(key)
		rows = append(rows, Row{
			Key:           key,
			Actions:       node.Actions,
			Probabilities: node.FinalStrategy,
		})
	}
	return rows
}

// Describe labels an information set the way a player reads it, e.g.
// "King | public Jack | pb".
func Describe(key solver.InfoSetKey) string {
	parts := []string{key.Private.Name()}
	if key.Public != game.NoRank {
		parts = append(parts, "public "+key.Public.Name())
	}
	parts = append(parts, key.History.String())
	return strings.Join(parts, " | ")
}

// FormatStrategy renders action probabilities as "pass 0.67  bet 0.33".
func FormatStrategy(actions []game.Action, probs []float64) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("%s %.3f", a, probs[i])
	}
	return strings.Join(parts, "  ")
}

// RenderStrategies writes one table per player listing every information
// set and its final strategy.
func RenderStrategies(w io.Writer, model game.Model, t *solver.Table) error {
	for _, player := range []game.Player{game.Player0, game.Player1} {
		rows := Rows(t, player)
		if len(rows) == 0 {
			continue
		}

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers("Card", "Public", "History", "Strategy")
		for _, r := range rows {
			tbl.Row(r.Key.Private.Name(), publicLabel(r.Key.Public), r.Key.History.String(), FormatStrategy(r.Actions, r.Probabilities))
		}

		title := titleStyle.Render(fmt.Sprintf("%s strategy for %s", model.Name(), player))
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, tbl.String()); err != nil {
			return err
		}
	}
	return nil
}

func publicLabel(r game.Rank) string {
	if r == game.NoRank {
		return "-"
	}
	return r.Name()
}
