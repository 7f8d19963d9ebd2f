package play

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/pokercfr/sdk/game"
)

type actionBinding struct {
	action  game.Action
	binding key.Binding
}

type keyMap struct {
	actions []actionBinding
	Next    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	bind := func(a game.Action) actionBinding {
		k := string(rune(a))
		return actionBinding{
			action:  a,
			binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, a.String())),
		}
	}
	return keyMap{
		actions: []actionBinding{
			bind(game.Pass),
			bind(game.Bet),
			bind(game.Raise),
			bind(game.Call),
			bind(game.Fold),
		},
		Next: key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next hand")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// enable turns on exactly the bindings for legal actions.
func (k *keyMap) enable(legal []game.Action) {
	for i := range k.actions {
		on := false
		for _, a := range legal {
			if a == k.actions[i].action {
				on = true
				break
			}
		}
		k.actions[i].binding.SetEnabled(on)
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	bindings := make([]key.Binding, 0, len(k.actions)+2)
	for _, ab := range k.actions {
		bindings = append(bindings, ab.binding)
	}
	return append(bindings, k.Next, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
