// Package games maps variant names to their rule models.
package games

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokercfr/sdk/game"
	"github.com/lox/pokercfr/sdk/game/kuhn"
	"github.com/lox/pokercfr/sdk/game/leduc"
)

var registry = map[string]func() game.Model{
	"kuhn":  func() game.Model { return kuhn.New() },
	"leduc": func() game.Model { return leduc.New() },
}

// Lookup returns the model registered under name (case-insensitive).
func Lookup(name string) (game.Model, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the registered games in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
