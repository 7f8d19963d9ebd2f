package solver

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokercfr/sdk/game"
)

// InfoSetKey uniquely identifies what the acting player knows: their own
// card, the public card once dealt, and the public history.
type InfoSetKey struct {
	Player  game.Player
	Private game.Rank
	Public  game.Rank
	History game.History
}

// KeyFor builds the key for p at h under deal d.
func KeyFor(p game.Player, d game.Deal, h game.History) InfoSetKey {
	return InfoSetKey{
		Player:  p,
		Private: d.Private[p].Rank,
		Public:  d.Public.Rank,
		History: h,
	}
}

func (k InfoSetKey) String() string {
	return fmt.Sprintf("%d/%s/%s/%s", k.Player, k.Private, k.Public, string(k.History))
}

// ParseInfoSetKey reverses InfoSetKey.String, e.g. "1/J/-/p".
func ParseInfoSetKey(s string) (InfoSetKey, error) {
	parts := strings.SplitN(s, "/", 4)
	if len(parts) != 4 {
		return InfoSetKey{}, fmt.Errorf("info set key %q: want player/private/public/history", s)
	}
	var key InfoSetKey
	switch parts[0] {
	case "0":
		key.Player = game.Player0
	case "1":
		key.Player = game.Player1
	default:
		return InfoSetKey{}, fmt.Errorf("info set key %q: invalid player %q", s, parts[0])
	}
	var err error
	if key.Private, err = game.ParseRank(parts[1]); err != nil {
		return InfoSetKey{}, fmt.Errorf("info set key %q: %w", s, err)
	}
	if key.Private == game.NoRank {
		return InfoSetKey{}, fmt.Errorf("info set key %q: private card required", s)
	}
	if key.Public, err = game.ParseRank(parts[2]); err != nil {
		return InfoSetKey{}, fmt.Errorf("info set key %q: %w", s, err)
	}
	key.History = game.History(parts[3])
	return key, nil
}

func compareKeys(a, b InfoSetKey) int {
	return cmp.Or(
		cmp.Compare(a.Player, b.Player),
		cmp.Compare(len(a.History), len(b.History)),
		cmp.Compare(a.History, b.History),
		cmp.Compare(a.Public, b.Public),
		cmp.Compare(a.Private, b.Private),
	)
}

// Node accumulates regrets and strategy sums for one information set. Slices
// are indexed by position in Actions.
type Node struct {
	Actions       []game.Action
	RegretSum     []float64
	Strategy      []float64
	StrategySum   []float64
	FinalStrategy []float64
}

func newNode(actions []game.Action) *Node {
	n := len(actions)
	return &Node{
		Actions:       slices.Clone(actions),
		RegretSum:     make([]float64, n),
		Strategy:      uniform(n),
		StrategySum:   make([]float64, n),
		FinalStrategy: uniform(n),
	}
}

func uniform(n int) []float64 {
	strat := make([]float64, n)
	v := 1.0 / float64(n)
	for i := range strat {
		strat[i] = v
	}
	return strat
}

// regretMatch refreshes Strategy from the positive regrets, falling back to
// uniform when none are positive.
func (n *Node) regretMatch() []float64 {
	total := 0.0
	for i, r := range n.RegretSum {
		if r > 0 {
			n.Strategy[i] = r
			total += r
		} else {
			n.Strategy[i] = 0
		}
	}
	if total <= 0 {
		v := 1.0 / float64(len(n.Strategy))
		for i := range n.Strategy {
			n.Strategy[i] = v
		}
		return n.Strategy
	}
	for i := range n.Strategy {
		n.Strategy[i] /= total
	}
	return n.Strategy
}

// accumulate adds counterfactual regrets weighted by the opponent and chance
// reach, and the current strategy weighted by the actor's own reach.
func (n *Node) accumulate(values []float64, nodeValue, counterfactualReach, ownReach float64) {
	for i := range n.RegretSum {
		n.RegretSum[i] += (values[i] - nodeValue) * counterfactualReach
		n.StrategySum[i] += n.Strategy[i] * ownReach
	}
}

// AverageStrategy returns the normalised strategy sum without storing it.
func (n *Node) AverageStrategy() []float64 {
	total := 0.0
	for _, s := range n.StrategySum {
		total += s
	}
	if total <= 0 {
		return uniform(len(n.StrategySum))
	}
	strat := make([]float64, len(n.StrategySum))
	for i, s := range n.StrategySum {
		strat[i] = s / total
	}
	return strat
}

// Probability returns the final probability of a, or 0 if a is not offered.
func (n *Node) Probability(a game.Action) float64 {
	if i := slices.Index(n.Actions, a); i >= 0 {
		return n.FinalStrategy[i]
	}
	return 0
}

// Table maps information sets to their nodes. It is not safe for concurrent
// mutation; concurrent readers are fine once training has paused.
type Table struct {
	nodes map[InfoSetKey]*Node
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{nodes: make(map[InfoSetKey]*Node)}
}

// GetOrInsert returns the node for key, creating it with a uniform strategy
// on first visit. Every visit to an information set must offer the same
// actions.
func (t *Table) GetOrInsert(key InfoSetKey, actions []game.Action) *Node {
	if node, ok := t.nodes[key]; ok {
		if !slices.Equal(node.Actions, actions) {
			panic(fmt.Errorf("%w: info set %s offered %q, previously %q", game.ErrMalformedHistory, key, actions, node.Actions))
		}
		return node
	}
	node := newNode(actions)
	t.nodes[key] = node
	return node
}

// Lookup returns the node for key if it has been visited.
func (t *Table) Lookup(key InfoSetKey) (*Node, bool) {
	node, ok := t.nodes[key]
	return node, ok
}

// Policy returns the final strategy at key, or uniform over actions when the
// information set was never visited.
func (t *Table) Policy(key InfoSetKey, actions []game.Action) []float64 {
	if node, ok := t.nodes[key]; ok {
		return node.FinalStrategy
	}
	return uniform(len(actions))
}

// Len reports the number of information sets.
func (t *Table) Len() int {
	return len(t.nodes)
}

// Keys returns every key ordered by player, history depth, history, public
// card then private card.
func (t *Table) Keys() []InfoSetKey {
	keys := make([]InfoSetKey, 0, len(t.nodes))
	for k := range t.nodes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}
