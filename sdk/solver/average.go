package solver

// AverageStrategies stores every node's normalised strategy sum in
// FinalStrategy. Nodes that never accumulated weight become uniform. Regret
// sums and current strategies are left alone, so repeated calls are no-ops.
func (t *Table) AverageStrategies() {
	for _, node := range t.nodes {
		copy(node.FinalStrategy, node.AverageStrategy())
	}
}
