package policy

import "sfneuman.com/gridq/agent/tabular"

// NewGreedy creates a new Greedy policy
func NewGreedy(seed uint64, table *tabular.QTable) (*EGreedy, error) {
	return NewEGreedy(0.0, seed, table)
}
