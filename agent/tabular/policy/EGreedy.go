// Package policy implements action-selection policies over tabular
// action values
package policy

import (
	"golang.org/x/exp/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"sfneuman.com/gridq/agent/tabular"
	"sfneuman.com/gridq/grid"
)

// EGreedy implements an ε-greedy policy over the action values of a
// QTable. With probability epsilon the policy selects an action
// uniformly at random; otherwise it selects the greedy action, with
// ties broken in favour of the lowest action index.
type EGreedy struct {
	table   *tabular.QTable
	epsilon float64
	seed    rand.Source
}

// NewEGreedy constructs a new EGreedy policy over the action values in
// table, where e = epsilon is the probability with which a random
// action is selected
func NewEGreedy(e float64, seed uint64, table *tabular.QTable) (*EGreedy,
	error) {
	if table == nil {
		return nil, errors.New("egreedy: no table given")
	}
	if e < 0.0 || e > 1.0 {
		return nil, errors.Errorf("egreedy: epsilon %v ∉ [0, 1]", e)
	}

	source := rand.NewSource(seed)
	return &EGreedy{table, e, source}, nil
}

// Epsilon returns the policy's probability of acting randomly
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the policy's probability of acting randomly
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// SelectAction selects an action from the ε-greedy policy in the
// discretized state
func (p *EGreedy) SelectAction(state grid.Index) int {
	numActions := p.table.NumActions()
	greedyAction := p.table.ArgMax(state)

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += 1.0 - p.epsilon

	// Sample an action given the action probabilities
	dist := distuv.NewCategorical(actionProbabilities, p.seed)
	return int(dist.Rand())
}
