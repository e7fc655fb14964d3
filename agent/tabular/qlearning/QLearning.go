// Package qlearning implements tabular Q-Learning over a discretized
// state space
package qlearning

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"sfneuman.com/gridq/agent"
	"sfneuman.com/gridq/agent/tabular"
	"sfneuman.com/gridq/agent/tabular/policy"
	"sfneuman.com/gridq/grid"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Alpha        float64 // Learning rate
	Gamma        float64 // Discount factor
	Epsilon      float64 // Initial exploration rate
	EpsilonDecay float64 // Per-episode multiplicative decay of Epsilon
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.Alpha <= 0.0 || c.Alpha > 1.0 {
		return errors.Errorf("alpha %v ∉ (0, 1]", c.Alpha)
	}
	if c.Gamma < 0.0 || c.Gamma > 1.0 {
		return errors.Errorf("gamma %v ∉ [0, 1]", c.Gamma)
	}
	if c.Epsilon < 0.0 || c.Epsilon > 1.0 {
		return errors.Errorf("epsilon %v ∉ [0, 1]", c.Epsilon)
	}
	if c.EpsilonDecay < 0.0 || c.EpsilonDecay > 1.0 {
		return errors.Errorf("epsilon decay %v ∉ [0, 1]", c.EpsilonDecay)
	}
	return nil
}

// QLearning implements the tabular Q-Learning algorithm over a
// discretized continuous state space. The agent owns a QTable shaped
// by its Grid and action count, discretizes every observation it
// receives, and performs one-step TD(0) updates on the previously
// visited state-action pair.
//
// The update at time t applies to the pair observed at t-1, so the
// agent threads lastState and lastAction through the episode
// explicitly, rolling them over on every call to Act.
//
// QLearning implements the agent.Agent interface.
type QLearning struct {
	table     *tabular.QTable
	grid      *grid.Grid
	behaviour *policy.EGreedy
	config    Config

	initialEpsilon float64
	epsilon        float64

	lastState  grid.Index
	lastAction int
}

// New creates a new QLearning agent acting in a space of the given
// number of actions, discretizing states with g. The seed feeds the
// agent's randomness source; agents constructed with the same seed,
// grid, and configuration behave identically.
func New(actions int, g *grid.Grid, config Config,
	seed uint64) (*QLearning, error) {
	if g == nil {
		return nil, errors.New("qlearning: no grid given")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "qlearning: invalid configuration")
	}

	table, err := tabular.NewQTable(g, actions)
	if err != nil {
		return nil, errors.Wrap(err, "qlearning: could not create table")
	}

	behaviour, err := policy.NewEGreedy(config.Epsilon, seed, table)
	if err != nil {
		return nil, errors.Wrap(err, "qlearning: invalid behaviour policy")
	}

	return &QLearning{
		table:          table,
		grid:           g,
		behaviour:      behaviour,
		config:         config,
		initialEpsilon: config.Epsilon,
		epsilon:        config.Epsilon,
		lastAction:     -1,
	}, nil
}

// ResetEpisode readies the agent for a new episode starting in state.
// The exploration rate decays once per episode here, and nowhere else.
// The returned first action is always greedy with respect to the
// current table.
func (q *QLearning) ResetEpisode(state mat.Vector) int {
	q.epsilon *= q.config.EpsilonDecay
	q.behaviour.SetEpsilon(q.epsilon)

	q.lastState = q.grid.Discretize(state)
	q.lastAction = q.table.ArgMax(q.lastState)
	return q.lastAction
}

// Act observes that the last action led to state with the given
// reward and selects the next action to take.
//
// In Train mode, Act first performs the TD(0) update
//
//	Q[s, a] += α * (r + γ * max_a' Q[s', a'] - Q[s, a])
//
// on the last state-action pair, with the bootstrap term dropped on
// terminal states, and then selects the next action ε-greedily. In
// Test mode the table is left untouched and the greedy action is
// returned. Both modes roll lastState and lastAction over to the
// current pair before returning.
func (q *QLearning) Act(state mat.Vector, reward float64, done bool,
	mode agent.Mode) int {
	current := q.grid.Discretize(state)

	var action int
	if mode == agent.Test {
		action = q.table.ArgMax(current)
	} else {
		target := reward
		if !done {
			target += q.config.Gamma * q.table.Max(current)
		}
		estimate := q.table.At(q.lastState, q.lastAction)
		q.table.Set(q.lastState, q.lastAction,
			estimate+q.config.Alpha*(target-estimate))

		action = q.behaviour.SelectAction(current)
	}

	q.lastState, q.lastAction = current, action
	return action
}

// ResetExploration restores the exploration rate to its value at
// construction
func (q *QLearning) ResetExploration() {
	q.SetExploration(q.initialEpsilon)
}

// SetExploration sets the exploration rate to e. The learning rate,
// discount, and table are unaffected.
func (q *QLearning) SetExploration(e float64) {
	q.epsilon = e
	q.behaviour.SetEpsilon(e)
}

// Epsilon returns the agent's current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.epsilon
}

// Table returns the agent's QTable. The table is owned by the agent;
// callers should treat it as read-only.
func (q *QLearning) Table() *tabular.QTable {
	return q.table
}
