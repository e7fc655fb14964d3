// Package agent defines an agent interface
package agent

import "gonum.org/v1/gonum/mat"

// Mode determines how an agent treats an interaction: Train mode
// permits learning updates and exploration, Test mode evaluates the
// greedy policy without mutating anything the agent has learned.
type Mode int

const (
	Train Mode = iota
	Test
)

func (m Mode) String() string {
	switch m {
	case Test:
		return "Test"
	default:
		return "Train"
	}
}

// Agent is the contract between an agent and an episode runner. The
// runner calls ResetEpisode once with the first observation of each
// episode and then feeds every subsequent observation, along with the
// reward earned reaching it, to Act until the episode ends. Both
// methods return the discrete action the agent takes next.
//
// Observations are the raw continuous state vectors of the
// environment; discretizing them is the agent's concern, not the
// runner's.
type Agent interface {
	// ResetEpisode prepares the agent for a new episode and returns
	// the first action to take from state
	ResetEpisode(state mat.Vector) int

	// Act observes that the last action led to state with the given
	// reward, learns from the transition when mode is Train, and
	// returns the next action to take. The done flag marks state as
	// terminal.
	Act(state mat.Vector, reward float64, done bool, mode Mode) int
}
