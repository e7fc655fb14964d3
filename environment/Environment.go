// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gridq/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when environmental episodes end
type Ender interface {
	// End takes the most recent TimeStep in the environment and
	// modifies it to be the last step in the episode if the episode
	// should end, returning whether the episode ended
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated environment with a bounded,
// continuous observation space and a discrete action space. Agents
// interact with an Environment only through Reset and Step; the
// observation and action specifications describe the bounds within
// which that interaction happens.
//
// Environments start ready to use: the constructor of a concrete
// environment returns the first TimeStep of the first episode.
type Environment interface {
	Starter

	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() timestep.TimeStep

	// Step takes one environmental step given a discrete action in
	// [0, NumActions()) and returns the next TimeStep and whether that
	// step is the last in the episode
	Step(action int) (timestep.TimeStep, bool)

	ObservationSpec() Spec
	ActionSpec() Spec
}

// NumActions returns the number of discrete actions available in an
// environment. Actions are always enumerated as 0, 1, ..., N-1.
func NumActions(e Environment) int {
	spec := e.ActionSpec()
	return int(spec.UpperBound.AtVec(0)) + 1
}
