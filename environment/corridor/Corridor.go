// Package corridor implements a deterministic continuous-state
// corridor environment
package corridor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	env "sfneuman.com/gridq/environment"
	ts "sfneuman.com/gridq/timestep"
	"sfneuman.com/gridq/utils/floatutils"
)

const (
	MinPosition  float64 = 0.0
	MaxPosition  float64 = 1.0
	GoalPosition float64 = 1.0

	// A power of two keeps walking exact in floating point, so a fresh
	// episode from the left wall reaches the goal in exactly 16 steps
	StepSize float64 = 0.0625

	MinDiscreteAction int = 0
	MaxDiscreteAction int = 1

	ActionDims int = 1
	StateDims  int = 1
)

// Corridor implements a minimal deterministic environment for agents
// with continuous observations and discrete actions. The agent stands
// in a one-dimensional corridor with its position bounded between
// MinPosition and MaxPosition. On every step the agent walks a fixed
// distance left or right:
//
//	Action	Meaning
//	  0		Walk left
//	  1		Walk right
//
// Rewards are -1 on every step and 0 on the step that reaches the goal
// at the right end of the corridor. Episodes end at the goal or after
// a fixed step limit. Walking left at the left wall leaves the agent
// in place. The optimal policy is to walk right everywhere, which
// makes the environment convenient for verifying that learning
// algorithms actually learn.
//
// Corridor implements the environment.Environment interface.
type Corridor struct {
	env.Starter
	ender          env.Ender
	positionBounds r1.Interval
	discount       float64
	lastStep       ts.TimeStep
}

// New creates a new Corridor whose starting states are sampled from s
// and whose episodes are cut off after cutoff steps. New also returns
// the first timestep of the environment.
func New(s env.Starter, cutoff int, discount float64) (*Corridor, ts.TimeStep) {
	positionBounds := r1.Interval{Min: MinPosition, Max: MaxPosition}

	state := s.Start()
	validateState(state, positionBounds)

	firstStep := ts.New(ts.First, 0.0, discount, state, 0)
	ender := env.NewStepLimit(cutoff)

	corridor := &Corridor{s, ender, positionBounds, discount, firstStep}
	return corridor, firstStep
}

// Reset resets the environment and returns a starting state drawn
// from the environment Starter
func (c *Corridor) Reset() ts.TimeStep {
	state := c.Start()
	validateState(state, c.positionBounds)

	startStep := ts.New(ts.First, 0.0, c.discount, state, 0)
	c.lastStep = startStep
	return startStep
}

// Step takes one environmental step given a discrete action in {0, 1}
// and returns the next timestep and whether the episode has ended.
// Actions outside {0, 1} cause a panic.
func (c *Corridor) Step(action int) (ts.TimeStep, bool) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		panic(fmt.Sprintf("illegal action %v ∉ (0, 1)", action))
	}

	position := c.lastStep.Observation.AtVec(0)
	if action == 0 {
		position -= StepSize
	} else {
		position += StepSize
	}
	position = floatutils.ClipInterval(position, c.positionBounds)

	reward := -1.0
	stepType := ts.Mid
	if position >= GoalPosition {
		reward = 0.0
		stepType = ts.Last
	}

	state := mat.NewVecDense(StateDims, []float64{position})
	nextStep := ts.New(stepType, reward, c.discount, state,
		c.lastStep.Number+1)

	// Cut the episode off if it has run too long
	c.ender.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Corridor) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(StateDims, nil)
	lowerBound := mat.NewVecDense(StateDims, []float64{MinPosition})
	upperBound := mat.NewVecDense(StateDims, []float64{MaxPosition})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// ActionSpec returns the action specification of the environment
func (c *Corridor) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// String returns a string representation of the environment
func (c *Corridor) String() string {
	return fmt.Sprintf("Corridor  |  Position: %v",
		c.lastStep.Observation.AtVec(0))
}

// validateState validates the state to ensure the position is within
// the environmental limits
func validateState(s mat.Vector, positionBounds r1.Interval) {
	position := s.AtVec(0)
	if position < positionBounds.Min || position > positionBounds.Max {
		panic(fmt.Sprintf("illegal position %v ∉ [%v, %v]", position,
			positionBounds.Min, positionBounds.Max))
	}
}
