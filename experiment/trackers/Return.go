package trackers

import (
	"fmt"

	ts "sfneuman.com/gridq/timestep"
)

// Return tracks and saves the episodic return in an experiment. The
// rewards of every TimeStep in an episode are accumulated, and the
// total is cached when the episode's last step arrives.
//
// Note: an episode must finish for this Tracker to record its data. If
// the last episode in an experiment does not finish, that episode's
// return is not saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker saving its data
// at filename
func NewReturn(filename string) Tracker {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track accumulates the reward seen on a timestep. When the last step
// of an episode arrives, the episode's total return is cached and
// accumulation restarts for the next episode.
//
// Track panics if it is called on non-sequential timesteps.
func (r *Return) Track(step ts.TimeStep) {
	if r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: non-sequential timesteps: %v -> %v",
			r.lastTimeStep, step.Number))
	}

	r.currentReturn += step.Reward
	if !step.Last() {
		r.lastTimeStep = step.Number
	} else {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() {
	save(r.filename, r.episodeReturns)
}
