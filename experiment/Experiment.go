// Package experiment implements functionality for running an experiment
package experiment

import (
	"sfneuman.com/gridq/experiment/trackers"
	ts "sfneuman.com/gridq/timestep"
)

// Experiment outlines structs that can run experiments. An Experiment
// drives the agent-environment interaction loop: Run() runs episodes
// until a timestep budget is exhausted, and RunEpisode() runs a single
// episode.
//
// Experiments track data through trackers.Tracker values. Every
// TimeStep the environment produces is offered to each registered
// Tracker, and Save() flushes whatever the Trackers cached to disk
// once the experiment is over.
type Experiment interface {
	Run()
	RunEpisode() bool // Returns whether the step budget was exhausted

	// Save all tracked data to disk
	Save()

	// Register adds a Tracker to the (possibly already running)
	// experiment. Useful for tracking data only after some event.
	Register(t trackers.Tracker)

	// track offers the current timestep to every registered Tracker
	track(ts.TimeStep)
}
