package experiment

import (
	"github.com/golang/glog"

	"sfneuman.com/gridq/agent"
	env "sfneuman.com/gridq/environment"
	"sfneuman.com/gridq/experiment/trackers"
	ts "sfneuman.com/gridq/timestep"
)

// Online is an Experiment that runs an agent against an environment
// online. The experiment's mode is handed to the agent on every step,
// so the same runner serves both training and greedy evaluation; in
// agent.Test mode the agent leaves its table untouched.
type Online struct {
	environment env.Environment
	agent       agent.Agent
	mode        agent.Mode

	maxSteps     uint
	currentSteps uint
	episodes     int

	trackers []trackers.Tracker
}

// NewOnline creates and returns a new online experiment running a on e
// in the given mode for at most steps environmental steps. Trackers in
// t determine what data the experiment records.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	mode agent.Mode, t ...trackers.Tracker) *Online {
	return &Online{
		environment: e,
		agent:       a,
		mode:        mode,
		maxSteps:    steps,
		trackers:    t,
	}
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode, returning whether the experiment's
// step budget was exhausted
func (o *Online) RunEpisode() bool {
	step := o.environment.Reset()
	action := o.agent.ResetEpisode(step.Observation)
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Step in the environment, then let the agent observe the
		// transition and choose the next action. The final call of an
		// episode carries done == true so that the agent can close
		// out its last update without bootstrapping.
		step, _ = o.environment.Step(action)
		o.track(step)

		action = o.agent.Act(step.Observation, step.Reward, step.Last(),
			o.mode)
	}

	o.episodes++
	glog.V(1).Infof("episode %d done (%d/%d total steps)", o.episodes,
		o.currentSteps, o.maxSteps)

	return o.currentSteps >= o.maxSteps
}

// Run runs episodes until the experiment's step budget is exhausted
func (o *Online) Run() {
	ended := false

	for !ended {
		ended = o.RunEpisode()
	}
	glog.V(1).Infof("experiment done after %d episodes", o.episodes)
}

// Episodes returns the number of episodes started so far
func (o *Online) Episodes() int {
	return o.episodes
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, tracker := range o.trackers {
		tracker.Save()
	}
}

// track offers the current timestep to each registered Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
