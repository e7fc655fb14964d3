package trackers

import (
	ts "sfneuman.com/gridq/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
//
// Note that an episode must finish for this Tracker to record its
// data. If the last episode in an experiment does not finish, that
// episode's length is not saved.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) Tracker {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length whenever the timestep passed to it
// is the last in an episode
func (e *EpisodeLength) Track(t ts.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Save saves the data tracked by the EpisodeLength Tracker to disk
func (e *EpisodeLength) Save() {
	save(e.filename, e.episodeLengths)
}
