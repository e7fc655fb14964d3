package main

import (
	"flag"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"sfneuman.com/gridq/agent"
	"sfneuman.com/gridq/agent/tabular/qlearning"
	"sfneuman.com/gridq/environment"
	"sfneuman.com/gridq/environment/corridor"
	"sfneuman.com/gridq/experiment"
	"sfneuman.com/gridq/experiment/trackers"
	"sfneuman.com/gridq/grid"
)

func main() {
	flag.Parse() // glog verbosity flags

	var seed uint64 = 192382

	// Create the environment
	starter := environment.NewUniformStarter([]r1.Interval{
		{Min: 0.0, Max: 0.5},
	}, seed)
	c, _ := corridor.New(starter, 100, 1.0)

	// Discretize the corridor into 16 bins, one per reachable position
	low := mat.NewVecDense(1, []float64{corridor.MinPosition})
	high := mat.NewVecDense(1, []float64{corridor.MaxPosition})
	g, err := grid.NewUniform(low, high, []int{16})
	if err != nil {
		panic(err)
	}

	// Create the learning algorithm
	config := qlearning.Config{
		Alpha:        0.1,
		Gamma:        0.99,
		Epsilon:      1.0,
		EpsilonDecay: 0.99,
	}
	q, err := qlearning.New(environment.NumActions(c), g, config, seed)
	if err != nil {
		panic(err)
	}

	// Train
	tracker := trackers.NewReturn("./data.bin")
	e := experiment.NewOnline(c, q, 50_000, agent.Train, tracker)
	e.Run()
	e.Save()

	data := trackers.LoadFloats("./data.bin")
	fmt.Printf("trained for %d episodes, last returns: %v\n", len(data),
		data[len(data)-5:])

	// Evaluate the learned greedy policy
	q.SetExploration(0.0)
	eval := experiment.NewOnline(c, q, 1_000, agent.Test,
		trackers.NewEpisodeLength("./eval.bin"))
	eval.Run()
	eval.Save()

	lengths := trackers.LoadInts("./eval.bin")
	fmt.Printf("greedy episode lengths: %v\n", lengths[:min(5, len(lengths))])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
