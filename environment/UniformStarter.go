package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples episode starting states uniformly from a box
// of per-dimension intervals
type UniformStarter struct {
	features int
	seed     uint64
	rand     *distmv.Uniform
}

// NewUniformStarter returns a UniformStarter sampling uniformly from
// bounds, using seed for the random number generator
func NewUniformStarter(bounds []r1.Interval, seed uint64) UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return UniformStarter{len(bounds), seed, rand}
}

// Start samples and returns a starting state
func (u UniformStarter) Start() mat.Vector {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}

// SampleStates draws n states from the starter's distribution and
// returns them as the rows of an (n x dims) matrix. The result is in
// the shape expected by grid.FromSamples, which makes the starter a
// convenient source of samples for quantile grids.
func (u UniformStarter) SampleStates(n int) *mat.Dense {
	states := mat.NewDense(n, u.features, nil)
	for i := 0; i < n; i++ {
		states.SetRow(i, u.rand.Rand(nil))
	}
	return states
}
