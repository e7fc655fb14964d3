package environment

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
	"sfneuman.com/gridq/grid"
)

func TestUniformStarterWithinBounds(t *testing.T) {
	bounds := []r1.Interval{
		{Min: -1.0, Max: 1.0},
		{Min: 0.0, Max: 10.0},
	}
	starter := NewUniformStarter(bounds, 42)

	for i := 0; i < 100; i++ {
		state := starter.Start()
		if state.Len() != 2 {
			t.Fatalf("state has %d dimensions, want 2", state.Len())
		}
		for d := range bounds {
			v := state.AtVec(d)
			if v < bounds[d].Min || v > bounds[d].Max {
				t.Errorf("dim %d: state %v ∉ [%v, %v]", d, v, bounds[d].Min,
					bounds[d].Max)
			}
		}
	}
}

func TestSampleStatesFeedQuantileGrid(t *testing.T) {
	bounds := []r1.Interval{
		{Min: -2.0, Max: 2.0},
		{Min: 0.0, Max: 1.0},
	}
	starter := NewUniformStarter(bounds, 42)

	samples := starter.SampleStates(5_000)
	rows, cols := samples.Dims()
	if rows != 5_000 || cols != 2 {
		t.Fatalf("samples have shape (%d, %d), want (5000, 2)", rows, cols)
	}

	g, err := grid.FromSamples(samples, []int{8, 8})
	if err != nil {
		t.Fatalf("could not create grid from samples: %v", err)
	}

	for d := range bounds {
		points := g.SplitPoints(d)
		if len(points) != 7 {
			t.Fatalf("dim %d: got %d split points, want 7", d, len(points))
		}
		for i, p := range points {
			if p < bounds[d].Min || p > bounds[d].Max {
				t.Errorf("dim %d: split point %v outside sample bounds", d, p)
			}
			if i > 0 && p < points[i-1] {
				t.Errorf("dim %d: split points decrease at %d", d, i)
			}
		}
	}
}
