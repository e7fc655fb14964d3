// Package grid implements piecewise-constant partitions of bounded
// N-dimensional continuous spaces and the discretization of continuous
// state vectors onto them
package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Index holds the per-dimension bin indices of a discretized state
// vector. Index i is the bin that the state occupies along dimension
// i, always within [0, bins[i]-1].
type Index []int

func (idx Index) String() string {
	strs := make([]string, len(idx))
	for i, bin := range idx {
		strs[i] = fmt.Sprintf("%d", bin)
	}
	return "(" + strings.Join(strs, ", ") + ")"
}

// Grid defines a partition of an N-dimensional continuous space into
// axis-aligned bins. For each dimension d the grid holds bins[d]-1
// increasing split points; the bins[d] intervals between consecutive
// split points (and beyond the outermost ones) are the bins of that
// dimension.
//
// A Grid is immutable once constructed and may be shared freely
// between agents.
type Grid struct {
	cuts [][]float64
	bins []int
}

// NewUniform returns a Grid whose split points are evenly spaced in
// the open interval (low[d], high[d]) for each dimension d. Dimension
// d receives bins[d]-1 split points, so that split point i equals
//
//	low[d] + i * (high[d] - low[d]) / bins[d]
//
// The bounds themselves are never split points: values at or below
// low[d] fall into bin 0 and values at or above high[d] fall into bin
// bins[d]-1. A dimension with bins[d] == 1 has no split points at all
// and is a single bin.
func NewUniform(low, high mat.Vector, bins []int) (*Grid, error) {
	if low.Len() != high.Len() {
		return nil, errors.Errorf("newUniform: low has %d dimensions but "+
			"high has %d", low.Len(), high.Len())
	}
	if low.Len() != len(bins) {
		return nil, errors.Errorf("newUniform: bounds have %d dimensions "+
			"but bins has %d", low.Len(), len(bins))
	}

	cuts := make([][]float64, len(bins))
	for d := range bins {
		if bins[d] < 1 {
			return nil, errors.Errorf("newUniform: dimension %d needs a "+
				"positive bin count, got %d", d, bins[d])
		}
		min, max := low.AtVec(d), high.AtVec(d)
		if min >= max {
			return nil, errors.Errorf("newUniform: dimension %d has "+
				"degenerate bounds [%v, %v]", d, min, max)
		}

		width := (max - min) / float64(bins[d])
		cuts[d] = make([]float64, bins[d]-1)
		for i := range cuts[d] {
			cuts[d][i] = min + float64(i+1)*width
		}
	}

	return &Grid{cuts, binsCopy(bins)}, nil
}

// FromSamples returns a Grid whose split points are empirical
// quantiles of previously observed states, so that each bin holds
// approximately the same number of the observed samples. The samples
// argument is an (M x N) matrix of M observed N-dimensional states.
// Dimension d receives the bins[d]-1 quantiles at levels i/bins[d]
// for i = 1, ..., bins[d]-1.
//
// Quantiles are computed with linear interpolation between order
// statistics (stat.LinInterp), so identical samples always produce an
// identical grid. Unlike NewUniform, split points need only be
// non-decreasing: heavily tied samples may produce coincident split
// points and therefore bins that can never be occupied.
func FromSamples(samples *mat.Dense, bins []int) (*Grid, error) {
	if samples == nil {
		return nil, errors.New("fromSamples: no samples given")
	}
	rows, cols := samples.Dims()
	if rows == 0 {
		return nil, errors.New("fromSamples: no samples given")
	}
	if cols != len(bins) {
		return nil, errors.Errorf("fromSamples: samples have %d dimensions "+
			"but bins has %d", cols, len(bins))
	}

	cuts := make([][]float64, len(bins))
	for d := range bins {
		if bins[d] < 1 {
			return nil, errors.Errorf("fromSamples: dimension %d needs a "+
				"positive bin count, got %d", d, bins[d])
		}

		// stat.Quantile requires its input sorted
		col := mat.Col(nil, d, samples)
		sort.Float64s(col)

		cuts[d] = make([]float64, bins[d]-1)
		for i := range cuts[d] {
			level := float64(i+1) / float64(bins[d])
			cuts[d][i] = stat.Quantile(level, stat.LinInterp, col, nil)
		}
	}

	return &Grid{cuts, binsCopy(bins)}, nil
}

// NumDims returns the number of dimensions the Grid partitions
func (g *Grid) NumDims() int {
	return len(g.bins)
}

// Bins returns the number of bins along each dimension
func (g *Grid) Bins() []int {
	return binsCopy(g.bins)
}

// SplitPoints returns the split points along dimension d
func (g *Grid) SplitPoints(d int) []float64 {
	points := make([]float64, len(g.cuts[d]))
	copy(points, g.cuts[d])
	return points
}

// Discretize maps a continuous state vector to the Index of the bin it
// occupies. Along each dimension, the bin index is the number of split
// points less than or equal to the value, so a value exactly equal to
// a split point falls into the higher of the two adjacent bins. Values
// outside the gridded region clamp into the outermost bins rather than
// erroring, which makes Discretize total over well-formed grids.
//
// NaN values are outside the contract; because NaN fails every
// comparison, a NaN coordinate lands in the topmost bin of its
// dimension. Discretize panics if the vector's length differs from the
// Grid's dimensionality.
func (g *Grid) Discretize(sample mat.Vector) Index {
	if sample.Len() != len(g.bins) {
		panic(fmt.Sprintf("discretize: sample has %d dimensions, grid "+
			"has %d", sample.Len(), len(g.bins)))
	}

	idx := make(Index, len(g.bins))
	for d := range g.bins {
		value := sample.AtVec(d)
		cuts := g.cuts[d]

		// Number of split points <= value. The predicate is monotonic
		// over the ordered split points, so binary search applies.
		idx[d] = sort.Search(len(cuts), func(i int) bool {
			return cuts[i] > value
		})
	}
	return idx
}

func (g *Grid) String() string {
	var builder strings.Builder
	for d := range g.cuts {
		fmt.Fprintf(&builder, "dim %d: %v\n", d, g.cuts[d])
	}
	return builder.String()
}

func binsCopy(bins []int) []int {
	c := make([]int, len(bins))
	copy(c, bins)
	return c
}
