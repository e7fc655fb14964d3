// Package tabular implements dense tabular action-value storage for
// agents operating over discretized state spaces
package tabular

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"sfneuman.com/gridq/grid"
	"sfneuman.com/gridq/utils/matutils"
)

// QTable stores action-value estimates in a dense multidimensional
// array of shape (stateDims..., actions). States are addressed by the
// grid.Index of their discretized representation; the trailing
// dimension enumerates actions. Entries start at zero and the table is
// never resized.
//
// The table is backed by a tensor.Dense, which owns the shape and
// stride bookkeeping; reads and writes on the hot path go through the
// raw float64 data directly. Because the backing tensor is row-major,
// the action values of a single state are contiguous, and ActionValues
// can expose them as a vector without copying.
//
// A QTable is owned and mutated by exactly one agent. It is not safe
// for concurrent use.
type QTable struct {
	table   *tensor.Dense
	data    []float64
	strides []int
	actions int
}

// NewQTable returns a zero-filled QTable for a state space discretized
// by g and an action space of the given cardinality.
func NewQTable(g *grid.Grid, actions int) (*QTable, error) {
	if g == nil {
		return nil, errors.New("newQTable: no grid given")
	}
	if actions < 1 {
		return nil, errors.Errorf("newQTable: needs a positive number of "+
			"actions, got %d", actions)
	}

	shape := append(g.Bins(), actions)
	table := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(shape...))

	return &QTable{
		table:   table,
		data:    table.Data().([]float64),
		strides: table.Strides(),
		actions: actions,
	}, nil
}

// Shape returns the dimensions of the table, the per-dimension state
// bin counts followed by the number of actions
func (q *QTable) Shape() []int {
	return q.table.Shape()
}

// NumActions returns the cardinality of the action space
func (q *QTable) NumActions() int {
	return q.actions
}

// At returns the estimated value of taking action in the discretized
// state
func (q *QTable) At(state grid.Index, action int) float64 {
	return q.data[q.offset(state)+action]
}

// Set records v as the estimated value of taking action in the
// discretized state
func (q *QTable) Set(state grid.Index, action int, v float64) {
	q.data[q.offset(state)+action] = v
}

// ActionValues returns the action values of the discretized state as
// a vector backed by the table itself. The vector is a view: writes to
// the table are visible through it.
func (q *QTable) ActionValues(state grid.Index) *mat.VecDense {
	off := q.offset(state)
	return mat.NewVecDense(q.actions, q.data[off:off+q.actions])
}

// Max returns the largest action value in the discretized state
func (q *QTable) Max(state grid.Index) float64 {
	values := q.data[q.offset(state):]
	max := values[0]
	for a := 1; a < q.actions; a++ {
		if values[a] > max {
			max = values[a]
		}
	}
	return max
}

// ArgMax returns the action with the largest value in the discretized
// state. Ties go to the lowest action index.
func (q *QTable) ArgMax(state grid.Index) int {
	return matutils.MaxVec(q.ActionValues(state))
}

// offset computes the flat offset of a state's action-value row from
// the backing tensor's strides. Indices are trusted: they come from
// grid.Discretize, which always produces in-range bins.
func (q *QTable) offset(state grid.Index) int {
	if len(state) != len(q.strides)-1 {
		panic("qtable: state index dimension does not match table")
	}

	off := 0
	for d, bin := range state {
		off += bin * q.strides[d]
	}
	return off
}
