package policy

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gridq/agent/tabular"
	"sfneuman.com/gridq/grid"
)

func testTable(t *testing.T) *tabular.QTable {
	t.Helper()

	low := mat.NewVecDense(1, []float64{0.0})
	high := mat.NewVecDense(1, []float64{1.0})
	g, err := grid.NewUniform(low, high, []int{4})
	if err != nil {
		t.Fatalf("could not create grid: %v", err)
	}

	table, err := tabular.NewQTable(g, 3)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}
	return table
}

func TestGreedySelectsMaxAction(t *testing.T) {
	table := testTable(t)
	state := grid.Index{2}
	table.Set(state, 1, 1.0)

	p, err := NewGreedy(14, table)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	for i := 0; i < 100; i++ {
		if a := p.SelectAction(state); a != 1 {
			t.Fatalf("greedy policy selected action %d, want 1", a)
		}
	}
}

func TestEGreedyExplores(t *testing.T) {
	table := testTable(t)
	state := grid.Index{0}
	table.Set(state, 2, 1.0)

	p, err := NewEGreedy(1.0, 14, table)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	// With epsilon = 1 every action should eventually be selected
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[p.SelectAction(state)] = true
	}
	for a := 0; a < table.NumActions(); a++ {
		if !seen[a] {
			t.Errorf("action %d was never selected under full exploration", a)
		}
	}
}

func TestSetEpsilon(t *testing.T) {
	table := testTable(t)

	p, err := NewEGreedy(0.5, 14, table)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	p.SetEpsilon(0.25)
	if e := p.Epsilon(); e != 0.25 {
		t.Errorf("epsilon = %v, want 0.25", e)
	}
}

func TestNewEGreedyInvalidArguments(t *testing.T) {
	table := testTable(t)

	if _, err := NewEGreedy(0.5, 14, nil); err == nil {
		t.Error("expected nil table to fail")
	}
	if _, err := NewEGreedy(-0.1, 14, table); err == nil {
		t.Error("expected negative epsilon to fail")
	}
	if _, err := NewEGreedy(1.1, 14, table); err == nil {
		t.Error("expected epsilon > 1 to fail")
	}
}
