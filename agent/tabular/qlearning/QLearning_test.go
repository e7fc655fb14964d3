package qlearning

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gridq/agent"
	"sfneuman.com/gridq/grid"
)

const tolerance float64 = 1e-12

func testConfig() Config {
	return Config{
		Alpha:        0.5,
		Gamma:        0.9,
		Epsilon:      1.0,
		EpsilonDecay: 0.95,
	}
}

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()

	low := mat.NewVecDense(1, []float64{0.0})
	high := mat.NewVecDense(1, []float64{1.0})
	g, err := grid.NewUniform(low, high, []int{4})
	if err != nil {
		t.Fatalf("could not create grid: %v", err)
	}
	return g
}

func state(x float64) mat.Vector {
	return mat.NewVecDense(1, []float64{x})
}

func TestNewInvalidArguments(t *testing.T) {
	g := testGrid(t)

	if _, err := New(2, nil, testConfig(), 14); err == nil {
		t.Error("expected nil grid to fail")
	}
	if _, err := New(0, g, testConfig(), 14); err == nil {
		t.Error("expected non-positive action count to fail")
	}

	bad := []Config{
		{Alpha: 0.0, Gamma: 0.9, Epsilon: 0.1, EpsilonDecay: 1.0},
		{Alpha: 1.5, Gamma: 0.9, Epsilon: 0.1, EpsilonDecay: 1.0},
		{Alpha: 0.5, Gamma: -0.1, Epsilon: 0.1, EpsilonDecay: 1.0},
		{Alpha: 0.5, Gamma: 1.1, Epsilon: 0.1, EpsilonDecay: 1.0},
		{Alpha: 0.5, Gamma: 0.9, Epsilon: -0.1, EpsilonDecay: 1.0},
		{Alpha: 0.5, Gamma: 0.9, Epsilon: 0.1, EpsilonDecay: 1.1},
	}
	for i, config := range bad {
		if _, err := New(2, g, config, 14); err == nil {
			t.Errorf("expected config %d to fail validation", i)
		}
	}
}

func TestTableShapeFromGrid(t *testing.T) {
	g := testGrid(t)

	q, err := New(3, g, testConfig(), 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	shape := q.Table().Shape()
	expected := []int{4, 3}
	if len(shape) != len(expected) {
		t.Fatalf("table has %d dimensions, want %d", len(shape),
			len(expected))
	}
	for i := range expected {
		if shape[i] != expected[i] {
			t.Errorf("dimension %d has size %d, want %d", i, shape[i],
				expected[i])
		}
	}
}

func TestEpsilonDecaysPerEpisode(t *testing.T) {
	config := testConfig()
	q, err := New(2, testGrid(t), config, 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	k := 7
	for i := 0; i < k; i++ {
		q.ResetEpisode(state(0.5))
	}

	expected := config.Epsilon * math.Pow(config.EpsilonDecay, float64(k))
	if got := q.Epsilon(); math.Abs(got-expected) > tolerance {
		t.Errorf("epsilon after %d episodes = %v, want %v", k, got, expected)
	}

	q.ResetExploration()
	if got := q.Epsilon(); got != config.Epsilon {
		t.Errorf("epsilon after reset = %v, want %v", got, config.Epsilon)
	}

	q.SetExploration(0.3)
	if got := q.Epsilon(); got != 0.3 {
		t.Errorf("epsilon after explicit set = %v, want 0.3", got)
	}
}

func TestTDUpdate(t *testing.T) {
	config := testConfig()
	q, err := New(2, testGrid(t), config, 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	// A fresh table is all zeros, so the first action is 0
	first := q.ResetEpisode(state(0.1)) // bin 0
	if first != 0 {
		t.Fatalf("first action on a fresh table = %d, want 0", first)
	}

	// Transitioning to bin 2 with reward 1 should update Q[0, 0]
	// toward 1 + gamma*0
	q.Act(state(0.6), 1.0, false, agent.Train)

	got := q.Table().At(grid.Index{0}, 0)
	want := config.Alpha * 1.0
	if math.Abs(got-want) > tolerance {
		t.Errorf("Q[0, 0] after first update = %v, want %v", got, want)
	}

	// Prime the value of the next state and check the bootstrap term
	q.Table().Set(grid.Index{3}, 1, 2.0)
	q.ResetEpisode(state(0.6)) // bin 2, greedy action 0
	q.Act(state(0.9), 0.5, false, agent.Train)

	got = q.Table().At(grid.Index{2}, 0)
	want = config.Alpha * (0.5 + config.Gamma*2.0)
	if math.Abs(got-want) > tolerance {
		t.Errorf("Q[2, 0] after bootstrapped update = %v, want %v", got, want)
	}
}

func TestTerminalUpdateDropsBootstrap(t *testing.T) {
	config := testConfig()
	q, err := New(2, testGrid(t), config, 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	// Give the terminal state a large value that must be ignored
	q.Table().Set(grid.Index{3}, 0, 100.0)

	q.ResetEpisode(state(0.1))
	q.Act(state(0.9), -1.0, true, agent.Train)

	got := q.Table().At(grid.Index{0}, 0)
	want := config.Alpha * -1.0
	if math.Abs(got-want) > tolerance {
		t.Errorf("Q[0, 0] after terminal update = %v, want %v", got, want)
	}
}

func TestTestModeDoesNotMutate(t *testing.T) {
	q, err := New(3, testGrid(t), testConfig(), 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	// Seed the table with some arbitrary values
	for bin := 0; bin < 4; bin++ {
		for a := 0; a < 3; a++ {
			q.Table().Set(grid.Index{bin}, a, float64(bin)-float64(a)*0.5)
		}
	}

	snapshot := make([]float64, 0, 12)
	for bin := 0; bin < 4; bin++ {
		for a := 0; a < 3; a++ {
			snapshot = append(snapshot, q.Table().At(grid.Index{bin}, a))
		}
	}

	q.ResetEpisode(state(0.1))
	for i := 0; i < 100; i++ {
		x := float64(i%10) / 10.0
		action := q.Act(state(x), -1.0, false, agent.Test)

		// Test mode always acts greedily
		if greedy := q.Table().ArgMax(q.grid.Discretize(state(x))); action != greedy {
			t.Fatalf("test mode selected action %d, greedy is %d", action,
				greedy)
		}
	}

	i := 0
	for bin := 0; bin < 4; bin++ {
		for a := 0; a < 3; a++ {
			if got := q.Table().At(grid.Index{bin}, a); got != snapshot[i] {
				t.Errorf("test mode mutated Q[%d, %d]: %v -> %v", bin, a,
					snapshot[i], got)
			}
			i++
		}
	}
}

func TestResetEpisodeActsGreedily(t *testing.T) {
	q, err := New(2, testGrid(t), testConfig(), 14)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	q.Table().Set(grid.Index{1}, 1, 5.0)
	if a := q.ResetEpisode(state(0.3)); a != 1 {
		t.Errorf("first episode action = %d, want greedy action 1", a)
	}
}
