package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/fcfs-sim/sim"
)

func TestGrid_Combinations_Order(t *testing.T) {
	// GIVEN a 2×2×2 grid
	g := Grid{
		ServeTimes:      []float64{5, 10},
		ServerCounts:    []int{1, 2},
		WindowDurations: []float64{1800, 3600},
		CustomerCount:   100,
	}

	// WHEN enumerated
	got := g.Combinations()

	// THEN serve time is outermost and window innermost
	want := []sim.SimulationParameters{
		{ServeTime: 5, ServerCount: 1, CustomerCount: 100, WindowDuration: 1800},
		{ServeTime: 5, ServerCount: 1, CustomerCount: 100, WindowDuration: 3600},
		{ServeTime: 5, ServerCount: 2, CustomerCount: 100, WindowDuration: 1800},
		{ServeTime: 5, ServerCount: 2, CustomerCount: 100, WindowDuration: 3600},
		{ServeTime: 10, ServerCount: 1, CustomerCount: 100, WindowDuration: 1800},
		{ServeTime: 10, ServerCount: 1, CustomerCount: 100, WindowDuration: 3600},
		{ServeTime: 10, ServerCount: 2, CustomerCount: 100, WindowDuration: 1800},
		{ServeTime: 10, ServerCount: 2, CustomerCount: 100, WindowDuration: 3600},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 8, g.Size())
}

func TestGrid_EmptyAxis_NoCombinations(t *testing.T) {
	g := Grid{ServeTimes: []float64{5}, ServerCounts: nil, WindowDurations: []float64{60}, CustomerCount: 10}
	assert.Empty(t, g.Combinations())
	assert.Equal(t, 0, g.Size())
}
