// Package sweep runs one trial per point of a parameter grid and hands the
// results, in grid order, to an export collaborator.
package sweep

import (
	"github.com/inference-sim/fcfs-sim/sim"
)

// Grid is the cross product serveTimes × serverCounts × windowDurations at a
// fixed customer count.
type Grid struct {
	ServeTimes      []float64
	ServerCounts    []int
	WindowDurations []float64
	CustomerCount   int
}

// Combinations enumerates the grid with serve time outermost, server count in
// the middle and window duration innermost. Values are not validated here;
// invalid points fail individually when their trial runs.
func (g Grid) Combinations() []sim.SimulationParameters {
	out := make([]sim.SimulationParameters, 0, g.Size())
	for _, st := range g.ServeTimes {
		for _, n := range g.ServerCounts {
			for _, w := range g.WindowDurations {
				out = append(out, sim.NewSimulationParameters(st, n, g.CustomerCount, w))
			}
		}
	}
	return out
}

// Size returns the number of grid points.
func (g Grid) Size() int {
	return len(g.ServeTimes) * len(g.ServerCounts) * len(g.WindowDurations)
}
