// Package sim provides the discrete-event simulation engine for FCFS multi-server queues.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - config.go: SimulationParameters and their validation
//   - arrival.go: exponential interarrival sampling and the cumulative arrival schedule
//   - server_pool.go: the counting resource with its FIFO wait list
//   - trial.go: the event loop that drives one run to completion
//
// # Architecture
//
// A Trial owns everything it touches: its event queue, its ServerPool and its
// CustomerRecords. Trials share no mutable state, so callers may run any number
// of them concurrently. Sub-packages build on this:
//   - sim/trace/: optional per-trial event trace
//   - sim/sweep/: cross-product parameter sweeps over a worker pool
//
// Randomness always comes from an injected *rand.Rand, usually obtained from a
// PartitionedRNG so that a trial's outcome depends only on the master seed and
// its own parameters.
package sim
