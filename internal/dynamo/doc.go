// Package dynamo provides the small set of primitives shared by the solver
// and the run loop:
//
//   - [ParallelFor]: chunked fan-out over an index range
//   - sentinel errors and [SimError] for run-level failures
//
// # Thread Safety
//
// ParallelFor blocks until every chunk has returned. Callers are responsible
// for making chunks write to disjoint memory.
package dynamo
