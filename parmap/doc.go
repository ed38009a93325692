// Package parmap applies a function to every item of a slice on a fixed
// number of concurrent workers.
//
// The input is split into P partitions (round robin by default: partition k
// holds the items at indices k, k+P, k+2P, ...). Exactly P workers are
// started, one per partition, even when a partition is empty. Each worker
// maps its own copy of the partition in order and hands the whole result
// back over a dedicated one-shot channel. The caller joins every worker,
// then reassembles the results:
//
//	out, err := parmap.Map(ctx, func(ctx context.Context, q float64) (float64, error) {
//	    return intensity(ctx, q)
//	}, qs, parmap.WithWorkers(8))
//
// Failures are fail-fast: the first error cancels the context shared by the
// sibling workers, every worker is joined, and the error is returned with
// no partial results. Panics in the mapped function are recovered and
// reported as a [*PanicError] inside a [*WorkerError].
//
// By default results come back in input order. [OrderInterleaved]
// reproduces the partition-then-concatenate order of the old fork-based
// tool.
package parmap
