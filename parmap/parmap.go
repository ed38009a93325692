package parmap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/canbuoy/thor/pkg/caller"
	"github.com/canbuoy/thor/pkg/tracer"
)

// Map applies fn to every job on a fixed set of workers and returns one
// result per job.
//
// Map returns only after every worker it started has exited. On failure the
// error is the first one observed (usually a *WorkerError, or a
// *ChannelError when a worker vanished without sending) and no results are
// returned.
func Map[In, Out any](ctx context.Context, fn Func[In, Out], jobs []In, opts ...Option) ([]Out, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, &ConfigError{Field: "func", Value: nil, Err: ErrNilFunc}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts, err := split(jobs, o.Workers, o.assign)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("run", runID)

	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(
		attribute.String("run", runID),
		attribute.Int("workers", o.Workers),
		attribute.Int("jobs", len(jobs)),
	))
	defer span.End()

	if o.Stats != nil {
		o.Stats.Calls.Add(1)
	}
	fail := func(err error) ([]Out, error) {
		if o.Stats != nil {
			o.Stats.Failures.Add(1)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var sem *semaphore.Weighted
	if o.MaxConcurrent > 0 && o.MaxConcurrent < o.Workers {
		sem = semaphore.NewWeighted(int64(o.MaxConcurrent))
	}

	start := time.Now()
	trans := newTransport[[]Out](o.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for _, part := range parts {
		forkWorker(gctx, g, &worker[In, Out]{
			part:    part,
			fn:      fn,
			out:     trans.peer(part.id),
			sem:     sem,
			timeout: o.Timeout,
			log:     log,
			stats:   o.Stats,
		})
	}
	log.Debug("parmap: workers dispatched", "workers", o.Workers, "jobs", len(jobs))

	// join first: after Wait every channel holds a payload or is closed, so
	// the receives below cannot block
	if err := g.Wait(); err != nil {
		return fail(err)
	}
	log.Debug("parmap: workers joined", "elapsed", time.Since(start))

	outputs := make([][]Out, o.Workers)
	for id := range outputs {
		res, ok := trans.peer(id).Recv()
		if !ok {
			return fail(&ChannelError{Partition: id})
		}
		outputs[id] = res
	}

	return reassemble(parts, outputs, len(jobs), o.Order), nil
}

// Apply is Map for plain functions, split over workers partitions.
func Apply[In, Out any](f func(In) Out, jobs []In, workers int) ([]Out, error) {
	if f == nil {
		return nil, &ConfigError{Field: "func", Value: nil, Err: ErrNilFunc}
	}
	return Map(context.Background(), func(_ context.Context, item In) (Out, error) {
		return f(item), nil
	}, jobs, WithWorkers(workers))
}

func reassemble[In, Out any](parts []partition[In], outputs [][]Out, n int, order Order) []Out {
	if order == OrderInterleaved {
		out := make([]Out, 0, n)
		for _, res := range outputs {
			out = append(out, res...)
		}
		return out
	}

	out := make([]Out, n)
	for k, part := range parts {
		for j, index := range part.indices {
			out[index] = outputs[k][j]
		}
	}
	return out
}
