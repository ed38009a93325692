package parmap

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/canbuoy/thor/pkg/caller"
	"github.com/canbuoy/thor/pkg/tracer"
)

// Func is applied to every item. It must not share mutable state with
// other invocations: items of different partitions run concurrently.
type Func[In, Out any] func(ctx context.Context, item In) (Out, error)

func forkWorker[In, Out any](ctx context.Context, g *errgroup.Group, w *worker[In, Out]) {
	g.Go(func() error {
		return w.run(ctx)
	})
}

type worker[In, Out any] struct {
	part partition[In]
	fn   Func[In, Out]
	out  *oneShot[[]Out]

	sem     *semaphore.Weighted
	timeout time.Duration

	log   *slog.Logger
	stats *Stats
}

func (w *worker[In, Out]) run(ctx context.Context) (err error) {
	// whatever happens below, the coordinator must not wait on this channel
	// forever
	defer w.out.Close()

	ctx, span := tracer.Start(ctx, caller.Name(), trace.WithAttributes(
		attribute.Int("partition", w.part.id),
		attribute.Int("items", len(w.part.items)),
	))
	defer span.End()

	current := -1
	defer func() {
		if r := recover(); r != nil {
			index := -1
			if current >= 0 {
				index = w.part.indices[current]
			}
			err = &WorkerError{
				Partition: w.part.id,
				Index:     index,
				Err:       &PanicError{Value: r, Stack: debug.Stack()},
			}
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			w.log.Debug("parmap: worker failed", "partition", w.part.id, "err", err)
		}
	}()

	if w.sem != nil {
		if err := w.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer w.sem.Release(1)
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	if w.stats != nil {
		w.stats.WorkersStarted.Add(1)
		defer func() {
			w.stats.addBusy(time.Since(start))
		}()
	}
	w.log.Debug("parmap: worker started", "partition", w.part.id, "items", len(w.part.items))

	results := make([]Out, 0, len(w.part.items))
	for j, item := range w.part.items {
		current = j

		if err := ctx.Err(); err != nil {
			return &WorkerError{Partition: w.part.id, Index: w.part.indices[j], Err: err}
		}

		res, err := w.fn(ctx, item)
		if err != nil {
			return &WorkerError{Partition: w.part.id, Index: w.part.indices[j], Err: err}
		}
		results = append(results, res)

		if w.stats != nil {
			w.stats.ItemsMapped.Add(1)
		}
	}

	w.out.Send(results)
	w.log.Debug("parmap: worker done", "partition", w.part.id, "elapsed", time.Since(start))

	return nil
}
