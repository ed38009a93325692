package parmap

import (
	"log/slog"
	"time"
)

// DefaultWorkers is the worker count used when WithWorkers is not given.
const DefaultWorkers = 12

// Order selects how partition results are put back together.
type Order int

const (
	// OrderInput returns results at the index of the item that produced
	// them.
	OrderInput Order = iota
	// OrderInterleaved concatenates the partitions' results in worker order
	// (0..P-1). With round-robin partitioning [0 1 2 3 4 5] over 3 workers
	// comes back as [0 3 1 4 2 5].
	OrderInterleaved
)

func (o Order) String() string {
	switch o {
	case OrderInput:
		return "input"
	case OrderInterleaved:
		return "interleaved"
	}
	return "unknown"
}

// ParseOrder is the inverse of Order.String.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "input", "":
		return OrderInput, nil
	case "interleaved":
		return OrderInterleaved, nil
	}
	return 0, &ConfigError{Field: "order", Value: s}
}

// Option configures a Map call.
type Option func(*Options)

// Options holds the configuration of a Map call.
type Options struct {
	// Workers is the number of partitions, and of workers started.
	Workers int

	// MaxConcurrent bounds how many workers run f at the same time.
	// Zero means all of them.
	MaxConcurrent int

	// Order selects the reassembly order.
	Order Order

	// Timeout bounds each worker's run. Zero means no timeout.
	Timeout time.Duration

	Logger *slog.Logger
	Stats  *Stats

	assign func(item any, index, p int) int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Workers: DefaultWorkers,
		Order:   OrderInput,
	}
}

// WithWorkers sets the number of partitions and workers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithMaxConcurrent caps the number of workers mapping at once. The
// partitioning still uses the full worker count.
func WithMaxConcurrent(n int) Option {
	return func(o *Options) {
		o.MaxConcurrent = n
	}
}

// WithOrder sets the reassembly order.
func WithOrder(order Order) Option {
	return func(o *Options) {
		o.Order = order
	}
}

// WithTimeout bounds the run of every worker. The worker's context expires
// after d; f should honour it, and the worker itself stops between items.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithLogger sets the logger used for worker lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithStats records the call into s.
func WithStats(s *Stats) Option {
	return func(o *Options) {
		o.Stats = s
	}
}

func (o *Options) validate() error {
	if o.Workers < 1 {
		return &ConfigError{Field: "workers", Value: o.Workers, Err: ErrInvalidWorkers}
	}
	if o.MaxConcurrent < 0 {
		return &ConfigError{Field: "max concurrent", Value: o.MaxConcurrent}
	}
	if o.Timeout < 0 {
		return &ConfigError{Field: "timeout", Value: o.Timeout}
	}
	return nil
}
