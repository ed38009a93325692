package parmap

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every configuration error.
	ErrInvalidConfig = errors.New("parmap: invalid configuration")

	ErrInvalidWorkers = errors.New("parmap: workers must be at least 1")
	ErrNilFunc        = errors.New("parmap: nil map function")

	// ErrChannelClosed is matched by a ChannelError.
	ErrChannelClosed = errors.New("parmap: worker exited without sending results")
)

// ConfigError rejects a call before any worker is started.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parmap: invalid %s %v: %s", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parmap: invalid %s %v", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// WorkerError reports the item a worker failed on.
type WorkerError struct {
	// Partition is the index of the failing worker.
	Partition int
	// Index is the position of the failing item in the input slice.
	Index int
	Err   error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("parmap: partition %d: item %d: %s", e.Partition, e.Index, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// PanicError is a recovered panic of the mapped function.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// ChannelError reports a worker that terminated without transmitting its
// result, for instance because f called runtime.Goexit.
type ChannelError struct {
	Partition int
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("parmap: partition %d: worker exited without sending results", e.Partition)
}

func (e *ChannelError) Unwrap() error {
	return ErrChannelClosed
}
