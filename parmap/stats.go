package parmap

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stats counts what Map calls did. Safe for concurrent use; one Stats may
// be shared by many calls.
type Stats struct {
	Calls    atomic.Uint64
	Failures atomic.Uint64

	WorkersStarted atomic.Uint64
	ItemsMapped    atomic.Uint64

	// busy is the summed wall time of all workers, in nanoseconds.
	busy atomic.Int64
}

// Busy returns the summed wall time spent inside workers.
func (s *Stats) Busy() time.Duration {
	return time.Duration(s.busy.Load())
}

func (s *Stats) String() string {
	return fmt.Sprintf("calls: %d, failures: %d, workers: %d, items: %d, busy: %s",
		s.Calls.Load(), s.Failures.Load(), s.WorkersStarted.Load(), s.ItemsMapped.Load(), s.Busy())
}

func (s *Stats) addBusy(d time.Duration) {
	s.busy.Add(int64(d))
}
