package scan

import (
	"sync/atomic"
	"time"
)

// Dispatcher owns the shared queue, the in-flight task counter, and the
// shutdown-detection watcher described in spec §4.D.
type Dispatcher struct {
	Queue       *Queue
	inFlight    atomic.Int64
	Progress    Progress
	WorkerCount int
}

func NewDispatcher(workerCount int) *Dispatcher {
	return &Dispatcher{Queue: NewQueue(), WorkerCount: workerCount}
}

// Enqueue increments the in-flight counter and pushes t. Every Dir or
// Files task must go through Enqueue so the counter and the queue never
// drift apart.
func (d *Dispatcher) Enqueue(t Task) {
	d.inFlight.Add(1)
	d.Queue.Push(t)
}

// Done decrements the in-flight counter exactly once per task handled,
// including skipped tasks (spec §4.D).
func (d *Dispatcher) Done() {
	d.inFlight.Add(-1)
}

// Seed enqueues one KindDir task per root folder argument.
func (d *Dispatcher) Seed(roots []string) {
	for _, r := range roots {
		d.Enqueue(Task{Kind: KindDir, Path: r})
	}
}

// watchPollInterval and zeroSamplesRequired implement the "5 consecutive
// zero samples at 100ms" safeguard from spec §4.D and §9: the window
// between a worker decrementing the counter and that same worker
// enqueueing its children must not be mistaken for real completion.
const (
	watchPollInterval  = 100 * time.Millisecond
	zeroSamplesRequired = 5
)

// RunShutdownWatcher polls the in-flight counter until it has observed
// zero on zeroSamplesRequired consecutive samples, then pushes exactly
// WorkerCount Shutdown tasks and returns. It blocks until then; callers
// invoke it once, after Seed, from the goroutine that later waits for
// the workers.
func (d *Dispatcher) RunShutdownWatcher() {
	consecutiveZeros := 0
	for {
		time.Sleep(watchPollInterval)
		if d.inFlight.Load() == 0 {
			consecutiveZeros++
			if consecutiveZeros >= zeroSamplesRequired {
				for i := 0; i < d.WorkerCount; i++ {
					d.Queue.Push(Task{Kind: KindShutdown})
				}
				return
			}
		} else {
			consecutiveZeros = 0
		}
	}
}
