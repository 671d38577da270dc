package livefiles

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/sganis/dutopia-go/internal/aggregate"
)

// Pool bounds concurrent GetItems dispatch, standing in for the
// spawn_blocking pool spec §9 describes: async request routing stays
// non-blocking while filesystem-heavy work runs on a capped number of
// goroutines at once.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a Pool allowing at most maxConcurrent in-flight
// GetItems calls.
func NewPool(maxConcurrent int64) *Pool {
	return &Pool{sem: semaphore.NewWeighted(maxConcurrent)}
}

// Dispatch runs GetItems on the pool, blocking the caller until either
// a slot is available and the call completes, or ctx is canceled. A
// canceled ctx does not affect any other in-flight call, matching spec
// §5's "no cancellation surface observable to its caller beyond the
// join result".
func (p *Pool) Dispatch(ctx context.Context, dirPath string, userFilter []string, ageFilter *int, resolver *aggregate.UserResolver, now int64) ([]FsItemOut, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return GetItems(dirPath, userFilter, ageFilter, resolver, now)
}
