// ABOUTME: Offline-first loader reconciling a cached value with a remote refresh
// ABOUTME: Generic over the local result type and the remote payload type
package resource

import (
	"context"
	"log"

	"github.com/harper/voicememo/internal/result"
	"github.com/harper/voicememo/internal/verr"
)

// Resource is a two-source reconciliation for any value that has both a
// cached local representation and a network-refreshable one. Consumers
// provide the three hooks; Stream drives them in a fixed order. The pattern
// is independent of the memo pipeline's imperative stages: it is a reusable
// primitive for resource types the app grows.
type Resource[L, R any] struct {
	// LoadLocal reads the cached value.
	LoadLocal func(ctx context.Context) (L, error)
	// FetchRemote fetches the fresh value from the network.
	FetchRemote func(ctx context.Context) (R, error)
	// SaveRemote persists the fetched value locally.
	SaveRemote func(ctx context.Context, remote R) error
}

// Stream emits, in order: Loading; Success(cached); then after attempting the
// remote refresh either Success(refreshed cache) on success, another
// Success(cached) with no error frame when the network is unreachable, or
// Failure(err) followed by Success(cached) on any other failure. The channel
// is closed after the final frame. Context cancellation stops emission early.
func (r *Resource[L, R]) Stream(ctx context.Context) <-chan result.Result[L] {
	out := make(chan result.Result[L], 4)

	go func() {
		defer close(out)

		if !emit(ctx, out, result.Loading[L]()) {
			return
		}

		local, err := r.LoadLocal(ctx)
		if err != nil {
			emit(ctx, out, result.Failure[L](err))
			return
		}
		if !emit(ctx, out, result.Success(local)) {
			return
		}

		remote, err := r.FetchRemote(ctx)
		if err != nil {
			if verr.IsOffline(err) {
				// Offline is the tolerated path: keep showing cached data,
				// surface nothing.
				log.Printf("resource: offline, serving cached value: %v", err)
				emitLocal(ctx, r, out)
				return
			}
			if !emit(ctx, out, result.Failure[L](err)) {
				return
			}
			emitLocal(ctx, r, out)
			return
		}

		if err := r.SaveRemote(ctx, remote); err != nil {
			if !emit(ctx, out, result.Failure[L](err)) {
				return
			}
		}
		emitLocal(ctx, r, out)
	}()

	return out
}

// emitLocal re-reads the cache and emits it wrapped in Success, so consumers
// always end on a valid (possibly stale) view of local data.
func emitLocal[L, R any](ctx context.Context, r *Resource[L, R], out chan<- result.Result[L]) {
	local, err := r.LoadLocal(ctx)
	if err != nil {
		emit(ctx, out, result.Failure[L](err))
		return
	}
	emit(ctx, out, result.Success(local))
}

func emit[L any](ctx context.Context, out chan<- result.Result[L], r result.Result[L]) bool {
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
