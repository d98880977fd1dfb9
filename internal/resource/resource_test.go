// ABOUTME: Tests for the offline-first resource loader
// ABOUTME: Verifies frame sequences for fresh, offline, and failing fetches
package resource

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/harper/voicememo/internal/result"
	"github.com/harper/voicememo/internal/verr"
)

// collect drains the stream into a slice with a safety timeout.
func collect(t *testing.T, ch <-chan result.Result[[]string]) []result.Result[[]string] {
	t.Helper()
	var frames []result.Result[[]string]
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return frames
			}
			frames = append(frames, r)
		case <-timeout:
			t.Fatalf("stream did not close; frames so far: %d", len(frames))
		}
	}
}

func states(frames []result.Result[[]string]) []result.State {
	out := make([]result.State, len(frames))
	for i, f := range frames {
		out[i] = f.State()
	}
	return out
}

func TestStream_RemoteRefresh(t *testing.T) {
	cache := []string{"stale"}
	res := &Resource[[]string, []string]{
		LoadLocal: func(ctx context.Context) ([]string, error) {
			out := make([]string, len(cache))
			copy(out, cache)
			return out, nil
		},
		FetchRemote: func(ctx context.Context) ([]string, error) {
			return []string{"fresh"}, nil
		},
		SaveRemote: func(ctx context.Context, remote []string) error {
			cache = remote
			return nil
		},
	}

	frames := collect(t, res.Stream(context.Background()))

	want := []result.State{result.StateLoading, result.StateSuccess, result.StateSuccess}
	if fmt.Sprint(states(frames)) != fmt.Sprint(want) {
		t.Fatalf("states = %v, want %v", states(frames), want)
	}

	first := frames[1].MustValue()
	if len(first) != 1 || first[0] != "stale" {
		t.Errorf("first Success = %v, want cached value", first)
	}
	final := frames[2].MustValue()
	if len(final) != 1 || final[0] != "fresh" {
		t.Errorf("final Success = %v, want refreshed value", final)
	}
}

func TestStream_OfflineFallsBackSilently(t *testing.T) {
	res := &Resource[[]string, []string]{
		LoadLocal: func(ctx context.Context) ([]string, error) {
			return []string{"cached"}, nil
		},
		FetchRemote: func(ctx context.Context) ([]string, error) {
			return nil, fmt.Errorf("dial: %w", verr.ErrOffline)
		},
		SaveRemote: func(ctx context.Context, remote []string) error {
			t.Error("SaveRemote should not run when fetch fails")
			return nil
		},
	}

	frames := collect(t, res.Stream(context.Background()))

	// Loading, Success(local), Success(local) again -- never a Failure.
	want := []result.State{result.StateLoading, result.StateSuccess, result.StateSuccess}
	if fmt.Sprint(states(frames)) != fmt.Sprint(want) {
		t.Fatalf("states = %v, want %v", states(frames), want)
	}
	for _, f := range frames {
		if f.IsFailure() {
			t.Errorf("offline stream emitted Failure: %v", f.Err())
		}
	}
}

func TestStream_HardFailureSurfacesThenFallsBack(t *testing.T) {
	fetchErr := errors.New("500 from server")
	res := &Resource[[]string, []string]{
		LoadLocal: func(ctx context.Context) ([]string, error) {
			return []string{"cached"}, nil
		},
		FetchRemote: func(ctx context.Context) ([]string, error) {
			return nil, fetchErr
		},
		SaveRemote: func(ctx context.Context, remote []string) error { return nil },
	}

	frames := collect(t, res.Stream(context.Background()))

	want := []result.State{result.StateLoading, result.StateSuccess, result.StateFailure, result.StateSuccess}
	if fmt.Sprint(states(frames)) != fmt.Sprint(want) {
		t.Fatalf("states = %v, want %v", states(frames), want)
	}
	if !errors.Is(frames[2].Err(), fetchErr) {
		t.Errorf("Failure frame err = %v, want fetch error", frames[2].Err())
	}
	final := frames[3].MustValue()
	if len(final) != 1 || final[0] != "cached" {
		t.Errorf("final Success = %v, want stale-but-valid cache", final)
	}
}

func TestStream_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blocked := make(chan struct{})

	res := &Resource[[]string, []string]{
		LoadLocal: func(ctx context.Context) ([]string, error) {
			return []string{"cached"}, nil
		},
		FetchRemote: func(ctx context.Context) ([]string, error) {
			close(blocked)
			<-ctx.Done()
			return nil, ctx.Err()
		},
		SaveRemote: func(ctx context.Context, remote []string) error { return nil },
	}

	ch := res.Stream(ctx)
	<-blocked
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return // channel closed promptly after cancellation
			}
		case <-deadline:
			t.Fatal("stream did not close after context cancellation")
		}
	}
}
