package service

import (
	"context"
	"sync"
)

// ExportedRunningGuard is an exported alias so _test packages can test the guard.
type ExportedRunningGuard = inFlightGuard

// ─────────────────────────────────────────────────────────────
// inFlightGuard — prevents overlapping runs of the same kind
// A cron tick, a watch debounce and a manual sync may all fire close
// together; only one ingestion per kind may touch the store at a time.
// ─────────────────────────────────────────────────────────────

type inFlightGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryAcquire attempts to mark name as running. Returns false if a run
// of that name is already in flight.
func (g *inFlightGuard) TryAcquire(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[name]; ok {
		return false
	}
	g.running[name] = struct{}{}
	g.wg.Add(1)
	return true
}

// Release marks the run as finished. Must be called after TryAcquire
// returns true.
func (g *inFlightGuard) Release(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, name)
	g.wg.Done()
}

// WaitIdle blocks until all in-flight runs complete or ctx is cancelled.
func (g *inFlightGuard) WaitIdle(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
