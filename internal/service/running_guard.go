package service

import (
	"context"
	"sync"
)

// ExportedImportGuard is an exported alias so _test packages can test the guard.
type ExportedImportGuard = runningImportsGuard

// ─────────────────────────────────────────────────────────────
// runningImportsGuard — prevents concurrent imports of one file
// ─────────────────────────────────────────────────────────────

// runningImportsGuard ensures only one import of a given source path
// runs at a time. Watch-folder and cron triggers can both fire for the
// same file; the second caller gets told to back off.
type runningImportsGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock attempts to mark path as being imported. Returns false if an
// import of that path is already in flight.
func (g *runningImportsGuard) TryLock(path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[path]; ok {
		return false
	}
	g.running[path] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock marks the path as no longer importing. Must be called after
// TryLock returns true.
func (g *runningImportsGuard) Unlock(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, path)
	g.wg.Done()
}

// WaitAll blocks until all in-flight imports complete or ctx is cancelled.
func (g *runningImportsGuard) WaitAll(ctx context.Context) {
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
