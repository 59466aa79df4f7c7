// Package queue owns the deduplicated batch-download queue and the fixed
// size worker pool that drains it.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ytbatch/internal/model"
)

const (
	// MinWorkers and MaxWorkers bound the pool size; out-of-range requests
	// are clamped, never rejected.
	MinWorkers = 1
	MaxWorkers = 8

	// DefaultWorkers is used when the caller expresses no preference.
	DefaultWorkers = 4
)

// ErrRunActive is returned by StartRun while a pool is still draining. The
// live pool picks up newly enqueued items, so a second pool is never needed.
var ErrRunActive = errors.New("a download run is already active")

// Downloader fetches a single URL to destDir. Implemented by
// extractor.Adapter; tests inject fakes.
type Downloader interface {
	Download(ctx context.Context, url string, spec model.FormatSpec, destDir string) (model.Downloaded, error)
}

// Manager holds the queue state. All mutation goes through its mutex; the
// UI thread and pool workers interleave freely.
type Manager struct {
	dl      Downloader
	destDir string

	mu     sync.Mutex
	items  map[string]*model.QueueItem
	order  []string // insertion order, for stable snapshots
	active bool
	runID  string
	done   chan struct{} // closed when the current run's pool disbands
}

// NewManager creates a Manager downloading into destDir via dl.
func NewManager(dl Downloader, destDir string) *Manager {
	return &Manager{
		dl:      dl,
		destDir: destDir,
		items:   make(map[string]*model.QueueItem),
	}
}

// ClampWorkers forces n into [MinWorkers, MaxWorkers], defaulting when
// unset (0).
func ClampWorkers(n int) int {
	if n == 0 {
		return DefaultWorkers
	}
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Enqueue adds URLs at status pending, skipping any URL already present:
// an in-flight or completed item is never reset by re-adding it. Returns
// the number of items actually added. Safe to call during an active run;
// the live pool picks the new items up.
func (m *Manager) Enqueue(urls []string, spec model.FormatSpec) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := m.items[u]; ok {
			continue
		}
		m.items[u] = &model.QueueItem{URL: u, Format: spec, Status: model.StatusPending}
		m.order = append(m.order, u)
		added++
	}
	return added
}

// Remove drops an item unless it is currently downloading; the in-flight
// worker needs its row to report into.
func (m *Manager) Remove(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[url]
	if !ok || it.Status == model.StatusDownloading {
		return false
	}
	delete(m.items, url)
	for i, u := range m.order {
		if u == url {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every item not currently downloading and returns how many
// were dropped.
func (m *Manager) Clear() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.order[:0]
	cleared := 0
	for _, u := range m.order {
		if m.items[u].Status == model.StatusDownloading {
			kept = append(kept, u)
			continue
		}
		delete(m.items, u)
		cleared++
	}
	m.order = kept
	return cleared
}

// Snapshot returns the queue in insertion order. The copy is consistent at
// the moment of the call; concurrent workers may advance statuses right
// after.
func (m *Manager) Snapshot() []model.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.QueueItem, 0, len(m.order))
	for _, u := range m.order {
		out = append(out, *m.items[u])
	}
	return out
}

// Active reports whether a pool is currently draining the queue.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// StartRun spawns a pool of clamped-to-[1,8] workers over the pending
// items and returns the run's ID. The pool disbands when no pending item
// remains at claim time; error items are not retried unless re-enqueued.
func (m *Manager) StartRun(ctx context.Context, workers int) (string, error) {
	n := ClampWorkers(workers)

	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		return "", ErrRunActive
	}
	m.active = true
	m.runID = uuid.New().String()
	m.done = make(chan struct{})
	id := m.runID
	done := m.done
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			m.active = false
			m.mu.Unlock()
			close(done)
		}()
		g, ctx := errgroup.WithContext(ctx)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				m.worker(ctx)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return id, nil
}

// Done returns a channel closed when the current run's pool disbands. If no
// run is active, the returned channel is already closed.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done == nil || !m.active {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.done
}

// Wait blocks until the active run finishes or ctx is cancelled.
func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) worker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		url, spec, ok := m.claim()
		if !ok {
			return
		}
		res, err := m.dl.Download(ctx, url, spec, m.destDir)
		m.finish(url, res, err)
	}
}

// claim atomically transitions the first pending item to downloading.
// Exactly one worker wins any given item: the scan and the transition
// happen under the same lock.
func (m *Manager) claim() (string, model.FormatSpec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.order {
		it := m.items[u]
		if it.Status == model.StatusPending {
			it.Status = model.StatusDownloading
			return it.URL, it.Format, true
		}
	}
	return "", "", false
}

func (m *Manager) finish(url string, res model.Downloaded, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[url]
	if !ok {
		return
	}
	if err != nil {
		it.Status = model.StatusError
		it.Error = err.Error()
		return
	}
	it.Status = model.StatusDone
	it.File = res.Path
}
