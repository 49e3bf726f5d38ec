// Package engine coordinates the task board. It applies user mutations
// to the local collection optimistically, persists them to the remote
// store with sequential writes, rolls the collection back when a write
// fails, and replaces the collection wholesale on a periodic silent
// refresh (last fetch wins).
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/randalmurphal/sheetboard/internal/events"
	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/store"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// DefaultRefreshInterval is the cadence of the silent background refresh.
const DefaultRefreshInterval = 30 * time.Second

// Cache persists fetched snapshots across runs so the board can render
// before the first fetch completes, or while offline.
type Cache interface {
	Save(tasks []*task.Task, fetchedAt time.Time) error
	Load() ([]*task.Task, time.Time, error)
}

// Config configures an Engine.
type Config struct {
	// Remote persists tasks, users and tags. Required.
	Remote remote.Store
	// Publisher receives engine events. Defaults to a no-op publisher.
	Publisher events.Publisher
	// Cache stores snapshots locally. Optional.
	Cache Cache
	// RefreshInterval overrides DefaultRefreshInterval.
	RefreshInterval time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Engine owns the board state. Construct one per session with New;
// Start/Stop bound the background refresher for long-running sessions,
// one-shot callers can skip them and call Refresh directly.
type Engine struct {
	store     *store.Store
	remote    remote.Store
	publisher events.Publisher
	cache     Cache
	interval  time.Duration
	logger    *slog.Logger

	// locks serializes mutations per task id so two rapid operations
	// on one task cannot interleave their remote writes.
	locks keyedLocks

	// group coalesces concurrent refreshes into one fetch.
	group singleflight.Group

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates an engine. The remote store is required; everything else
// has working defaults.
func New(cfg Config) (*Engine, error) {
	if cfg.Remote == nil {
		return nil, fmt.Errorf("engine requires a remote store")
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		store:     store.New(),
		remote:    cfg.Remote,
		publisher: publisher,
		cache:     cfg.Cache,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start seeds the collection from the local cache and begins the
// background refresh loop.
func (e *Engine) Start(ctx context.Context) {
	if n, fetchedAt, err := e.LoadCache(); err != nil {
		e.logger.Debug("no usable cached snapshot", "error", err)
	} else if n > 0 {
		e.logger.Info("loaded cached snapshot",
			"tasks", n, "age", time.Since(fetchedAt).Round(time.Second))
	}

	e.wg.Add(1)
	go e.run(ctx)
}

// Stop gracefully stops the background refresher. Safe to call
// multiple times.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	e.wg.Wait()
}

func (e *Engine) run(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	if err := e.Refresh(ctx); err != nil {
		e.logger.Warn("initial refresh failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.logger.Debug("background refresh failed, serving stale snapshot",
					"error", err,
					"age", time.Since(e.store.SyncedAt()).Round(time.Second))
			}
		}
	}
}

// Refresh fetches the full remote snapshot and replaces the collection
// wholesale. Concurrent callers share one fetch. Local changes not yet
// reflected remotely are discarded by the replacement; that is the
// merge policy, not an accident.
func (e *Engine) Refresh(ctx context.Context) error {
	_, err, _ := e.group.Do("refresh", func() (any, error) {
		return nil, e.refresh(ctx)
	})
	return err
}

func (e *Engine) refresh(ctx context.Context) error {
	started := time.Now()

	tasks, err := e.remote.ListTasks(ctx)
	if err != nil {
		e.publisher.Publish(events.NewEvent(events.EventSyncError, events.GlobalTaskID, events.SyncErrorData{
			Op:      "refresh",
			Message: err.Error(),
		}))
		return mapRemoteErr("refresh tasks", "", err)
	}

	e.store.Replace(tasks)

	if e.cache != nil {
		if err := e.cache.Save(tasks, time.Now()); err != nil {
			e.logger.Warn("cache save failed", "error", err)
		}
	}

	e.publisher.Publish(events.NewEvent(events.EventRefreshed, events.GlobalTaskID, events.RefreshData{
		Count:    len(tasks),
		Duration: time.Since(started).Round(time.Millisecond).String(),
	}))
	e.logger.Debug("refreshed", "tasks", len(tasks), "took", time.Since(started).Round(time.Millisecond))
	return nil
}

// LoadCache seeds the collection from the local snapshot, if one is
// configured and holds anything. Returns how many tasks were loaded
// and when they were fetched.
func (e *Engine) LoadCache() (int, time.Time, error) {
	if e.cache == nil {
		return 0, time.Time{}, nil
	}
	tasks, fetchedAt, err := e.cache.Load()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(tasks) == 0 {
		return 0, fetchedAt, nil
	}
	e.store.Replace(tasks)
	return len(tasks), fetchedAt, nil
}

// SyncedAt returns when the collection last matched a remote fetch.
func (e *Engine) SyncedAt() time.Time {
	return e.store.SyncedAt()
}
