// Package preview serves a generated site locally, optionally watching the
// source tree and triggering full rebuilds. Rebuilds are always whole-site:
// there is no incremental build path and no browser reload channel.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Options configures the preview server.
type Options struct {
	SourceDir string
	OutputDir string
	Port      int
	// Watch triggers a rebuild when the source tree changes.
	Watch bool
	// RebuildEvery schedules periodic rebuilds; zero disables them.
	RebuildEvery time.Duration
	// Registry, when set, is exposed at /metrics.
	Registry *prometheus.Registry
	// Rebuild regenerates the whole site.
	Rebuild func(context.Context) error
}

// buildStatus tracks the last rebuild outcome for health reporting.
type buildStatus struct {
	mu        sync.RWMutex
	lastError error
}

func (bs *buildStatus) set(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) get() error {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError
}

// Run serves the output directory until ctx is cancelled. The initial build
// is the caller's responsibility; Run only performs the follow-up rebuilds
// requested by the watcher or the schedule.
func Run(ctx context.Context, opts Options) error {
	status := &buildStatus{}
	mux := newMux(opts, status)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rebuildReq := make(chan struct{}, 1)
	if opts.Watch {
		watcher, err := newSourceWatcher(opts.SourceDir)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		go watchLoop(ctx, watcher, rebuildReq)
	}

	if opts.RebuildEvery > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(opts.RebuildEvery),
			gocron.NewTask(func() { requestRebuild(rebuildReq) }),
		)
		if err != nil {
			return fmt.Errorf("schedule rebuilds: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	go rebuildWorker(ctx, opts, status, rebuildReq)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("preview server listening",
			slog.String("addr", fmt.Sprintf("http://localhost:%d", opts.Port)),
			logfields.Output(opts.OutputDir))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newMux(opts Options, status *buildStatus) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(opts.OutputDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := status.get(); err != nil {
			http.Error(w, fmt.Sprintf("last rebuild failed: %v", err), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	return mux
}

// newSourceWatcher watches the source directory and all its subdirectories.
func newSourceWatcher(sourceDir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(watcher, sourceDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if werr := watcher.Add(p); werr != nil {
				return fmt.Errorf("watch %s: %w", p, werr)
			}
		}
		return nil
	})
}

// watchLoop debounces filesystem events into rebuild requests and keeps the
// watcher in sync with newly created directories.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, rebuildReq chan<- struct{}) {
	var mu sync.Mutex
	var timer *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(300*time.Millisecond, func() {
			requestRebuild(rebuildReq)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", logfields.Error(err))
		}
	}
}

func requestRebuild(rebuildReq chan<- struct{}) {
	select {
	case rebuildReq <- struct{}{}:
	default:
	}
}

func rebuildWorker(ctx context.Context, opts Options, status *buildStatus, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("source changed, rebuilding site", logfields.Source(opts.SourceDir))
			if err := opts.Rebuild(ctx); err != nil {
				slog.Error("rebuild failed", logfields.Error(err))
				status.set(err)
				continue
			}
			status.set(nil)
		}
	}
}
