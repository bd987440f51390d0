package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"backlot/internal/artifact"
	"backlot/internal/config"
	"backlot/internal/studio"
)

// Daemon hosts the studio session behind an HTTP API and enforces
// single-instance execution through a lock file.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *artifact.Store
	session *studio.Session

	lockPath string
	lock     *flock.Flock
	api      *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DBPath       string
	LockFilePath string
	Stats        artifact.Stats
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *artifact.Store, session *studio.Session, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || session == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, session, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "backlotd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		session:  session,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another backlot daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	server, err := newAPIServer(d.cfg, d, d.logger)
	if err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}
	d.api = server
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("daemon started", slog.String("lock", d.lockPath))
	return nil
}

// Stop shuts the API server down and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.running.Store(false)

	if d.cancel != nil {
		d.cancel()
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release lock failed", slog.Any("error", err))
	}
	d.ctx = nil
	d.cancel = nil
	d.logger.Info("daemon stopped")
}

// Close stops the daemon and closes the session.
func (d *Daemon) Close() error {
	d.Stop()
	return d.session.Close()
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DBPath:       d.store.Path(),
		LockFilePath: d.lockPath,
	}
	if stats, err := d.store.Stats(ctx); err == nil {
		status.Stats = stats
	}
	return status
}

// Addr returns the bound API address, or empty when not listening.
func (d *Daemon) Addr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}
