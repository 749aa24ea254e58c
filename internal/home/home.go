// Package home owns rokit's on-disk Home directory: the trust/install
// records, the content-addressed tool storage tree, and the cross-process
// lock guarding them, the way the teacher's state package owns its locked
// state.json.
package home

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/gofrs/flock"

	"github.com/rojo-rbx/rokit/internal/config"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// Home is rokit's loaded, lockable view of its Home directory: the trust
// and install stores, the tool storage tree, and the advisory lock
// coordinating all of it across processes.
type Home struct {
	Config  *config.Config
	Trust   *TrustStore
	Install *InstallStore
	Storage *ToolStorage

	mu     sync.Mutex
	lock   *flock.Flock
	locked bool
	dirty  bool
	saved  bool
}

// Load acquires Home's advisory lock and reads its state: the combined
// cache.json if present, or the legacy line-based trust/install files as a
// one-time fallback otherwise. Load blocks until the lock is available;
// callers that need a non-blocking attempt should use TryLoad.
func Load(cfg *config.Config) (*Home, error) {
	if err := os.MkdirAll(cfg.Home, 0o755); err != nil {
		return nil, rokiterrors.NewIoError(cfg.Home, err)
	}

	lock := flock.New(cfg.LockPath())
	if err := lock.Lock(); err != nil {
		return nil, rokiterrors.Wrap(rokiterrors.CategoryIo, "failed to acquire rokit home lock", err)
	}

	h, err := loadLocked(cfg, lock)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return h, nil
}

// TryLoad is Load's non-blocking counterpart: it reports ok=false instead
// of waiting when another rokit process already holds Home's lock.
func TryLoad(cfg *config.Config) (h *Home, ok bool, err error) {
	if err := os.MkdirAll(cfg.Home, 0o755); err != nil {
		return nil, false, rokiterrors.NewIoError(cfg.Home, err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, false, rokiterrors.Wrap(rokiterrors.CategoryIo, "failed to acquire rokit home lock", err)
	}
	if !locked {
		return nil, false, nil
	}

	h, err = loadLocked(cfg, lock)
	if err != nil {
		_ = lock.Unlock()
		return nil, false, err
	}
	return h, true, nil
}

func loadLocked(cfg *config.Config, lock *flock.Flock) (*Home, error) {
	trust, install, err := loadToolCache(cfg.ToolCachePath())
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(cfg.ToolCachePath()); os.IsNotExist(statErr) {
		mergeLegacyStores(cfg, trust, install)
	}

	h := &Home{
		Config:  cfg,
		Trust:   trust,
		Install: install,
		Storage: NewToolStorage(cfg),
		lock:    lock,
		locked:  true,
		saved:   true,
	}
	runtime.SetFinalizer(h, warnUnclosedHome)
	return h, nil
}

// mergeLegacyStores folds the historical trusted.txt/installed.txt records
// into freshly-loaded, otherwise-empty stores. It's a one-time migration
// path: once Save writes cache.json, these files are never consulted again.
func mergeLegacyStores(cfg *config.Config, trust *TrustStore, install *InstallStore) {
	if data, err := os.ReadFile(cfg.LegacyTrustPath()); err == nil {
		for _, id := range parseLegacyTrustText(data) {
			trust.Add(id)
		}
	}
	if data, err := os.ReadFile(cfg.LegacyInstallPath()); err == nil {
		for _, spec := range parseLegacyInstallText(data) {
			install.Add(spec)
		}
	}
}

// MarkDirty records that Trust or Install has changed since the last Save,
// so Close can warn if the caller forgets to persist it.
func (h *Home) MarkDirty() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dirty = true
	h.saved = false
}

// Save atomically writes Trust and Install to cache.json.
func (h *Home) Save() error {
	if err := saveToolCache(h.Config.ToolCachePath(), h.Trust, h.Install); err != nil {
		return err
	}
	h.mu.Lock()
	h.dirty = false
	h.saved = true
	h.mu.Unlock()
	return nil
}

// Close releases Home's advisory lock. Closing with unsaved changes logs a
// warning rather than failing, since by this point there's nothing left to
// do about it but tell the user their trust/install edit didn't stick.
func (h *Home) Close() error {
	h.mu.Lock()
	dirty := h.dirty
	locked := h.locked
	h.locked = false
	h.mu.Unlock()

	if dirty {
		slog.Warn("rokit home closed with unsaved trust/install changes")
	}

	runtime.SetFinalizer(h, nil)

	if !locked {
		return nil
	}
	if err := h.lock.Unlock(); err != nil {
		return rokiterrors.Wrap(rokiterrors.CategoryIo, "failed to release rokit home lock", err)
	}
	return nil
}

func warnUnclosedHome(h *Home) {
	h.mu.Lock()
	dirty := h.dirty
	locked := h.locked
	h.mu.Unlock()
	if locked {
		slog.Warn(fmt.Sprintf("rokit home at %s was never closed", h.Config.Home))
	}
	if dirty {
		slog.Warn("rokit home garbage-collected with unsaved trust/install changes")
	}
}
