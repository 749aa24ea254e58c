package home

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rojo-rbx/rokit/internal/artifact"
	"github.com/rojo-rbx/rokit/internal/config"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

// ToolStorage manages the content-addressed tool-storage/ tree and the
// bin/ directory of dispatcher links that point into it.
type ToolStorage struct {
	cfg *config.Config

	selfOnce  sync.Once
	selfBytes []byte
	selfErr   error
}

// NewToolStorage returns a ToolStorage rooted at cfg.Home.
func NewToolStorage(cfg *config.Config) *ToolStorage {
	return &ToolStorage{cfg: cfg}
}

// BinDir is the directory dispatcher links/copies live in.
func (s *ToolStorage) BinDir() string {
	return s.cfg.BinDir()
}

// ToolDir is spec's content-addressed install directory,
// tool-storage/<author>/<name>/<version>/.
func (s *ToolStorage) ToolDir(spec tool.ToolSpec) string {
	return filepath.Join(s.cfg.ToolStorageDir(), spec.ID.Author, spec.ID.Name, spec.Version.String())
}

// ToolPath is the path spec's extracted executable is written to and run
// from, inside ToolDir.
func (s *ToolStorage) ToolPath(spec tool.ToolSpec) string {
	return filepath.Join(s.ToolDir(spec), spec.ID.Name+artifact.HostExeSuffix())
}

// ReplaceToolContents writes data to spec's ToolPath, creating the
// content-addressed directory if needed and marking the result executable.
// A version directory is never reused for a different artifact, so this
// simply (re)creates it rather than diffing against whatever's already
// there.
func (s *ToolStorage) ReplaceToolContents(spec tool.ToolSpec, data []byte) error {
	dir := s.ToolDir(spec)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rokiterrors.NewIoError(dir, err)
	}

	path := s.ToolPath(spec)
	if err := os.WriteFile(path, data, 0o755); err != nil {
		return rokiterrors.NewIoError(path, err)
	}
	return nil
}

// aliasLinkPath is the dispatcher link/copy path for alias in BinDir.
func (s *ToolStorage) aliasLinkPath(alias tool.Alias) string {
	return filepath.Join(s.BinDir(), alias.Name()+artifact.HostExeSuffix())
}

// dispatcherSelfBytes reads the running rokit executable's own bytes once
// and caches them, since RecreateAllLinks may need to stamp a copy of them
// once per alias.
func (s *ToolStorage) dispatcherSelfBytes() ([]byte, error) {
	s.selfOnce.Do(func() {
		exe, err := os.Executable()
		if err != nil {
			s.selfErr = err
			return
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			s.selfErr = err
			return
		}
		s.selfBytes, s.selfErr = os.ReadFile(exe)
	})
	if s.selfErr != nil {
		return nil, rokiterrors.NewIoError("rokit executable", s.selfErr)
	}
	return s.selfBytes, nil
}

// SelfLinkPath is the canonical self-copy path, bin/rokit[.exe], that
// CreateToolLink's stamped copies and installed links both ultimately
// trace back to.
func (s *ToolStorage) SelfLinkPath() string {
	return filepath.Join(s.BinDir(), "rokit"+artifact.HostExeSuffix())
}

// EnsureSelfLink writes (or refreshes) bin/rokit[.exe] as a stamped copy of
// the running dispatcher's own bytes, used by `self-install` to place the
// first copy (`self-update` uses ReplaceSelfBytes instead). It reports
// whether a file already existed there and whether its contents changed.
func (s *ToolStorage) EnsureSelfLink(rokitVersion string) (existed bool, changed bool, err error) {
	if err := os.MkdirAll(s.BinDir(), 0o755); err != nil {
		return false, false, rokiterrors.NewIoError(s.BinDir(), err)
	}

	path := s.SelfLinkPath()
	before, statErr := os.ReadFile(path)
	existed = statErr == nil

	self, err := s.dispatcherSelfBytes()
	if err != nil {
		return existed, false, err
	}
	stamped := stampLinkTrailer(self, rokitVersion)
	if err := os.WriteFile(path, stamped, 0o755); err != nil {
		return existed, false, rokiterrors.NewIoError(path, err)
	}

	changed = !existed || string(before) != string(stamped)
	return existed, changed, nil
}

// ReplaceSelfBytes overwrites bin/rokit[.exe] with freshly downloaded
// dispatcher bytes, for `self-update` as opposed to EnsureSelfLink's
// self-install path (which copies the currently running process's own
// bytes). It also caches data as the dispatcher's "self bytes", so a
// stamped-copy alias link created afterward in the same run picks up the
// new version rather than the process image still running under the old
// one.
func (s *ToolStorage) ReplaceSelfBytes(data []byte, rokitVersion string) error {
	if err := os.MkdirAll(s.BinDir(), 0o755); err != nil {
		return rokiterrors.NewIoError(s.BinDir(), err)
	}

	stamped := stampLinkTrailer(data, rokitVersion)
	if err := os.WriteFile(s.SelfLinkPath(), stamped, 0o755); err != nil {
		return rokiterrors.NewIoError(s.SelfLinkPath(), err)
	}

	s.selfOnce.Do(func() {})
	s.selfBytes = data
	s.selfErr = nil
	return nil
}

// CreateToolLink installs alias's dispatcher entry point in BinDir: a
// symlink to the canonical bin/rokit[.exe] copy on POSIX, unless
// NoSymlinks is set, in which case (and always on Windows) it writes a
// stamped copy of the dispatcher's own bytes carrying a ROKIT_LINK
// trailer recording rokitVersion, so staleness can be detected without
// re-execing anything. Linking to bin/rokit[.exe] rather than whatever
// binary happens to be running means the symlink keeps resolving
// correctly after a self-update replaces it.
func (s *ToolStorage) CreateToolLink(alias tool.Alias, rokitVersion string) error {
	if err := os.MkdirAll(s.BinDir(), 0o755); err != nil {
		return rokiterrors.NewIoError(s.BinDir(), err)
	}

	linkPath := s.aliasLinkPath(alias)
	os.Remove(linkPath)

	if s.useSymlinks() {
		if err := os.Symlink(s.SelfLinkPath(), linkPath); err == nil {
			return nil
		}
		// Fall through to a stamped copy if symlinking failed (e.g. no
		// privilege on this filesystem) rather than failing the install.
	}

	self, err := s.dispatcherSelfBytes()
	if err != nil {
		return err
	}
	stamped := stampLinkTrailer(self, rokitVersion)
	if err := os.WriteFile(linkPath, stamped, 0o755); err != nil {
		return rokiterrors.NewIoError(linkPath, err)
	}
	return nil
}

func (s *ToolStorage) useSymlinks() bool {
	return !s.cfg.NoSymlinks && supportsSymlinks()
}

// ExistingAliases lists every alias currently linked in BinDir (excluding
// rokit's own canonical self-copy and unmanaged-tool fallbacks), for
// `self-update` to know which links need recreating after rokit itself is
// replaced.
func (s *ToolStorage) ExistingAliases() ([]tool.Alias, error) {
	entries, err := os.ReadDir(s.BinDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, rokiterrors.NewIoError(s.BinDir(), err)
	}

	suffix := artifact.HostExeSuffix()
	var out []tool.Alias
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), suffix)
		if name == "rokit" || strings.HasSuffix(name, "-unmanaged") {
			continue
		}
		alias, err := tool.ParseAlias(name)
		if err != nil {
			continue
		}
		out = append(out, alias)
	}
	return out, nil
}

// RecreateAllLinks rewrites every alias's dispatcher entry point in BinDir,
// used after a self-update so existing stamped copies stop pointing at a
// stale rokit version. rokitLinkExisted reports whether any of aliases
// already had a link; rokitBytesChanged reports whether any stamped copy's payload
// needed rewriting (a symlink never does, since it always resolves to the
// live binary).
func (s *ToolStorage) RecreateAllLinks(aliases []tool.Alias, rokitVersion string) (rokitLinkExisted bool, rokitBytesChanged bool, err error) {
	for _, alias := range aliases {
		linkPath := s.aliasLinkPath(alias)
		_, statErr := os.Lstat(linkPath)
		existed := statErr == nil
		rokitLinkExisted = rokitLinkExisted || existed

		if existed && s.useSymlinks() {
			// A real symlink to bin/rokit[.exe] needs no rewriting: it
			// already resolves to whatever self-update just replaced that
			// file with. Only replace it if it's something else (e.g. a
			// stamped copy left over from before symlinks were supported,
			// or a symlink to some other path entirely).
			if fi, lerr := os.Lstat(linkPath); lerr == nil && fi.Mode()&os.ModeSymlink != 0 {
				if target, terr := os.Readlink(linkPath); terr == nil && target == s.SelfLinkPath() {
					continue
				}
			}
		}

		before, _ := os.ReadFile(linkPath)
		if err := s.CreateToolLink(alias, rokitVersion); err != nil {
			return rokitLinkExisted, rokitBytesChanged, err
		}
		after, _ := os.ReadFile(linkPath)
		if string(before) != string(after) {
			rokitBytesChanged = true
		}
	}
	return rokitLinkExisted, rokitBytesChanged, nil
}
