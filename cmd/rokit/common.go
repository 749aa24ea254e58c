package main

import (
	"os"
	"path/filepath"

	"github.com/rojo-rbx/rokit/internal/config"
	"github.com/rojo-rbx/rokit/internal/discovery"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/home"
	"github.com/rojo-rbx/rokit/internal/manifest"
)

func rokitAliasNotBound(alias string) error {
	return rokiterrors.NewAliasNotBoundError(alias)
}

func rokitTrustNotFound(id string) error {
	return rokiterrors.NewTrustRecordMissingError(id)
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func loadHome(cfg *config.Config) (*home.Home, error) {
	return home.Load(cfg)
}

// targetManifestPath resolves which rokit.toml a mutating command
// (add/update/remove) should act on: the home-dir manifest if global is
// set, else the nearest ancestor's existing rokit.toml, else a brand new
// one rooted at cwd.
func targetManifestPath(cfg *config.Config, cwd string, global bool) (string, error) {
	if global {
		return filepath.Join(cfg.Home, manifest.FileNames[manifest.Native]), nil
	}

	entries, err := discovery.DiscoverAllManifests(cwd, "", true, true)
	if err != nil {
		return "", err
	}
	if len(entries) > 0 {
		return entries[0].Path, nil
	}
	return filepath.Join(cwd, manifest.FileNames[manifest.Native]), nil
}

// loadOrCreateManifest loads the manifest at path, or returns a fresh
// native one if nothing exists there yet.
func loadOrCreateManifest(path string) (manifest.Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		return manifest.NewNativeManifest(), nil
	}
	return manifest.Load(path)
}
