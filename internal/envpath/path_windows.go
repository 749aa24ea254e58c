//go:build windows

package envpath

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// addToPathWindows appends home's bin directory to the per-user PATH value
// in HKCU\Environment if it isn't already present. The registry calls are
// blocking and run on the calling goroutine.
func addToPathWindows(home string) (bool, error) {
	bin := filepath.Clean(filepath.Join(home, "bin"))

	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return false, rokiterrors.NewIoError("HKCU\\Environment", err)
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return false, rokiterrors.NewIoError("HKCU\\Environment\\Path", err)
	}

	for _, entry := range strings.Split(current, ";") {
		if entry == "" {
			continue
		}
		if filepath.Clean(entry) == bin {
			return false, nil
		}
	}

	updated := current
	if updated != "" && !strings.HasSuffix(updated, ";") {
		updated += ";"
	}
	updated += bin

	if err := key.SetStringValue("Path", updated); err != nil {
		return false, rokiterrors.NewIoError("HKCU\\Environment\\Path", err)
	}
	return true, nil
}
