//go:build windows

package home

// supportsSymlinks is false on Windows: creating a symlink there requires
// Developer Mode or an elevated process, neither of which rokit can assume,
// so every dispatcher entry point is a stamped copy instead.
func supportsSymlinks() bool {
	return false
}
