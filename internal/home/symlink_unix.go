//go:build !windows

package home

// supportsSymlinks reports whether dispatcher links should be created as
// symlinks on this platform. POSIX filesystems support them unconditionally
// (modulo NoSymlinks, handled by the caller).
func supportsSymlinks() bool {
	return true
}
