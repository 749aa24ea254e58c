package descriptor

import (
	"runtime"
	"strings"
)

// OS identifies an operating system family.
type OS int

const (
	Windows OS = iota
	MacOS
	Linux
)

var osKeywords = []struct {
	os       OS
	keywords []string
}{
	{Windows, []string{"windows", "win32", "win64", "win-x86", "win-x64"}},
	{MacOS, []string{"macos", "osx", "darwin", "apple"}},
	{Linux, []string{"linux", "ubuntu", "debian"}},
}

// CurrentOS returns the OS of the host running this process.
func CurrentOS() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// DetectOS scans searchString for OS keywords, returning the first match in
// table order. Returns false if no keyword is found.
func DetectOS(searchString string) (OS, bool) {
	lower := strings.ToLower(searchString)
	for _, entry := range osKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.os, true
			}
		}
	}
	return 0, false
}

func (o OS) String() string {
	switch o {
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "unknown"
	}
}
