package artifact

import "strings"

// recognizedExtensions is the closed set of extension tokens the filename
// splitter understands; anything else stops the scan.
var recognizedExtensions = map[string]bool{
	"zip": true,
	"tar": true,
	"gz":  true,
	"tgz": true,
}

// SplitFilenameAndExtensions splits name into a base and up to two trailing
// recognized extensions (scanned from the end), stopping at the first
// extension that isn't in the recognized set. It is a left inverse of
// joining base and the returned extensions back together with ".": for any
// name built that way from at most two recognized extensions,
// SplitFilenameAndExtensions(Join(base, exts)) == (base, exts).
func SplitFilenameAndExtensions(name string) (base string, exts []string) {
	base = name
	for len(exts) < 2 {
		idx := strings.LastIndexByte(base, '.')
		if idx < 0 {
			break
		}
		candidate := strings.ToLower(base[idx+1:])
		if !recognizedExtensions[candidate] {
			break
		}
		exts = append([]string{candidate}, exts...)
		base = base[:idx]
	}
	return base, exts
}

// FormatFromExtensions picks a Format from the (at most two) trailing
// extensions produced by SplitFilenameAndExtensions. It depends only on
// those extensions, never on the rest of the filename.
func FormatFromExtensions(exts []string) Format {
	switch len(exts) {
	case 0:
		return FormatNone
	case 1:
		switch exts[0] {
		case "zip":
			return Zip
		case "tar":
			return Tar
		case "tgz":
			return TarGz
		case "gz":
			return Gz
		default:
			return FormatNone
		}
	default:
		// Two extensions: only "tar"+"gz" forms a recognized compound.
		// Any other pair means the outer extension is the relevant one,
		// e.g. "foo.tar.zip" -> the trailing "zip" governs; "tar" alone
		// without a trailing "gz" can't combine with a second extension
		// other than "gz", so fall back to the last extension.
		last := exts[len(exts)-1]
		secondLast := exts[len(exts)-2]
		if secondLast == "tar" && last == "gz" {
			return TarGz
		}
		return FormatFromExtensions(exts[len(exts)-1:])
	}
}

// FormatFromFilename derives an artifact's Format from its display name,
// looking at up to its two trailing recognized extensions (case-insensitive).
func FormatFromFilename(name string) Format {
	_, exts := SplitFilenameAndExtensions(name)
	return FormatFromExtensions(exts)
}
