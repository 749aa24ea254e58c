package artifact

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"runtime"
	"strings"

	"github.com/rojo-rbx/rokit/internal/descriptor"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// bodyPrefixLen is how much of a failed download's body is surfaced in
// extraction errors, to help diagnose HTML error pages served as 200 OK.
const bodyPrefixLen = 128

// HostExeSuffix returns the executable file suffix for the current host,
// ".exe" on Windows and empty everywhere else.
func HostExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Extract decodes data per a.Format and returns the bytes of the single tool
// executable found inside, validating that its binary header (when
// detectable) matches the host OS.
func Extract(a Artifact, data []byte) ([]byte, error) {
	switch a.Format {
	case FormatNone:
		return nil, rokiterrors.NewExtractUnknownFormatError(a.DisplayName)
	case Gz:
		payload, err := decompressGzip(data)
		if err != nil {
			return nil, extractGenericErr(err, data)
		}
		return validateHostOS(payload, a)
	case Zip:
		payload, err := extractFromZip(data, a)
		if err != nil {
			return nil, err
		}
		return validateHostOS(payload, a)
	case Tar:
		payload, err := extractFromTar(bytes.NewReader(data), a)
		if err != nil {
			return nil, err
		}
		return validateHostOS(payload, a)
	case TarGz:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, extractGenericErr(err, data)
		}
		defer gr.Close()
		payload, err := extractFromTar(gr, a)
		if err != nil {
			return nil, err
		}
		return validateHostOS(payload, a)
	default:
		return nil, rokiterrors.NewExtractUnknownFormatError(a.DisplayName)
	}
}

func decompressGzip(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

// exactEntryName returns the entry name the search prefers over a mere
// suffix match: the exact "<tool name><suffix>".
func exactEntryName(a Artifact, suffix string) string {
	return a.Spec.ID.Name + suffix
}

func extractFromZip(data []byte, a Artifact) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, extractGenericErr(err, data)
	}

	suffix := HostExeSuffix()
	exact := exactEntryName(a, suffix)

	var exactMatch, suffixMatch *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := baseName(f.Name)
		if base == exact {
			exactMatch = f
			break
		}
		if suffixMatch == nil && suffix != "" && hasSuffixFold(base, suffix) {
			suffixMatch = f
		}
	}

	found := exactMatch
	if found == nil {
		found = suffixMatch
	}
	if found == nil {
		return nil, rokiterrors.NewExtractFileMissingError(a.Format.String(), a.Spec.ID.Name, a.DisplayName)
	}

	rc, err := found.Open()
	if err != nil {
		return nil, extractGenericErr(err, data)
	}
	defer rc.Close()

	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, extractGenericErr(err, data)
	}
	return payload, nil
}

func extractFromTar(r io.Reader, a Artifact) ([]byte, error) {
	suffix := HostExeSuffix()
	exact := exactEntryName(a, suffix)

	type entry struct {
		name string
		data []byte
	}
	var exactMatch, suffixMatch *entry

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, extractGenericErr(err, nil)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		base := baseName(hdr.Name)

		isExact := base == exact
		isSuffix := suffixMatch == nil && suffix != "" && hasSuffixFold(base, suffix)
		if !isExact && !isSuffix {
			continue
		}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return nil, extractGenericErr(err, nil)
		}
		e := &entry{name: hdr.Name, data: payload}
		if isExact {
			exactMatch = e
			break
		}
		suffixMatch = e
	}

	found := exactMatch
	if found == nil {
		found = suffixMatch
	}
	if found == nil {
		return nil, rokiterrors.NewExtractFileMissingError(a.Format.String(), a.Spec.ID.Name, a.DisplayName)
	}
	return found.data, nil
}

// validateHostOS checks, when the extracted payload's binary header can be
// sniffed at all, that its OS matches the current host. Undetected formats
// (statically linked, non-standard, or simply too small to sniff) are not
// an error.
func validateHostOS(payload []byte, a Artifact) ([]byte, error) {
	fileOS, _, ok := descriptor.DetectFromExecutable(payload)
	if !ok {
		return payload, nil
	}
	hostOS := descriptor.CurrentOS()
	if fileOS != hostOS {
		return nil, rokiterrors.NewExtractOSMismatchError(hostOS.String(), fileOS.String(), a.Spec.ID.Name, a.DisplayName)
	}
	return payload, nil
}

func extractGenericErr(cause error, body []byte) error {
	prefix := body
	if len(prefix) > bodyPrefixLen {
		prefix = prefix[:bodyPrefixLen]
	}
	return rokiterrors.NewExtractGenericError(cause, string(prefix))
}

func baseName(name string) string {
	// Archive entries always use '/' regardless of host OS.
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	return strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
