//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// ExtractError represents a failure while decompressing, unarchiving, or
// validating a downloaded artifact's contents.
type ExtractError struct {
	Base Error `json:"error"`

	// Format is the detected artifact format (e.g. "tar.gz"), if known.
	Format string `json:"format,omitempty"`

	// ToolName is the tool's executable name being searched for.
	ToolName string `json:"toolName,omitempty"`

	// ArchiveName is the display name of the archive.
	ArchiveName string `json:"archiveName,omitempty"`

	// BodyPrefix holds the first bytes of the downloaded body, for debugging
	// HTML error pages returned as 200 OK.
	BodyPrefix string `json:"bodyPrefix,omitempty"`

	// HostOS / FileOS record a detected OS mismatch.
	HostOS string `json:"hostOs,omitempty"`
	FileOS string `json:"fileOs,omitempty"`
}

// NewExtractUnknownFormatError creates an ExtractError for an unrecognized format.
func NewExtractUnknownFormatError(archiveName string) *ExtractError {
	return &ExtractError{
		Base: Error{
			Category: CategoryExtract,
			Code:     CodeExtractUnknownFormat,
			Message:  "unknown artifact format",
		},
		ArchiveName: archiveName,
	}
}

// NewExtractFileMissingError creates an ExtractError when the tool executable
// cannot be located inside the archive.
func NewExtractFileMissingError(format, toolName, archiveName string) *ExtractError {
	return &ExtractError{
		Base: Error{
			Category: CategoryExtract,
			Code:     CodeExtractFileMissing,
			Message:  fmt.Sprintf("could not find %q inside %s", toolName, archiveName),
		},
		Format:      format,
		ToolName:    toolName,
		ArchiveName: archiveName,
	}
}

// NewExtractGenericError creates an ExtractError wrapping a lower-level
// decompression/unarchiving failure, optionally surfacing a prefix of the
// downloaded bytes for debugging unexpected response bodies.
func NewExtractGenericError(cause error, bodyPrefix string) *ExtractError {
	return &ExtractError{
		Base: Error{
			Category: CategoryExtract,
			Code:     CodeExtractGeneric,
			Message:  "failed to extract artifact",
			Cause:    cause,
		},
		BodyPrefix: bodyPrefix,
	}
}

// NewExtractOSMismatchError creates an ExtractError when the extracted binary's
// detected OS does not match the host OS.
func NewExtractOSMismatchError(hostOS, fileOS, toolName, archiveName string) *ExtractError {
	return &ExtractError{
		Base: Error{
			Category: CategoryExtract,
			Code:     CodeExtractOSMismatch,
			Message:  fmt.Sprintf("extracted binary is built for %s, not %s", fileOS, hostOS),
		},
		HostOS:      hostOS,
		FileOS:      fileOS,
		ToolName:    toolName,
		ArchiveName: archiveName,
	}
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *ExtractError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *ExtractError) Is(target error) bool {
	t, ok := target.(*ExtractError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
