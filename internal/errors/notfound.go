//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

// NotFoundError represents a missing release, artifact, manifest, or trust record.
type NotFoundError struct {
	Base Error `json:"error"`

	// Subject is the thing that could not be found (a tool spec, alias, path, id).
	Subject string `json:"subject,omitempty"`
}

// NewReleaseNotFoundError creates a NotFoundError for a missing release.
func NewReleaseNotFoundError(spec string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNotFound,
			Code:     CodeReleaseNotFound,
			Message:  "no release found",
			Hint:     "Check that the tool id and version exist on the provider.",
		},
		Subject: spec,
	}
}

// NewArtifactNotFoundError creates a NotFoundError for a release with no compatible artifact.
func NewArtifactNotFoundError(spec string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNotFound,
			Code:     CodeArtifactNotFound,
			Message:  "no compatible artifact found for this platform",
		},
		Subject: spec,
	}
}

// NewManifestNotFoundError creates a NotFoundError for a missing manifest.
func NewManifestNotFoundError(cwd string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNotFound,
			Code:     CodeManifestNotFound,
			Message:  "no manifest found",
			Hint:     "Run 'rokit init' to create one.",
		},
		Subject: cwd,
	}
}

// NewAliasNotBoundError creates a NotFoundError for an alias with no entry
// in a manifest.
func NewAliasNotBoundError(alias string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNotFound,
			Code:     CodeManifestNotFound,
			Message:  "alias is not bound in this manifest",
		},
		Subject: alias,
	}
}

// NewTrustRecordMissingError creates a NotFoundError for a missing trust record.
func NewTrustRecordMissingError(id string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNotFound,
			Code:     CodeTrustRecordMissing,
			Message:  "tool is not trusted",
		},
		Subject: id,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
