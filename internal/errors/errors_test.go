package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(CategoryNotFound, "release not found")
		assert.Equal(t, "release not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := Wrap(CategoryIo, "failed to read file", cause)
		assert.Equal(t, "failed to read file: boom", err.Error())
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestErrorIs(t *testing.T) {
	a := New(CategoryParse, "bad input")
	a.Code = CodeIdentifierParse
	b := New(CategoryParse, "different message")
	b.Code = CodeIdentifierParse

	assert.True(t, a.Is(b))

	c := New(CategoryParse, "bad input")
	assert.True(t, a.Is(c), "a codeless target is compared by category and message")
}

func TestWithBuilders(t *testing.T) {
	err := New(CategoryAuth, "bad token").
		WithHint("use a personal access token").
		WithExample("ghp_xxx").
		WithDetail("provider", "github")

	require.NotNil(t, err.Details)
	assert.Equal(t, "use a personal access token", err.Hint)
	assert.Equal(t, "ghp_xxx", err.Example)
	assert.Equal(t, "github", err.Details["provider"])
}

func TestNotFoundErrorIsByCode(t *testing.T) {
	a := NewReleaseNotFoundError("author/tool@1.0.0")
	b := NewReleaseNotFoundError("author/other@2.0.0")
	assert.True(t, stderrors.Is(a, b))

	c := NewManifestNotFoundError("/some/path")
	assert.False(t, stderrors.Is(a, c))
}

func TestVersionIsRangeHint(t *testing.T) {
	err := NewVersionIsRangeError("1.2")
	assert.Contains(t, err.Hint, "1.2")
	assert.Equal(t, CodeVersionIsRange, err.Base.Code)
}
