package github

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojo-rbx/rokit/internal/tool"
)

func TestLooksLikeGitHubToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"ghp_abc123", true},
		{"gho_abc123", true},
		{"ghu_abc123", true},
		{"gh_abc123", false},
		{"GHP_abc123", false},
		{"random-token", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeGitHubToken(tt.token))
		})
	}
}

func TestNewProvider_RejectsMalformedToken(t *testing.T) {
	_, err := NewProvider("not-a-token")
	require.Error(t, err)
}

func TestNewProvider_AcceptsEmptyOrWellFormedToken(t *testing.T) {
	_, err := NewProvider("")
	require.NoError(t, err)

	_, err = NewProvider("ghp_validlooking")
	require.NoError(t, err)
}

func TestGhRelease_ToRelease(t *testing.T) {
	rel := &ghRelease{
		TagName: "v1.0.0",
		Body:    "notes",
		Assets: []ghAsset{
			{ID: 1, Name: "tool-1.0.0-linux-x86_64.tar.gz", BrowserDownloadURL: "https://example.com/a"},
		},
	}
	spec, err := tool.ParseToolSpec("author/tool@1.0.0")
	require.NoError(t, err)

	r := rel.toRelease(spec)
	assert.Equal(t, "notes", r.Changelog)
	require.Len(t, r.Artifacts, 1)
	assert.Equal(t, "tool-1.0.0-linux-x86_64.tar.gz", r.Artifacts[0].DisplayName)
	assert.Equal(t, spec, r.Artifacts[0].Spec)
}

func TestProvider_VerifyToken(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("Authorization") != "Bearer ghp_validlooking" {
			return &http.Response{StatusCode: http.StatusUnauthorized, Body: io.NopCloser(strings.NewReader(""))}, nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"login":"octocat"}`))}, nil
	})}

	good := &Provider{client: client, token: "ghp_validlooking"}
	require.NoError(t, good.VerifyToken(t.Context()))

	bad := &Provider{client: client, token: "ghp_wrong"}
	require.Error(t, bad.VerifyToken(t.Context()))
}

func TestProvider_ReleaseBySpec_TriesVPrefixFirst(t *testing.T) {
	var requestedPaths []string
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		if len(requestedPaths) == 1 {
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader(""))}, nil
		}
		body := `{"tag_name":"1.2.3","assets":[{"id":1,"name":"tool-1.2.3-linux-x86_64.tar.gz"}]}`
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}, nil
	})}

	p := &Provider{client: client}
	spec, err := tool.ParseToolSpec("author/tool@1.2.3")
	require.NoError(t, err)

	rel, err := p.ReleaseBySpec(t.Context(), spec)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/repos/author/tool/releases/tags/v1.2.3",
		"/repos/author/tool/releases/tags/1.2.3",
	}, requestedPaths)
	require.Len(t, rel.Artifacts, 1)
	assert.Equal(t, spec, rel.Artifacts[0].Spec)
}
