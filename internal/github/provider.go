package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/rojo-rbx/rokit/internal/artifact"
	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
	"github.com/rojo-rbx/rokit/internal/tool"
)

const (
	// ProviderName is this provider's tag, as used in auth manifests
	// ("github" → bearer token) and Artifact.Provider.
	ProviderName = "github"

	connectTimeout = 15 * time.Second
	totalTimeout   = 60 * time.Second
	maxRetries     = 3
	userAgent      = "rokit/1.0"

	apiBase = "https://api.github.com"
)

// Provider implements the capability set the install pipeline and artifact
// selector consume: latest-release lookup, spec-pinned release lookup by
// tag, and asset byte download. The reference provider is GitHub Releases.
type Provider struct {
	client *http.Client
	token  string
}

// NewProvider builds a Provider. If token is non-empty, it's sent as a
// bearer token on every request and must look like a GitHub token (starts
// with "gh" + a lowercase letter + "_"); a malformed token is rejected
// eagerly rather than surfacing as a confusing 401 later.
func NewProvider(token string) (*Provider, error) {
	if token != "" && !looksLikeGitHubToken(token) {
		return nil, rokiterrors.NewAuthTokenFormatError(ProviderName)
	}
	return &Provider{
		client: &http.Client{
			Timeout: totalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		token: token,
	}, nil
}

// looksLikeGitHubToken reports whether s has the shape of a GitHub access
// token: "gh" followed by a lowercase letter, then "_" (e.g. "ghp_…",
// "gho_…", "ghu_…").
func looksLikeGitHubToken(s string) bool {
	if len(s) < 4 {
		return false
	}
	if s[0] != 'g' || s[1] != 'h' {
		return false
	}
	if s[2] < 'a' || s[2] > 'z' {
		return false
	}
	return s[3] == '_'
}

type ghAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	URL                string `json:"url"`
}

type ghRelease struct {
	TagName string    `json:"tag_name"`
	Body    string    `json:"body"`
	Assets  []ghAsset `json:"assets"`
}

func (r *ghRelease) toRelease(spec tool.ToolSpec) artifact.Release {
	out := artifact.Release{Changelog: r.Body}
	for _, a := range r.Assets {
		out.Artifacts = append(out.Artifacts, artifact.Artifact{
			Provider:    ProviderName,
			Format:      artifact.FormatFromFilename(a.Name),
			ID:          fmt.Sprintf("%d", a.ID),
			URL:         a.BrowserDownloadURL,
			DisplayName: a.Name,
			Spec:        spec,
		})
	}
	return out
}

// LatestRelease fetches the most recent release for id.
func (p *Provider) LatestRelease(ctx context.Context, id tool.ToolId) (artifact.Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", apiBase, id.Author, id.Name)
	rel, err := p.fetchRelease(ctx, url)
	if err != nil {
		return artifact.Release{}, err
	}
	version, err := tool.ParseVersion(strings.TrimPrefix(rel.TagName, "v"))
	if err != nil {
		return artifact.Release{}, rokiterrors.NewVersionParseError(rel.TagName, err)
	}
	return rel.toRelease(id.IntoSpec(version)), nil
}

// ReleaseBySpec fetches the release tagged for spec's exact version, trying
// the "v"-prefixed tag first, then the bare version, per the reference
// provider's inconsistent tagging conventions across repos.
func (p *Provider) ReleaseBySpec(ctx context.Context, spec tool.ToolSpec) (artifact.Release, error) {
	for _, tag := range []string{"v" + spec.Version.String(), spec.Version.String()} {
		url := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", apiBase, spec.ID.Author, spec.ID.Name, tag)
		rel, err := p.fetchRelease(ctx, url)
		if err == nil {
			return rel.toRelease(spec), nil
		}
		if !isNotFound(err) {
			return artifact.Release{}, err
		}
	}
	return artifact.Release{}, rokiterrors.NewReleaseNotFoundError(spec.String())
}

type notFoundErr struct{}

func (notFoundErr) Error() string { return "not found" }

func isNotFound(err error) bool {
	_, ok := err.(notFoundErr)
	return ok
}

// VerifyToken confirms the provider's bearer token is actually accepted by
// hitting the authenticated user endpoint, so `rokit authenticate` can
// reject a well-formed-but-revoked token immediately instead of leaving the
// user to discover it on the next install.
func (p *Provider) VerifyToken(ctx context.Context) error {
	if _, err := p.getBytes(ctx, apiBase+"/user", "application/vnd.github+json"); err != nil {
		return rokiterrors.NewAuthFailedError(ProviderName, err)
	}
	return nil
}

// DownloadArtifact fetches a's bytes, preferring its direct URL (the
// reference provider's browser_download_url serves binary content without
// a separate Accept header).
func (p *Provider) DownloadArtifact(ctx context.Context, a artifact.Artifact) ([]byte, error) {
	url := a.URL
	if url == "" {
		url = fmt.Sprintf("%s/repos/%s/%s/releases/assets/%s", apiBase, a.Spec.ID.Author, a.Spec.ID.Name, a.ID)
	}
	return p.getBytes(ctx, url, "application/octet-stream")
}

func (p *Provider) fetchRelease(ctx context.Context, url string) (*ghRelease, error) {
	body, err := p.getBytes(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	var rel ghRelease
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, rokiterrors.Wrap(rokiterrors.CategoryNetwork, "failed to decode release response", err)
	}
	return &rel, nil
}

// getBytes performs an HTTP GET with exponential-backoff retry on transient
// failures, up to maxRetries attempts.
func (p *Provider) getBytes(ctx context.Context, url, accept string) ([]byte, error) {
	op := func() ([]byte, error) {
		if !strings.HasPrefix(url, "https://") {
			return nil, backoff.Permanent(fmt.Errorf("refusing non-HTTPS request to %s", url))
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", accept)
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Encoding", "gzip, br, deflate")
		if p.token != "" {
			req.Header.Set("Authorization", "Bearer "+p.token)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, rokiterrors.NewTransientNetworkError(url, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, rokiterrors.NewTransientNetworkError(url, err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(notFoundErr{})
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, rokiterrors.NewTransientNetworkError(url, fmt.Errorf("HTTP %d", resp.StatusCode))
		default:
			return nil, backoff.Permanent(rokiterrors.NewTerminalNetworkError(url, resp.StatusCode))
		}
	}

	return backoff.Retry(ctx, op, backoff.WithMaxTries(uint(maxRetries)), backoff.WithBackOff(backoff.NewExponentialBackOff()))
}
