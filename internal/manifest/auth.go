package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	rokiterrors "github.com/rojo-rbx/rokit/internal/errors"
)

// AuthFileName is the name of the per-user file under Home holding
// provider authentication tokens, written by `rokit authenticate`.
const AuthFileName = "auth.toml"

// authDocument is the on-disk shape of auth.toml: one table per provider,
// each holding a single token field. Only "github" exists today but the
// table-per-provider shape leaves room for more providers without a
// format change.
type authDocument struct {
	GitHub struct {
		Token string `toml:"token"`
	} `toml:"github"`
}

// AuthManifest holds provider authentication tokens, keyed by provider
// name (currently just "github").
type AuthManifest struct {
	tokens map[string]string
}

// LoadAuthManifest reads path, if it exists, into an AuthManifest. A
// missing file is not an error; it's treated the same as an empty one,
// since not being authenticated against a provider is the normal state
// for most installs.
func LoadAuthManifest(path string) (*AuthManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AuthManifest{tokens: make(map[string]string)}, nil
		}
		return nil, rokiterrors.NewIoError(path, err)
	}

	var doc authDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, rokiterrors.NewManifestParseError(path, err)
	}

	tokens := make(map[string]string)
	if doc.GitHub.Token != "" {
		tokens["github"] = doc.GitHub.Token
	}
	return &AuthManifest{tokens: tokens}, nil
}

// Token returns the stored token for provider, if any.
func (m *AuthManifest) Token(provider string) (string, bool) {
	t, ok := m.tokens[provider]
	return t, ok
}

// SetToken records a token for provider, overwriting any previous value.
func (m *AuthManifest) SetToken(provider, token string) {
	if m.tokens == nil {
		m.tokens = make(map[string]string)
	}
	m.tokens[provider] = token
}

// RemoveToken deletes any stored token for provider.
func (m *AuthManifest) RemoveToken(provider string) {
	delete(m.tokens, provider)
}

// Save writes the manifest to path with permissions restricted to the
// owner, since the file holds live credentials.
func (m *AuthManifest) Save(path string) error {
	var doc authDocument
	doc.GitHub.Token = m.tokens["github"]

	data, err := toml.Marshal(doc)
	if err != nil {
		return rokiterrors.Wrap(rokiterrors.CategoryIo, "failed to serialize auth manifest", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return rokiterrors.NewIoError(path, err)
	}
	return nil
}
