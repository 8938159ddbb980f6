package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasilj/content-scout/internal/domain"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSourcesFile(t *testing.T) {
	id := uuid.New()
	path := writeSourcesFile(t, `
sources:
  - id: `+id.String()+`
    name: Engineering blog
    url: https://blog.example/feed.xml
    defaultTags: [blog, engineering]
  - url: https://api.github.com/orgs/acme/repos
    disableTlsVerification: true
`)

	sources, err := loadSourcesFile(path)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, id, sources[0].ID)
	assert.Equal(t, "Engineering blog", sources[0].Name)
	assert.Equal(t, []string{"blog", "engineering"}, sources[0].DefaultTags)

	assert.Equal(t, uuid.Nil, sources[1].ID)
	assert.True(t, sources[1].DisableTLSVerification)
}

func TestLoadSourcesFileRejectsMissingURL(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: nameless
`)

	_, err := loadSourcesFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no url")
}

func TestFilterSources(t *testing.T) {
	a := domain.DiscoverySource{ID: uuid.New(), URL: "https://a.example"}
	b := domain.DiscoverySource{ID: uuid.New(), URL: "https://b.example"}

	selected, err := filterSources([]domain.DiscoverySource{a, b}, a.ID.String())
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, a.ID, selected[0].ID)

	all, err := filterSources([]domain.DiscoverySource{a, b}, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = filterSources([]domain.DiscoverySource{a}, uuid.NewString())
	require.Error(t, err)
}
