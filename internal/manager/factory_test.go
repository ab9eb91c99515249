package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentmux/contentmux/internal/config"
)

func TestAddSourceFromConfig(t *testing.T) {
	m := New(WithLogger(testLogger()))
	defer m.Cleanup()

	ok, replaced := m.AddSourceFromConfig(config.Source{
		Name: "local", Type: config.TypeFile, Roots: []string{t.TempDir()},
	})
	assert.True(t, ok)
	assert.False(t, replaced)

	ok, replaced = m.AddSourceFromConfig(config.Source{
		Name: "local", Type: config.TypeFeed, URLs: []string{"https://example.com/feed.xml"},
	})
	assert.True(t, ok)
	assert.True(t, replaced, "same name swaps the connector type")

	ok, _ = m.AddSourceFromConfig(config.Source{Name: "broken", Type: "imap"})
	assert.False(t, ok, "invalid definitions are reported, not fatal")

	assert.Equal(t, 1, m.Statistics().TotalSources)
}

func TestAddSources(t *testing.T) {
	m := New(WithLogger(testLogger()))
	defer m.Cleanup()

	results := m.AddSources([]config.Source{
		{Name: "a", Type: config.TypeFile, Roots: []string{t.TempDir()}},
		{Name: "b", Type: config.TypeFile}, // no roots
	})

	assert.Equal(t, map[string]bool{"a": true, "b": false}, results)
	assert.Equal(t, 1, m.Statistics().TotalSources)
}
