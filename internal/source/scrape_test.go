package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmux/contentmux/internal/model"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Changelog &mdash; Example</title></head>
<body>
  <nav>skip this</nav>
  <article>
    <h1>March Update</h1>
    <p>We rewrote the importer and fixed two crashes.</p>
  </article>
</body>
</html>`

func TestNewScrape_Defaults(t *testing.T) {
	_, err := NewScrape(ScrapeConfig{Name: "s"}, quietLogger())
	assert.Error(t, err, "urls are required")

	src, err := NewScrape(ScrapeConfig{Name: "s", URLs: []string{"https://example.com"}}, quietLogger())
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, defaultTitleSelector, src.cfg.TitleSelector)
	assert.Equal(t, defaultContentSelector, src.cfg.ContentSelector)
}

func TestScrapeSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	src, err := NewScrape(ScrapeConfig{
		Name:            "docs",
		URLs:            []string{srv.URL},
		ContentSelector: "article",
	}, quietLogger())
	require.NoError(t, err)
	defer src.Close()

	res := src.Fetch(context.Background(), 0)
	require.True(t, res.Success, res.Err)
	require.Len(t, res.Items, 1)

	item := res.Items[0]
	assert.Equal(t, model.KindBlogPost, item.Kind)
	assert.Contains(t, item.Title, "Changelog")
	assert.Contains(t, item.Content, "rewrote the importer")
	assert.NotContains(t, item.Content, "skip this", "content selector scopes the extraction")
	assert.Equal(t, srv.URL, item.SourceURL)
	assert.NotEmpty(t, item.ID)
}

func TestScrapeSource_SelectorMatchesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	src, err := NewScrape(ScrapeConfig{
		Name:            "docs",
		URLs:            []string{srv.URL},
		ContentSelector: "#no-such-element",
	}, quietLogger())
	require.NoError(t, err)
	defer src.Close()

	res := src.Fetch(context.Background(), 0)
	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "matched no content")
}

func TestScrapeSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src, err := NewScrape(ScrapeConfig{Name: "docs", URLs: []string{srv.URL}}, quietLogger())
	require.NoError(t, err)
	defer src.Close()

	res := src.Fetch(context.Background(), 0)
	assert.False(t, res.Success)
	assert.Equal(t, StateError, src.Status().State)
}
