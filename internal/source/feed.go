package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/textnorm"
)

const (
	feedSourceType   = "feed"
	feedProbeTimeout = 5 * time.Second
	feedUserAgent    = "Mozilla/5.0 (compatible; contentmux/1.0)"
)

// FeedConfig configures an RSS/Atom feed connector.
type FeedConfig struct {
	Name     string
	URLs     []string
	MaxItems int // per feed; 0 = unbounded
}

// FeedSource fetches blog-post items from RSS/Atom feeds.
type FeedSource struct {
	connState
	cfg    FeedConfig
	client *http.Client
	logger *slog.Logger
}

// feedTransport injects a User-Agent header into every request.
type feedTransport struct {
	base http.RoundTripper
}

func (t *feedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", feedUserAgent)
	return t.base.RoundTrip(req)
}

// NewFeed creates a feed connector. At least one feed URL is required.
func NewFeed(cfg FeedConfig, logger *slog.Logger) (*FeedSource, error) {
	if len(cfg.URLs) == 0 {
		return nil, errors.New("feed: at least one feed URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedSource{
		connState: newConnState(feedSourceType),
		cfg:       cfg,
		client:    &http.Client{Transport: &feedTransport{base: http.DefaultTransport}},
		logger:    logger,
	}, nil
}

func (f *FeedSource) Describe() Description {
	return Description{Name: f.cfg.Name, Type: feedSourceType}
}

// Fetch parses every configured feed. A feed that fails is logged and
// skipped; the fetch as a whole fails only when every feed fails or
// the context is canceled.
func (f *FeedSource) Fetch(ctx context.Context, limit int) FetchResult {
	parser := gofeed.NewParser()
	parser.Client = f.client

	var items []RawItem
	var errs []string

	for _, feedURL := range f.cfg.URLs {
		if err := ctx.Err(); err != nil {
			f.setError(err)
			return Failure(f.cfg.Name, fmt.Sprintf("fetch canceled: %v", err))
		}
		if limit > 0 && len(items) >= limit {
			break
		}

		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			f.logger.Warn("feed fetch failed", "source", f.cfg.Name, "url", feedURL, "error", err)
			errs = append(errs, fmt.Sprintf("%s: %v", feedURL, err))
			continue
		}
		items = append(items, f.feedItems(feed, feedURL)...)
	}

	if len(items) == 0 && len(errs) > 0 {
		err := errors.New(strings.Join(errs, "; "))
		f.setError(err)
		return Failure(f.cfg.Name, err.Error())
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	f.setActive()
	return Fetched(f.cfg.Name, items)
}

func (f *FeedSource) feedItems(feed *gofeed.Feed, feedURL string) []RawItem {
	label := feed.Title
	if label == "" {
		label = feedURL
	}

	max := f.cfg.MaxItems
	var items []RawItem
	for _, it := range feed.Items {
		if max > 0 && len(items) >= max {
			break
		}

		content := it.Content
		if content == "" {
			content = it.Description
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		item := RawItem{
			ID:        it.GUID,
			Title:     it.Title,
			Content:   content,
			Snippet:   textnorm.Snippet(content, textnorm.DefaultSnippetLen),
			SourceURL: it.Link,
			Kind:      model.KindBlogPost,
			Metadata:  map[string]string{"feed": label, "feed_url": feedURL},
		}
		if item.ID == "" {
			item.ID = it.Link
		}
		if item.Title == "" {
			item.Title = label
		}
		if it.PublishedParsed != nil {
			t := *it.PublishedParsed
			item.CreatedAt = &t
		} else if it.UpdatedParsed != nil {
			t := *it.UpdatedParsed
			item.CreatedAt = &t
		}
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			item.Author = it.Authors[0].Name
		}
		if len(it.Categories) > 0 {
			item.Metadata["categories"] = strings.Join(it.Categories, ",")
		}
		items = append(items, item)
	}
	return items
}

// HealthCheck probes the first feed URL with a bounded HEAD request.
func (f *FeedSource) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, feedProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, f.cfg.URLs[0], nil)
	if err != nil {
		return false
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < http.StatusInternalServerError
}

// Close marks the connector disabled; feed connectors hold no handles.
func (f *FeedSource) Close() error {
	f.setDisabled()
	return nil
}
