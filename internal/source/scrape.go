package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/textnorm"
)

const (
	scrapeSourceType   = "scrape"
	scrapeProbeTimeout = 5 * time.Second

	defaultTitleSelector   = "title"
	defaultContentSelector = "body"
)

// ScrapeConfig configures a web-page connector. Selectors are CSS
// selectors applied to each fetched page.
type ScrapeConfig struct {
	Name            string
	URLs            []string
	TitleSelector   string
	ContentSelector string
}

// ScrapeSource fetches pages over HTTP and extracts their text with
// CSS selectors. Each page yields one blog-post raw item.
type ScrapeSource struct {
	connState
	cfg    ScrapeConfig
	client *http.Client
	logger *slog.Logger
}

// NewScrape creates a scrape connector. At least one URL is required.
func NewScrape(cfg ScrapeConfig, logger *slog.Logger) (*ScrapeSource, error) {
	if len(cfg.URLs) == 0 {
		return nil, errors.New("scrape: at least one URL is required")
	}
	if cfg.TitleSelector == "" {
		cfg.TitleSelector = defaultTitleSelector
	}
	if cfg.ContentSelector == "" {
		cfg.ContentSelector = defaultContentSelector
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScrapeSource{
		connState: newConnState(scrapeSourceType),
		cfg:       cfg,
		client:    &http.Client{Transport: &feedTransport{base: http.DefaultTransport}},
		logger:    logger,
	}, nil
}

func (s *ScrapeSource) Describe() Description {
	return Description{Name: s.cfg.Name, Type: scrapeSourceType}
}

// Fetch scrapes every configured URL. A page that fails is logged and
// skipped; the fetch fails only when every page fails or the context
// is canceled.
func (s *ScrapeSource) Fetch(ctx context.Context, limit int) FetchResult {
	var items []RawItem
	var errs []string

	for _, pageURL := range s.cfg.URLs {
		if err := ctx.Err(); err != nil {
			s.setError(err)
			return Failure(s.cfg.Name, fmt.Sprintf("fetch canceled: %v", err))
		}
		if limit > 0 && len(items) >= limit {
			break
		}

		item, err := s.scrapePage(ctx, pageURL)
		if err != nil {
			s.logger.Warn("scrape failed", "source", s.cfg.Name, "url", pageURL, "error", err)
			errs = append(errs, fmt.Sprintf("%s: %v", pageURL, err))
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 && len(errs) > 0 {
		err := errors.New(strings.Join(errs, "; "))
		s.setError(err)
		return Failure(s.cfg.Name, err.Error())
	}

	s.setActive()
	return Fetched(s.cfg.Name, items)
}

func (s *ScrapeSource) scrapePage(ctx context.Context, pageURL string) (RawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return RawItem{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return RawItem{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return RawItem{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return RawItem{}, fmt.Errorf("parse page: %w", err)
	}

	title := textnorm.Clean(doc.Find(s.cfg.TitleSelector).First().Text())
	content := doc.Find(s.cfg.ContentSelector).Text()
	if strings.TrimSpace(content) == "" {
		return RawItem{}, fmt.Errorf("selector %q matched no content", s.cfg.ContentSelector)
	}
	if title == "" {
		title = pageURL
	}

	return RawItem{
		ID:        "scrape-" + uuid.NewString()[:8],
		Title:     title,
		Content:   content,
		Snippet:   textnorm.Snippet(content, textnorm.DefaultSnippetLen),
		SourceURL: pageURL,
		Kind:      model.KindBlogPost,
		Metadata:  map[string]string{"page_url": pageURL},
	}, nil
}

// HealthCheck probes the first URL with a bounded HEAD request.
func (s *ScrapeSource) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, scrapeProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.cfg.URLs[0], nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode < http.StatusInternalServerError
}

// Close marks the connector disabled; scrape connectors hold no handles.
func (s *ScrapeSource) Close() error {
	s.setDisabled()
	return nil
}
