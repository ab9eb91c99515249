package manager

import (
	"fmt"

	"github.com/contentmux/contentmux/internal/config"
	"github.com/contentmux/contentmux/internal/source"
)

// AddSourceFromConfig validates the definition, constructs the
// matching connector, and registers it. It returns false instead of
// an error when construction fails; the manager logs the failure and
// keeps operating with the sources registered so far. Replacement of
// an existing name is reported through the second return.
func (m *Manager) AddSourceFromConfig(cfg config.Source) (ok, replaced bool) {
	conn, err := m.buildConnector(cfg)
	if err != nil {
		m.logger.Error("cannot add source", "name", cfg.Name, "type", cfg.Type, "error", err)
		return false, false
	}
	return true, m.Add(conn)
}

// AddSources registers every definition in order, reporting per-name
// success.
func (m *Manager) AddSources(cfgs []config.Source) map[string]bool {
	results := make(map[string]bool, len(cfgs))
	for _, cfg := range cfgs {
		ok, _ := m.AddSourceFromConfig(cfg)
		results[cfg.Name] = ok
	}
	return results
}

func (m *Manager) buildConnector(cfg config.Source) (source.Connector, error) {
	if err := config.ValidateSource(cfg); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case config.TypeFile:
		return source.NewFile(source.FileConfig{
			Name:     cfg.Name,
			Roots:    cfg.Roots,
			Patterns: cfg.Patterns,
			Watch:    cfg.Watch,
		}, m.logger)
	case config.TypeFeed:
		return source.NewFeed(source.FeedConfig{
			Name:     cfg.Name,
			URLs:     cfg.URLs,
			MaxItems: cfg.MaxItems,
		}, m.logger)
	case config.TypeScrape:
		return source.NewScrape(source.ScrapeConfig{
			Name:            cfg.Name,
			URLs:            cfg.URLs,
			TitleSelector:   cfg.TitleSelector,
			ContentSelector: cfg.ContentSelector,
		}, m.logger)
	case config.TypeDatabase:
		return source.NewDatabase(source.DatabaseConfig{
			Name:  cfg.Name,
			Path:  cfg.Path,
			Query: cfg.Query,
		}, m.logger)
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
