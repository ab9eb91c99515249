// Package manager owns the named collection of source connectors and
// multiplexes fetch, health, search, and statistics operations across
// them with per-source failure isolation.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/source"
)

const (
	DefaultFanout  = 4
	DefaultTimeout = 30 * time.Second

	cacheSize = 64
)

// Stats aggregates connector states and the item count from the most
// recent FetchModels call.
type Stats struct {
	TotalSources      int
	ActiveSources     int
	ErrorSources      int
	TotalContentItems int
}

// Manager holds registered connectors keyed by unique name. The
// registry is the only shared mutable state; aggregate operations
// iterate a snapshot taken under the lock.
type Manager struct {
	mu    sync.RWMutex
	order []string
	conns map[string]source.Connector

	lastModels []model.Content

	logger  *slog.Logger
	fanout  int
	timeout time.Duration
	cache   *expirable.LRU[string, []model.Content]
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger handle. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFanout bounds how many connectors an aggregate operation calls
// concurrently. Values below 1 fall back to 1.
func WithFanout(n int) Option {
	return func(m *Manager) {
		if n < 1 {
			n = 1
		}
		m.fanout = n
	}
}

// WithTimeout sets the per-connector call timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithCacheTTL enables a short-lived per-source cache of converted
// models, so repeated FetchModels calls within the TTL skip refetching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.cache = expirable.NewLRU[string, []model.Content](cacheSize, nil, ttl)
		}
	}
}

// New creates an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		conns:   make(map[string]source.Connector),
		logger:  slog.Default(),
		fanout:  DefaultFanout,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers a connector under its described name. Adding a second
// connector under an existing name replaces the prior entry, closes
// it, and reports the replacement; registration order is preserved
// for the surviving entries.
func (m *Manager) Add(conn source.Connector) (replaced bool) {
	desc := conn.Describe()

	m.mu.Lock()
	prior, exists := m.conns[desc.Name]
	m.conns[desc.Name] = conn
	if !exists {
		m.order = append(m.order, desc.Name)
	}
	m.mu.Unlock()

	if exists {
		m.logger.Warn("replacing source",
			"name", desc.Name,
			"prior_type", prior.Describe().Type,
			"new_type", desc.Type)
		if err := prior.Close(); err != nil {
			m.logger.Warn("closing replaced source", "name", desc.Name, "error", err)
		}
	}
	return exists
}

// Remove unregisters and closes the named connector.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	conn, ok := m.conns[name]
	if ok {
		delete(m.conns, name)
		for i, n := range m.order {
			if n == name {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	if err := conn.Close(); err != nil {
		m.logger.Warn("closing removed source", "name", name, "error", err)
	}
	if m.cache != nil {
		m.cache.Remove(name)
	}
	return true
}

// snapshot returns the connectors in registration order.
func (m *Manager) snapshot() []source.Connector {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conns := make([]source.Connector, 0, len(m.order))
	for _, name := range m.order {
		conns = append(conns, m.conns[name])
	}
	return conns
}

// FetchAll invokes Fetch on every registered connector, bounded by
// the fan-out limit, each call wrapped in the per-call timeout. One
// connector's failure never affects a sibling's result. Results come
// back in registration order, one per connector.
func (m *Manager) FetchAll(ctx context.Context, limitPerSource int) []source.FetchResult {
	conns := m.snapshot()
	results := make([]source.FetchResult, len(conns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fanout)
	for i, conn := range conns {
		i, conn := i, conn
		g.Go(func() error {
			results[i] = m.fetchOne(ctx, conn, limitPerSource)
			return nil
		})
	}
	_ = g.Wait() // workers capture failures into their result slot

	return results
}

// fetchOne runs a single connector fetch under the per-call timeout.
// A connector that outlives its deadline is reported as a timed-out
// FetchResult; the abandoned call sees the canceled context and is
// expected to release its resources cooperatively.
func (m *Manager) fetchOne(ctx context.Context, conn source.Connector, limit int) source.FetchResult {
	name := conn.Describe().Name

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan source.FetchResult, 1)
	go func() {
		done <- conn.Fetch(callCtx, limit)
	}()

	select {
	case res := <-done:
		return res
	case <-callCtx.Done():
		return source.Failure(name, fmt.Sprintf("fetch timed out after %s: %v", m.timeout, callCtx.Err()))
	}
}

// FetchModels fetches from every connector, routes each raw item
// through the parser for its kind, and constructs validated content
// records. Items that fail construction are skipped and logged; the
// rest of the batch proceeds. The result also feeds Search,
// ModelsByKind, and Statistics.
func (m *Manager) FetchModels(ctx context.Context) []model.Content {
	if models, ok := m.cachedModels(); ok {
		m.setLastModels(models)
		return models
	}

	results := m.FetchAll(ctx, 0)

	var models []model.Content
	for _, res := range results {
		if !res.Success {
			continue
		}
		var converted []model.Content
		for _, item := range res.Items {
			c, err := Convert(item)
			if err != nil {
				m.logger.Warn("skipping item",
					"source", res.SourceName, "item", item.ID, "error", err)
				continue
			}
			converted = append(converted, c)
		}
		if m.cache != nil {
			m.cache.Add(res.SourceName, converted)
		}
		models = append(models, converted...)
	}

	m.setLastModels(models)
	return models
}

// cachedModels assembles the model batch from the per-source cache,
// in registration order; it reports false unless every registered
// source has a live cache entry.
func (m *Manager) cachedModels() ([]model.Content, bool) {
	if m.cache == nil {
		return nil, false
	}

	m.mu.RLock()
	names := make([]string, len(m.order))
	copy(names, m.order)
	m.mu.RUnlock()

	if len(names) == 0 {
		return nil, false
	}

	var models []model.Content
	for _, name := range names {
		cached, ok := m.cache.Get(name)
		if !ok {
			return nil, false
		}
		models = append(models, cached...)
	}
	return models, true
}

func (m *Manager) setLastModels(models []model.Content) {
	m.mu.Lock()
	m.lastModels = models
	m.mu.Unlock()
}

// Search matches query case-insensitively against the title and body
// of the currently fetched models, preserving fetch order.
func (m *Manager) Search(query string) []model.Content {
	q := strings.ToLower(query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []model.Content
	for _, c := range m.lastModels {
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Body), q) {
			matches = append(matches, c)
		}
	}
	return matches
}

// ModelsByKind filters the currently fetched models by exact variant tag.
func (m *Manager) ModelsByKind(kind model.Kind) []model.Content {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []model.Content
	for _, c := range m.lastModels {
		if c.Kind == kind {
			matches = append(matches, c)
		}
	}
	return matches
}

// HealthCheckAll probes every connector, bounded by the fan-out limit.
// A probe that fails or times out reduces to false and never blocks a
// sibling probe.
func (m *Manager) HealthCheckAll(ctx context.Context) map[string]bool {
	conns := m.snapshot()
	health := make([]bool, len(conns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fanout)
	for i, conn := range conns {
		i, conn := i, conn
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			done := make(chan bool, 1)
			go func() { done <- conn.HealthCheck(callCtx) }()
			select {
			case ok := <-done:
				health[i] = ok
			case <-callCtx.Done():
				health[i] = false
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]bool, len(conns))
	for i, conn := range conns {
		out[conn.Describe().Name] = health[i]
	}
	return out
}

// Statistics aggregates the current connector states and the item
// count from the last FetchModels call (zero if none has run).
func (m *Manager) Statistics() Stats {
	conns := m.snapshot()

	m.mu.RLock()
	items := len(m.lastModels)
	m.mu.RUnlock()

	stats := Stats{TotalSources: len(conns), TotalContentItems: items}
	for _, conn := range conns {
		switch conn.Status().State {
		case source.StateActive:
			stats.ActiveSources++
		case source.StateError:
			stats.ErrorSources++
		}
	}
	return stats
}

// Cleanup closes every connector and empties the registry. Idempotent:
// a second call finds nothing to release and returns quietly.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]source.Connector)
	m.order = nil
	m.lastModels = nil
	m.mu.Unlock()

	for name, conn := range conns {
		if err := conn.Close(); err != nil {
			m.logger.Warn("closing source", "name", name, "error", err)
		}
	}
	if m.cache != nil {
		m.cache.Purge()
	}
}
