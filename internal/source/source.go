// Package source defines the connector contract for pluggable content
// sources and the connectors shipped with the engine: local files,
// RSS/Atom feeds, scraped web pages, and sqlite-backed catalogs.
package source

import (
	"context"
	"sync"
	"time"

	"github.com/contentmux/contentmux/internal/model"
)

// State is the lifecycle state a connector reports.
type State string

const (
	StateActive   State = "active"
	StateError    State = "error"
	StateDisabled State = "disabled"
)

// SourceStatus is a connector's last-known state. Reading it performs
// no I/O; only the owning connector mutates it.
type SourceStatus struct {
	State     State
	Type      string
	LastError string
}

// Description is a connector's static identity.
type Description struct {
	Name string
	Type string
}

// RawItem is one discrete unit of raw material before normalization.
// Kind may be KindUnknown when the source cannot declare one; hint
// fields are optional and come from the item's own metadata.
type RawItem struct {
	ID        string
	Title     string
	Content   string
	Snippet   string
	CreatedAt *time.Time
	SourceURL string
	Kind      model.Kind
	Metadata  map[string]string

	// Parser hints declared by the source.
	ContentType string
	Author      string
	Version     string
}

// FetchResult is the per-connector outcome of one fetch. It is a
// value: immutable once produced. Err is set iff Success is false, in
// which case Items is empty.
type FetchResult struct {
	SourceName string
	Success    bool
	Items      []RawItem
	TotalCount int
	Err        string
}

// Failure builds a failed FetchResult with a descriptive message.
func Failure(name, msg string) FetchResult {
	return FetchResult{SourceName: name, Err: msg}
}

// Fetched builds a successful FetchResult over items.
func Fetched(name string, items []RawItem) FetchResult {
	return FetchResult{
		SourceName: name,
		Success:    true,
		Items:      items,
		TotalCount: len(items),
	}
}

// Connector is the capability contract every source implements.
// Fetch captures all failures into the FetchResult instead of
// returning an error; HealthCheck is a cheap reachability probe and
// never performs a full fetch; Close is idempotent.
type Connector interface {
	Fetch(ctx context.Context, limit int) FetchResult
	HealthCheck(ctx context.Context) bool
	Status() SourceStatus
	Describe() Description
	Close() error
}

// connState is the shared status cell connectors embed. Guarded by
// its own mutex so health probes and fetches may run concurrently.
type connState struct {
	mu sync.Mutex
	st SourceStatus
}

func newConnState(typ string) connState {
	return connState{st: SourceStatus{State: StateActive, Type: typ}}
}

func (c *connState) Status() SourceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

func (c *connState) setActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.State = StateActive
	c.st.LastError = ""
}

func (c *connState) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.State = StateError
	if err != nil {
		c.st.LastError = err.Error()
	}
}

func (c *connState) setDisabled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.State = StateDisabled
}
