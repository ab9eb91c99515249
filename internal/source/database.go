package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/textnorm"
)

const databaseSourceType = "database"

// DatabaseConfig configures a sqlite-backed connector. The query's
// columns map to raw item fields by name: id, title, content,
// snippet, content_type, source_url, author, version, created_at.
type DatabaseConfig struct {
	Name  string
	Path  string
	Query string
}

// DatabaseSource treats an external sqlite file as an authoritative
// content catalog. The engine never writes to it; every fetch re-runs
// the configured query.
type DatabaseSource struct {
	connState
	cfg    DatabaseConfig
	db     *sql.DB
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewDatabase opens the sqlite file at cfg.Path. Path and query are
// required; the handle stays open for the connector's lifetime and is
// released by Close.
func NewDatabase(cfg DatabaseConfig, logger *slog.Logger) (*DatabaseSource, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("database: path is required")
	}
	if strings.TrimSpace(cfg.Query) == "" {
		return nil, errors.New("database: query is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", "file:"+cfg.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.Path, err)
	}

	return &DatabaseSource{
		connState: newConnState(databaseSourceType),
		cfg:       cfg,
		db:        db,
		logger:    logger,
	}, nil
}

func (d *DatabaseSource) Describe() Description {
	return Description{Name: d.cfg.Name, Type: databaseSourceType}
}

// Fetch runs the configured query and maps each row to a raw item.
// Rows without content are logged and skipped.
func (d *DatabaseSource) Fetch(ctx context.Context, limit int) FetchResult {
	rows, err := d.db.QueryContext(ctx, d.cfg.Query)
	if err != nil {
		d.setError(err)
		return Failure(d.cfg.Name, fmt.Sprintf("query: %v", err))
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		d.setError(err)
		return Failure(d.cfg.Name, fmt.Sprintf("columns: %v", err))
	}

	var items []RawItem
	for rows.Next() {
		if limit > 0 && len(items) >= limit {
			break
		}

		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			d.setError(err)
			return Failure(d.cfg.Name, fmt.Sprintf("scan: %v", err))
		}

		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if vals[i].Valid {
				row[strings.ToLower(col)] = vals[i].String
			}
		}

		item, ok := d.rowItem(row)
		if !ok {
			d.logger.Warn("skipping row without content", "source", d.cfg.Name, "id", row["id"])
			continue
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		d.setError(err)
		return Failure(d.cfg.Name, fmt.Sprintf("rows: %v", err))
	}

	d.setActive()
	return Fetched(d.cfg.Name, items)
}

func (d *DatabaseSource) rowItem(row map[string]string) (RawItem, bool) {
	content := row["content"]
	if strings.TrimSpace(content) == "" {
		return RawItem{}, false
	}

	item := RawItem{
		ID:          row["id"],
		Title:       row["title"],
		Content:     content,
		Snippet:     row["snippet"],
		SourceURL:   row["source_url"],
		Kind:        model.ParseKind(row["content_type"]),
		Metadata:    map[string]string{"database": d.cfg.Path},
		ContentType: row["content_type"],
		Author:      row["author"],
		Version:     row["version"],
	}
	if item.ID == "" {
		item.ID = "db-" + uuid.NewString()[:8]
	}
	if item.Title == "" {
		item.Title = textnorm.Snippet(content, 60)
	}
	if item.Snippet == "" {
		item.Snippet = textnorm.Snippet(content, textnorm.DefaultSnippetLen)
	}
	if item.Kind == model.KindUnknown {
		if item.Version != "" {
			item.Kind = model.KindReleaseNotes
		} else if item.Author != "" {
			item.Kind = model.KindBlogPost
		}
	}
	if ts := row["created_at"]; ts != "" {
		if t, err := parseTimestamp(ts); err == nil {
			item.CreatedAt = &t
		}
	}
	return item, true
}

// HealthCheck pings the database handle.
func (d *DatabaseSource) HealthCheck(ctx context.Context) bool {
	return d.db.PingContext(ctx) == nil
}

// Close releases the database handle. Safe to call more than once.
func (d *DatabaseSource) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.db.Close()
		d.setDisabled()
	})
	return d.closeErr
}
