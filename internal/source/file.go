package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/textnorm"
)

const fileSourceType = "file"

// supportedExts are the extensions picked up when a root is a directory.
var supportedExts = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".yaml": true, ".yml": true,
}

// FileConfig configures a file-system connector.
type FileConfig struct {
	Name     string
	Roots    []string // individual files or directories
	Patterns []string // glob patterns, resolved on every fetch
	Watch    bool     // re-read paths reported changed by the watcher
}

// FileSource reads content records from local files. Each file yields
// one raw item, except JSON/YAML files holding an array of records,
// which yield one item per record.
type FileSource struct {
	connState
	cfg    FileConfig
	logger *slog.Logger

	watcher *fsnotify.Watcher
	watchWG sync.WaitGroup

	pendingMu sync.Mutex
	pending   map[string]bool

	closeOnce sync.Once
	closeErr  error
}

// NewFile creates a file connector. At least one root or pattern is
// required. When cfg.Watch is set, an fsnotify watcher is started over
// the configured directories; changed paths are queued and drained by
// the next Fetch.
func NewFile(cfg FileConfig, logger *slog.Logger) (*FileSource, error) {
	if len(cfg.Roots) == 0 && len(cfg.Patterns) == 0 {
		return nil, errors.New("file: at least one root path or pattern is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsrc := &FileSource{
		connState: newConnState(fileSourceType),
		cfg:       cfg,
		logger:    logger,
		pending:   make(map[string]bool),
	}

	if cfg.Watch {
		if err := fsrc.startWatcher(); err != nil {
			return nil, fmt.Errorf("file: start watcher: %w", err)
		}
	}
	return fsrc, nil
}

func (f *FileSource) Describe() Description {
	return Description{Name: f.cfg.Name, Type: fileSourceType}
}

// Fetch enumerates the configured roots and patterns plus any paths
// queued by the watcher, reads up to limit files, and converts each
// into raw items. Per-file read failures are logged and skipped; only
// enumeration failures or cancellation fail the whole fetch.
func (f *FileSource) Fetch(ctx context.Context, limit int) FetchResult {
	paths, err := f.collectPaths()
	if err != nil {
		f.setError(err)
		return Failure(f.cfg.Name, err.Error())
	}

	var items []RawItem
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			f.setError(err)
			return Failure(f.cfg.Name, fmt.Sprintf("fetch canceled: %v", err))
		}
		if limit > 0 && len(items) >= limit {
			break
		}

		fileItems, err := f.readFile(path)
		if err != nil {
			f.logger.Warn("skipping unreadable file", "source", f.cfg.Name, "path", path, "error", err)
			continue
		}
		items = append(items, fileItems...)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	f.setActive()
	return Fetched(f.cfg.Name, items)
}

// HealthCheck reports whether at least one configured root exists or
// one pattern matches. It reads no file contents.
func (f *FileSource) HealthCheck(_ context.Context) bool {
	for _, root := range f.cfg.Roots {
		if _, err := os.Stat(root); err == nil {
			return true
		}
	}
	for _, pattern := range f.cfg.Patterns {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// Close stops the watcher and marks the connector disabled. Safe to
// call more than once.
func (f *FileSource) Close() error {
	f.closeOnce.Do(func() {
		if f.watcher != nil {
			f.closeErr = f.watcher.Close()
			f.watchWG.Wait()
		}
		f.setDisabled()
	})
	return f.closeErr
}

func (f *FileSource) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	f.watcher = w

	for _, dir := range f.watchDirs() {
		if err := w.Add(dir); err != nil {
			f.logger.Warn("cannot watch directory", "source", f.cfg.Name, "dir", dir, "error", err)
		}
	}

	f.watchWG.Add(1)
	go func() {
		defer f.watchWG.Done()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) {
					f.enqueue(ev.Name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				f.logger.Warn("watcher error", "source", f.cfg.Name, "error", err)
			}
		}
	}()
	return nil
}

// watchDirs derives the directories to watch from roots and the fixed
// prefix of each glob pattern.
func (f *FileSource) watchDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, root := range f.cfg.Roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			add(root)
		} else {
			add(filepath.Dir(root))
		}
	}
	for _, pattern := range f.cfg.Patterns {
		if idx := strings.IndexAny(pattern, "*?["); idx >= 0 {
			add(filepath.Dir(pattern[:idx] + "x"))
		} else {
			add(filepath.Dir(pattern))
		}
	}
	return dirs
}

func (f *FileSource) enqueue(path string) {
	if !supportedExts[strings.ToLower(filepath.Ext(path))] {
		return
	}
	f.pendingMu.Lock()
	f.pending[path] = true
	f.pendingMu.Unlock()
}

// drainPending returns and clears the queued watcher paths.
func (f *FileSource) drainPending() []string {
	f.pendingMu.Lock()
	defer f.pendingMu.Unlock()
	if len(f.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(f.pending))
	for p := range f.pending {
		paths = append(paths, p)
	}
	f.pending = make(map[string]bool)
	return paths
}

// collectPaths resolves roots, patterns, and pending watcher paths
// into a deduplicated, sorted candidate list.
func (f *FileSource) collectPaths() ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, root := range f.cfg.Roots {
		info, err := os.Stat(root)
		if err != nil {
			continue // absent roots are a health concern, not a fetch error
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExts[strings.ToLower(filepath.Ext(p))] {
				add(p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", root, walkErr)
		}
	}

	for _, pattern := range f.cfg.Patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	for _, p := range f.drainPending() {
		add(p)
	}

	sort.Strings(paths)
	return paths, nil
}

// fileRecord is the schema of a structured (JSON/YAML) record file.
type fileRecord struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Content     string            `json:"content" yaml:"content"`
	Snippet     string            `json:"snippet" yaml:"snippet"`
	ContentType string            `json:"content_type" yaml:"content_type"`
	CreatedAt   string            `json:"created_at" yaml:"created_at"`
	SourceURL   string            `json:"source_url" yaml:"source_url"`
	Author      string            `json:"author" yaml:"author"`
	Version     string            `json:"version" yaml:"version"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

func (f *FileSource) readFile(path string) ([]RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return f.decodeRecords(data, path, json.Unmarshal)
	case ".yaml", ".yml":
		return f.decodeRecords(data, path, yaml.Unmarshal)
	default:
		return []RawItem{f.textItem(string(data), path)}, nil
	}
}

// decodeRecords unmarshals either a single record or an array of
// records (container form) using the provided codec.
func (f *FileSource) decodeRecords(data []byte, path string, unmarshal func([]byte, any) error) ([]RawItem, error) {
	var records []fileRecord
	if err := unmarshal(data, &records); err != nil {
		var one fileRecord
		if err := unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		records = []fileRecord{one}
	}

	items := make([]RawItem, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Content) == "" {
			f.logger.Warn("skipping record without content", "source", f.cfg.Name, "path", path)
			continue
		}
		items = append(items, f.recordItem(rec, path))
	}
	return items, nil
}

func (f *FileSource) recordItem(rec fileRecord, path string) RawItem {
	item := RawItem{
		ID:          rec.ID,
		Title:       rec.Title,
		Content:     rec.Content,
		Snippet:     rec.Snippet,
		SourceURL:   rec.SourceURL,
		Kind:        kindForRecord(rec, path),
		Metadata:    map[string]string{"file_path": path, "file_name": filepath.Base(path)},
		ContentType: rec.ContentType,
		Author:      rec.Author,
		Version:     rec.Version,
	}
	for k, v := range rec.Metadata {
		item.Metadata[k] = v
	}
	if item.ID == "" {
		item.ID = generatedID(path)
	}
	if item.Title == "" {
		item.Title = stem(path)
	}
	if item.Snippet == "" {
		item.Snippet = textnorm.Snippet(item.Content, textnorm.DefaultSnippetLen)
	}
	if rec.CreatedAt != "" {
		if t, err := parseTimestamp(rec.CreatedAt); err == nil {
			item.CreatedAt = &t
		}
	}
	return item
}

func (f *FileSource) textItem(content, path string) RawItem {
	title := stem(path)
	for _, line := range strings.Split(content, "\n") {
		if cleaned := textnorm.Clean(line); cleaned != "" {
			title = strings.TrimLeft(cleaned, "# ")
			break
		}
	}

	return RawItem{
		ID:        generatedID(path),
		Title:     title,
		Content:   content,
		Snippet:   textnorm.Snippet(content, textnorm.DefaultSnippetLen),
		SourceURL: "file://" + path,
		Kind:      kindForPath(path),
		Metadata:  map[string]string{"file_path": path, "file_name": filepath.Base(path)},
	}
}

// transcriptSubtypes are content_type values that declare the
// transcript kind indirectly.
var transcriptSubtypes = map[string]bool{
	"podcast": true, "video": true, "meeting": true, "interview": true,
}

// kindForRecord prefers the record's declared type over filename
// convention.
func kindForRecord(rec fileRecord, path string) model.Kind {
	if rec.ContentType != "" {
		if k := model.ParseKind(rec.ContentType); k != model.KindUnknown {
			return k
		}
		if transcriptSubtypes[strings.ToLower(rec.ContentType)] {
			return model.KindTranscript
		}
	}
	if rec.Version != "" {
		return model.KindReleaseNotes
	}
	if rec.Author != "" {
		return model.KindBlogPost
	}
	return kindForPath(path)
}

// kindForPath infers a content kind from filename convention.
func kindForPath(path string) model.Kind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "transcript"):
		return model.KindTranscript
	case strings.Contains(name, "release"), strings.Contains(name, "changelog"):
		return model.KindReleaseNotes
	case strings.Contains(name, "blog"), strings.Contains(name, "post"):
		return model.KindBlogPost
	default:
		return model.KindUnknown
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func generatedID(path string) string {
	return fmt.Sprintf("file-%s-%s", stem(path), uuid.NewString()[:8])
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}
