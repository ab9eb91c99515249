// Package config loads the engine configuration: an ordered list of
// source definitions plus manager settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "config.yaml"
	DefaultFanout     = 4
	DefaultTimeout    = 30 * time.Second
)

// SourceType tags a source definition with its connector kind.
const (
	TypeFile     = "file"
	TypeFeed     = "feed"
	TypeScrape   = "scrape"
	TypeDatabase = "database"
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	Manager ManagerConfig `yaml:"manager"`
	Sources []Source      `yaml:"sources"`
}

type ManagerConfig struct {
	Fanout   int      `yaml:"fanout"`
	Timeout  Duration `yaml:"timeout"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

// Source is one source definition. Type selects the connector; the
// remaining fields are kind-specific and validated per type.
type Source struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// file
	Roots    []string `yaml:"roots"`
	Patterns []string `yaml:"patterns"`
	Watch    bool     `yaml:"watch"`

	// feed
	URLs     []string `yaml:"urls"`
	MaxItems int      `yaml:"max_items"`

	// scrape (shares urls)
	TitleSelector   string `yaml:"title_selector"`
	ContentSelector string `yaml:"content_selector"`

	// database
	Path  string `yaml:"path"`
	Query string `yaml:"query"`
}

// Load reads config.yaml from dir, applies defaults, and validates.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config dir is required")
	}

	path := filepath.Join(dir, DefaultConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Manager.Fanout == 0 {
		cfg.Manager.Fanout = DefaultFanout
	}
	if cfg.Manager.Timeout.Duration == 0 {
		cfg.Manager.Timeout.Duration = DefaultTimeout
	}
}

// Validate checks the manager settings and every source definition.
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return errors.New("sources: at least one source must be configured")
	}
	if cfg.Manager.Fanout < 1 {
		return fmt.Errorf("manager.fanout: must be at least 1, got %d", cfg.Manager.Fanout)
	}

	for i, src := range cfg.Sources {
		if err := ValidateSource(src); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateSource checks one source definition against its declared type.
func ValidateSource(src Source) error {
	if strings.TrimSpace(src.Name) == "" {
		return errors.New("name is required")
	}

	switch src.Type {
	case TypeFile:
		if len(src.Roots) == 0 && len(src.Patterns) == 0 {
			return fmt.Errorf("%s: roots or patterns required", src.Name)
		}
	case TypeFeed, TypeScrape:
		if len(src.URLs) == 0 {
			return fmt.Errorf("%s: urls required", src.Name)
		}
	case TypeDatabase:
		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("%s: path required", src.Name)
		}
		if strings.TrimSpace(src.Query) == "" {
			return fmt.Errorf("%s: query required", src.Name)
		}
	default:
		return fmt.Errorf("%s: unknown source type %q", src.Name, src.Type)
	}
	return nil
}
