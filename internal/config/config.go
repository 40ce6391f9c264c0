package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"media_watch/internal/domain"
)

type Config struct {
	Backend         BackendConfig    `yaml:"backend"`
	Sources         []SourceConfig   `yaml:"sources"`
	RSSFeeds        []FeedConfig     `yaml:"rss_feeds"`
	Profiles        []domain.Profile `yaml:"profiles"`
	Matching        MatchingConfig   `yaml:"matching"`
	Digest          DigestConfig     `yaml:"digest"`
	Export          ExportConfig     `yaml:"export"`
	Modules         ModulesConfig    `yaml:"modules"`
	RabbitMQ        RabbitMQConfig   `yaml:"rabbitmq"`
	Database        DatabaseConfig   `yaml:"database"`
	FetchTimeout    time.Duration    `yaml:"fetch_timeout"`
	DefaultLanguage string           `yaml:"default_language"`
	LogLevel        string           `yaml:"log_level"`
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SourceConfig struct {
	ID           string            `yaml:"id"`
	Kind         domain.SourceKind `yaml:"kind"`
	Endpoint     string            `yaml:"endpoint"`
	PollInterval time.Duration     `yaml:"poll_interval"`
	Preseed      bool              `yaml:"preseed"` // serve seed data before the first fetch
}

// Source converts the entry into the domain descriptor.
func (s SourceConfig) Source() domain.Source {
	return domain.Source{
		ID:           s.ID,
		Kind:         s.Kind,
		Endpoint:     s.Endpoint,
		PollInterval: s.PollInterval,
	}
}

type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Language string `yaml:"lang"`
}

type MatchingConfig struct {
	MinResults int `yaml:"min_results"`
	MaxResults int `yaml:"max_results"`
}

type DigestConfig struct {
	Mode  string `yaml:"mode"` // "local" or "remote"
	Brand string `yaml:"brand"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type ModulesConfig struct {
	Newsletters ModuleConfig `yaml:"newsletters"`
	LinkedIn    ModuleConfig `yaml:"linkedin"`
}

// ModuleConfig gates an outer module. Modules are enabled unless the file
// says otherwise.
type ModuleConfig struct {
	Enabled *bool `yaml:"enabled"`
}

func (m ModuleConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Enabled reports whether a database archive is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DefaultPath returns the config location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "media_watch", "config.yaml")
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document after environment expansion, applies defaults
// and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Profile looks up a profile by id.
func (c *Config) Profile(id string) (domain.Profile, bool) {
	for _, p := range c.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Profile{}, false
}

func (c *Config) setDefaults() {
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 15 * time.Second
	}
	if c.Backend.Retry.MaxAttempts == 0 {
		c.Backend.Retry.MaxAttempts = 3
	}
	if c.Backend.Retry.InitialBackoff == 0 {
		c.Backend.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Backend.Retry.MaxBackoff == 0 {
		c.Backend.Retry.MaxBackoff = 10 * time.Second
	}
	for i := range c.Sources {
		if c.Sources[i].PollInterval == 0 {
			c.Sources[i].PollInterval = 5 * time.Minute
		}
	}
	if len(c.Profiles) == 0 {
		c.Profiles = DefaultProfiles()
	}
	if c.Matching.MinResults == 0 {
		c.Matching.MinResults = 3
	}
	if c.Matching.MaxResults == 0 {
		c.Matching.MaxResults = 8
	}
	if c.Digest.Mode == "" {
		c.Digest.Mode = "local"
	}
	if c.Digest.Brand == "" {
		c.Digest.Brand = "Satellifacts"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "media_watch"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "digests"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "newsletter_digests"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "fr"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.ID == "" {
			return fmt.Errorf("source %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %q: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if !s.Kind.Valid() {
			return fmt.Errorf("source %q: unknown kind %q", s.ID, s.Kind)
		}
		if s.PollInterval < time.Second {
			return fmt.Errorf("source %q: poll_interval must be at least 1s", s.ID)
		}
		if s.Kind == domain.KindRSS && len(c.RSSFeeds) == 0 {
			return fmt.Errorf("source %q: rss kind requires rss_feeds", s.ID)
		}
	}

	profiles := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if p.ID == "" {
			return fmt.Errorf("profile %d: id is required", i)
		}
		if profiles[p.ID] {
			return fmt.Errorf("profile %q: duplicate id", p.ID)
		}
		profiles[p.ID] = true
	}

	if c.Matching.MinResults > c.Matching.MaxResults {
		return fmt.Errorf("matching: min_results %d exceeds max_results %d",
			c.Matching.MinResults, c.Matching.MaxResults)
	}

	switch c.Digest.Mode {
	case "local", "remote":
	default:
		return fmt.Errorf("digest: unknown mode %q", c.Digest.Mode)
	}

	return nil
}
