package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kerbaras/mangaverse/pkg/store"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "mangaverse"
	configFileName = "config.yaml"
)

// Config holds all mangaverse configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Search  SearchConfig  `yaml:"search"`
	Home    HomeConfig    `yaml:"home"`
	Admin   AdminConfig   `yaml:"admin"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig configures the coin store.
type StoreConfig struct {
	BaseCoins       int64         `yaml:"base_coins"`
	BasePrice       string        `yaml:"base_price"` // decimal, e.g. "3.00"
	MinCoins        int64         `yaml:"min_coins"`
	MaxCoins        int64         `yaml:"max_coins"`
	DefaultCoins    int64         `yaml:"default_coins"`
	ProcessingDelay time.Duration `yaml:"processing_delay"`
	StartingBalance int64         `yaml:"starting_balance"`
	PaymentsEnabled *bool         `yaml:"payments_enabled"`
	SimulateDecline bool          `yaml:"simulate_decline"`
}

// SearchConfig configures search suggestions and result display.
type SearchConfig struct {
	DisplayLimit int      `yaml:"display_limit"`
	MaxRecent    int      `yaml:"max_recent"`
	Recent       []string `yaml:"recent"`
	Trending     []string `yaml:"trending"`
}

type HomeConfig struct {
	AutoplayInterval time.Duration `yaml:"autoplay_interval"`
}

type AdminConfig struct {
	CacheClearDelay time.Duration `yaml:"cache_clear_delay"`
}

// CatalogConfig points at an optional catalog file replacing the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func (c *Config) applyDefaults() {
	s := &c.Store
	if s.BaseCoins == 0 {
		s.BaseCoins = store.DefaultBaseCoins
	}
	if s.BasePrice == "" {
		s.BasePrice = store.DefaultBasePrice
	}
	if s.MinCoins == 0 {
		s.MinCoins = store.DefaultMinCoins
	}
	if s.MaxCoins == 0 {
		s.MaxCoins = store.DefaultMaxCoins
	}
	if s.DefaultCoins == 0 {
		s.DefaultCoins = store.DefaultCoins
	}
	if s.ProcessingDelay == 0 {
		s.ProcessingDelay = 2 * time.Second
	}
	if s.PaymentsEnabled == nil {
		enabled := true
		s.PaymentsEnabled = &enabled
	}

	if c.Search.DisplayLimit == 0 {
		c.Search.DisplayLimit = 8
	}
	if c.Search.MaxRecent == 0 {
		c.Search.MaxRecent = 10
	}
	if c.Search.Recent == nil {
		c.Search.Recent = []string{"Solo Leveling", "Tower of God", "Attack on Titan"}
	}
	if c.Search.Trending == nil {
		c.Search.Trending = []string{"Omniscient Reader", "TBATE", "Jujutsu Kaisen"}
	}

	if c.Home.AutoplayInterval == 0 {
		c.Home.AutoplayInterval = 5 * time.Second
	}
	if c.Admin.CacheClearDelay == 0 {
		c.Admin.CacheClearDelay = 2 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if _, err := c.Rate(); err != nil {
		return err
	}
	if err := c.Limits().Validate(); err != nil {
		return err
	}
	if c.Store.ProcessingDelay < 0 || c.Admin.CacheClearDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if c.Store.StartingBalance < 0 {
		return errors.New("starting balance must not be negative")
	}
	if c.Search.DisplayLimit < 0 {
		return errors.New("search display limit must not be negative")
	}
	if c.Home.AutoplayInterval < 0 {
		return errors.New("autoplay interval must not be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Rate is the configured coin exchange rate.
func (c *Config) Rate() (store.Rate, error) {
	return store.NewRate(c.Store.BaseCoins, c.Store.BasePrice)
}

func (c *Config) Limits() store.Limits {
	return store.Limits{Min: c.Store.MinCoins, Max: c.Store.MaxCoins, Default: c.Store.DefaultCoins}
}

func (c *Config) PaymentsEnabled() bool {
	return c.Store.PaymentsEnabled == nil || *c.Store.PaymentsEnabled
}

// DefaultPath is config.yaml under the user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName, configFileName), nil
}
