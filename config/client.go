package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultBaseURL       = "http://localhost:8080"
	defaultClientTimeout = 10 * time.Second
	defaultNotifyTimeout = 3 * time.Second
)

// ClientConfig configures the formctl terminal client.
type ClientConfig struct {
	BaseURL       string   `toml:"base_url"`
	DraftDir      string   `toml:"draft_dir"`
	Timeout       Duration `toml:"timeout"`
	NotifyTimeout Duration `toml:"notify_timeout"`
}

// Duration lets TOML files spell durations as "10s" or "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// DefaultClientConfigPath returns ~/.config/formctl/config.toml.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "formctl.toml"
	}
	return filepath.Join(dir, "formctl", "config.toml")
}

// LoadClientConfig reads the TOML file at path. A missing file is not an error:
// defaults are used. FORMCTL_BASE_URL overrides base_url.
func LoadClientConfig(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading client config %s: %w", path, err)
		}
	}

	if env := os.Getenv("FORMCTL_BASE_URL"); env != "" {
		cfg.BaseURL = env
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *ClientConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.DraftDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.DraftDir = filepath.Join(dir, "formctl", "drafts")
		} else {
			c.DraftDir = filepath.Join(".formctl", "drafts")
		}
	}
	if c.Timeout.Duration <= 0 {
		c.Timeout.Duration = defaultClientTimeout
	}
	if c.NotifyTimeout.Duration <= 0 {
		c.NotifyTimeout.Duration = defaultNotifyTimeout
	}
}
