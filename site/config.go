package site

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config contains site configuration from the murmur.cfg file.
type Config struct {
	Title         string            `toml:"title"`         // Site title, used by templates and the feed
	Description   string            `toml:"description"`   // Site description, used by the feed
	BaseURL       string            `toml:"baseurl"`       // Absolute site root for sitemap and feed links
	Author        string            `toml:"author"`        // Site author
	Expires       Duration          `toml:"expires"`       // Expires header for rendered pages
	StaticExpires Duration          `toml:"staticexpires"` // Expires header for static assets
	Headers       map[string]string `toml:"headers"`       // Extra response headers
}

// URL joins path elements onto the configured base URL.
func (c *Config) URL(elem ...string) string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if len(elem) == 0 {
		return base
	}
	return base + "/" + strings.TrimPrefix(strings.Join(elem, "/"), "/")
}

// loadConfig reads the murmur.cfg file.
// It is not an error if the file does not exist.
func loadConfig(fsys fs.FS) (*Config, error) {
	var cfg Config
	b, err := fs.ReadFile(fsys, configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	err = toml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}
	return &cfg, nil
}
