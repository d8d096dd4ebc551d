package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown config format")

// IsRemote reports whether src must be fetched with go-getter rather than
// read from the local filesystem.
func IsRemote(src string) bool {
	return strings.Contains(src, "::") || strings.Contains(src, "://")
}

// Load reads the config at src into cfg. Fields missing from the file keep
// their current values. src may be a local path or any go-getter source,
// e.g. "https://example.com/caves/deep.toml" or "git::https://host/repo.git//caves/deep.yaml".
func Load(ctx context.Context, src string, cfg *Config) error {
	p := src
	if IsRemote(src) {
		dir, err := os.MkdirTemp("", "cavegen-config-")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)

		p = filepath.Join(dir, remoteName(src))
		if err := getter.GetFile(p, src, getter.WithContext(ctx)); err != nil {
			return fmt.Errorf("fetch config %s: %w", src, err)
		}
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, filepath.Ext(p), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", src, err)
	}
	return nil
}

// Decode unmarshals data into cfg according to the file extension ext.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
}

// remoteName picks a local file name for a go-getter source, keeping its extension.
func remoteName(src string) string {
	if _, rest, ok := strings.Cut(src, "::"); ok {
		src = rest
	}
	// go-getter subdirectory marker
	if i := strings.LastIndex(src, "//"); i > strings.Index(src, "://")+2 {
		src = src[:i] + "/" + src[i+2:]
	}
	u, err := url.Parse(src)
	if err != nil || path.Ext(u.Path) == "" {
		return "config.json"
	}
	return path.Base(u.Path)
}
