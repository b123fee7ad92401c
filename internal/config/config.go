package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"dschema/internal/domain"
)

// EnvPrefix is stripped from environment variables before they map onto keys,
// e.g. DSCHEMA_SERVICE_BASEURL -> service.baseurl
const EnvPrefix = "DSCHEMA_"

// ErrEmptyPath is returned by Save when no target path is given
var ErrEmptyPath = errors.New("config path is empty")

// Config represents the application configuration
type Config struct {
	Service   Service   `koanf:"service" toml:"service"`
	Log       Log       `koanf:"log" toml:"log"`
	Clipboard Clipboard `koanf:"clipboard" toml:"clipboard"`
	Metrics   Metrics   `koanf:"metrics" toml:"metrics"`
	Mock      Mock      `koanf:"mock" toml:"mock"`
	Selection Selection `koanf:"selection" toml:"selection"`
}

// Service configures the URL-generation backend
type Service struct {
	BaseURL string `koanf:"baseurl" toml:"baseurl"`
	Timeout string `koanf:"timeout" toml:"timeout"`
}

type Log struct {
	Level string `koanf:"level" toml:"level"`
	File  string `koanf:"file" toml:"file"`
}

type Clipboard struct {
	OSC52 bool `koanf:"osc52" toml:"osc52"`
}

// Metrics configures the optional prometheus listener; empty Listen disables it
type Metrics struct {
	Listen string `koanf:"listen" toml:"listen"`
}

// Mock configures the development URL-generation server
type Mock struct {
	Listen   string `koanf:"listen" toml:"listen"`
	FeedBase string `koanf:"feedbase" toml:"feedbase"`
}

// Selection holds the starting course selection
type Selection struct {
	Courses []string `koanf:"courses" toml:"courses"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Service: Service{
			BaseURL: "http://localhost:8080",
			Timeout: "15s",
		},
		Log: Log{
			Level: "info",
		},
		Clipboard: Clipboard{
			OSC52: true,
		},
		Mock: Mock{
			Listen:   "127.0.0.1:8080",
			FeedBase: "https://cal.example/feed/",
		},
		Selection: Selection{
			Courses: domain.DefaultCourseValues(),
		},
	}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dschema", "config.toml")
}

// Load layers defaults, the TOML file at path (if present) and DSCHEMA_*
// environment variables, in that order
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), tomlParser{}); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Infof("Loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			if k == "selection.courses" {
				return k, splitList(v)
			}
			return k, v
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed in the types
func (c Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("service.baseurl must be an absolute http(s) URL, got %q", c.Service.BaseURL)
	}
	if _, err := c.Service.RequestTimeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := domain.CoursesByValue(c.Selection.Courses); err != nil {
		return fmt.Errorf("selection.courses: %w", err)
	}
	return nil
}

// RequestTimeout parses the configured timeout
func (s Service) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("service.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("service.timeout must be positive, got %s", s.Timeout)
	}
	return d, nil
}

// Save writes cfg as TOML via a temp file and rename, so a crash never leaves
// a half-written config behind
func Save(path string, cfg Config) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dschema-config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// tomlParser adapts go-toml/v2 to koanf's Parser interface
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	out := map[string]any{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	return toml.Marshal(m)
}
