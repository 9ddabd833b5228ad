// Package config loads the CLI configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Picker backends.
const (
	PickerFZF  = "fzf"
	PickerList = "list"
)

// PathEnv names the environment variable holding the optional config file path.
const PathEnv = "YUREI_CONFIG"

// Config holds all application configuration.
type Config struct {
	Tools    ToolsConfig    `yaml:"tools"`
	Search   SearchConfig   `yaml:"search"`
	Picker   PickerConfig   `yaml:"picker"`
	Download DownloadConfig `yaml:"download"`
	Log      LogConfig      `yaml:"log"`
}

// ToolsConfig holds the executables the CLI delegates to.
type ToolsConfig struct {
	Ytdlp string `yaml:"ytdlp" envconfig:"YUREI_YTDLP_PATH"`
	Mpv   string `yaml:"mpv" envconfig:"YUREI_MPV_PATH"`
	Fzf   string `yaml:"fzf" envconfig:"YUREI_FZF_PATH"`
	Curl  string `yaml:"curl" envconfig:"YUREI_CURL_PATH"`
	Chafa string `yaml:"chafa" envconfig:"YUREI_CHAFA_PATH"`
}

// SearchConfig holds discovery settings.
type SearchConfig struct {
	PageSize int `yaml:"page_size" envconfig:"YUREI_PAGE_SIZE"`

	// FetchTimeout bounds a single discovery or format call. Interactive tools are not bounded.
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"YUREI_FETCH_TIMEOUT"`
}

// PickerConfig holds interactive picker settings.
type PickerConfig struct {
	Backend string `yaml:"backend" envconfig:"YUREI_PICKER"`

	// PreviewSize is the thumbnail size as COLSxROWS. Empty sizes it from the terminal.
	PreviewSize string `yaml:"preview_size" envconfig:"YUREI_PREVIEW_SIZE"`
}

// DownloadConfig holds downloader settings.
type DownloadConfig struct {
	Dir          string   `yaml:"dir" envconfig:"YUREI_DOWNLOAD_DIR"`
	SubLangs     string   `yaml:"sub_langs" envconfig:"YUREI_SUB_LANGS"`
	MinFreeSpace ByteSize `yaml:"min_free_space" envconfig:"YUREI_MIN_FREE_SPACE"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"YUREI_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"YUREI_LOG_FORMAT"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			Ytdlp: "yt-dlp",
			Mpv:   "mpv",
			Fzf:   "fzf",
			Curl:  "curl",
			Chafa: "chafa",
		},
		Search: SearchConfig{
			PageSize:     10,
			FetchTimeout: 2 * time.Minute,
		},
		Picker: PickerConfig{
			Backend: PickerFZF,
		},
		Download: DownloadConfig{
			SubLangs:     "en,id",
			MinFreeSpace: ByteSize(1 * humanize.GByte),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values, which override defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Tools.Ytdlp == "" {
		return fmt.Errorf("YUREI_YTDLP_PATH must not be empty")
	}
	if c.Search.PageSize < 1 {
		return fmt.Errorf("YUREI_PAGE_SIZE must be at least 1, got %d", c.Search.PageSize)
	}
	if c.Search.FetchTimeout < 0 {
		return fmt.Errorf("YUREI_FETCH_TIMEOUT must not be negative")
	}

	switch c.Picker.Backend {
	case PickerFZF:
		if c.Tools.Fzf == "" {
			return fmt.Errorf("YUREI_FZF_PATH must not be empty")
		}
	case PickerList:
	default:
		return fmt.Errorf("YUREI_PICKER must be %q or %q, got %q", PickerFZF, PickerList, c.Picker.Backend)
	}

	if c.Picker.PreviewSize != "" {
		if _, _, err := ParsePreviewSize(c.Picker.PreviewSize); err != nil {
			return err
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("YUREI_LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses the configured level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("YUREI_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// ParsePreviewSize splits a COLSxROWS size.
func ParsePreviewSize(s string) (cols, rows int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("preview size %q: want COLSxROWS", s)
	}
	cols, err = strconv.Atoi(w)
	if err != nil || cols < 1 {
		return 0, 0, fmt.Errorf("preview size %q: invalid columns", s)
	}
	rows, err = strconv.Atoi(h)
	if err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("preview size %q: invalid rows", s)
	}
	return cols, rows, nil
}

// ByteSize is a size in bytes written in human form, e.g. "1GB" or "500 MiB".
type ByteSize uint64

// Decode implements envconfig.Decoder.
func (b *ByteSize) Decode(value string) error {
	n, err := humanize.ParseBytes(value)
	if err != nil {
		return fmt.Errorf("parse size %q: %w", value, err)
	}
	*b = ByteSize(n)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	return b.Decode(node.Value)
}

func (b ByteSize) String() string {
	return humanize.Bytes(uint64(b))
}
