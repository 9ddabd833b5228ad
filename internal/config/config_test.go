package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	if cfg.Search.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Search.PageSize)
	}
	if cfg.Tools.Ytdlp != "yt-dlp" {
		t.Errorf("Ytdlp = %q, want %q", cfg.Tools.Ytdlp, "yt-dlp")
	}
	if cfg.Download.SubLangs != "en,id" {
		t.Errorf("SubLangs = %q, want %q", cfg.Download.SubLangs, "en,id")
	}
	if cfg.Picker.Backend != PickerFZF {
		t.Errorf("Backend = %q, want %q", cfg.Picker.Backend, PickerFZF)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"list backend", func(c *Config) { c.Picker.Backend = PickerList; c.Tools.Fzf = "" }, false},
		{"unknown backend", func(c *Config) { c.Picker.Backend = "dmenu" }, true},
		{"fzf backend without fzf", func(c *Config) { c.Tools.Fzf = "" }, true},
		{"zero page size", func(c *Config) { c.Search.PageSize = 0 }, true},
		{"negative timeout", func(c *Config) { c.Search.FetchTimeout = -time.Second }, true},
		{"empty yt-dlp", func(c *Config) { c.Tools.Ytdlp = "" }, true},
		{"bad preview size", func(c *Config) { c.Picker.PreviewSize = "wide" }, true},
		{"good preview size", func(c *Config) { c.Picker.PreviewSize = "80x40" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"debug log level", func(c *Config) { c.Log.Level = "debug" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestParsePreviewSize(t *testing.T) {
	tests := []struct {
		in      string
		cols    int
		rows    int
		wantErr bool
	}{
		{"60x30", 60, 30, false},
		{"120X48", 120, 48, false},
		{"60", 0, 0, true},
		{"0x30", 0, 0, true},
		{"60x-1", 0, 0, true},
		{"axb", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cols, rows, err := ParsePreviewSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreviewSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if cols != tt.cols || rows != tt.rows {
				t.Errorf("ParsePreviewSize(%q) = %dx%d, want %dx%d", tt.in, cols, rows, tt.cols, tt.rows)
			}
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	level, err := LogConfig{Level: "debug"}.SlogLevel()
	if err != nil {
		t.Fatalf("SlogLevel() error = %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want %v", level, slog.LevelDebug)
	}
}

func TestByteSize_Decode(t *testing.T) {
	var b ByteSize
	if err := b.Decode("2 MB"); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b != 2_000_000 {
		t.Errorf("Decode(\"2 MB\") = %d, want 2000000", b)
	}
	if b.String() != "2.0 MB" {
		t.Errorf("String() = %q, want %q", b.String(), "2.0 MB")
	}
	if err := b.Decode("lots"); err == nil {
		t.Error("Decode(\"lots\") should fail")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Search.PageSize)
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tools:
  mpv: "/opt/mpv/bin/mpv"
search:
  page_size: 20
  fetch_timeout: 30s
picker:
  backend: list
download:
  dir: "/tmp/videos"
  min_free_space: 500MB
log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Tools.Mpv != "/opt/mpv/bin/mpv" {
		t.Errorf("Mpv = %q, want %q", cfg.Tools.Mpv, "/opt/mpv/bin/mpv")
	}
	if cfg.Tools.Ytdlp != "yt-dlp" {
		t.Errorf("Ytdlp = %q, want default to survive", cfg.Tools.Ytdlp)
	}
	if cfg.Search.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", cfg.Search.PageSize)
	}
	if cfg.Search.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.Search.FetchTimeout)
	}
	if cfg.Picker.Backend != PickerList {
		t.Errorf("Backend = %q, want %q", cfg.Picker.Backend, PickerList)
	}
	if cfg.Download.MinFreeSpace != 500_000_000 {
		t.Errorf("MinFreeSpace = %d, want 500000000", cfg.Download.MinFreeSpace)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
search:
  page_size: 20
download:
  sub_langs: "en"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("YUREI_PAGE_SIZE", "5")
	t.Setenv("YUREI_MIN_FREE_SPACE", "2GB")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Search.PageSize != 5 {
		t.Errorf("PageSize should be from env, got %d", cfg.Search.PageSize)
	}
	if cfg.Download.SubLangs != "en" {
		t.Errorf("SubLangs should be from YAML, got %q", cfg.Download.SubLangs)
	}
	if cfg.Download.MinFreeSpace != 2_000_000_000 {
		t.Errorf("MinFreeSpace = %d, want 2000000000", cfg.Download.MinFreeSpace)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
search:
  page_size: "ten
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load should fail for nonexistent file")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("YUREI_PICKER", "rofi")

	if _, err := Load(""); err == nil {
		t.Error("Load should fail validation for unknown picker")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("YUREI_PAGE_SIZE", "many")

	if _, err := Load(""); err == nil {
		t.Error("Load should fail for non-numeric page size")
	}
}
