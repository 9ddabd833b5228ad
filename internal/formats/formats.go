// Package formats lists the playable variants of a single video.
package formats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/iconidentify/yurei/internal/domain"
	"github.com/iconidentify/yurei/internal/process"
)

// Defaults applied when a format entry omits a field.
const (
	DefaultFPS = 30
	DefaultExt = "mp4"
)

// Client queries yt-dlp for a video's formats.
type Client struct {
	runner  process.Runner
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a new format client. path is the yt-dlp executable;
// a zero timeout leaves the call unbounded.
func NewClient(runner process.Runner, path string, timeout time.Duration, logger *slog.Logger) *Client {
	if path == "" {
		path = "yt-dlp"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		runner:  runner,
		path:    path,
		timeout: timeout,
		logger:  logger,
	}
}

// Formats returns the deduplicated video formats of the item at url,
// best first. The document yt-dlp prints must be valid JSON.
func (c *Client) Formats(ctx context.Context, url string) ([]domain.FormatOption, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := c.runner.Output(ctx, process.Command{Name: c.path, Args: []string{"-J", url}})
	if err != nil {
		if !process.IsExit(err) {
			return nil, domain.NewToolError(c.path, "formats", err)
		}
		c.logger.Warn("format query exited non-zero", "url", url, "error", err)
	}

	formats, parseErr := Parse(out)
	if parseErr != nil {
		if err != nil {
			return nil, domain.NewToolError(c.path, "formats", fmt.Errorf("%w (%v)", parseErr, err))
		}
		return nil, domain.NewToolError(c.path, "formats", parseErr)
	}

	c.logger.Debug("formats fetched", "url", url, "count", len(formats))
	return formats, nil
}

type rawInfo struct {
	Formats []json.RawMessage `json:"formats"`
}

// Parse decodes a yt-dlp -J document into format options.
//
// yt-dlp lists formats worst to best, so entries are walked in reverse and
// the first entry seen for each resolution and container is kept: of two
// duplicates, the one later in the source list wins. Audio-only entries
// (vcodec "none" or missing) and entries without a positive height are
// skipped, as is any entry that is not a JSON object. An optional field of
// the wrong type takes its default.
func Parse(data []byte) ([]domain.FormatOption, error) {
	var info rawInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}

	var (
		formats []domain.FormatOption
		seen    = make(map[string]bool)
	)
	for i := len(info.Formats) - 1; i >= 0; i-- {
		// Decoded loosely so a field of the wrong type falls back to its
		// default instead of dropping the entry.
		var raw map[string]any
		if err := json.Unmarshal(info.Formats[i], &raw); err != nil {
			continue
		}

		f, ok := convert(raw)
		if !ok || seen[f.Key()] {
			continue
		}
		seen[f.Key()] = true
		formats = append(formats, f)
	}
	return formats, nil
}

func convert(raw map[string]any) (domain.FormatOption, bool) {
	vcodec := stringField(raw, "vcodec", "none")
	if vcodec == "none" {
		return domain.FormatOption{}, false
	}

	height, ok := raw["height"].(float64)
	if !ok || height < 1 {
		return domain.FormatOption{}, false
	}

	f := domain.FormatOption{
		Resolution: fmt.Sprintf("%dp", int(height)),
		Ext:        stringField(raw, "ext", DefaultExt),
		FPS:        DefaultFPS,
		ID:         stringField(raw, "format_id", ""),
		VideoCodec: vcodec,
	}
	if fps, ok := raw["fps"].(float64); ok {
		f.FPS = int(math.Round(fps))
	}
	return f, true
}

func stringField(rec map[string]any, key, fallback string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return fallback
}
