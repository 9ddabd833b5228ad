// Package discovery searches for videos through yt-dlp.
package discovery

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/iconidentify/yurei/internal/domain"
	"github.com/iconidentify/yurei/internal/process"
)

// DefaultPageSize is the number of results shown per page.
const DefaultPageSize = 10

// Placeholders used when a record lacks a field.
const (
	UnknownTitle    = "?"
	UnknownChannel  = "Unknown"
	UnknownDuration = "??:??"
)

// Client runs yt-dlp searches.
type Client struct {
	runner   process.Runner
	path     string
	pageSize int
	timeout  time.Duration
	logger   *slog.Logger
}

// Config holds Client settings.
type Config struct {
	Path     string        // yt-dlp executable
	PageSize int           // results per page, DefaultPageSize when zero
	Timeout  time.Duration // per search, unbounded when zero
}

// NewClient creates a new search client.
func NewClient(runner process.Runner, cfg Config, logger *slog.Logger) *Client {
	if cfg.Path == "" {
		cfg.Path = "yt-dlp"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		runner:   runner,
		path:     cfg.Path,
		pageSize: cfg.PageSize,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Window is the slice of the ranked result list covering one page.
type Window struct {
	Limit int // total results requested from the search
	Start int // first index, 1-based inclusive
	End   int // last index, inclusive
}

// PageWindow returns the window for page (1-based). Pages below 1 are treated as 1.
func PageWindow(page, pageSize int) Window {
	if page < 1 {
		page = 1
	}
	return Window{
		Limit: page * pageSize,
		Start: (page-1)*pageSize + 1,
		End:   page * pageSize,
	}
}

// Args returns the yt-dlp arguments that fetch one page of results for query.
func Args(query string, w Window) []string {
	return []string{
		fmt.Sprintf("ytsearch%d:%s", w.Limit, query),
		"--dump-json",
		"--flat-playlist",
		"--no-warnings",
		"--playlist-start", strconv.Itoa(w.Start),
		"--playlist-end", strconv.Itoa(w.End),
	}
}

// Search returns one page of results for query. A failing or silent yt-dlp
// run yields an empty page; only a failure to start the tool is an error.
func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	w := PageWindow(page, c.pageSize)
	out, err := c.runner.Output(ctx, process.Command{Name: c.path, Args: Args(query, w)})
	if err != nil {
		if !process.IsExit(err) {
			return nil, domain.NewToolError(c.path, "search", err)
		}
		c.logger.Debug("search exited non-zero", "query", query, "page", page, "error", err)
	}

	results := ParseResults(out)
	c.logger.Debug("search complete", "query", query, "page", page, "start", w.Start, "end", w.End, "results", len(results))
	return results, nil
}

// ParseResults decodes newline-delimited JSON records. Lines that do not
// parse, or that carry no id, are skipped.
func ParseResults(data []byte) []domain.SearchResult {
	var results []domain.SearchResult

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if r, ok := parseLine(scanner.Bytes()); ok {
			results = append(results, r)
		}
	}
	return results
}

func parseLine(line []byte) (domain.SearchResult, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return domain.SearchResult{}, false
	}

	// Decoded loosely so a field of the wrong type falls back to its
	// placeholder instead of dropping the record.
	var rec map[string]any
	if err := json.Unmarshal(line, &rec); err != nil {
		return domain.SearchResult{}, false
	}
	id := stringField(rec, "id", "")
	if id == "" {
		return domain.SearchResult{}, false
	}

	return domain.NewSearchResult(
		domain.VideoID(id),
		stringField(rec, "title", UnknownTitle),
		stringField(rec, "uploader", UnknownChannel),
		stringField(rec, "duration_string", UnknownDuration),
	), true
}

func stringField(rec map[string]any, key, fallback string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return fallback
}
