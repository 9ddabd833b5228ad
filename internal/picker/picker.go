// Package picker asks the user to choose among rows of text: search
// results, formats and actions.
package picker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iconidentify/yurei/internal/domain"
)

// Options configures one pick.
type Options struct {
	Header string

	// Columns lists the visible columns, 1-based. Empty shows whole rows.
	Columns []int

	// Height is the picker height, e.g. "40%". Empty uses the full screen.
	Height string

	// Preview is a shell command run for the highlighted row. {N} expands to column N.
	Preview       string
	PreviewWindow string

	Ansi    bool
	Pointer string
}

// Chooser shows rows and returns the one picked, or "" when the user
// cancelled. Errors mean the chooser itself could not run.
type Chooser interface {
	Choose(ctx context.Context, rows []string, opts Options) (string, error)
}

// Picker renders domain values into rows for a Chooser and maps the
// picked row back.
type Picker struct {
	chooser Chooser
	preview string
	logger  *slog.Logger
}

// New creates a Picker. preview is the thumbnail preview command for the
// video picker and may be empty.
func New(chooser Chooser, preview string, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{
		chooser: chooser,
		preview: preview,
		logger:  logger,
	}
}

// PickVideo shows a page of results with navigation rows.
func (p *Picker) PickVideo(ctx context.Context, items []domain.SearchResult, page int) (domain.Selection, error) {
	for _, v := range items {
		if IsSentinel(v.ID.String()) {
			p.logger.Warn("result id collides with a navigation row and cannot be picked", "id", v.ID, "title", v.Title)
		}
	}

	opts := Options{
		Header:  pageHeader(page),
		Columns: []int{1, 2, 3},
		Height:  "100%",
		Ansi:    true,
		Pointer: "▶",
	}
	if p.preview != "" {
		opts.Preview = p.preview
		opts.PreviewWindow = "right:60%"
	}

	line, err := p.chooser.Choose(ctx, VideoRows(items, page), opts)
	if err != nil {
		return nil, err
	}
	return ParseVideoSelection(line, items), nil
}

// PickFormat shows the format list. ok is false when nothing usable was picked.
func (p *Picker) PickFormat(ctx context.Context, formats []domain.FormatOption) (f domain.FormatOption, ok bool, err error) {
	line, err := p.chooser.Choose(ctx, FormatRows(formats), Options{
		Header:  "Select Resolution",
		Columns: []int{1, 2, 3, 4},
		Height:  "40%",
	})
	if err != nil {
		return domain.FormatOption{}, false, err
	}
	f, ok = ParseFormatSelection(line, formats)
	return f, ok, nil
}

// PickAction asks whether to stream or download.
func (p *Picker) PickAction(ctx context.Context) (domain.Action, bool, error) {
	line, err := p.chooser.Choose(ctx, ActionRows(), Options{
		Header: "Action",
		Height: "20%",
	})
	if err != nil {
		return 0, false, err
	}
	a, ok := ParseAction(line)
	return a, ok, nil
}

func pageHeader(page int) string {
	return fmt.Sprintf("Page %d (Enhanced Preview)", page)
}
