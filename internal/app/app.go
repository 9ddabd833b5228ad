// Package app drives an interactive session: search, page through results,
// pick a format and an action, and hand off to the player or downloader.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iconidentify/yurei/internal/domain"
)

// Searcher fetches one page of search results.
type Searcher interface {
	Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error)
}

// FormatLister lists the formats of one video.
type FormatLister interface {
	Formats(ctx context.Context, url string) ([]domain.FormatOption, error)
}

// Picker asks the user to choose. A false ok means the user declined.
type Picker interface {
	PickVideo(ctx context.Context, items []domain.SearchResult, page int) (domain.Selection, error)
	PickFormat(ctx context.Context, formats []domain.FormatOption) (domain.FormatOption, bool, error)
	PickAction(ctx context.Context) (domain.Action, bool, error)
}

// ActionRunner starts the chosen action.
type ActionRunner interface {
	Stream(ctx context.Context, url, formatID string) error
	Download(ctx context.Context, url, formatID string, subs bool) error
}

// Options configures an App.
type Options struct {
	// Subtitles embeds auto-generated subtitles in downloads.
	Subtitles bool

	// In supplies the query when none is given. Defaults to os.Stdin.
	In io.Reader

	// Out receives prompts and progress notes. Defaults to os.Stdout.
	Out io.Writer

	// Color enables ANSI styling and the banner.
	Color bool
}

// App is the interactive session.
type App struct {
	searcher Searcher
	formats  FormatLister
	picker   Picker
	runner   ActionRunner
	opts     Options
	style    style
	logger   *slog.Logger
}

// New creates an App.
func New(searcher Searcher, formats FormatLister, picker Picker, runner ActionRunner, opts Options, logger *slog.Logger) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		searcher: searcher,
		formats:  formats,
		picker:   picker,
		runner:   runner,
		opts:     opts,
		style:    style{enabled: opts.Color},
		logger:   logger,
	}
}

// Run executes one session for query, prompting for it when empty.
// Declining at any step and finding nothing both end the session without
// error; only failures of the external tools are returned.
func (a *App) Run(ctx context.Context, query string) error {
	a.style.banner(a.opts.Out)

	if query == "" {
		var err error
		query, err = readQuery(a.opts.In, a.opts.Out, a.style.paint("Search:", sgrBold, sgrGreen))
		if err != nil {
			return err
		}
	}
	if query == "" {
		return nil
	}

	video, ok, err := a.browse(ctx, query)
	if err != nil || !ok {
		return err
	}
	return a.act(ctx, video)
}

// browse pages through results until a video is chosen or the user quits.
func (a *App) browse(ctx context.Context, query string) (domain.SearchResult, bool, error) {
	page := 1
	for {
		a.note("\n" + a.style.paint("Fetching...", sgrYellow, sgrDim))

		results, err := a.searcher.Search(ctx, query, page)
		if err != nil {
			return domain.SearchResult{}, false, fmt.Errorf("search page %d: %w", page, err)
		}

		if len(results) == 0 {
			if page == 1 {
				a.note(a.style.paint("No videos found.", sgrRed))
				return domain.SearchResult{}, false, nil
			}
			// Overshot the last page; go back rather than show an empty list.
			a.logger.Debug("empty page, stepping back", "query", query, "page", page)
			page--
			continue
		}

		sel, err := a.picker.PickVideo(ctx, results, page)
		if err != nil {
			return domain.SearchResult{}, false, fmt.Errorf("pick video: %w", err)
		}

		switch s := sel.(type) {
		case domain.NextPage:
			page++
		case domain.PreviousPage:
			page = max(1, page-1)
		case domain.Quit:
			return domain.SearchResult{}, false, nil
		case domain.ChosenVideo:
			a.logger.Debug("video chosen", "id", s.Video.ID, "title", s.Video.Title)
			return s.Video, true, nil
		default:
			return domain.SearchResult{}, false, fmt.Errorf("%w: %T", domain.ErrUnknownSelection, sel)
		}
	}
}

// act fetches formats for video and runs the chosen action on the chosen format.
func (a *App) act(ctx context.Context, video domain.SearchResult) error {
	url := video.URL()

	a.note("\n" + a.style.paint("Fetching formats...", sgrYellow, sgrDim))
	formats, err := a.formats.Formats(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch formats: %w", err)
	}
	if len(formats) == 0 {
		a.note(a.style.paint("No formats found.", sgrRed))
		return nil
	}

	format, ok, err := a.picker.PickFormat(ctx, formats)
	if err != nil {
		return fmt.Errorf("pick format: %w", err)
	}
	if !ok {
		return nil
	}

	action, ok, err := a.picker.PickAction(ctx)
	if err != nil {
		return fmt.Errorf("pick action: %w", err)
	}
	if !ok {
		return nil
	}

	a.logger.Debug("running action", "action", action, "url", url, "format", format.ID)
	switch action {
	case domain.ActionStream:
		a.note(a.style.paint("Starting MPV...", sgrCyan))
		return a.runner.Stream(ctx, url, format.ID)
	case domain.ActionDownload:
		a.note(a.style.paint("Starting Download...", sgrGreen))
		return a.runner.Download(ctx, url, format.ID, a.opts.Subtitles)
	default:
		return fmt.Errorf("unknown action %v", action)
	}
}

func (a *App) note(msg string) {
	fmt.Fprintln(a.opts.Out, msg)
}
