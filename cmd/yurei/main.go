// Command yurei searches YouTube from the terminal and streams or downloads
// the chosen video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/iconidentify/yurei/internal/app"
	"github.com/iconidentify/yurei/internal/config"
	"github.com/iconidentify/yurei/internal/discovery"
	"github.com/iconidentify/yurei/internal/formats"
	"github.com/iconidentify/yurei/internal/picker"
	"github.com/iconidentify/yurei/internal/process"
	"github.com/iconidentify/yurei/internal/runner"
)

const usage = `Usage: yurei [-s] [query...]

Search YouTube, pick a video and a format, then stream it with mpv or
download it with yt-dlp. Without a query you are prompted for one.

  -s, -sub, --sub   embed auto-generated subtitles when downloading

Configuration is read from the environment (YUREI_*) and, if set, the YAML
file named by YUREI_CONFIG.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	query, subs, err := parseArgs(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg, err := config.Load(os.Getenv(config.PathEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tools := []string{cfg.Tools.Ytdlp}
	if cfg.Picker.Backend == config.PickerFZF {
		tools = append(tools, cfg.Tools.Fzf)
	}
	if err := process.Require(tools...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	session, err := newSession(cfg, subs, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Debug("starting session", "query", query, "subtitles", subs, "picker", cfg.Picker.Backend)
	if err := session.Run(ctx, query); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		logger.Error("session failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs joins the positional words into the query. The subtitle flag
// may appear anywhere among them; everything after "--" is query text.
func parseArgs(args []string, stderr io.Writer) (query string, subs bool, err error) {
	fs := flag.NewFlagSet("yurei", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	fs.BoolVar(&subs, "s", false, "embed auto-generated subtitles when downloading")
	fs.BoolVar(&subs, "sub", false, "embed auto-generated subtitles when downloading")

	var words []string
	for {
		if err := fs.Parse(args); err != nil {
			return "", false, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			words = append(words, rest...)
			break
		}
		words = append(words, rest[0])
		args = rest[1:]
	}
	return strings.TrimSpace(strings.Join(words, " ")), subs, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("session", uuid.NewString()), nil
}

// newSession wires the collaborators for one run.
func newSession(cfg *config.Config, subs bool, logger *slog.Logger) (*app.App, error) {
	proc := process.NewExec(logger)

	searcher := discovery.NewClient(proc, discovery.Config{
		Path:     cfg.Tools.Ytdlp,
		PageSize: cfg.Search.PageSize,
		Timeout:  cfg.Search.FetchTimeout,
	}, logger)
	lister := formats.NewClient(proc, cfg.Tools.Ytdlp, cfg.Search.FetchTimeout, logger)

	var (
		chooser picker.Chooser
		preview string
	)
	switch cfg.Picker.Backend {
	case config.PickerList:
		chooser = picker.NewList()
	default:
		chooser = picker.NewFZF(proc, cfg.Tools.Fzf, logger)
		cols, rows, err := previewSize(cfg.Picker.PreviewSize)
		if err != nil {
			return nil, err
		}
		preview = picker.PreviewCommand(cfg.Tools.Curl, cfg.Tools.Chafa, cols, rows)
	}

	actions := runner.New(proc, runner.Config{
		Ytdlp:        cfg.Tools.Ytdlp,
		Mpv:          cfg.Tools.Mpv,
		DownloadDir:  cfg.Download.Dir,
		SubLangs:     cfg.Download.SubLangs,
		MinFreeSpace: uint64(cfg.Download.MinFreeSpace),
	}, os.Stdout, logger)

	return app.New(searcher, lister, picker.New(chooser, preview, logger), actions, app.Options{
		Subtitles: subs,
		In:        os.Stdin,
		Out:       os.Stdout,
		Color:     term.IsTerminal(int(os.Stdout.Fd())),
	}, logger), nil
}

func previewSize(configured string) (cols, rows int, err error) {
	if configured != "" {
		return config.ParsePreviewSize(configured)
	}
	cols, rows = picker.PreviewSize(int(os.Stdout.Fd()))
	return cols, rows, nil
}
