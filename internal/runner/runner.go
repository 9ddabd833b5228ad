// Package runner hands the chosen format to the external player or downloader.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/iconidentify/yurei/internal/domain"
	"github.com/iconidentify/yurei/internal/process"
)

// Config holds the player and downloader settings.
type Config struct {
	Ytdlp        string // downloader executable, also handed to the player
	Mpv          string // player executable
	DownloadDir  string // empty leaves the downloader's default (working directory)
	SubLangs     string // comma separated subtitle languages
	MinFreeSpace uint64 // warn before downloading when less is free, 0 disables
}

// Runner starts streams and downloads in the foreground.
type Runner struct {
	proc   process.Runner
	cfg    Config
	out    io.Writer
	logger *slog.Logger

	freeSpace func(path string) (uint64, error)
}

// New creates a Runner. Free-space warnings are written to out.
func New(proc process.Runner, cfg Config, out io.Writer, logger *slog.Logger) *Runner {
	if cfg.Ytdlp == "" {
		cfg.Ytdlp = "yt-dlp"
	}
	if cfg.Mpv == "" {
		cfg.Mpv = "mpv"
	}
	if cfg.SubLangs == "" {
		cfg.SubLangs = "en,id"
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		proc:      proc,
		cfg:       cfg,
		out:       out,
		logger:    logger,
		freeSpace: freeDiskSpace,
	}
}

// Stream plays url in the player at formatID. The player's exit status is
// not interpreted; it reports its own problems on the terminal.
func (r *Runner) Stream(ctx context.Context, url, formatID string) error {
	return r.attach(ctx, "stream", process.Command{Name: r.cfg.Mpv, Args: r.StreamArgs(url, formatID)})
}

// Download saves url at formatID, optionally embedding auto-generated subtitles.
func (r *Runner) Download(ctx context.Context, url, formatID string, subs bool) error {
	r.checkFreeSpace()
	return r.attach(ctx, "download", process.Command{Name: r.cfg.Ytdlp, Args: r.DownloadArgs(url, formatID, subs)})
}

// StreamArgs returns the player arguments.
func (r *Runner) StreamArgs(url, formatID string) []string {
	args := []string{"--ytdl-format=" + domain.FormatSelector(formatID)}
	if r.cfg.Ytdlp != "yt-dlp" {
		args = append(args, "--script-opts=ytdl_hook-ytdl_path="+r.cfg.Ytdlp)
	}
	return append(args, url)
}

// DownloadArgs returns the downloader arguments.
func (r *Runner) DownloadArgs(url, formatID string, subs bool) []string {
	args := []string{"-f", domain.FormatSelector(formatID), "--no-mtime", "--progress"}
	if r.cfg.DownloadDir != "" {
		args = append(args, "-P", r.cfg.DownloadDir)
	}
	args = append(args, url)
	if subs {
		args = append(args, "--write-auto-subs", "--sub-lang", r.cfg.SubLangs, "--embed-subs")
	}
	return args
}

func (r *Runner) attach(ctx context.Context, op string, cmd process.Command) error {
	err := r.proc.Attach(ctx, cmd)
	if err == nil {
		return nil
	}
	if process.IsExit(err) {
		r.logger.Info(op+" tool exited non-zero", "error", err)
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	return domain.NewToolError(cmd.Name, op, err)
}

func (r *Runner) checkFreeSpace() {
	if r.cfg.MinFreeSpace == 0 {
		return
	}

	dir := r.cfg.DownloadDir
	if dir == "" {
		dir = "."
	}
	free, err := r.freeSpace(dir)
	if err != nil {
		r.logger.Debug("free space check failed", "dir", dir, "error", err)
		return
	}
	if free < r.cfg.MinFreeSpace {
		fmt.Fprintf(r.out, "Warning: only %s free in %s\n", humanize.Bytes(free), dir)
	}
}
