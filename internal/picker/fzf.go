package picker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/iconidentify/yurei/internal/domain"
	"github.com/iconidentify/yurei/internal/process"
)

// fzf exit statuses that mean the user closed the picker without choosing.
// Any other non-zero status (2 is fzf's own error status) is a failure.
const (
	fzfNoMatch     = 1
	fzfInterrupted = 130
)

// FZF is a Chooser backed by the fzf command.
type FZF struct {
	runner process.Runner
	path   string
	logger *slog.Logger
}

// NewFZF creates a Chooser that runs the fzf executable at path.
func NewFZF(runner process.Runner, path string, logger *slog.Logger) *FZF {
	if path == "" {
		path = "fzf"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FZF{
		runner: runner,
		path:   path,
		logger: logger,
	}
}

// Choose implements Chooser. Rows go to fzf's stdin; the picked row comes
// back on stdout. fzf draws on the terminal itself, so its stderr is passed
// through.
func (f *FZF) Choose(ctx context.Context, rows []string, opts Options) (string, error) {
	input := strings.Join(rows, "\n") + "\n"

	out, err := f.runner.Output(ctx, process.Command{
		Name:   f.path,
		Args:   Args(opts),
		Stdin:  strings.NewReader(input),
		Stderr: os.Stderr,
	})
	if err != nil {
		var exitErr *process.ExitError
		if !errors.As(err, &exitErr) {
			return "", domain.NewToolError(f.path, "pick", err)
		}
		if exitErr.Code != fzfNoMatch && exitErr.Code != fzfInterrupted {
			return "", domain.NewToolError(f.path, "pick", err)
		}
		f.logger.Debug("picker closed without a selection", "header", opts.Header, "code", exitErr.Code)
	}

	return firstLine(string(out)), nil
}

// Args translates Options into fzf flags.
func Args(opts Options) []string {
	var args []string
	if opts.Ansi {
		args = append(args, "--ansi")
	}
	if len(opts.Columns) > 0 {
		args = append(args, "--delimiter", Delimiter, "--with-nth", joinColumns(opts.Columns))
	}
	if opts.Header != "" {
		args = append(args, "--header", opts.Header)
	}
	args = append(args, "--layout", "reverse")
	if opts.Height != "" {
		args = append(args, "--height", opts.Height)
	}
	args = append(args, "--cycle")
	if opts.Preview != "" {
		args = append(args, "--preview", opts.Preview)
		if opts.PreviewWindow != "" {
			args = append(args, "--preview-window", opts.PreviewWindow)
		}
	}
	if opts.Pointer != "" {
		args = append(args, "--pointer", opts.Pointer)
	}
	return args
}

func joinColumns(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r")
}
