// Package process runs the external tools the CLI delegates to.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/iconidentify/yurei/internal/domain"
)

// maxStderrTail bounds how much captured stderr is kept on an ExitError.
const maxStderrTail = 2048

// Command describes one invocation of an external tool.
type Command struct {
	Name string
	Args []string

	// Stdin is fed to the process and closed once fully written. Nil means no input.
	Stdin io.Reader

	// Stderr receives the process's stderr. Nil captures it for error reporting.
	Stderr io.Writer
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands.
type Runner interface {
	// Output runs the command to completion and returns what it wrote to stdout.
	// A non-zero exit returns the captured stdout together with an *ExitError.
	Output(ctx context.Context, cmd Command) ([]byte, error)

	// Attach runs the command in the foreground with the terminal's stdio.
	// A non-zero exit returns an *ExitError.
	Attach(ctx context.Context, cmd Command) error
}

// ExitError reports a tool that started but exited with a non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// IsExit reports whether err is (or wraps) an *ExitError.
func IsExit(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// Exec is the Runner backed by os/exec.
type Exec struct {
	logger *slog.Logger
}

// NewExec creates a Runner that spawns real processes.
func NewExec(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{logger: logger}
}

// Output implements Runner.
func (e *Exec) Output(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	// exec copies Stdin on its own goroutine, closes the pipe when the
	// reader is drained and reaps everything in Wait, even on failure.
	cmd.Stdin = c.Stdin
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	e.logger.Debug("running command", "command", c.String())

	err := cmd.Run()
	return stdout.Bytes(), e.classify(ctx, c.Name, err, stderr.String())
}

// Attach implements Runner.
func (e *Exec) Attach(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if c.Stdin != nil {
		cmd.Stdin = c.Stdin
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	e.logger.Debug("attaching command", "command", c.String())

	return e.classify(ctx, c.Name, cmd.Run(), "")
}

func (e *Exec) classify(ctx context.Context, name string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Name:   name,
			Code:   exitErr.ExitCode(),
			Stderr: tail(strings.TrimSpace(stderr), maxStderrTail),
		}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return domain.NewToolError(name, "start", fmt.Errorf("%w: %v", domain.ErrToolNotFound, err))
	}
	return domain.NewToolError(name, "start", err)
}

// Require checks that every named tool can be found on PATH.
func Require(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return domain.NewToolError(name, "lookup", fmt.Errorf("%w: %v", domain.ErrToolNotFound, err))
		}
	}
	return nil
}

func tail(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen:]
}
