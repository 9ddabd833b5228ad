// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"
	"io"
	"sync"

	"github.com/iconidentify/yurei/internal/process"
)

// Fake is a process.Runner that returns canned results and records every command.
// It never spawns a process.
type Fake struct {
	mu sync.Mutex

	// Respond produces the result for a command. Nil returns empty output.
	Respond func(cmd process.Command, stdin string) ([]byte, error)

	Calls  []process.Command
	Inputs []string
}

// Output implements process.Runner.
func (f *Fake) Output(_ context.Context, cmd process.Command) ([]byte, error) {
	stdin := f.record(cmd)
	if f.Respond == nil {
		return nil, nil
	}
	return f.Respond(cmd, stdin)
}

// Attach implements process.Runner.
func (f *Fake) Attach(_ context.Context, cmd process.Command) error {
	stdin := f.record(cmd)
	if f.Respond == nil {
		return nil
	}
	_, err := f.Respond(cmd, stdin)
	return err
}

// Last returns the most recent command, or the zero Command.
func (f *Fake) Last() process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return process.Command{}
	}
	return f.Calls[len(f.Calls)-1]
}

func (f *Fake) record(cmd process.Command) string {
	var stdin string
	if cmd.Stdin != nil {
		data, _ := io.ReadAll(cmd.Stdin)
		stdin = string(data)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmd)
	f.Inputs = append(f.Inputs, stdin)
	return stdin
}
