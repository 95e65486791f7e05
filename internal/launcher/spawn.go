package launcher

import (
	"context"
	"fmt"
	"os/exec"
)

// ExecSpawner starts real processes detached from the current session.
type ExecSpawner struct{}

// Spawn starts inv and releases the process. The context only guards the
// start; cancelling it later does not affect the game.
func (ExecSpawner) Spawn(ctx context.Context, inv Invocation) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd := exec.Command(inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", inv.Path, err)
	}
	pid := cmd.Process.Pid
	_ = cmd.Process.Release()
	return pid, nil
}

// CommandOpener opens URLs by running Name with Args followed by the URL.
type CommandOpener struct {
	Name string
	Args []string
}

// ParseOpener splits a configured opener command line on whitespace.
func ParseOpener(command string) (CommandOpener, error) {
	fields := splitFields(command)
	if len(fields) == 0 {
		return CommandOpener{}, fmt.Errorf("opener command is empty")
	}
	return CommandOpener{Name: fields[0], Args: fields[1:]}, nil
}

func (o CommandOpener) Open(ctx context.Context, url string) error {
	args := append(append([]string(nil), o.Args...), url)
	_, err := ExecSpawner{}.Spawn(ctx, Invocation{Path: o.Name, Args: args})
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
