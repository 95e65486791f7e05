//go:build windows

package launcher

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows"
)

type shellExecuteOpener struct{}

// PlatformOpener returns the ShellExecute-based URL handler.
func PlatformOpener() Opener {
	return shellExecuteOpener{}
}

func (shellExecuteOpener) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	target, err := windows.UTF16PtrFromString(url)
	if err != nil {
		return fmt.Errorf("encode %s: %w", url, err)
	}
	if err := windows.ShellExecute(0, verb, target, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("ShellExecute %s: %w", url, err)
	}
	return nil
}
