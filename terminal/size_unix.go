//go:build unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func enableVirtualTerminal() error { return nil }

func getWindowSize() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}
