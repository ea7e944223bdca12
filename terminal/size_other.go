//go:build !unix && !windows

package terminal

import (
	"os"

	"golang.org/x/term"
)

func enableVirtualTerminal() error { return nil }

func getWindowSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
