//go:build windows

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// enableVirtualTerminal lets the console interpret the ANSI color codes
// written by the editor.
func enableVirtualTerminal() error {
	outHandle := windows.Handle(os.Stdout.Fd())
	if outHandle == windows.InvalidHandle {
		return fmt.Errorf("invalid stdout handle")
	}

	var outMode uint32
	if err := windows.GetConsoleMode(outHandle, &outMode); err != nil {
		return fmt.Errorf("failed to get stdout console mode: %w", err)
	}
	if err := windows.SetConsoleMode(outHandle, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return fmt.Errorf("failed to set stdout console mode: %w", err)
	}
	return nil
}

func getWindowSize() (width, height int, err error) {
	handle, err := windows.CreateFile(
		windows.StringToUTF16Ptr("CONOUT$"),
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get CONOUT$: %w", err)
	}
	defer windows.CloseHandle(handle)

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &info); err != nil {
		return 0, 0, fmt.Errorf("failed to get console screen buffer info: %w", err)
	}
	width = int(info.Window.Right - info.Window.Left + 1)
	height = int(info.Window.Bottom - info.Window.Top + 1)
	return width, height, nil
}
