//go:build windows

package platform

import "github.com/1broseidon/fbwin/internal/win32"

const nativeBackend = BackendWin32

func init() {
	openers[BackendWin32] = openWin32
}

func openWin32(opts Options) (Window, error) {
	return win32.Open(win32.Config{
		ClassName: opts.ClassName,
		Logger:    opts.Logger,
	}, opts.Width, opts.Height, opts.Title)
}
