//go:build linux

package platform

import (
	"os"

	"github.com/1broseidon/fbwin/internal/x11"
)

const nativeBackend = BackendX11

func init() {
	openers[BackendX11] = openX11
}

func openX11(opts Options) (Window, error) {
	// xgb reads the cookie file from the environment.
	if opts.XAuthority != "" && os.Getenv("XAUTHORITY") == "" {
		_ = os.Setenv("XAUTHORITY", opts.XAuthority)
	}
	return x11.Open(x11.Config{
		Display:      opts.Display,
		ClassName:    opts.ClassName,
		PollInterval: opts.PollInterval,
		SharedMemory: opts.SharedMemory,
		Logger:       opts.Logger,
	}, opts.Width, opts.Height, opts.Title)
}
