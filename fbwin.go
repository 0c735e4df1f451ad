// Package fbwin opens native windows that display a caller-supplied RGB
// framebuffer and report keyboard, mouse and close events through callbacks.
//
// A window is created visible. Render converts a packed 24-bit RGB frame into
// the window's native buffer and Paint asks the window system to show it.
// Callbacks run on a background goroutine owned by the platform backend; they
// may call back into any window except to Close the window they belong to.
package fbwin

import (
	"github.com/1broseidon/fbwin/internal/config"
	"github.com/1broseidon/fbwin/internal/pixel"
	"github.com/1broseidon/fbwin/internal/platform"
	"github.com/1broseidon/fbwin/internal/winstate"
)

// Callback signatures.
type (
	KeyFunc   = winstate.KeyFunc
	CharFunc  = winstate.CharFunc
	MouseFunc = winstate.MouseFunc
	CloseFunc = winstate.CloseFunc
)

// Outside is the mouse coordinate reported while the pointer is not over the
// client area.
const Outside = winstate.Outside

var (
	// ErrClosed is returned by every operation on a destroyed window.
	ErrClosed = winstate.ErrClosed
	// ErrFrameTooLarge is returned by Render for frames larger than the window.
	ErrFrameTooLarge = pixel.ErrFrameTooLarge
	// ErrShortFrame is returned by Render when rgb holds fewer than width*height pixels.
	ErrShortFrame = pixel.ErrShortFrame
	// ErrUnsupportedDepth is returned when the screen depth cannot be targeted.
	ErrUnsupportedDepth = pixel.ErrUnsupportedDepth
	// ErrBGRVisual is returned by Render on visuals that store blue in the high bits.
	ErrBGRVisual = pixel.ErrBGRVisual
	// ErrUnsupportedBackend is returned for unknown backends or ones not built
	// for this platform.
	ErrUnsupportedBackend = platform.ErrUnsupportedBackend
)

// Config is the YAML configuration accepted by WithConfig.
type Config = config.Config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads ~/.config/fbwin/config.yaml, or the file named by
// $FBWIN_CONFIG. A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	return config.Load()
}
