package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/fbwin/internal/winstate"
)

// Backend names a window system implementation.
type Backend string

const (
	BackendAuto     Backend = "auto"
	BackendX11      Backend = "x11"
	BackendWin32    Backend = "win32"
	BackendHeadless Backend = "headless"
)

// ErrUnsupportedBackend is returned when a backend is unknown or not built
// for the current platform.
var ErrUnsupportedBackend = errors.New("unsupported backend")

// Window is a native top-level window with a framebuffer.
type Window interface {
	Show() error
	Hide() error
	Move(x, y int) error
	SetTitle(title string) error
	Render(rgb []byte, width, height int) error
	Paint() error
	Close() error
	Pixels() []uint32
	State() *winstate.State
}

// Options describe the window to open and the connection it lives on.
type Options struct {
	Width  int
	Height int
	Title  string

	Display      string
	XAuthority   string
	ClassName    string
	PollInterval time.Duration
	SharedMemory bool

	// Screen size reported by the headless backend.
	ScreenWidth  int
	ScreenHeight int

	Logger *slog.Logger
}

type opener func(Options) (Window, error)

var openers = map[Backend]opener{
	BackendHeadless: openHeadless,
}

// Native returns the backend used for BackendAuto on this platform.
func Native() Backend {
	return nativeBackend
}

// Open creates and shows a window on backend b.
func Open(b Backend, opts Options) (Window, error) {
	if b == "" || b == BackendAuto {
		b = nativeBackend
	}
	open, ok := openers[b]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, b)
	}
	return open(opts)
}
