// Package headless implements windows that live entirely in memory. It backs
// tests and tools that need the window contract without a display server.
package headless

import (
	"io"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/pixel"
	"github.com/1broseidon/fbwin/internal/winstate"
)

// Default screen size when Config leaves it unset.
const (
	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
)

// Config describes the simulated screen.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	// ServerBigEndian selects the swapped pixel layout on little-endian hosts.
	ServerBigEndian bool
	Logger          *slog.Logger
}

// Window is an in-memory window. Paint copies the framebuffer into a
// presented frame the way an expose-driven blit would.
type Window struct {
	state *winstate.State
	log   *slog.Logger

	mu     sync.Mutex
	layout pixel.Layout
	pix    []uint32
	frame  []uint32
	paints int
	// Where Show places the window.
	homeX, homeY int
}

func (w *Window) home() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.homeX, w.homeY
}

func (w *Window) setHome(x, y int) {
	w.mu.Lock()
	w.homeX, w.homeY = x, y
	w.mu.Unlock()
}

// Open creates a window clamped to the screen and shows it.
func Open(cfg Config, width, height int, title string) (*Window, error) {
	if cfg.ScreenWidth <= 0 {
		cfg.ScreenWidth = DefaultScreenWidth
	}
	if cfg.ScreenHeight <= 0 {
		cfg.ScreenHeight = DefaultScreenHeight
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	width, height = min(width, cfg.ScreenWidth), min(height, cfg.ScreenHeight)
	w := &Window{
		state:  winstate.New(width, height, title),
		log:    cfg.Logger,
		layout: pixel.LayoutFor(cfg.ServerBigEndian),
		pix:    make([]uint32, width*height),
	}
	w.log.Debug("headless window created", "title", title, "width", width, "height", height)
	if err := w.Show(); err != nil {
		return nil, err
	}
	return w, nil
}

// State exposes the shared window state.
func (w *Window) State() *winstate.State {
	return w.state
}

// Show makes the window visible and paints it.
func (w *Window) Show() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if !w.state.SetHidden(false) {
		return nil
	}
	w.state.SetPosition(w.home())
	return w.Paint()
}

// Hide makes the window invisible and fires the close callback.
func (w *Window) Hide() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.SetHidden(true) {
		return nil
	}
	w.setHome(w.state.Position())
	w.state.SetPosition(winstate.Outside, winstate.Outside)
	w.state.FireClose()
	return nil
}

// Move relocates the window, showing it first if it is hidden.
func (w *Window) Move(x, y int) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if cx, cy := w.state.Position(); cx != x || cy != y {
		w.setHome(x, y)
		if err := w.Show(); err != nil {
			return err
		}
		w.state.SetPosition(x, y)
	}
	return w.Paint()
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	w.state.SetTitle(title)
	return nil
}

// Render converts a packed RGB frame into the framebuffer.
func (w *Window) Render(rgb []byte, width, height int) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	fw, fh := w.state.Size()
	if err := pixel.CheckBounds(width, height, fw, fh); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return pixel.Convert(w.pix, rgb, width, height, w.layout)
}

// Paint presents the framebuffer. It is a no-op while hidden.
func (w *Window) Paint() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.Hidden() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = append(w.frame[:0], w.pix...)
	w.paints++
	return nil
}

// Pixels returns a copy of the framebuffer.
func (w *Window) Pixels() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint32(nil), w.pix...)
}

// Frame returns a copy of the last presented frame.
func (w *Window) Frame() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint32(nil), w.frame...)
}

// Paints reports how many frames have been presented.
func (w *Window) Paints() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paints
}

// Close destroys the window. The close callback fires once more if the
// window was visible.
func (w *Window) Close() error {
	first, wasHidden := w.state.MarkClosed()
	if !first {
		return winstate.ErrClosed
	}

	w.mu.Lock()
	w.pix, w.frame = nil, nil
	w.mu.Unlock()

	if !wasHidden {
		w.state.FireClose()
	}
	w.log.Debug("headless window destroyed", "title", w.state.Title())
	return nil
}

// The methods below inject input as if it came from the window system.
// Input to a hidden or closed window is dropped.

func (w *Window) live() bool {
	return !w.state.Hidden() && !w.state.Closed()
}

// PressKey delivers a key transition.
func (w *Window) PressKey(key input.Key, pressed bool) {
	if w.live() && key.Valid() {
		w.state.FireKey([]input.Key{key}, pressed)
	}
}

// TypeChar delivers a typed character as UTF-8.
func (w *Window) TypeChar(r rune) {
	if w.live() && r != 0 {
		w.state.FireChar(utf8.AppendRune(nil, r))
	}
}

// MovePointer moves the pointer inside the window.
func (w *Window) MovePointer(x, y int) {
	if w.live() {
		w.state.SetPointer(x, y)
		w.state.FireMouse()
	}
}

// LeavePointer moves the pointer out of the window.
func (w *Window) LeavePointer() {
	if w.live() {
		w.state.ClearPointer()
		w.state.FireMouse()
	}
}

// PressButton delivers a button transition at the current pointer position.
func (w *Window) PressButton(b input.Buttons, pressed bool) {
	if w.live() {
		w.state.SetButton(b, pressed)
		w.state.FireMouse()
	}
}

// Scroll adds wheel notches; positive is away from the user.
func (w *Window) Scroll(notches int) {
	if w.live() {
		w.state.AddWheel(notches)
		w.state.FireMouse()
	}
}

// RequestClose acts like the user closing the window from its frame.
func (w *Window) RequestClose() {
	if w.live() {
		if err := w.Hide(); err != nil {
			w.log.Warn("hide on close request failed", "error", err)
		}
	}
}
