package fbwin

import (
	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/platform"
	"github.com/1broseidon/fbwin/internal/winstate"
)

// Window is a top-level window with a fixed-size framebuffer. It is safe for
// concurrent use.
type Window struct {
	impl  platform.Window
	state *winstate.State
}

// New opens a visible window whose framebuffer is width x height, clamped to
// the screen. A zero width or height returns a window that is already
// destroyed: every operation reports ErrClosed and no callback ever fires.
func New(width, height int, title string, opts ...Option) (*Window, error) {
	if width <= 0 || height <= 0 {
		st := winstate.New(0, 0, title)
		st.MarkClosed()
		return &Window{state: st}, nil
	}

	backend, o := buildOptions(width, height, title, opts)
	impl, err := platform.Open(backend, o)
	if err != nil {
		return nil, err
	}
	return &Window{impl: impl, state: impl.State()}, nil
}

// Show makes a hidden window visible again.
func (w *Window) Show() error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Show()
}

// Hide removes the window from the screen and fires the close callback.
func (w *Window) Hide() error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Hide()
}

// Move places the window's top-left corner at (x, y), showing it if hidden.
func (w *Window) Move(x, y int) error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Move(x, y)
}

// SetTitle replaces the title bar text.
func (w *Window) SetTitle(title string) error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.SetTitle(title)
}

// Render converts a packed RGB frame (3 bytes per pixel, row-major) into the
// framebuffer. The frame must not exceed the window's size. The result shows
// on the next Paint.
func (w *Window) Render(rgb []byte, width, height int) error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Render(rgb, width, height)
}

// Paint redraws the window from the framebuffer. It does nothing while the
// window is hidden.
func (w *Window) Paint() error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Paint()
}

// Close destroys the window. The close callback fires if the window was
// visible. Close must not be called from this window's own callbacks.
func (w *Window) Close() error {
	if w.impl == nil {
		return ErrClosed
	}
	return w.impl.Close()
}

// OnKey sets the key callback. It receives every key transition that maps to
// an input.Key.
func (w *Window) OnKey(fn KeyFunc) { w.state.SetKeyFunc(fn) }

// OnChar sets the character callback. It receives the UTF-8 encoding of each
// typed character.
func (w *Window) OnChar(fn CharFunc) { w.state.SetCharFunc(fn) }

// OnMouse sets the mouse callback. Coordinates are Outside while the pointer
// is not over the window.
func (w *Window) OnMouse(fn MouseFunc) { w.state.SetMouseFunc(fn) }

// OnClose sets the close callback.
func (w *Window) OnClose(fn CloseFunc) { w.state.SetCloseFunc(fn) }

// Size returns the framebuffer dimensions after clamping.
func (w *Window) Size() (width, height int) { return w.state.Size() }

// Position returns the window position, or (Outside, Outside) while hidden.
func (w *Window) Position() (x, y int) { return w.state.Position() }

// Title returns the current title.
func (w *Window) Title() string { return w.state.Title() }

// Hidden reports whether the window is hidden or destroyed.
func (w *Window) Hidden() bool { return w.state.Hidden() }

// Mouse returns the last known pointer position, buttons and wheel total.
func (w *Window) Mouse() (x, y int, buttons input.Buttons, wheel int) {
	m := w.state.Mouse()
	return m.X, m.Y, m.Buttons, m.Wheel
}

// Pixels returns a copy of the native framebuffer.
func (w *Window) Pixels() []uint32 {
	if w.impl == nil {
		return nil
	}
	return w.impl.Pixels()
}
