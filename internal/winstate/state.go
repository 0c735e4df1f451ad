// Package winstate holds the per-window mutable state shared between the
// caller's goroutine and the platform event goroutine.
//
// Every field is guarded by one mutex. Callbacks are never invoked with the
// lock held: Fire* methods snapshot the handler and its arguments first, so a
// callback may freely call back into the window.
package winstate

import (
	"errors"
	"sync"

	"github.com/1broseidon/fbwin/input"
)

// Callback signatures.
type (
	KeyFunc   func(key input.Key, pressed bool)
	CharFunc  func(utf8 []byte)
	MouseFunc func(x, y int, buttons input.Buttons, wheel int)
	CloseFunc func()
)

// ErrClosed is returned by operations on a window that has been torn down.
var ErrClosed = errors.New("window closed")

// Outside is the sentinel coordinate for a pointer outside the client area.
const Outside = -1

// Mouse is a snapshot of the pointer state.
type Mouse struct {
	X, Y    int
	Buttons input.Buttons
	Wheel   int
}

// State is the mutable state of one window.
type State struct {
	mu sync.Mutex

	title  string
	width  int
	height int
	x, y   int
	mouse  Mouse
	hidden bool
	closed bool

	onKey   KeyFunc
	onChar  CharFunc
	onMouse MouseFunc
	onClose CloseFunc
}

// New returns state for a window whose logical framebuffer is width x height.
// The window starts hidden with the pointer outside.
func New(width, height int, title string) *State {
	return &State{
		title:  title,
		width:  width,
		height: height,
		mouse:  Mouse{X: Outside, Y: Outside},
		hidden: true,
	}
}

// Size returns the fixed logical framebuffer size.
func (s *State) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *State) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle replaces the title and returns the previous one.
func (s *State) SetTitle(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.title
	s.title = title
	return old
}

func (s *State) Position() (x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y
}

// SetPosition stores the window position and reports whether it changed.
func (s *State) SetPosition(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.x == x && s.y == y {
		return false
	}
	s.x, s.y = x, y
	return true
}

func (s *State) Hidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// SetHidden updates the hidden flag and returns its previous value.
func (s *State) SetHidden(hidden bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.hidden
	s.hidden = hidden
	return prev
}

// Closed reports whether the window has been torn down.
func (s *State) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// MarkClosed tears the state down. It returns first=false if the state was
// already closed, and wasHidden as the hidden flag before teardown.
func (s *State) MarkClosed() (first, wasHidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, true
	}
	wasHidden = s.hidden
	s.closed = true
	s.hidden = true
	s.x, s.y = 0, 0
	s.mouse = Mouse{X: Outside, Y: Outside}
	return true, wasHidden
}
