package winstate

import "github.com/1broseidon/fbwin/input"

// SetPointer records a pointer position in client coordinates. Positions
// outside [0,width) x [0,height) collapse to (Outside, Outside).
func (s *State) SetPointer(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPointerLocked(x, y)
}

func (s *State) setPointerLocked(x, y int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		x, y = Outside, Outside
	}
	s.mouse.X, s.mouse.Y = x, y
}

// ClearPointer marks the pointer as outside the window.
func (s *State) ClearPointer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouse.X, s.mouse.Y = Outside, Outside
}

// SetButton sets or clears b in the button mask.
func (s *State) SetButton(b input.Buttons, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pressed {
		s.mouse.Buttons |= b
	} else {
		s.mouse.Buttons &^= b
	}
}

// AddWheel accumulates wheel notches.
func (s *State) AddWheel(notches int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouse.Wheel += notches
}

// Mouse returns a snapshot of the pointer state.
func (s *State) Mouse() Mouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mouse
}
