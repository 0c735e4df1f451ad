package winstate

import "github.com/1broseidon/fbwin/input"

// SetKeyFunc replaces the key handler. A nil handler disables dispatch.
func (s *State) SetKeyFunc(fn KeyFunc) {
	s.mu.Lock()
	s.onKey = fn
	s.mu.Unlock()
}

func (s *State) SetCharFunc(fn CharFunc) {
	s.mu.Lock()
	s.onChar = fn
	s.mu.Unlock()
}

func (s *State) SetMouseFunc(fn MouseFunc) {
	s.mu.Lock()
	s.onMouse = fn
	s.mu.Unlock()
}

func (s *State) SetCloseFunc(fn CloseFunc) {
	s.mu.Lock()
	s.onClose = fn
	s.mu.Unlock()
}

// FireKey invokes the key handler once for every key in keys.
func (s *State) FireKey(keys []input.Key, pressed bool) {
	s.mu.Lock()
	fn := s.onKey
	s.mu.Unlock()
	if fn == nil {
		return
	}
	for _, k := range keys {
		fn(k, pressed)
	}
}

// FireChar invokes the character handler. Empty input is not dispatched.
func (s *State) FireChar(utf8 []byte) {
	if len(utf8) == 0 {
		return
	}
	s.mu.Lock()
	fn := s.onChar
	s.mu.Unlock()
	if fn != nil {
		fn(utf8)
	}
}

// FireMouse invokes the mouse handler with the current pointer state.
func (s *State) FireMouse() {
	s.mu.Lock()
	fn := s.onMouse
	m := s.mouse
	s.mu.Unlock()
	if fn != nil {
		fn(m.X, m.Y, m.Buttons, m.Wheel)
	}
}

func (s *State) FireClose() {
	s.mu.Lock()
	fn := s.onClose
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
