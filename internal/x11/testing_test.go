package x11

import (
	"io"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fbwin/internal/winstate"
)

const (
	testWindow     xproto.Window = 0x400001
	otherWindow    xproto.Window = 0x400002
	testProtocols  xproto.Atom   = 300
	testDeleteAtom xproto.Atom   = 301
)

type fakeKeys struct {
	syms map[xproto.Keycode][2]xproto.Keysym
	held map[xproto.Keycode]bool
}

func (k *fakeKeys) Keysyms(code xproto.Keycode) (xproto.Keysym, xproto.Keysym) {
	s := k.syms[code]
	return s[0], s[1]
}

func (k *fakeKeys) Held(code xproto.Keycode) bool {
	return k.held[code]
}

type fakeSurface struct {
	unmaps   int
	presents int
}

func (s *fakeSurface) unmap() error {
	s.unmaps++
	return nil
}

func (s *fakeSurface) present() error {
	s.presents++
	return nil
}

// newTestWindow returns a visible window with fake server and keyboard.
func newTestWindow(id xproto.Window, width, height int) (*Window, *fakeKeys, *fakeSurface) {
	keys := &fakeKeys{
		syms: map[xproto.Keycode][2]xproto.Keysym{
			9:  {0xff1b, 0},      // Escape
			24: {'q', 'Q'},       // q
			38: {'a', 'A'},       // a
			50: {0xffe1, 0},      // Shift_L
			62: {0xffe2, 0},      // Shift_R
			79: {0xff95, 0xffb7}, // KP_Home / KP_7
			47: {0xe9, 0xc9},     // eacute
		},
		held: map[xproto.Keycode]bool{},
	}
	srv := &fakeSurface{}
	w := &Window{
		id:             id,
		state:          winstate.New(width, height, "test"),
		keys:           keys,
		srv:            srv,
		wmProtocols:    testProtocols,
		wmDeleteWindow: testDeleteAtom,
	}
	w.state.SetHidden(false)
	return w, keys, srv
}

func newTestConnection(windows ...*Window) *Connection {
	c := &Connection{
		windows: make(map[xproto.Window]*Window),
		waiters: make(map[xproto.Window]*mapWaiter),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, w := range windows {
		w.c = c
		c.register(w)
	}
	return c
}
