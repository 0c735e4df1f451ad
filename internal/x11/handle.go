package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/keytable"
)

// handle applies one delivery to the window. It runs on the dispatcher
// goroutine with dispatchMu held.
func (w *Window) handle(g eventGroup) {
	switch g.class {
	case classClientMessage:
		e := g.last().(xproto.ClientMessageEvent)
		if e.Type == w.wmProtocols && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == w.wmDeleteWindow {
			if err := w.Hide(); err != nil {
				w.logf("hide on close request failed", err)
			}
		}

	case classConfigure:
		e := g.last().(xproto.ConfigureNotifyEvent)
		w.state.SetPosition(int(e.X), int(e.Y))

	case classExpose:
		if err := w.srv.present(); err != nil {
			w.logf("blit failed", err)
		}

	case classButtonPress, classButtonRelease:
		pressed := g.class == classButtonPress
		for _, ev := range g.events {
			var e xproto.ButtonPressEvent
			if pressed {
				e = ev.(xproto.ButtonPressEvent)
			} else {
				e = xproto.ButtonPressEvent(ev.(xproto.ButtonReleaseEvent))
			}
			w.state.SetPointer(int(e.EventX), int(e.EventY))
			w.button(e.Detail, pressed)
		}
		w.state.FireMouse()

	case classKeyPress:
		e := g.last().(xproto.KeyPressEvent)
		ident, composed := resolveKey(w.keys, e.Detail, e.State)
		w.state.FireKey(keytable.X11.Lookup(uint32(ident)), true)
		if r, ok := latin1(composed, e.State); ok {
			w.state.FireChar(encodeChar(r))
		}

	case classKeyRelease:
		e := g.last().(xproto.KeyReleaseEvent)
		// Autorepeat sends release+press pairs while the key stays down.
		if w.keys.Held(e.Detail) {
			return
		}
		ident, _ := resolveKey(w.keys, e.Detail, e.State)
		w.state.FireKey(keytable.X11.Lookup(uint32(ident)), false)

	case classEnter:
		e := g.last().(xproto.EnterNotifyEvent)
		w.state.SetPointer(int(e.EventX), int(e.EventY))
		w.state.FireMouse()

	case classLeave:
		w.state.ClearPointer()
		w.state.FireMouse()

	case classMotion:
		e := g.last().(xproto.MotionNotifyEvent)
		w.state.SetPointer(int(e.EventX), int(e.EventY))
		w.state.FireMouse()
	}
}

// button applies an X pointer button. Buttons 4 and 5 are the wheel and
// count one notch on release.
func (w *Window) button(b xproto.Button, pressed bool) {
	switch b {
	case xproto.ButtonIndex1:
		w.state.SetButton(input.ButtonLeft, pressed)
	case xproto.ButtonIndex3:
		w.state.SetButton(input.ButtonRight, pressed)
	case xproto.ButtonIndex2:
		w.state.SetButton(input.ButtonMiddle, pressed)
	case xproto.ButtonIndex4:
		if !pressed {
			w.state.AddWheel(1)
		}
	case xproto.ButtonIndex5:
		if !pressed {
			w.state.AddWheel(-1)
		}
	}
}

func (w *Window) logf(msg string, err error) {
	if w.c != nil {
		w.c.log.Warn(msg, "window", w.id, "error", err)
	}
}
