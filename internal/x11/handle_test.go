package x11

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/winstate"
)

type mouseCall struct {
	x, y    int
	buttons input.Buttons
	wheel   int
}

func recordMouse(w *Window) *[]mouseCall {
	var calls []mouseCall
	w.state.SetMouseFunc(func(x, y int, b input.Buttons, wheel int) {
		calls = append(calls, mouseCall{x, y, b, wheel})
	})
	return &calls
}

type keyCall struct {
	key     input.Key
	pressed bool
}

func recordKeys(w *Window) *[]keyCall {
	var calls []keyCall
	w.state.SetKeyFunc(func(k input.Key, pressed bool) {
		calls = append(calls, keyCall{k, pressed})
	})
	return &calls
}

func TestDeleteWindowHidesAndFiresClose(t *testing.T) {
	w, _, srv := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	closes := 0
	w.state.SetCloseFunc(func() { closes++ })

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: testWindow,
		Type:   testProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(testDeleteAtom), 0, 0, 0, 0}),
	}
	c.deliver([]xgb.Event{ev, ev})

	if !w.state.Hidden() {
		t.Fatal("window should be hidden after WM_DELETE_WINDOW")
	}
	if closes != 1 || srv.unmaps != 1 {
		t.Fatalf("closes=%d unmaps=%d, want 1 and 1", closes, srv.unmaps)
	}
	if x, y := w.state.Position(); x != winstate.Outside || y != winstate.Outside {
		t.Fatalf("position = (%d,%d)", x, y)
	}
}

func TestOtherClientMessagesIgnored(t *testing.T) {
	w, _, srv := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	c.deliver([]xgb.Event{xproto.ClientMessageEvent{
		Window: testWindow,
		Type:   testProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{999, 0, 0, 0, 0}),
	}})
	if w.state.Hidden() || srv.unmaps != 0 {
		t.Fatal("unrelated protocol message hid the window")
	}
}

func TestConfigureUpdatesPositionToLatest(t *testing.T) {
	w, _, _ := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	c.deliver([]xgb.Event{
		xproto.ConfigureNotifyEvent{Window: testWindow, X: 10, Y: 20},
		xproto.ConfigureNotifyEvent{Window: testWindow, X: 30, Y: 40},
	})
	if x, y := w.state.Position(); x != 30 || y != 40 {
		t.Fatalf("position = (%d,%d), want (30,40)", x, y)
	}
}

func TestExposeCoalescesToOneBlit(t *testing.T) {
	w, _, srv := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	c.deliver([]xgb.Event{
		xproto.ExposeEvent{Window: testWindow, Count: 1},
		xproto.ExposeEvent{Window: testWindow, Count: 0},
	})
	if srv.presents != 1 {
		t.Fatalf("presents = %d, want 1", srv.presents)
	}
}

func TestButtonBatchFiresOnce(t *testing.T) {
	w, _, _ := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	calls := recordMouse(w)

	c.deliver([]xgb.Event{
		xproto.ButtonPressEvent{Event: testWindow, Detail: 1, EventX: 1, EventY: 1},
		xproto.ButtonPressEvent{Event: testWindow, Detail: 3, EventX: 2, EventY: 3},
	})
	want := []mouseCall{{2, 3, input.ButtonLeft | input.ButtonRight, 0}}
	if len(*calls) != 1 || (*calls)[0] != want[0] {
		t.Fatalf("calls = %+v, want %+v", *calls, want)
	}

	c.deliver([]xgb.Event{
		xproto.ButtonReleaseEvent{Event: testWindow, Detail: 1, EventX: 2, EventY: 3},
		xproto.ButtonPressEvent{Event: testWindow, Detail: 2, EventX: 2, EventY: 3},
	})
	if got := (*calls)[len(*calls)-1]; got.buttons != input.ButtonRight|input.ButtonMiddle {
		t.Fatalf("buttons = %v", got.buttons)
	}
}

func TestWheelCountsOnRelease(t *testing.T) {
	w, _, _ := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	calls := recordMouse(w)

	c.deliver([]xgb.Event{xproto.ButtonPressEvent{Event: testWindow, Detail: 4}})
	c.deliver([]xgb.Event{
		xproto.ButtonReleaseEvent{Event: testWindow, Detail: 4},
		xproto.ButtonReleaseEvent{Event: testWindow, Detail: 4},
	})
	c.deliver([]xgb.Event{xproto.ButtonReleaseEvent{Event: testWindow, Detail: 5}})

	got := *calls
	if len(got) != 3 {
		t.Fatalf("calls = %+v", got)
	}
	if got[0].wheel != 0 || got[1].wheel != 2 || got[2].wheel != 1 {
		t.Fatalf("wheel sequence = %d,%d,%d", got[0].wheel, got[1].wheel, got[2].wheel)
	}
}

func TestPointerSentinel(t *testing.T) {
	tests := []struct {
		name  string
		ev    xgb.Event
		wantX int
		wantY int
	}{
		{"motion inside", motion(testWindow, 3, 3), 3, 3},
		{"motion right", motion(testWindow, 4, 0), -1, -1},
		{"motion negative", motion(testWindow, -1, 2), -1, -1},
		{"enter inside", xproto.EnterNotifyEvent{Event: testWindow, EventX: 0, EventY: 2}, 0, 2},
		{"enter outside", xproto.EnterNotifyEvent{Event: testWindow, EventX: 0, EventY: 9}, -1, -1},
		{"leave", xproto.LeaveNotifyEvent{Event: testWindow, EventX: 1, EventY: 1}, -1, -1},
		{"button outside", xproto.ButtonPressEvent{Event: testWindow, Detail: 1, EventX: 10, EventY: 1}, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newTestWindow(testWindow, 4, 4)
			c := newTestConnection(w)
			calls := recordMouse(w)
			c.deliver([]xgb.Event{tt.ev})
			if len(*calls) != 1 {
				t.Fatalf("calls = %d", len(*calls))
			}
			got := (*calls)[0]
			if got.x != tt.wantX || got.y != tt.wantY {
				t.Fatalf("pointer = (%d,%d), want (%d,%d)", got.x, got.y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestKeyPressFiresKeyAndChar(t *testing.T) {
	tests := []struct {
		name  string
		code  xproto.Keycode
		state uint16
		key   input.Key
		char  []byte
	}{
		{"plain letter", 24, 0, input.KeyQ, []byte("q")},
		{"shifted letter", 24, xproto.ModMaskShift, input.KeyQ, []byte("Q")},
		{"caps lock letter", 38, xproto.ModMaskLock, input.KeyA, []byte("A")},
		{"control letter", 38, xproto.ModMaskControl, input.KeyA, []byte{0x01}},
		{"latin-1 above ascii", 47, 0, input.KeyCount, []byte{0xc3, 0xa9}},
		{"escape", 9, 0, input.KeyEscape, []byte{0x1b}},
		{"shift has no char", 50, 0, input.KeyShiftLeft, nil},
		{"keypad with numlock", 79, xproto.ModMask2, input.KeyPad7, []byte("7")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newTestWindow(testWindow, 4, 4)
			c := newTestConnection(w)
			keys := recordKeys(w)
			var chars [][]byte
			w.state.SetCharFunc(func(b []byte) { chars = append(chars, append([]byte(nil), b...)) })

			c.deliver([]xgb.Event{xproto.KeyPressEvent{Event: testWindow, Detail: tt.code, State: tt.state}})

			if tt.key == input.KeyCount {
				if len(*keys) != 0 {
					t.Fatalf("unmapped key fired %+v", *keys)
				}
			} else if len(*keys) != 1 || (*keys)[0] != (keyCall{tt.key, true}) {
				t.Fatalf("keys = %+v, want %v pressed", *keys, tt.key)
			}

			if tt.char == nil {
				if len(chars) != 0 {
					t.Fatalf("unexpected chars %q", chars)
				}
				return
			}
			if len(chars) != 1 || !bytes.Equal(chars[0], tt.char) {
				t.Fatalf("chars = %q, want %q", chars, tt.char)
			}
		})
	}
}

func TestKeyReleaseSuppressedWhileHeld(t *testing.T) {
	w, keys, _ := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)
	calls := recordKeys(w)

	keys.held[24] = true
	c.deliver([]xgb.Event{xproto.KeyReleaseEvent{Event: testWindow, Detail: 24}})
	if len(*calls) != 0 {
		t.Fatalf("release fired while key held: %+v", *calls)
	}

	keys.held[24] = false
	c.deliver([]xgb.Event{xproto.KeyReleaseEvent{Event: testWindow, Detail: 24}})
	if len(*calls) != 1 || (*calls)[0] != (keyCall{input.KeyQ, false}) {
		t.Fatalf("calls = %+v", *calls)
	}
}

func TestCloseCallbackMayReenterWindow(t *testing.T) {
	w, _, _ := newTestWindow(testWindow, 4, 4)
	c := newTestConnection(w)

	// The handler re-enters window state from the dispatcher goroutine.
	w.state.SetCloseFunc(func() {
		if !w.state.Hidden() {
			t.Error("close fired before hide took effect")
		}
		_ = w.Hide()
	})
	c.deliver([]xgb.Event{xproto.ClientMessageEvent{
		Window: testWindow,
		Type:   testProtocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(testDeleteAtom), 0, 0, 0, 0}),
	}})
	if !w.state.Hidden() {
		t.Fatal("window should stay hidden")
	}
}
