package fbwin

import (
	"errors"
	"sync"
	"testing"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/headless"
	"github.com/1broseidon/fbwin/internal/pixel"
)

func newHeadless(t *testing.T, width, height int) (*Window, *headless.Window) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Headless.ScreenWidth = 640
	cfg.Headless.ScreenHeight = 480

	w, err := New(width, height, "test", WithConfig(cfg), WithBackend("headless"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hw, ok := w.impl.(*headless.Window)
	if !ok {
		t.Fatalf("impl is %T", w.impl)
	}
	return w, hw
}

func TestZeroSizeWindowIsDestroyed(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {0, 0}} {
		w, err := New(size[0], size[1], "empty", WithBackend("headless"))
		if err != nil {
			t.Fatalf("New(%v): %v", size, err)
		}
		fired := false
		w.OnClose(func() { fired = true })

		for name, err := range map[string]error{
			"show":   w.Show(),
			"hide":   w.Hide(),
			"move":   w.Move(1, 2),
			"title":  w.SetTitle("x"),
			"render": w.Render(nil, 0, 0),
			"paint":  w.Paint(),
			"close":  w.Close(),
		} {
			if !errors.Is(err, ErrClosed) {
				t.Errorf("%v %s: %v", size, name, err)
			}
		}
		if fired {
			t.Errorf("%v: close callback fired", size)
		}
		if !w.Hidden() || w.Pixels() != nil {
			t.Errorf("%v: expected hidden window without pixels", size)
		}
	}
}

func TestNewClampsToScreen(t *testing.T) {
	w, _ := newHeadless(t, 1000, 100)
	defer w.Close()

	if width, height := w.Size(); width != 640 || height != 100 {
		t.Fatalf("size = %dx%d", width, height)
	}
}

func TestRenderRedFrame(t *testing.T) {
	w, hw := newHeadless(t, 4, 4)
	defer w.Close()

	rgb := make([]byte, 4*4*3)
	for i := 0; i < len(rgb); i += 3 {
		rgb[i] = 0xff
	}
	if err := w.Render(rgb, 4, 4); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := w.Paint(); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	want := uint32(0x00FF0000)
	if pixel.HostBigEndian() {
		// The headless server reports little-endian order.
		want = 0xFF000000
	}
	for i, px := range hw.Frame() {
		if px != want {
			t.Fatalf("pixel %d = %#08x, want %#08x", i, px, want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	w, _ := newHeadless(t, 4, 4)
	defer w.Close()

	if err := w.Render(make([]byte, 5*5*3), 5, 5); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("oversized frame: %v", err)
	}
	if err := w.Render(make([]byte, 3), 2, 2); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("short frame: %v", err)
	}
	// A smaller frame fills the leading pixels.
	if err := w.Render([]byte{1, 2, 3, 4, 5, 6}, 2, 1); err != nil {
		t.Fatalf("small frame: %v", err)
	}
}

func TestShowHideShowFiresCloseOnce(t *testing.T) {
	w, _ := newHeadless(t, 8, 8)
	defer w.Close()

	closes := 0
	w.OnClose(func() { closes++ })

	if err := w.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := w.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if x, y := w.Position(); x != Outside || y != Outside {
		t.Fatalf("hidden position = (%d,%d)", x, y)
	}
	if err := w.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if closes != 1 {
		t.Fatalf("closes = %d", closes)
	}
	if w.Hidden() {
		t.Fatal("window still hidden")
	}
}

func TestCloseFiresOnlyWhenVisible(t *testing.T) {
	w, _ := newHeadless(t, 8, 8)
	closes := 0
	w.OnClose(func() { closes++ })

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second Close: %v", err)
	}
	if closes != 1 {
		t.Fatalf("closes = %d", closes)
	}
	if err := w.Paint(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Paint after Close: %v", err)
	}
}

func TestMouseSentinel(t *testing.T) {
	w, hw := newHeadless(t, 10, 10)
	defer w.Close()

	type event struct {
		x, y int
		b    input.Buttons
	}
	var got []event
	w.OnMouse(func(x, y int, b input.Buttons, wheel int) {
		got = append(got, event{x, y, b})
	})

	hw.MovePointer(5, 5)
	hw.MovePointer(10, 5)
	hw.MovePointer(-1, 3)
	hw.PressButton(input.ButtonRight, true)
	hw.LeavePointer()

	want := []event{
		{5, 5, 0},
		{Outside, Outside, 0},
		{Outside, Outside, 0},
		{Outside, Outside, input.ButtonRight},
		{Outside, Outside, input.ButtonRight},
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if x, y, b, _ := w.Mouse(); x != Outside || y != Outside || b != input.ButtonRight {
		t.Fatalf("Mouse() = %d,%d,%v", x, y, b)
	}
}

func TestCallbackMayReenter(t *testing.T) {
	w, hw := newHeadless(t, 8, 8)
	defer w.Close()
	other, _ := newHeadless(t, 4, 4)

	w.OnKey(func(k input.Key, pressed bool) {
		if k == input.KeyH && pressed {
			_ = other.Hide()
		}
		if k == input.KeyQ && pressed {
			_ = other.Close()
		}
		_ = w.SetTitle(k.String())
	})

	hw.PressKey(input.KeyH, true)
	if !other.Hidden() {
		t.Fatal("callback did not hide the other window")
	}
	hw.PressKey(input.KeyQ, true)
	if err := other.Show(); !errors.Is(err, ErrClosed) {
		t.Fatalf("other window not closed: %v", err)
	}
	if w.Title() != input.KeyQ.String() {
		t.Fatalf("title = %q", w.Title())
	}
}

func TestConcurrentRenderAndPaint(t *testing.T) {
	w, _ := newHeadless(t, 32, 32)
	defer w.Close()

	frame := make([]byte, 32*32*3)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := w.Render(frame, 32, 32); err != nil {
					t.Errorf("Render: %v", err)
					return
				}
				if err := w.Paint(); err != nil {
					t.Errorf("Paint: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestUnknownBackend(t *testing.T) {
	if _, err := New(4, 4, "x", WithBackend("cocoa")); !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
}
