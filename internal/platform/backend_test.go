package platform

import (
	"errors"
	"testing"
)

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Backend("wayland"), Options{Width: 4, Height: 4})
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
}

func TestOpenHeadless(t *testing.T) {
	w, err := Open(BackendHeadless, Options{Width: 8, Height: 6, Title: "test", ScreenWidth: 640, ScreenHeight: 480})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer w.Close()

	if got := w.State().Title(); got != "test" {
		t.Fatalf("title = %q", got)
	}
	if w.State().Hidden() {
		t.Fatal("expected window to be visible after Open")
	}
	if n := len(w.Pixels()); n != 48 {
		t.Fatalf("expected 48 pixels, got %d", n)
	}
}

func TestNativeBackendRegistered(t *testing.T) {
	if _, ok := openers[Native()]; !ok {
		t.Fatalf("native backend %q has no opener", Native())
	}
}
