//go:build windows

package win32

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"unicode/utf8"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/config"
	"github.com/1broseidon/fbwin/internal/keytable"
	"github.com/1broseidon/fbwin/internal/pixel"
	"github.com/1broseidon/fbwin/internal/winstate"
)

// frameStyle is the style used for window creation and border computation.
const frameStyle = _WS_OVERLAPPEDWINDOW

// winMap maps HWNDs to live windows.
var winMap sync.Map

var resources struct {
	mu      sync.Mutex
	handle  syscall.Handle
	cursor  syscall.Handle
	proc    uintptr
	classes map[string]*uint16
}

// Window is a top-level Win32 window. Its message loop runs on a dedicated
// OS thread; callbacks fire on that thread.
type Window struct {
	state *winstate.State
	log   *slog.Logger

	hwnd syscall.Handle
	hdc  syscall.Handle
	// Frame thickness from AdjustWindowRect.
	side, top int

	// mu guards the DIB against concurrent Render and Paint.
	mu  sync.Mutex
	pix []uint32
	bmi bitmapInfo

	// Owned by the message thread.
	tracked bool
	chars   charDecoder

	done chan struct{}
}

// Open creates a window clamped to the primary screen and shows it.
func Open(cfg Config, width, height int, title string) (*Window, error) {
	if cfg.ClassName == "" {
		cfg.ClassName = config.DefaultClassName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	width = min(width, getSystemMetrics(_SM_CXSCREEN))
	height = min(height, getSystemMetrics(_SM_CYSCREEN))

	w := &Window{
		state: winstate.New(width, height, title),
		log:   cfg.Logger,
		pix:   make([]uint32, width*height),
		done:  make(chan struct{}),
	}
	w.bmi.header = bitmapInfoHeader{
		biWidth:         int32(width),
		biHeight:        -int32(height), // top-down
		biPlanes:        1,
		biBitCount:      32,
		biCompression:   _BI_RGB,
		biXPelsPerMeter: 1,
		biYPelsPerMeter: 1,
	}
	w.bmi.header.biSize = uint32(unsafe.Sizeof(w.bmi.header))

	created := make(chan error)
	go w.run(cfg.ClassName, created)
	if err := <-created; err != nil {
		return nil, err
	}
	w.log.Debug("window created", "hwnd", w.hwnd, "width", width, "height", height)

	if err := w.Show(); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// run creates the native window and pumps its messages until it is destroyed.
func (w *Window) run(class string, created chan<- error) {
	// Window messages are delivered to the creating thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	if err := w.create(class); err != nil {
		created <- err
		return
	}
	winMap.Store(w.hwnd, w)
	defer winMap.Delete(w.hwnd)
	created <- nil

	m := new(msg)
	for {
		switch getMessage(m, 0, 0, 0) {
		case -1:
			w.log.Error("GetMessage failed", "hwnd", w.hwnd)
			return
		case 0:
			// WM_QUIT
			return
		}
		translateMessage(m)
		dispatchMessage(m)
	}
}

func (w *Window) create(class string) error {
	cls, err := registerClass(class)
	if err != nil {
		return err
	}
	width, height := w.state.Size()

	r := rect{right: int32(width), bottom: int32(height)}
	adjustWindowRect(&r, frameStyle, 0)
	w.side, w.top = frameBorders(r, width, height)

	title, err := syscall.UTF16PtrFromString(w.state.Title())
	if err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}
	w.hwnd, err = createWindowEx(0, cls, title, frameStyle,
		_CW_USEDEFAULT, _CW_USEDEFAULT,
		int32(width+2*w.side), int32(height+w.side+w.top),
		resources.handle)
	if err != nil {
		return err
	}
	w.hdc, err = getDC(w.hwnd)
	if err != nil {
		destroyWindow(w.hwnd)
		return err
	}
	return nil
}

// registerClass registers the window class once per name.
func registerClass(name string) (*uint16, error) {
	resources.mu.Lock()
	defer resources.mu.Unlock()

	if cls, ok := resources.classes[name]; ok {
		return cls, nil
	}
	if resources.classes == nil {
		h, err := getModuleHandle()
		if err != nil {
			return nil, err
		}
		c, err := loadCursor(_IDC_ARROW)
		if err != nil {
			return nil, err
		}
		resources.handle = h
		resources.cursor = c
		resources.proc = syscall.NewCallback(windowProc)
		resources.classes = make(map[string]*uint16)
	}

	cls, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid class name: %w", err)
	}
	wcls := wndClassEx{
		style:         _CS_HREDRAW | _CS_VREDRAW | _CS_OWNDC,
		lpfnWndProc:   resources.proc,
		hInstance:     resources.handle,
		hCursor:       resources.cursor,
		lpszClassName: cls,
	}
	wcls.cbSize = uint32(unsafe.Sizeof(wcls))
	if _, err := registerClassEx(&wcls); err != nil {
		return nil, err
	}
	resources.classes[name] = cls
	return cls, nil
}

// State exposes the shared window state.
func (w *Window) State() *winstate.State {
	return w.state
}

// Show makes the window visible, brings it to the foreground and paints it.
func (w *Window) Show() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if !w.state.SetHidden(false) {
		return nil
	}
	showWindow(w.hwnd, _SW_SHOW)
	setForegroundWindow(w.hwnd)
	w.updatePosition()
	return w.Paint()
}

// updatePosition reads the client origin from the frame rect.
func (w *Window) updatePosition() {
	r := getWindowRect(w.hwnd)
	w.state.SetPosition(int(r.left)+w.side, int(r.top)+w.top)
}

// Hide hides the window and fires the close callback.
func (w *Window) Hide() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.SetHidden(true) {
		return nil
	}
	showWindow(w.hwnd, _SW_HIDE)
	w.state.SetPosition(winstate.Outside, winstate.Outside)
	w.state.FireClose()
	return nil
}

// Move places the client area at (x, y) and shows the window.
func (w *Window) Move(x, y int) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if cx, cy := w.state.Position(); cx != x || cy != y {
		setWindowPos(w.hwnd, int32(x-w.side), int32(y-w.top), _SWP_NOSIZE|_SWP_NOZORDER)
		if err := w.Show(); err != nil {
			return err
		}
		w.state.SetPosition(x, y)
	}
	return w.Paint()
}

// SetTitle replaces the title bar text.
func (w *Window) SetTitle(title string) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if err := setWindowText(w.hwnd, title); err != nil {
		return err
	}
	w.state.SetTitle(title)
	return nil
}

// Render converts a packed RGB frame into the DIB.
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
	// A 32-bit BI_RGB DIB is 0x00RRGGBB in host order.
	return pixel.Convert(w.pix, rgb, width, height, pixel.LayoutNative)
}

// Paint draws the DIB into the client area. It is a no-op while hidden.
func (w *Window) Paint() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.Hidden() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pix) == 0 {
		return nil
	}
	width, height := w.state.Size()
	setDIBitsToDevice(w.hdc, width, height, &w.pix[0], &w.bmi)
	return nil
}

// Pixels returns a copy of the DIB.
func (w *Window) Pixels() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint32(nil), w.pix...)
}

// Close destroys the window on its own thread and waits for the message
// loop to exit. It must not be called from this window's callbacks.
func (w *Window) Close() error {
	first, wasHidden := w.state.MarkClosed()
	if !first {
		return winstate.ErrClosed
	}

	if err := postMessage(w.hwnd, _WM_TEARDOWN, 0, 0); err != nil {
		w.log.Warn("failed to post teardown", "hwnd", w.hwnd, "error", err)
	} else {
		<-w.done
	}

	w.mu.Lock()
	w.pix = nil
	w.mu.Unlock()

	if !wasHidden {
		w.state.FireClose()
	}
	w.log.Debug("window destroyed", "hwnd", w.hwnd)
	return nil
}

func windowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	v, ok := winMap.Load(hwnd)
	if !ok {
		return defWindowProc(hwnd, msg, wParam, lParam)
	}
	w := v.(*Window)

	switch msg {
	case _WM_TEARDOWN:
		releaseDC(hwnd, w.hdc)
		destroyWindow(hwnd)
		return 0
	case _WM_DESTROY:
		postQuitMessage(0)
		return 0
	}
	if w.state.Closed() {
		return defWindowProc(hwnd, msg, wParam, lParam)
	}
	if w.handle(msg, wParam, lParam) {
		return 0
	}
	return defWindowProc(hwnd, msg, wParam, lParam)
}

// handle applies one message and reports whether it was consumed.
func (w *Window) handle(message uint32, wParam, lParam uintptr) (consumed bool) {
	// A panicking callback must not unwind through the window procedure.
	defer func() {
		if err := recover(); err != nil {
			w.log.Error("event dispatch panic recovered", "hwnd", w.hwnd, "error", err)
			consumed = true
		}
	}()

	switch message {
	case _WM_CLOSE:
		w.state.ClearPointer()
		if err := w.Hide(); err != nil && !errors.Is(err, winstate.ErrClosed) {
			w.log.Warn("hide on close request failed", "hwnd", w.hwnd, "error", err)
		}
		return true

	case _WM_PAINT:
		if err := w.Paint(); err != nil {
			w.log.Warn("paint failed", "hwnd", w.hwnd, "error", err)
		}
		return false
	}

	if w.state.Hidden() {
		return false
	}

	switch message {
	case _WM_MOVE:
		w.state.SetPosition(pointFromLParam(lParam))

	case _WM_KEYDOWN, _WM_SYSKEYDOWN:
		w.state.FireKey(keytable.Win32.Lookup(uint32(wParam)), true)
	case _WM_KEYUP, _WM_SYSKEYUP:
		w.state.FireKey(keytable.Win32.Lookup(uint32(wParam)), false)

	case _WM_CHAR:
		if r, ok := w.chars.feed(uint16(wParam)); ok {
			w.state.FireChar(utf8.AppendRune(nil, r))
		}
		return true

	case _WM_MOUSEMOVE:
		// Fold queued motion into the latest position.
		var m msg
		for peekMessage(&m, w.hwnd, _WM_MOUSEMOVE, _WM_MOUSEMOVE, _PM_REMOVE) {
			lParam = m.lParam
		}
		if !w.tracked {
			w.tracked = trackMouseEvent(w.hwnd)
		}
		w.state.SetPointer(pointFromLParam(lParam))
		w.state.FireMouse()

	case _WM_MOUSELEAVE:
		w.tracked = false
		w.state.ClearPointer()
		w.state.FireMouse()

	case _WM_LBUTTONDOWN, _WM_LBUTTONUP:
		w.button(input.ButtonLeft, message == _WM_LBUTTONDOWN)
	case _WM_RBUTTONDOWN, _WM_RBUTTONUP:
		w.button(input.ButtonRight, message == _WM_RBUTTONDOWN)
	case _WM_MBUTTONDOWN, _WM_MBUTTONUP:
		w.button(input.ButtonMiddle, message == _WM_MBUTTONDOWN)

	case _WM_MOUSEWHEEL:
		w.state.AddWheel(wheelNotches(wParam))
		w.state.FireMouse()
	}
	return false
}

func (w *Window) button(b input.Buttons, pressed bool) {
	w.state.SetButton(b, pressed)
	w.state.FireMouse()
}
