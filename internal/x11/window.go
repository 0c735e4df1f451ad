package x11

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/fbwin/internal/config"
	"github.com/1broseidon/fbwin/internal/winstate"
)

// viewablePoll is the delay between map state checks after the map handshake.
const viewablePoll = 10 * time.Millisecond

// surface is the server side of a window used by event handling.
type surface interface {
	unmap() error
	present() error
}

// Window is a top-level X11 window backed by a framebuffer.
type Window struct {
	c     *Connection
	id    xproto.Window
	state *winstate.State
	keys  keySource
	fb    *framebuffer
	srv   surface

	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom

	// dispatchMu is held for every event delivery to this window.
	dispatchMu sync.Mutex
}

// Open creates a window on the display named by cfg and shows it. The
// framebuffer size is clamped to the screen.
func Open(cfg Config, width, height int, title string) (*Window, error) {
	c, err := Acquire(cfg)
	if err != nil {
		return nil, err
	}

	sw, sh := c.ScreenSize()
	width, height = min(width, sw), min(height, sh)

	w, err := c.create(cfg, width, height, title)
	if err != nil {
		c.Release()
		return nil, err
	}
	if err := w.Show(); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func (c *Connection) create(cfg Config, width, height int, title string) (*Window, error) {
	c.setupMu.Lock()
	defer c.setupMu.Unlock()

	conn := c.XUtil.Conn()
	id, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	// Value list order must follow mask bit order: CwBackPixel, CwEventMask.
	err = xproto.CreateWindowChecked(
		conn,
		c.screen.RootDepth,
		id,
		c.Root,
		0, 0,
		uint16(width), uint16(height),
		0,
		xproto.WindowClassInputOutput,
		c.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{c.screen.BlackPixel, eventMask},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{
		c:     c,
		id:    id,
		state: winstate.New(width, height, title),
		keys:  c.keys,
	}
	if err := w.decorate(cfg.ClassName, width, height); err != nil {
		xproto.DestroyWindow(conn, id)
		return nil, err
	}

	w.fb, err = newFramebuffer(c, id, width, height)
	if err != nil {
		xproto.DestroyWindow(conn, id)
		return nil, err
	}
	w.srv = xsurface{w: w}

	c.register(w)
	c.log.Debug("window created", "window", id, "width", width, "height", height, "shm", w.fb.seg != nil)
	return w, nil
}

// decorate sets the window manager properties: title, class, delete
// protocol and a fixed size.
func (w *Window) decorate(class string, width, height int) error {
	xu := w.c.XUtil
	if class == "" {
		class = config.DefaultClassName
	}

	if err := w.storeTitle(w.state.Title()); err != nil {
		return err
	}
	if err := icccm.WmClassSet(xu, w.id, &icccm.WmClass{Instance: class, Class: class}); err != nil {
		return fmt.Errorf("failed to set WM_CLASS: %w", err)
	}
	if err := icccm.WmProtocolsSet(xu, w.id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(width),
		MinHeight: uint(height),
		MaxWidth:  uint(width),
		MaxHeight: uint(height),
	}
	if err := icccm.WmNormalHintsSet(xu, w.id, hints); err != nil {
		w.c.log.Debug("failed to set WM_NORMAL_HINTS", "window", w.id, "error", err)
	}
	if err := ewmh.WmPidSet(xu, w.id, uint(os.Getpid())); err != nil {
		w.c.log.Debug("failed to set _NET_WM_PID", "window", w.id, "error", err)
	}

	var err error
	if w.wmProtocols, err = xprop.Atm(xu, "WM_PROTOCOLS"); err != nil {
		return fmt.Errorf("failed to intern WM_PROTOCOLS: %w", err)
	}
	if w.wmDeleteWindow, err = xprop.Atm(xu, "WM_DELETE_WINDOW"); err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}
	return nil
}

func (w *Window) storeTitle(title string) error {
	if err := icccm.WmNameSet(w.c.XUtil, w.id, title); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	if err := ewmh.WmNameSet(w.c.XUtil, w.id, title); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	return nil
}

// State exposes the shared window state.
func (w *Window) State() *winstate.State {
	return w.state
}

// ID returns the X11 window id.
func (w *Window) ID() xproto.Window {
	return w.id
}

// Show maps the window and blocks until the server reports it mapped,
// exposed and viewable. It is a no-op on a visible window.
func (w *Window) Show() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if !w.state.SetHidden(false) {
		return nil
	}
	if err := w.mapAndWait(); err != nil {
		w.state.SetHidden(true)
		return err
	}
	return w.Paint()
}

func (w *Window) mapAndWait() error {
	conn := w.c.XUtil.Conn()

	done := w.c.expectMap(w.id)
	xproto.ConfigureWindow(conn, w.id, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	if err := xproto.MapWindowChecked(conn, w.id).Check(); err != nil {
		w.c.cancelMap(w.id)
		return fmt.Errorf("failed to map window: %w", err)
	}

	select {
	case <-done:
	case <-w.c.closed:
		return ErrDisconnected
	}
	if w.state.Closed() {
		return winstate.ErrClosed
	}

	for {
		attr, err := xproto.GetWindowAttributes(conn, w.id).Reply()
		if err != nil {
			return fmt.Errorf("failed to query window attributes: %w", err)
		}
		if attr.MapState == xproto.MapStateViewable {
			break
		}
		time.Sleep(viewablePoll)
	}

	geom, err := xproto.GetGeometry(conn, xproto.Drawable(w.id)).Reply()
	if err != nil {
		return fmt.Errorf("failed to query window geometry: %w", err)
	}
	w.state.SetPosition(int(geom.X), int(geom.Y))

	if err := w.activate(); err != nil {
		w.c.log.Debug("failed to activate window", "window", w.id, "error", err)
	}
	return nil
}

// activate asks the window manager to focus and raise the window through
// _NET_ACTIVE_WINDOW. The client message is built by hand; the xgbutil ewmh
// request helpers panic on this library version.
func (w *Window) activate() error {
	atom, err := xprop.Atm(w.c.XUtil, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 1 // normal application
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.id,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		w.c.XUtil.Conn(),
		false,
		w.c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// Hide unmaps the window and fires the close callback. It is a no-op on a
// hidden window.
func (w *Window) Hide() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.SetHidden(true) {
		return nil
	}
	err := w.srv.unmap()
	w.state.SetPosition(winstate.Outside, winstate.Outside)
	w.state.FireClose()
	return err
}

// Move relocates the window, showing it first if it is hidden.
func (w *Window) Move(x, y int) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if cx, cy := w.state.Position(); cx != x || cy != y {
		if err := w.Show(); err != nil {
			return err
		}
		xproto.ConfigureWindow(w.c.XUtil.Conn(), w.id,
			xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(int32(x)), uint32(int32(y))})
		w.state.SetPosition(x, y)
	}
	return w.Paint()
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	w.state.SetTitle(title)
	return w.storeTitle(title)
}

// Render converts a packed RGB frame into the framebuffer. Call Paint to
// have the server redraw.
func (w *Window) Render(rgb []byte, width, height int) error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	return w.fb.render(rgb, width, height)
}

// Paint asks the server for an exposure so the dispatcher blits the
// framebuffer. It is a no-op while hidden.
func (w *Window) Paint() error {
	if w.state.Closed() {
		return winstate.ErrClosed
	}
	if w.state.Hidden() || w.fb == nil {
		return nil
	}
	return xproto.ClearAreaChecked(w.c.XUtil.Conn(), true, w.id, 0, 0, 1, 1).Check()
}

// Pixels returns a copy of the native framebuffer.
func (w *Window) Pixels() []uint32 {
	if w.fb == nil {
		return nil
	}
	return w.fb.pixels()
}

// Close destroys the window and releases its framebuffer. The close
// callback fires once more if the window was visible. Close must not be
// called from one of this window's own callbacks.
func (w *Window) Close() error {
	first, wasHidden := w.state.MarkClosed()
	if !first {
		return winstate.ErrClosed
	}

	conn := w.c.XUtil.Conn()
	w.c.cancelMap(w.id)
	xproto.DestroyWindow(conn, w.id)
	w.c.unregister(w)
	if w.fb != nil {
		w.fb.release()
	}
	if _, err := xproto.GetInputFocus(conn).Reply(); err != nil {
		w.c.log.Debug("sync after destroy failed", "window", w.id, "error", err)
	}

	if !wasHidden {
		w.state.FireClose()
	}
	w.c.log.Debug("window destroyed", "window", w.id)
	w.c.Release()
	return nil
}

// xsurface is the live server side of a Window.
type xsurface struct {
	w *Window
}

func (s xsurface) unmap() error {
	return xproto.UnmapWindowChecked(s.w.c.XUtil.Conn(), s.w.id).Check()
}

func (s xsurface) present() error {
	return s.w.fb.blit()
}
