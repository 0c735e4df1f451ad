package x11

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/fbwin/internal/pixel"
)

// DefaultPollInterval is how often the dispatcher drains the event queue.
const DefaultPollInterval = 8 * time.Millisecond

// ErrDisconnected is returned when the display connection goes away while a
// window is waiting on the server.
var ErrDisconnected = errors.New("x11 connection closed")

// Config holds connection and window settings. Connection-level fields
// (Display, PollInterval, SharedMemory, Logger) are taken from the first
// window that opens a given display.
type Config struct {
	Display      string
	ClassName    string
	PollInterval time.Duration
	SharedMemory bool
	Logger       *slog.Logger
}

// Capabilities are display facts resolved once per connection.
type Capabilities struct {
	Depth           int
	ServerBigEndian bool
	BGR             bool
}

// Connection manages one X11 display connection shared by every window on
// that display. It is reference counted; the last Release tears it down.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	name   string
	screen *xproto.ScreenInfo
	caps   Capabilities
	shm    atomic.Bool
	log    *slog.Logger

	// setupMu serializes window creation and registration.
	setupMu sync.Mutex

	mu      sync.RWMutex
	windows map[xproto.Window]*Window

	keys  *keyboard
	queue eventQueue

	waitMu  sync.Mutex
	waiters map[xproto.Window]*mapWaiter

	interval     time.Duration
	cancel       context.CancelFunc
	closed       chan struct{}
	readerDone   chan struct{}
	dispatchDone chan struct{}

	refs int // guarded by connsMu
}

var (
	connsMu sync.Mutex
	conns   = make(map[string]*Connection)
	// dialing holds a channel per display being opened, closed when the
	// dial finishes.
	dialing = make(map[string]chan struct{})

	// Replaced in tests.
	openDisplay = dial
	startEvents = (*Connection).start
)

// Acquire returns the connection for cfg.Display, opening it and starting
// its event goroutines on first use. The display is dialed without holding
// the registry lock; concurrent callers for the same display wait for that
// dial, callers for other displays do not.
func Acquire(cfg Config) (*Connection, error) {
	name := cfg.Display
	if name == "" {
		name = os.Getenv("DISPLAY")
	}

	connsMu.Lock()
	for {
		if c, ok := conns[name]; ok {
			c.refs++
			connsMu.Unlock()
			return c, nil
		}
		done, ok := dialing[name]
		if !ok {
			break
		}
		connsMu.Unlock()
		<-done
		connsMu.Lock()
	}
	done := make(chan struct{})
	dialing[name] = done
	connsMu.Unlock()

	c, err := openDisplay(name, cfg)

	connsMu.Lock()
	defer connsMu.Unlock()
	delete(dialing, name)
	close(done)
	if err != nil {
		return nil, err
	}
	c.refs = 1
	conns[name] = c
	startEvents(c)
	return c, nil
}

func dial(name string, cfg Config) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open X11 display %q: %w", name, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	c := &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		name:     name,
		screen:   xu.Screen(),
		log:      logger.With("display", name),
		windows:  make(map[xproto.Window]*Window),
		waiters:  make(map[xproto.Window]*mapWaiter),
		interval: interval,
	}

	c.caps, err = resolveCapabilities(xu.Setup(), c.screen)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	// Keyboard and modifier maps are required for keysym lookups.
	keybind.Initialize(xu)
	c.keys = &keyboard{xu: xu}

	if cfg.SharedMemory {
		if err := initSharedMemory(xu); err != nil {
			c.log.Warn("MIT-SHM unavailable, using PutImage", "error", err)
		} else {
			c.shm.Store(true)
		}
	}

	c.log.Debug("x11 connection opened",
		"depth", c.caps.Depth,
		"server_big_endian", c.caps.ServerBigEndian,
		"bgr", c.caps.BGR,
		"shm", c.shm.Load())
	return c, nil
}

func resolveCapabilities(setup *xproto.SetupInfo, screen *xproto.ScreenInfo) (Capabilities, error) {
	caps := Capabilities{
		Depth:           int(screen.RootDepth),
		ServerBigEndian: setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
	}
	if !pixel.ValidDepth(caps.Depth) {
		return caps, fmt.Errorf("%w: screen reports %d bits (only 8, 16, 24 and 32 are managed)",
			pixel.ErrUnsupportedDepth, caps.Depth)
	}
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == screen.RootVisual {
				caps.BGR = v.RedMask < v.BlueMask
			}
		}
	}
	return caps, nil
}

func initSharedMemory(xu *xgbutil.XUtil) error {
	if err := shm.Init(xu.Conn()); err != nil {
		return err
	}
	if _, err := shm.QueryVersion(xu.Conn()).Reply(); err != nil {
		return fmt.Errorf("MIT-SHM version query: %w", err)
	}
	return nil
}

func (c *Connection) start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.closed = make(chan struct{})
	c.readerDone = make(chan struct{})
	c.dispatchDone = make(chan struct{})
	go c.read()
	go c.dispatch(ctx)
}

// Release drops one reference. The last reference stops the dispatcher,
// closes the display and waits for the reader to exit.
func (c *Connection) Release() {
	connsMu.Lock()
	c.refs--
	last := c.refs == 0
	if last {
		delete(conns, c.name)
	}
	connsMu.Unlock()

	if last {
		c.teardown()
	}
}

func (c *Connection) teardown() {
	c.cancel()
	<-c.dispatchDone
	c.XUtil.Conn().Close()
	<-c.readerDone
	c.log.Debug("x11 connection closed")
}

// Capabilities returns the display facts resolved when the connection opened.
func (c *Connection) Capabilities() Capabilities {
	return c.caps
}

// SharedMemory reports whether MIT-SHM is still in use. It is revoked when
// the server refuses an attach.
func (c *Connection) SharedMemory() bool {
	return c.shm.Load()
}

func (c *Connection) revokeSharedMemory(err error) {
	if c.shm.Swap(false) {
		c.log.Warn("MIT-SHM attach refused, falling back to PutImage", "error", err)
	}
}

// ScreenSize returns the default screen's size in pixels.
func (c *Connection) ScreenSize() (width, height int) {
	return int(c.screen.WidthInPixels), int(c.screen.HeightInPixels)
}

func (c *Connection) register(w *Window) {
	c.mu.Lock()
	c.windows[w.id] = w
	c.mu.Unlock()
}

// unregister removes w from dispatch and returns once no delivery to w is
// in flight.
func (c *Connection) unregister(w *Window) {
	c.mu.Lock()
	delete(c.windows, w.id)
	c.mu.Unlock()

	// Dispatch holds dispatchMu for the whole delivery.
	w.dispatchMu.Lock()
	w.dispatchMu.Unlock()
}

func (c *Connection) lookup(id xproto.Window) *Window {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.windows[id]
}
