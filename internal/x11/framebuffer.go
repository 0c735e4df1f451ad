package x11

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/fbwin/internal/pixel"
)

// putImageHeader is the fixed size of a core PutImage request in bytes.
const putImageHeader = 24

// framebuffer is the native pixel buffer of one window. With MIT-SHM the
// pixels live in a segment the server reads directly; otherwise they are a
// plain slice sent with PutImage.
type framebuffer struct {
	mu sync.Mutex

	c      *Connection
	win    xproto.Window
	gc     xproto.Gcontext
	width  int
	height int
	depth  byte
	layout pixel.Layout
	// format is non-nil when frames cannot be converted for this visual.
	format error

	pix   []uint32
	seg   *sysvSegment
	segID shm.Seg
}

func newFramebuffer(c *Connection, win xproto.Window, width, height int) (*framebuffer, error) {
	conn := c.XUtil.Conn()

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate graphics context id: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(win), 0, nil).Check(); err != nil {
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	caps := c.Capabilities()
	fb := &framebuffer{
		c:      c,
		win:    win,
		gc:     gc,
		width:  width,
		height: height,
		depth:  byte(caps.Depth),
		layout: pixel.LayoutFor(caps.ServerBigEndian),
		format: pixel.CheckFormat(caps.Depth, caps.BGR),
	}

	fb.allocate(fb.attach)
	return fb, nil
}

// allocate backs the buffer through attach while the connection still uses
// MIT-SHM. A refused attach revokes shared memory for the connection and the
// buffer becomes a plain slice sent with PutImage.
func (fb *framebuffer) allocate(attach func() error) {
	if fb.c.SharedMemory() {
		if err := attach(); err != nil {
			fb.c.revokeSharedMemory(err)
		}
	}
	if fb.pix == nil {
		fb.pix = make([]uint32, fb.width*fb.height)
	}
}

// attach backs the buffer with a shared memory segment known to the server.
func (fb *framebuffer) attach() error {
	n := fb.width * fb.height
	seg, err := createSegment(n * 4)
	if err != nil {
		return err
	}

	conn := fb.c.XUtil.Conn()
	id, err := shm.NewSegId(conn)
	if err == nil {
		err = shm.AttachChecked(conn, id, uint32(seg.id), false).Check()
	}
	if err != nil {
		_ = seg.detach()
		_ = seg.markRemoved()
		return err
	}

	// Both sides are attached; the kernel frees the segment after the last detach.
	if err := seg.markRemoved(); err != nil {
		fb.c.log.Debug("failed to mark shm segment for removal", "error", err)
	}

	fb.seg = seg
	fb.segID = id
	fb.pix = unsafe.Slice((*uint32)(unsafe.Pointer(&seg.data[0])), n)
	return nil
}

// render converts a packed RGB frame into the buffer.
func (fb *framebuffer) render(rgb []byte, width, height int) error {
	if fb.format != nil {
		return fb.format
	}
	if err := pixel.CheckBounds(width, height, fb.width, fb.height); err != nil {
		return err
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	return pixel.Convert(fb.pix, rgb, width, height, fb.layout)
}

// blit copies the buffer to the window and waits for the server to finish
// reading it before releasing the buffer lock.
func (fb *framebuffer) blit() error {
	if fb.format != nil {
		return nil
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.pix == nil {
		return nil
	}

	conn := fb.c.XUtil.Conn()
	if fb.seg != nil {
		shm.PutImage(conn, xproto.Drawable(fb.win), fb.gc,
			uint16(fb.width), uint16(fb.height), // total
			0, 0, // src
			uint16(fb.width), uint16(fb.height), // size
			0, 0, // dst
			fb.depth, xproto.ImageFormatZPixmap, 0, fb.segID, 0)
	} else {
		fb.putImage()
	}

	if _, err := xproto.GetInputFocus(conn).Reply(); err != nil {
		return fmt.Errorf("blit round trip: %w", err)
	}
	return nil
}

// putImage sends the buffer in row bands that fit the server's maximum
// request length.
func (fb *framebuffer) putImage() {
	conn := fb.c.XUtil.Conn()
	data := unsafe.Slice((*byte)(unsafe.Pointer(&fb.pix[0])), len(fb.pix)*4)
	stride := fb.width * 4

	rows := bandRows(int(fb.c.XUtil.Setup().MaximumRequestLength), stride)

	for y := 0; y < fb.height; y += rows {
		n := min(rows, fb.height-y)
		xproto.PutImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(fb.win), fb.gc,
			uint16(fb.width), uint16(n), 0, int16(y), 0, fb.depth,
			data[y*stride:(y+n)*stride])
	}
}

// bandRows returns how many rows of stride bytes fit in one PutImage request
// when the server accepts maxRequestLength 4-byte units. It is at least one;
// a single row wider than the limit is sent anyway and the server rejects it.
func bandRows(maxRequestLength, stride int) int {
	maxBytes := maxRequestLength*4 - putImageHeader
	return max(maxBytes/stride, 1)
}

// pixels returns a copy of the native buffer.
func (fb *framebuffer) pixels() []uint32 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]uint32(nil), fb.pix...)
}

// release detaches shared memory and frees server resources.
func (fb *framebuffer) release() {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	conn := fb.c.XUtil.Conn()
	if fb.seg != nil {
		shm.Detach(conn, fb.segID)
		if err := fb.seg.detach(); err != nil {
			fb.c.log.Debug("shmdt failed", "error", err)
		}
		fb.seg = nil
	}
	fb.pix = nil
	xproto.FreeGC(conn, fb.gc)
}
