// Package pixel converts packed 24-bit RGB frames into 32-bit native pixels.
package pixel

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Layout selects how an RGB triplet is packed into a native pixel.
type Layout int

const (
	// LayoutNative packs R<<16 | G<<8 | B. Used when the display server's
	// image byte order matches the host's.
	LayoutNative Layout = iota
	// LayoutSwapped packs R<<24 | G<<16 | B<<8. Used when the byte orders
	// differ. This is a shift, not a byte reversal, and is kept bit-exact:
	// the low byte stays zero and a server in the other byte order decodes
	// the word as 0x00BBGGRR.
	LayoutSwapped
)

func (l Layout) String() string {
	switch l {
	case LayoutNative:
		return "native"
	case LayoutSwapped:
		return "swapped"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

var (
	// ErrFrameTooLarge is returned when a frame exceeds the buffer dimensions.
	ErrFrameTooLarge = errors.New("frame larger than window buffer")
	// ErrShortFrame is returned when the RGB input holds fewer than width*height triplets.
	ErrShortFrame = errors.New("rgb data shorter than width*height*3")
	// ErrUnsupportedDepth is returned for screen depths the converter cannot target.
	ErrUnsupportedDepth = errors.New("unsupported screen depth")
	// ErrBGRVisual is returned when the native visual stores blue in the high bits.
	ErrBGRVisual = errors.New("BGR visuals are not supported")
)

// HostBigEndian reports whether the host stores integers most significant byte first.
func HostBigEndian() bool {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	return buf[0] == 0
}

// LayoutFor returns the layout to use for a server with the given image byte order.
func LayoutFor(serverBigEndian bool) Layout {
	if serverBigEndian == HostBigEndian() {
		return LayoutNative
	}
	return LayoutSwapped
}

// Pack converts a single RGB triplet.
func Pack(r, g, b byte, layout Layout) uint32 {
	if layout == LayoutSwapped {
		return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8
	}
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Convert writes width*height pixels from rgb into dst, sequentially from
// index 0. Frames smaller than the buffer are not re-strided.
func Convert(dst []uint32, rgb []byte, width, height int, layout Layout) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrFrameTooLarge, width, height)
	}
	n := width * height
	if n > len(dst) {
		return fmt.Errorf("%w: %dx%d needs %d pixels, buffer holds %d", ErrFrameTooLarge, width, height, n, len(dst))
	}
	if len(rgb) < n*3 {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrShortFrame, len(rgb), n*3)
	}

	if layout == LayoutSwapped {
		for i := 0; i < n; i++ {
			p := rgb[i*3 : i*3+3 : i*3+3]
			dst[i] = uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8
		}
		return nil
	}
	for i := 0; i < n; i++ {
		p := rgb[i*3 : i*3+3 : i*3+3]
		dst[i] = uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	}
	return nil
}

// CheckBounds validates a frame size against fixed buffer dimensions.
func CheckBounds(width, height, maxWidth, maxHeight int) error {
	if width < 0 || height < 0 || width > maxWidth || height > maxHeight {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrFrameTooLarge, width, height, maxWidth, maxHeight)
	}
	return nil
}

// ValidDepth reports whether a display depth is one a connection may open with.
func ValidDepth(depth int) bool {
	switch depth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// CheckFormat reports whether frames can be converted for a visual. Only
// 24 and 32 bit RGB visuals are rendered to.
func CheckFormat(depth int, bgr bool) error {
	if bgr {
		return ErrBGRVisual
	}
	if depth != 24 && depth != 32 {
		return fmt.Errorf("%w: %d bits", ErrUnsupportedDepth, depth)
	}
	return nil
}
