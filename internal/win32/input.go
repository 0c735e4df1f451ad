// Package win32 implements windows on the Win32 API. Each window owns a
// goroutine locked to its OS thread that runs the message loop; the
// framebuffer is a top-down 32-bit DIB drawn with SetDIBitsToDevice.
//
// The message decoding helpers in this file are platform independent.
package win32

import (
	"log/slog"
	"unicode"
	"unicode/utf16"
)

// wheelDelta is one notch of WM_MOUSEWHEEL.
const wheelDelta = 120

// Config holds window settings.
type Config struct {
	ClassName string
	Logger    *slog.Logger
}

// rect mirrors RECT.
type rect struct {
	left, top, right, bottom int32
}

// pointFromLParam unpacks the signed client coordinates of a mouse or move
// message.
func pointFromLParam(lParam uintptr) (x, y int) {
	return int(int16(lParam & 0xffff)), int(int16((lParam >> 16) & 0xffff))
}

// wheelNotches returns the signed notch count of a WM_MOUSEWHEEL wParam.
// Positive is away from the user.
func wheelNotches(wParam uintptr) int {
	return int(int16((wParam>>16)&0xffff)) / wheelDelta
}

// frameBorders derives the frame thickness from a client rect of width x
// height expanded by AdjustWindowRect: side is the left/right border and top
// the caption plus top border.
func frameBorders(adjusted rect, width, height int) (side, top int) {
	side = (int(adjusted.right-adjusted.left) - width) / 2
	top = int(adjusted.bottom-adjusted.top) - height - side
	return side, top
}

// charDecoder joins the UTF-16 code units of WM_CHAR into runes.
type charDecoder struct {
	high uint16
}

// feed consumes one code unit. It returns false while a surrogate pair is
// incomplete or for NUL.
func (d *charDecoder) feed(unit uint16) (rune, bool) {
	switch {
	case utf16.IsSurrogate(rune(unit)) && unit < 0xdc00:
		d.high = unit
		return 0, false
	case utf16.IsSurrogate(rune(unit)):
		high := d.high
		d.high = 0
		if high == 0 {
			return 0, false
		}
		r := utf16.DecodeRune(rune(high), rune(unit))
		return r, r != unicode.ReplacementChar
	}
	d.high = 0
	return rune(unit), unit != 0
}
