package x11

import (
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// keySource answers the keyboard questions event handling needs.
type keySource interface {
	// Keysyms returns the unshifted and shifted keysyms of a keycode.
	Keysyms(code xproto.Keycode) (lower, upper xproto.Keysym)
	// Held reports whether the keycode is currently down.
	Held(code xproto.Keycode) bool
}

// keyboard reads the server's keyboard mapping through keybind. The mapping
// is replaced by the reader on MappingNotify while the dispatcher reads it.
type keyboard struct {
	mu sync.RWMutex
	xu *xgbutil.XUtil
}

func (k *keyboard) refresh() {
	keyMap, modMap := keybind.MapsGet(k.xu)
	k.mu.Lock()
	keybind.KeyMapSet(k.xu, keyMap)
	keybind.ModMapSet(k.xu, modMap)
	k.mu.Unlock()
}

func (k *keyboard) Keysyms(code xproto.Keycode) (lower, upper xproto.Keysym) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	lower = keybind.KeysymGet(k.xu, code, 0)
	upper = keybind.KeysymGet(k.xu, code, 1)
	return lower, upper
}

func (k *keyboard) Held(code xproto.Keycode) bool {
	reply, err := xproto.QueryKeymap(k.xu.Conn()).Reply()
	if err != nil {
		return false
	}
	return keyDown(reply.Keys, code)
}

// keyDown tests a keycode in a 32-byte QueryKeymap bit vector.
func keyDown(keys []byte, code xproto.Keycode) bool {
	i := int(code) / 8
	if i >= len(keys) {
		return false
	}
	return keys[i]>>(uint(code)%8)&1 != 0
}

// Keysyms outside the Latin-1 block that still produce a character.
const (
	xkBackSpace   = 0xff08
	xkTab         = 0xff09
	xkReturn      = 0xff0d
	xkEscape      = 0xff1b
	xkKPSpace     = 0xff80
	xkKPTab       = 0xff89
	xkKPEnter     = 0xff8d
	xkKPMultiply  = 0xffaa
	xkKPAdd       = 0xffab
	xkKPSeparator = 0xffac
	xkKPSubtract  = 0xffad
	xkKPDecimal   = 0xffae
	xkKPDivide    = 0xffaf
	xkKP0         = 0xffb0
	xkKP9         = 0xffb9
	xkKPEqual     = 0xffbd
	xkDelete      = 0xffff
)

func isKeypad(sym xproto.Keysym) bool {
	return sym >= xkKPSpace && sym <= xkKPEqual
}

func isLowerLetter(sym xproto.Keysym) bool {
	return (sym >= 'a' && sym <= 'z') || (sym >= 0xe0 && sym <= 0xfe && sym != 0xf7)
}

// resolveKey returns the keysym that identifies the physical key and the
// keysym that the modifier state composes into a character. Identity uses
// the unshifted column, except keypad keys with NumLock (Mod2) active.
func resolveKey(keys keySource, code xproto.Keycode, state uint16) (ident, composed xproto.Keysym) {
	lower, upper := keys.Keysyms(code)
	if upper == 0 {
		upper = lower
		if isLowerLetter(lower) {
			upper = lower - 0x20
		}
	}

	if isKeypad(upper) && state&xproto.ModMask2 != 0 {
		return upper, upper
	}

	shift := state&xproto.ModMaskShift != 0
	lock := state&xproto.ModMaskLock != 0 && isLowerLetter(lower)
	if shift != lock {
		return lower, upper
	}
	return lower, lower
}

// latin1 maps a keysym to the Latin-1 code point it types, if any.
func latin1(sym xproto.Keysym, state uint16) (rune, bool) {
	var r rune
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		r = rune(sym)
	case sym >= xkKP0 && sym <= xkKP9:
		r = '0' + rune(sym-xkKP0)
	default:
		switch sym {
		case xkBackSpace:
			r = '\b'
		case xkTab, xkKPTab:
			r = '\t'
		case xkReturn, xkKPEnter:
			r = '\r'
		case xkEscape:
			r = 0x1b
		case xkDelete:
			r = 0x7f
		case xkKPSpace:
			r = ' '
		case xkKPMultiply:
			r = '*'
		case xkKPAdd:
			r = '+'
		case xkKPSeparator:
			r = ','
		case xkKPSubtract:
			r = '-'
		case xkKPDecimal:
			r = '.'
		case xkKPDivide:
			r = '/'
		case xkKPEqual:
			r = '='
		default:
			return 0, false
		}
	}

	if state&xproto.ModMaskControl != 0 && ((r >= '@' && r <= '~') || r == ' ') {
		r &= 0x1f
	}
	if r == 0 {
		return 0, false
	}
	return r, true
}

// encodeChar returns the UTF-8 encoding of a Latin-1 code point: one byte
// below 0x80, two bytes above.
func encodeChar(r rune) []byte {
	return utf8.AppendRune(make([]byte, 0, 2), r)
}
