// Package input defines the platform-neutral key and mouse button values
// reported to window callbacks.
package input

import "fmt"

// Key identifies a physical key. The ordering is stable and used as an index
// into the per-platform native key tables.
type Key int

const (
	KeyEscape Key = iota
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPause

	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyBackspace
	KeyInsert
	KeyHome
	KeyPageUp

	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyDelete
	KeyEnd
	KeyPageDown

	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyEnter

	KeyShiftLeft
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyShiftRight
	KeyArrowUp

	KeyCtrlLeft
	KeyAppLeft
	KeyAlt
	KeySpace
	KeyAltGr
	KeyAppRight
	KeyMenu
	KeyCtrlRight
	KeyArrowLeft
	KeyArrowDown
	KeyArrowRight

	KeyPad0
	KeyPad1
	KeyPad2
	KeyPad3
	KeyPad4
	KeyPad5
	KeyPad6
	KeyPad7
	KeyPad8
	KeyPad9
	KeyPadAdd
	KeyPadSub
	KeyPadMul
	KeyPadDiv

	// KeyCount is the number of keys; it is not a key itself.
	KeyCount
)

var keyNames = [KeyCount]string{
	"Escape", "F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12", "Pause",
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "Backspace", "Insert", "Home", "PageUp",
	"Tab", "Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "Delete", "End", "PageDown",
	"CapsLock", "A", "S", "D", "F", "G", "H", "J", "K", "L", "Enter",
	"ShiftLeft", "Z", "X", "C", "V", "B", "N", "M", "ShiftRight", "ArrowUp",
	"CtrlLeft", "AppLeft", "Alt", "Space", "AltGr", "AppRight", "Menu", "CtrlRight", "ArrowLeft", "ArrowDown", "ArrowRight",
	"Pad0", "Pad1", "Pad2", "Pad3", "Pad4", "Pad5", "Pad6", "Pad7", "Pad8", "Pad9", "PadAdd", "PadSub", "PadMul", "PadDiv",
}

// Valid reports whether k names a key.
func (k Key) Valid() bool {
	return k >= 0 && k < KeyCount
}

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey returns the key whose String form is name.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}
