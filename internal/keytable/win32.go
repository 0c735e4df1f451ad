package keytable

// Win32 virtual-key codes.
const (
	vkBack     = 0x08
	vkTab      = 0x09
	vkReturn   = 0x0d
	vkShift    = 0x10
	vkControl  = 0x11
	vkPause    = 0x13
	vkCapital  = 0x14
	vkEscape   = 0x1b
	vkSpace    = 0x20
	vkPrior    = 0x21
	vkNext     = 0x22
	vkEnd      = 0x23
	vkHome     = 0x24
	vkLeft     = 0x25
	vkUp       = 0x26
	vkRight    = 0x27
	vkDown     = 0x28
	vkInsert   = 0x2d
	vkDelete   = 0x2e
	vkLWin     = 0x5b
	vkRWin     = 0x5c
	vkApps     = 0x5d
	vkNumpad0  = 0x60
	vkMultiply = 0x6a
	vkAdd      = 0x6b
	vkSubtract = 0x6d
	vkDivide   = 0x6f
	vkF1       = 0x70
	vkLMenu    = 0xa4
)

// Win32 is the virtual-key table. Left and right modifier keys share a code,
// so Lookup may return more than one key.
var Win32 = Table{
	vkEscape, vkF1, vkF1 + 1, vkF1 + 2, vkF1 + 3, vkF1 + 4, vkF1 + 5, vkF1 + 6, vkF1 + 7, vkF1 + 8, vkF1 + 9, vkF1 + 10, vkF1 + 11, vkPause,
	'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', vkBack, vkInsert, vkHome, vkPrior,
	vkTab, 'Q', 'W', 'E', 'R', 'T', 'Y', 'U', 'I', 'O', 'P', vkDelete, vkEnd, vkNext,
	vkCapital, 'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L', vkReturn,
	vkShift, 'Z', 'X', 'C', 'V', 'B', 'N', 'M', vkShift, vkUp,
	vkControl, vkLWin, vkLMenu, vkSpace, vkControl, vkRWin, vkApps, vkControl, vkLeft, vkDown, vkRight,
	vkNumpad0, vkNumpad0 + 1, vkNumpad0 + 2, vkNumpad0 + 3, vkNumpad0 + 4, vkNumpad0 + 5, vkNumpad0 + 6, vkNumpad0 + 7, vkNumpad0 + 8, vkNumpad0 + 9, vkAdd, vkSubtract, vkMultiply, vkDivide,
}
