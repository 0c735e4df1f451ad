package keytable

// X11 keysyms, named after their XK_ definitions.
const (
	xkEscape    = 0xff1b
	xkF1        = 0xffbe
	xkPause     = 0xff13
	xkBackSpace = 0xff08
	xkTab       = 0xff09
	xkReturn    = 0xff0d
	xkInsert    = 0xff63
	xkHome      = 0xff50
	xkPageUp    = 0xff55
	xkPageDown  = 0xff56
	xkEnd       = 0xff57
	xkDelete    = 0xffff
	xkCapsLock  = 0xffe5
	xkShiftL    = 0xffe1
	xkShiftR    = 0xffe2
	xkControlL  = 0xffe3
	xkControlR  = 0xffe4
	xkAltL      = 0xffe9
	xkAltR      = 0xffea
	xkSuperL    = 0xffeb
	xkSuperR    = 0xffec
	xkMenu      = 0xff67
	xkLeft      = 0xff51
	xkUp        = 0xff52
	xkRight     = 0xff53
	xkDown      = 0xff54
	xkKP0       = 0xffb0
	xkKPMul     = 0xffaa
	xkKPAdd     = 0xffab
	xkKPSub     = 0xffad
	xkKPDiv     = 0xffaf
)

// X11 is the keysym table. Letters use the lowercase keysym, which is what
// column 0 of the keyboard mapping reports.
var X11 = Table{
	xkEscape, xkF1, xkF1 + 1, xkF1 + 2, xkF1 + 3, xkF1 + 4, xkF1 + 5, xkF1 + 6, xkF1 + 7, xkF1 + 8, xkF1 + 9, xkF1 + 10, xkF1 + 11, xkPause,
	'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', xkBackSpace, xkInsert, xkHome, xkPageUp,
	xkTab, 'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', xkDelete, xkEnd, xkPageDown,
	xkCapsLock, 'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', xkReturn,
	xkShiftL, 'z', 'x', 'c', 'v', 'b', 'n', 'm', xkShiftR, xkUp,
	xkControlL, xkSuperL, xkAltL, ' ', xkAltR, xkSuperR, xkMenu, xkControlR, xkLeft, xkDown, xkRight,
	xkKP0, xkKP0 + 1, xkKP0 + 2, xkKP0 + 3, xkKP0 + 4, xkKP0 + 5, xkKP0 + 6, xkKP0 + 7, xkKP0 + 8, xkKP0 + 9, xkKPAdd, xkKPSub, xkKPMul, xkKPDiv,
}
