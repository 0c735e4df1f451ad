//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

const (
	_CS_HREDRAW = 0x0002
	_CS_VREDRAW = 0x0001
	_CS_OWNDC   = 0x0020

	_CW_USEDEFAULT = -2147483648

	_IDC_ARROW = 32512

	_SM_CXSCREEN = 0
	_SM_CYSCREEN = 1

	_SW_HIDE = 0
	_SW_SHOW = 5

	_SWP_NOSIZE   = 0x0001
	_SWP_NOZORDER = 0x0004

	_TME_LEAVE = 0x00000002

	_BI_RGB         = 0
	_DIB_RGB_COLORS = 0

	_PM_REMOVE = 0x0001

	_WM_DESTROY     = 0x0002
	_WM_MOVE        = 0x0003
	_WM_PAINT       = 0x000F
	_WM_CLOSE       = 0x0010
	_WM_KEYDOWN     = 0x0100
	_WM_KEYUP       = 0x0101
	_WM_CHAR        = 0x0102
	_WM_SYSKEYDOWN  = 0x0104
	_WM_SYSKEYUP    = 0x0105
	_WM_MOUSEMOVE   = 0x0200
	_WM_LBUTTONDOWN = 0x0201
	_WM_LBUTTONUP   = 0x0202
	_WM_RBUTTONDOWN = 0x0204
	_WM_RBUTTONUP   = 0x0205
	_WM_MBUTTONDOWN = 0x0207
	_WM_MBUTTONUP   = 0x0208
	_WM_MOUSEWHEEL  = 0x020A
	_WM_MOUSELEAVE  = 0x02A3
	_WM_USER        = 0x0400

	_WS_OVERLAPPED       = 0x00000000
	_WS_CAPTION          = 0x00C00000
	_WS_SYSMENU          = 0x00080000
	_WS_THICKFRAME       = 0x00040000
	_WS_MINIMIZEBOX      = 0x00020000
	_WS_MAXIMIZEBOX      = 0x00010000
	_WS_OVERLAPPEDWINDOW = _WS_OVERLAPPED | _WS_CAPTION | _WS_SYSMENU | _WS_THICKFRAME |
		_WS_MINIMIZEBOX | _WS_MAXIMIZEBOX
)

// _WM_TEARDOWN asks the window's own thread to destroy it.
const _WM_TEARDOWN = _WM_USER + 0

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cnClsExtra    int32
	cbWndExtra    int32
	hInstance     syscall.Handle
	hIcon         syscall.Handle
	hCursor       syscall.Handle
	hbrBackground syscall.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       syscall.Handle
}

type msg struct {
	hwnd     syscall.Handle
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x, y int32
}

type trackMouseEventInfo struct {
	cbSize      uint32
	dwFlags     uint32
	hwndTrack   syscall.Handle
	dwHoverTime uint32
}

type bitmapInfoHeader struct {
	biSize          uint32
	biWidth         int32
	biHeight        int32
	biPlanes        uint16
	biBitCount      uint16
	biCompression   uint32
	biSizeImage     uint32
	biXPelsPerMeter int32
	biYPelsPerMeter int32
	biClrUsed       uint32
	biClrImportant  uint32
}

type bitmapInfo struct {
	header bitmapInfoHeader
	colors [1]uint32
}

var (
	kernel32          = syscall.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	user32               = syscall.NewLazySystemDLL("user32.dll")
	_AdjustWindowRect    = user32.NewProc("AdjustWindowRect")
	_CreateWindowEx      = user32.NewProc("CreateWindowExW")
	_DefWindowProc       = user32.NewProc("DefWindowProcW")
	_DestroyWindow       = user32.NewProc("DestroyWindow")
	_DispatchMessage     = user32.NewProc("DispatchMessageW")
	_GetDC               = user32.NewProc("GetDC")
	_GetMessage          = user32.NewProc("GetMessageW")
	_GetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	_GetWindowRect       = user32.NewProc("GetWindowRect")
	_LoadCursor          = user32.NewProc("LoadCursorW")
	_PeekMessage         = user32.NewProc("PeekMessageW")
	_PostMessage         = user32.NewProc("PostMessageW")
	_PostQuitMessage     = user32.NewProc("PostQuitMessage")
	_RegisterClassExW    = user32.NewProc("RegisterClassExW")
	_ReleaseDC           = user32.NewProc("ReleaseDC")
	_SetForegroundWindow = user32.NewProc("SetForegroundWindow")
	_SetWindowPos        = user32.NewProc("SetWindowPos")
	_SetWindowText       = user32.NewProc("SetWindowTextW")
	_ShowWindow          = user32.NewProc("ShowWindow")
	_TrackMouseEvent     = user32.NewProc("TrackMouseEvent")
	_TranslateMessage    = user32.NewProc("TranslateMessage")

	gdi32              = syscall.NewLazySystemDLL("gdi32.dll")
	_SetDIBitsToDevice = gdi32.NewProc("SetDIBitsToDevice")
)

func getModuleHandle() (syscall.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(uintptr(0))
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandleW failed: %v", err)
	}
	return syscall.Handle(h), nil
}

func adjustWindowRect(r *rect, dwStyle uint32, bMenu int) {
	_AdjustWindowRect.Call(uintptr(unsafe.Pointer(r)), uintptr(dwStyle), uintptr(bMenu))
}

func createWindowEx(dwExStyle uint32, lpClassName *uint16, lpWindowName *uint16, dwStyle uint32, x, y, w, h int32, hInstance syscall.Handle) (syscall.Handle, error) {
	hwnd, _, err := _CreateWindowEx.Call(
		uintptr(dwExStyle),
		uintptr(unsafe.Pointer(lpClassName)),
		uintptr(unsafe.Pointer(lpWindowName)),
		uintptr(dwStyle),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		0,
		0,
		uintptr(hInstance),
		0)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowEx failed: %v", err)
	}
	return syscall.Handle(hwnd), nil
}

func defWindowProc(hwnd syscall.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := _DefWindowProc.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

func destroyWindow(hwnd syscall.Handle) {
	_DestroyWindow.Call(uintptr(hwnd))
}

func dispatchMessage(m *msg) {
	_DispatchMessage.Call(uintptr(unsafe.Pointer(m)))
}

func getDC(hwnd syscall.Handle) (syscall.Handle, error) {
	hdc, _, err := _GetDC.Call(uintptr(hwnd))
	if hdc == 0 {
		return 0, fmt.Errorf("GetDC failed: %v", err)
	}
	return syscall.Handle(hdc), nil
}

func getMessage(m *msg, hwnd syscall.Handle, wMsgFilterMin, wMsgFilterMax uint32) int32 {
	r, _, _ := _GetMessage.Call(uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(wMsgFilterMin),
		uintptr(wMsgFilterMax))
	return int32(r)
}

func getSystemMetrics(index int32) int {
	r, _, _ := _GetSystemMetrics.Call(uintptr(index))
	return int(int32(r))
}

func getWindowRect(hwnd syscall.Handle) rect {
	var r rect
	_GetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	return r
}

func loadCursor(curID uint16) (syscall.Handle, error) {
	h, _, err := _LoadCursor.Call(0, uintptr(curID))
	if h == 0 {
		return 0, fmt.Errorf("LoadCursorW failed: %v", err)
	}
	return syscall.Handle(h), nil
}

func peekMessage(m *msg, hwnd syscall.Handle, wMsgFilterMin, wMsgFilterMax, wRemoveMsg uint32) bool {
	r, _, _ := _PeekMessage.Call(uintptr(unsafe.Pointer(m)), uintptr(hwnd), uintptr(wMsgFilterMin), uintptr(wMsgFilterMax), uintptr(wRemoveMsg))
	return r != 0
}

func postMessage(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) error {
	r, _, err := _PostMessage.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("PostMessage failed: %v", err)
	}
	return nil
}

func postQuitMessage(exitCode uintptr) {
	_PostQuitMessage.Call(exitCode)
}

func registerClassEx(cls *wndClassEx) (uint16, error) {
	a, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(cls)))
	if a == 0 {
		return 0, fmt.Errorf("RegisterClassExW failed: %v", err)
	}
	return uint16(a), nil
}

func releaseDC(hwnd, hdc syscall.Handle) {
	_ReleaseDC.Call(uintptr(hwnd), uintptr(hdc))
}

func setDIBitsToDevice(hdc syscall.Handle, width, height int, pix *uint32, bmi *bitmapInfo) {
	_SetDIBitsToDevice.Call(uintptr(hdc),
		0, 0, // dst
		uintptr(width), uintptr(height),
		0, 0, // src
		0, uintptr(height), // scan lines
		uintptr(unsafe.Pointer(pix)),
		uintptr(unsafe.Pointer(bmi)),
		_DIB_RGB_COLORS)
}

func setForegroundWindow(hwnd syscall.Handle) {
	_SetForegroundWindow.Call(uintptr(hwnd))
}

func setWindowPos(hwnd syscall.Handle, x, y int32, flags uint32) {
	_SetWindowPos.Call(uintptr(hwnd), 0, uintptr(x), uintptr(y), 0, 0, uintptr(flags))
}

func setWindowText(hwnd syscall.Handle, text string) error {
	p, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	r, _, err := _SetWindowText.Call(uintptr(hwnd), uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return fmt.Errorf("SetWindowTextW failed: %v", err)
	}
	return nil
}

func showWindow(hwnd syscall.Handle, nCmdShow int32) {
	_ShowWindow.Call(uintptr(hwnd), uintptr(nCmdShow))
}

func trackMouseEvent(hwnd syscall.Handle) bool {
	tme := trackMouseEventInfo{
		dwFlags:   _TME_LEAVE,
		hwndTrack: hwnd,
	}
	tme.cbSize = uint32(unsafe.Sizeof(tme))
	r, _, _ := _TrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
	return r != 0
}

func translateMessage(m *msg) {
	_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}
