package mcp

// WindowRef addresses a window opened through this server.
type WindowRef struct {
	ID int `json:"id" jsonschema:"required,Window id returned by open_window"`
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Width  int    `json:"width" jsonschema:"required,Framebuffer width in pixels (clamped to the screen)"`
	Height int    `json:"height" jsonschema:"required,Framebuffer height in pixels (clamped to the screen)"`
	Title  string `json:"title,omitempty" jsonschema:"Window title"`
}

// FillWindowInput is the input for the fill_window tool.
type FillWindowInput struct {
	ID      int    `json:"id" jsonschema:"required,Window id returned by open_window"`
	Pattern string `json:"pattern,omitempty" jsonschema:"solid (default), gradient or noise"`
	R       uint8  `json:"r,omitempty" jsonschema:"Red component for solid fills"`
	G       uint8  `json:"g,omitempty" jsonschema:"Green component for solid fills"`
	B       uint8  `json:"b,omitempty" jsonschema:"Blue component for solid fills"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID int `json:"id" jsonschema:"required,Window id returned by open_window"`
	X  int `json:"x" jsonschema:"required,Screen x of the client area"`
	Y  int `json:"y" jsonschema:"required,Screen y of the client area"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	ID    int    `json:"id" jsonschema:"required,Window id returned by open_window"`
	Title string `json:"title" jsonschema:"required,New window title"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// MouseInfo is the last known pointer state of a window.
type MouseInfo struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	Buttons int `json:"buttons"`
	Wheel   int `json:"wheel"`
}

// WindowInfo describes one window.
type WindowInfo struct {
	ID     int       `json:"id"`
	Title  string    `json:"title"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Hidden bool      `json:"hidden"`
	Mouse  MouseInfo `json:"mouse"`
	Closes int       `json:"closes"`
}

// WindowStateOutput is the output for the window_state tool.
type WindowStateOutput struct {
	Window WindowInfo `json:"window"`
	// Events holds the most recent input events, oldest first.
	Events []string `json:"events"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	ID     int  `json:"id"`
	Closed bool `json:"closed"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}
