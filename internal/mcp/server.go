// Package mcp exposes fbwin windows as Model Context Protocol tools so an
// agent can open, paint and inspect windows over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/fbwin"
	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/config"
)

const (
	ServerName    = "fbwin"
	ServerVersion = "0.1.0"
)

// maxEvents bounds the input history kept per window.
const maxEvents = 32

// managedWindow is a window plus the input history its callbacks record.
type managedWindow struct {
	id  int
	win *fbwin.Window

	mu     sync.Mutex
	events []string
	closes int
}

func (m *managedWindow) record(ev string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == maxEvents {
		copy(m.events, m.events[1:])
		m.events = m.events[:maxEvents-1]
	}
	m.events = append(m.events, ev)
}

func (m *managedWindow) watch() {
	m.win.OnKey(func(k input.Key, pressed bool) {
		state := "up"
		if pressed {
			state = "down"
		}
		m.record(fmt.Sprintf("key %s %s", k, state))
	})
	m.win.OnChar(func(b []byte) {
		m.record(fmt.Sprintf("char %q", b))
	})
	m.win.OnMouse(func(x, y int, buttons input.Buttons, wheel int) {
		m.record(fmt.Sprintf("mouse %d,%d buttons=%s wheel=%d", x, y, buttons, wheel))
	})
	m.win.OnClose(func() {
		m.mu.Lock()
		m.closes++
		m.mu.Unlock()
		m.record("close")
	})
}

func (m *managedWindow) info() WindowInfo {
	w := m.win
	width, height := w.Size()
	x, y := w.Position()
	mx, my, buttons, wheel := w.Mouse()

	m.mu.Lock()
	closes := m.closes
	m.mu.Unlock()

	return WindowInfo{
		ID:     m.id,
		Title:  w.Title(),
		Width:  width,
		Height: height,
		X:      x,
		Y:      y,
		Hidden: w.Hidden(),
		Mouse:  MouseInfo{X: mx, Y: my, Buttons: int(buttons), Wheel: wheel},
		Closes: closes,
	}
}

// Server is the MCP server for fbwin.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	log       *slog.Logger
	opts      []fbwin.Option

	mu      sync.Mutex
	windows map[int]*managedWindow
	nextID  int
}

// NewServer creates a server that opens windows with cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		config:  cfg,
		log:     logger,
		opts:    []fbwin.Option{fbwin.WithConfig(cfg), fbwin.WithLogger(logger)},
		windows: make(map[int]*managedWindow),
		nextID:  1,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close destroys every window the server opened.
func (s *Server) Close() error {
	s.mu.Lock()
	windows := make([]*managedWindow, 0, len(s.windows))
	for id, m := range s.windows {
		windows = append(windows, m)
		delete(s.windows, id)
	}
	s.mu.Unlock()

	for _, m := range windows {
		if err := m.win.Close(); err != nil {
			s.log.Debug("close window", "id", m.id, "error", err)
		}
	}
	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a visible window with a width x height framebuffer (clamped to the screen). Returns the window id used by every other tool.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Destroy a window. The id becomes invalid.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fill_window",
		Description: "Render a full frame into a window and paint it. Patterns: solid (uses r, g, b), gradient, noise.",
	}, s.handleFillWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_window",
		Description: "Show a hidden window and repaint it.",
	}, s.handleShowWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_window",
		Description: "Hide a window. Counts as a close event for the window.",
	}, s.handleHideWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window's client area to screen position x, y. A hidden window is shown.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Replace a window's title.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_state",
		Description: "Report a window's geometry, visibility, pointer state and its most recent input events.",
	}, s.handleWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every open window.",
	}, s.handleListWindows)
}

func (s *Server) lookup(id int) (*managedWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.windows[id]
	if !ok {
		return nil, fmt.Errorf("no window with id %d", id)
	}
	return m, nil
}

func (s *Server) add(win *fbwin.Window) *managedWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &managedWindow{id: s.nextID, win: win}
	s.nextID++
	s.windows[m.id] = m
	return m
}

func (s *Server) remove(id int) (*managedWindow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.windows[id]
	if ok {
		delete(s.windows, id)
	}
	return m, ok
}

func (s *Server) snapshot() []*managedWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*managedWindow, 0, len(s.windows))
	for _, m := range s.windows {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})
	return out
}
