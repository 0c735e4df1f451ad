package mcp

import (
	"context"
	"fmt"
	"math/rand"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/fbwin"
)

// Fill patterns accepted by fill_window.
const (
	PatternSolid    = "solid"
	PatternGradient = "gradient"
	PatternNoise    = "noise"
)

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, WindowInfo, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, WindowInfo{}, fmt.Errorf("width and height must be > 0")
	}

	win, err := fbwin.New(args.Width, args.Height, args.Title, s.opts...)
	if err != nil {
		return nil, WindowInfo{}, fmt.Errorf("open window: %w", err)
	}
	m := s.add(win)
	m.watch()

	s.log.Info("window opened", "id", m.id, "title", args.Title)
	return nil, m.info(), nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	m, ok := s.remove(args.ID)
	if !ok {
		return nil, CloseWindowOutput{ID: args.ID}, fmt.Errorf("no window with id %d", args.ID)
	}
	if err := m.win.Close(); err != nil {
		return nil, CloseWindowOutput{ID: args.ID}, fmt.Errorf("close window %d: %w", args.ID, err)
	}

	s.log.Info("window closed", "id", args.ID)
	return nil, CloseWindowOutput{ID: args.ID, Closed: true}, nil
}

func (s *Server) handleFillWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FillWindowInput) (*mcpsdk.CallToolResult, WindowInfo, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowInfo{}, err
	}

	width, height := m.win.Size()
	frame, err := buildFrame(args, width, height)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	if err := m.win.Render(frame, width, height); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("render window %d: %w", args.ID, err)
	}
	if err := m.win.Paint(); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("paint window %d: %w", args.ID, err)
	}
	return nil, m.info(), nil
}

// buildFrame returns a packed RGB frame of width x height for a fill request.
func buildFrame(args FillWindowInput, width, height int) ([]byte, error) {
	frame := make([]byte, width*height*3)
	switch args.Pattern {
	case "", PatternSolid:
		for i := 0; i < len(frame); i += 3 {
			frame[i], frame[i+1], frame[i+2] = args.R, args.G, args.B
		}
	case PatternGradient:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				i := (y*width + x) * 3
				frame[i] = byte(x * 255 / max(width-1, 1))
				frame[i+1] = byte(y * 255 / max(height-1, 1))
				frame[i+2] = 0x80
			}
		}
	case PatternNoise:
		for i := range frame {
			frame[i] = byte(rand.Intn(256))
		}
	default:
		return nil, fmt.Errorf("unknown pattern %q (want solid, gradient or noise)", args.Pattern)
	}
	return frame, nil
}

func (s *Server) handleShowWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, WindowInfo, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	if err := m.win.Show(); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("show window %d: %w", args.ID, err)
	}
	return nil, m.info(), nil
}

func (s *Server) handleHideWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, WindowInfo, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	if err := m.win.Hide(); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("hide window %d: %w", args.ID, err)
	}
	return nil, m.info(), nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowInfo, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	if err := m.win.Move(args.X, args.Y); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("move window %d: %w", args.ID, err)
	}
	return nil, m.info(), nil
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, WindowInfo, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowInfo{}, err
	}
	if err := m.win.SetTitle(args.Title); err != nil {
		return nil, WindowInfo{}, fmt.Errorf("set title of window %d: %w", args.ID, err)
	}
	return nil, m.info(), nil
}

func (s *Server) handleWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRef) (*mcpsdk.CallToolResult, WindowStateOutput, error) {
	m, err := s.lookup(args.ID)
	if err != nil {
		return nil, WindowStateOutput{}, err
	}

	m.mu.Lock()
	events := append([]string{}, m.events...)
	m.mu.Unlock()

	return nil, WindowStateOutput{Window: m.info(), Events: events}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows := s.snapshot()
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, m := range windows {
		out.Windows = append(out.Windows, m.info())
	}
	return nil, out, nil
}
