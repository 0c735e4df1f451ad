package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/1broseidon/fbwin"
	"github.com/1broseidon/fbwin/input"
)

// demoFrameDelay is the pause between frames.
const demoFrameDelay = 20 * time.Millisecond

func runDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/fbwin/config.yaml)")
	backend := fs.String("backend", "", "Window backend: auto, x11, win32 or headless")
	display := fs.String("display", "", "X11 display name (default: $DISPLAY)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fbwin demo [--path PATH] [--backend NAME] [--display NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open two windows streaming random noise.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keys (first window):")
		fmt.Fprintln(os.Stderr, "  Esc, Q    Quit")
		fmt.Fprintln(os.Stderr, "  H         Hide the second window")
		fmt.Fprintln(os.Stderr, "  S         Show the second window")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := newLogger(os.Stderr, res.Config.Level())

	opts := []fbwin.Option{fbwin.WithConfig(res.Config), fbwin.WithLogger(logger)}
	if *backend != "" {
		opts = append(opts, fbwin.WithBackend(*backend))
	}
	if *display != "" {
		opts = append(opts, fbwin.WithDisplay(*display))
	}

	disp1, err := fbwin.New(1000, 800, "Disp1", opts...)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer disp1.Close()

	disp2, err := fbwin.New(500, 800, "", opts...)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer disp2.Close()
	if err := disp2.SetTitle("Disp2"); err != nil {
		logger.Warn("failed to set title", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var going atomic.Bool
	going.Store(true)

	disp1.OnKey(func(key input.Key, pressed bool) {
		if !pressed {
			return
		}
		switch key {
		case input.KeyEscape, input.KeyQ:
			going.Store(false)
		case input.KeyH:
			if err := disp2.Hide(); err != nil {
				logger.Warn("hide failed", "error", err)
			}
		case input.KeyS:
			if err := disp2.Show(); err != nil {
				logger.Warn("show failed", "error", err)
			}
		}
	})
	disp1.OnMouse(func(x, y int, buttons input.Buttons, wheel int) {
		fmt.Printf("%d %d %s %d\n", x, y, buttons, wheel)
	})
	disp1.OnClose(func() { going.Store(false) })

	w1, h1 := disp1.Size()
	w2, h2 := disp2.Size()
	img1 := make([]byte, w1*h1*3)
	img2 := make([]byte, w2*h2*3)

	for going.Load() && ctx.Err() == nil {
		noise(img1)
		noise(img2)

		if err := present(disp1, img1, w1, h1); err != nil {
			logger.Error("render failed", "window", "Disp1", "error", err)
			return 1
		}
		if err := present(disp2, img2, w2, h2); err != nil {
			logger.Error("render failed", "window", "Disp2", "error", err)
			return 1
		}

		select {
		case <-ctx.Done():
		case <-time.After(demoFrameDelay):
		}
	}
	return 0
}

func noise(buf []byte) {
	for i := range buf {
		buf[i] = byte(rand.Intn(256))
	}
}

func present(w *fbwin.Window, rgb []byte, width, height int) error {
	if err := w.Render(rgb, width, height); err != nil {
		return err
	}
	return w.Paint()
}
