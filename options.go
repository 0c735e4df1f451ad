package fbwin

import (
	"io"
	"log/slog"

	"github.com/1broseidon/fbwin/internal/config"
	"github.com/1broseidon/fbwin/internal/platform"
)

// Option configures New.
type Option func(*options)

type options struct {
	cfg     *config.Config
	display string
	backend string
	logger  *slog.Logger
}

// WithConfig applies a loaded configuration. Later options override it.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg != nil {
			c := *cfg
			o.cfg = &c
		}
	}
}

// WithDisplay selects the X display, e.g. ":1". Defaults to $DISPLAY.
func WithDisplay(name string) Option {
	return func(o *options) {
		o.display = name
	}
}

// WithBackend selects "auto", "x11", "win32" or "headless".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithLogger sets the logger for the window and, for the first window on a
// display, its connection. Logging is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(width, height int, title string, opts []Option) (platform.Backend, platform.Options) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if o.display != "" {
		cfg.Display = o.display
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return platform.Backend(cfg.Backend), platform.Options{
		Width:        width,
		Height:       height,
		Title:        title,
		Display:      cfg.Display,
		XAuthority:   cfg.XAuthority,
		ClassName:    cfg.ClassName,
		PollInterval: cfg.PollInterval(),
		SharedMemory: cfg.SharedMemory,
		ScreenWidth:  cfg.Headless.ScreenWidth,
		ScreenHeight: cfg.Headless.ScreenHeight,
		Logger:       o.logger,
	}
}
