package platform

import "github.com/1broseidon/fbwin/internal/headless"

func openHeadless(opts Options) (Window, error) {
	return headless.Open(headless.Config{
		ScreenWidth:  opts.ScreenWidth,
		ScreenHeight: opts.ScreenHeight,
		Logger:       opts.Logger,
	}, opts.Width, opts.Height, opts.Title)
}
