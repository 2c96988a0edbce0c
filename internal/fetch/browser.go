package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/jonathan/checkhtml/internal/logger"
)

// DefaultRenderTimeout bounds a headless browser render.
const DefaultRenderTimeout = 30 * time.Second

// WithBrowser renders a page in a headless browser and returns the resulting
// DOM serialized as HTML. Pages that build their markup with JavaScript only
// have their final elements available this way.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	logger.Debug(ctx, "starting headless browser", zap.Duration("timeout", timeout))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", errors.Wrap(err, "render page")
	}

	logger.Debug(ctx, "rendered page", zap.Int("bytes", len(html)))
	return html, nil
}
