package englandhockey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"hockey-scraper/config"
	"hockey-scraper/utils"
)

// ErrRenderTimeout reports that a page failed to signal readiness within
// the bounded wait.
var ErrRenderTimeout = errors.New("render timeout")

// Session wraps one headless browser instance. It is acquired once per
// orchestrator run (or once per season worker when seasons run in parallel)
// and must be released with Close on every exit path.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger
	gate   *utils.RateGate

	browserCtx context.Context
	cancels    []context.CancelFunc
}

// NewSession launches a browser and returns a ready Session.
func NewSession(cfg *config.Config, logger *utils.Logger) *Session {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Debug("[render] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Session{
		cfg:        cfg,
		logger:     logger,
		gate:       utils.NewRateGate(time.Duration(cfg.RateLimitMs) * time.Millisecond),
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
	}
}

// Close releases the browser and its allocator.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Render loads url, waits for the content-readiness condition and returns
// the rendered DOM as HTML. When waitSelector is empty a fixed settle delay
// stands in for the readiness signal; either way an extra settle delay runs
// afterwards so late JavaScript has finished. The whole navigation is
// bounded by the render timeout; exceeding it yields ErrRenderTimeout.
func (s *Session) Render(url, waitSelector string) (string, error) {
	s.gate.Wait()
	s.logger.Debug("[render] Loading %s", url)

	ctx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()

	timeout := time.Duration(s.cfg.RenderTimeoutSec) * time.Second
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	settle := time.Duration(s.cfg.SettleDelaySec) * time.Second

	tasks := chromedp.Tasks{chromedp.Navigate(url)}
	if waitSelector != "" {
		tasks = append(tasks, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	} else {
		tasks = append(tasks, chromedp.Sleep(settle))
	}

	var html string
	tasks = append(tasks,
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err := chromedp.Run(ctx, tasks); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s did not become ready within %v", ErrRenderTimeout, url, timeout)
		}
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	return html, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
