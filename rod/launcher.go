package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Launcher starts headless browser sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is a running browser owned by a single fetch.
// Close must be called on every path once Launch has succeeded.
type Session interface {
	// Navigate opens url and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// HTML serializes the current DOM.
	HTML(ctx context.Context) (string, error)

	// Close terminates the browser process. Close is safe to call multiple times.
	Close() error
}

// Ensure ChromeLauncher implements Launcher at compile time.
var _ Launcher = (*ChromeLauncher)(nil)

// ChromeLauncher launches a fresh headless Chrome for every session.
type ChromeLauncher struct {
	bin       string
	noSandbox bool
}

// LauncherOption configures a ChromeLauncher.
type LauncherOption func(*ChromeLauncher)

// WithBrowserBin sets the path of the Chrome/Chromium binary.
// By default rod looks up an installed browser or downloads one.
func WithBrowserBin(path string) LauncherOption {
	return func(l *ChromeLauncher) {
		l.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which is required when
// running as root inside containers.
func WithNoSandbox(v bool) LauncherOption {
	return func(l *ChromeLauncher) {
		l.noSandbox = v
	}
}

// NewChromeLauncher creates a new ChromeLauncher.
func NewChromeLauncher(opts ...LauncherOption) *ChromeLauncher {
	l := &ChromeLauncher{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a browser process with stability flags and connects to it.
// Startup is bounded by ctx: if ctx is done first the half-started browser
// is torn down in the background and ctx's error is returned. Returns an
// error if Chrome/Chromium cannot be found or launched.
func (l *ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true).
		NoSandbox(l.noSandbox)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}

	type started struct {
		session *ChromeSession
		err     error
	}
	done := make(chan started, 1)
	go func() {
		session, err := start(ctx, lnchr)
		done <- started{session, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return r.session, nil
	case <-ctx.Done():
		// Killing the process unblocks a pending Launch.
		if lnchr.PID() != 0 {
			lnchr.Kill()
		}
		go func() {
			if r := <-done; r.session != nil {
				_ = r.session.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// start launches the process and connects to it. The websocket dial honours
// ctx; the connection itself outlives it.
func start(ctx context.Context, lnchr *launcher.Launcher) (*ChromeSession, error) {
	u, err := lnchr.Launch()
	if err != nil {
		// Launch can fail after the process has started.
		if lnchr.PID() != 0 {
			lnchr.Kill()
		}
		lnchr.Cleanup()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		lnchr.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	// Later calls carry their own contexts.
	return &ChromeSession{browser: browser.Context(context.Background()), launcher: lnchr}, nil
}

// Ensure ChromeSession implements Session at compile time.
var _ Session = (*ChromeSession)(nil)

// ChromeSession is a single headless Chrome process with one page.
type ChromeSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	once sync.Once
	err  error
}

// Navigate opens a new page, navigates it to url and waits for it to load.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	s.page = page

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load: %w", err)
	}
	return nil
}

// HTML returns the serialized DOM of the page opened by Navigate.
func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	if s.page == nil {
		return "", fmt.Errorf("no page loaded")
	}
	return s.page.Context(ctx).HTML()
}

// Close shuts down the browser and kills its process, then waits for the
// process to exit and removes its profile directory.
func (s *ChromeSession) Close() error {
	s.once.Do(func() {
		s.err = s.browser.Close()
		s.launcher.Kill()
		s.launcher.Cleanup()
	})
	return s.err
}

// PID returns the process ID of the browser.
// This method exists for testing purposes to verify proper cleanup.
func (s *ChromeSession) PID() int {
	return s.launcher.PID()
}
