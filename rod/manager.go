package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/webfetch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Manager owns the process-wide shared browser instance. The browser is
// launched lazily on first use; concurrent first callers resolve to a single
// launch, with the losers awaiting the winner's result. A failed launch is
// cached so subsequent callers fail fast instead of retrying.
//
// Manager is safe for concurrent use.
type Manager struct {
	launch func() (*rod.Browser, *launcher.Launcher, error)

	once    sync.Once
	browser *rod.Browser
	lnchr   *launcher.Launcher
	err     error
	closed  atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithBin sets the path to the browser executable. If empty, rod's launcher
// locates (or downloads) a suitable Chrome/Chromium binary.
func WithBin(path string) ManagerOption {
	return func(m *Manager) {
		m.launch = launchBrowser(path)
	}
}

// WithLaunchFunc replaces the browser launch routine.
// This exists for testing the lazy initialization semantics.
func WithLaunchFunc(fn func() (*rod.Browser, *launcher.Launcher, error)) ManagerOption {
	return func(m *Manager) {
		m.launch = fn
	}
}

// NewManager creates a Manager. No browser process is started until the
// first call to Browser.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		launch: launchBrowser(""),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Browser returns the shared browser, launching it on first call.
// All callers after a failed launch receive the same initialization error.
func (m *Manager) Browser() (*rod.Browser, error) {
	m.once.Do(func() {
		m.browser, m.lnchr, m.err = m.launch()
	})
	if m.err != nil {
		return nil, webfetch.Errorf(webfetch.EUNAVAILABLE, "browser initialization failed: %v", m.err)
	}
	return m.browser, nil
}

// Close releases browser resources. Close is safe to call multiple times
// and is a no-op if the browser was never launched.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.lnchr != nil {
		m.lnchr.Kill()
		m.lnchr = nil
	}
	return err
}

// launchBrowser starts a headless browser with flags chosen for restricted
// container environments lacking normal sandbox privileges.
func launchBrowser(bin string) func() (*rod.Browser, *launcher.Launcher, error) {
	return func() (*rod.Browser, *launcher.Launcher, error) {
		lnchr := launcher.New().
			Headless(true).
			NoSandbox(true).
			Leakless(true).
			Set("disable-gpu").
			Set("disable-dev-shm-usage").
			Set("disable-software-rasterizer").
			Set("single-process").
			Set("no-zygote")
		if bin != "" {
			lnchr = lnchr.Bin(bin)
		}

		u, err := lnchr.Launch()
		if err != nil {
			return nil, nil, fmt.Errorf("launching browser: %w", err)
		}

		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			lnchr.Kill() // Clean up launched process on connection failure
			return nil, nil, fmt.Errorf("connecting to browser: %w", err)
		}

		return browser, lnchr, nil
	}
}
