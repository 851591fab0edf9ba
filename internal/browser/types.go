// Package browser содержит минимальный адаптер Playwright: он добывает
// ARIA snapshot и сырой HTML текущей страницы для конвейера фильтрации.
// Управление страницей (клики, ввод) в этот слой не входит.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Browser — источник снимков страницы для движка фильтрации.
type Browser interface {
	Launch(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	AriaSnapshot(ctx context.Context) (string, error)
	PageHTML(ctx context.Context) (string, error)
	Close() error
}

type Config struct {
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	cfg     Config

	mu   sync.RWMutex
	page playwright.Page
}
