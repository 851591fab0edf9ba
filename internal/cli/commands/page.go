package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ariaAgent/internal/browser"
	"ariaAgent/internal/cli/ui"
	"ariaAgent/internal/logger"

	"go.uber.org/zap"
)

// PageHandler добывает снимки страниц: через браузер или из файлов.
// Текущий snapshot и HTML хранятся до следующей загрузки.
type PageHandler struct {
	browser  browser.Browser
	log      *logger.Zap
	launched bool

	snapshot string
	html     string
}

func NewPageHandler(b browser.Browser, log *logger.Zap) *PageHandler {
	return &PageHandler{browser: b, log: log}
}

// Snapshot возвращает текущий ARIA snapshot, пустая строка если не загружен.
func (h *PageHandler) Snapshot() string {
	return h.snapshot
}

// HTML возвращает текущий HTML страницы, пустая строка если не загружен.
func (h *PageHandler) HTML() string {
	return h.html
}

// Open переходит по URL и снимает ARIA snapshot и HTML страницы.
// Браузер запускается лениво при первом вызове.
func (h *PageHandler) Open(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("укажите URL: open <url>")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	if !h.launched {
		fmt.Println(ui.ColorGray + "Запуск браузера..." + ui.ColorReset)
		if err := h.browser.Launch(ctx); err != nil {
			return fmt.Errorf("ошибка запуска браузера: %w", err)
		}
		h.launched = true
	}

	fmt.Println(ui.ColorCyan + ui.IconGlobe + " Переход: " + ui.ColorReset + url)
	if err := h.browser.Navigate(ctx, url); err != nil {
		return fmt.Errorf("ошибка навигации: %w", err)
	}

	snapshot, err := h.browser.AriaSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("ошибка снятия снимка: %w", err)
	}
	h.snapshot = snapshot

	// HTML добываем тем же заходом, сбой не фатален
	html, err := h.browser.PageHTML(ctx)
	if err != nil {
		h.log.Warn("HTML страницы не получен", zap.Error(err))
	} else {
		h.html = html
	}

	fmt.Printf("%s%s Снимок получен%s (%d строк)\n",
		ui.ColorGreen, ui.IconCheckmark, ui.ColorReset, strings.Count(snapshot, "\n")+1)
	return nil
}

// LoadSnapshot загружает ARIA snapshot из файла.
func (h *PageHandler) LoadSnapshot(path string) error {
	if path == "" {
		return fmt.Errorf("укажите файл: load <файл>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	h.snapshot = string(data)
	fmt.Printf("%s%s Snapshot загружен%s (%d байт)\n",
		ui.ColorGreen, ui.IconCheckmark, ui.ColorReset, len(data))
	return nil
}

// LoadHTML загружает HTML из файла.
func (h *PageHandler) LoadHTML(path string) error {
	if path == "" {
		return fmt.Errorf("укажите файл: loadhtml <файл>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	h.html = string(data)
	fmt.Printf("%s%s HTML загружен%s (%d байт)\n",
		ui.ColorGreen, ui.IconCheckmark, ui.ColorReset, len(data))
	return nil
}

// Close закрывает браузер, если он был запущен.
func (h *PageHandler) Close() {
	if !h.launched {
		return
	}
	if err := h.browser.Close(); err != nil {
		h.log.Warn("Ошибка закрытия браузера", zap.Error(err))
	}
}
