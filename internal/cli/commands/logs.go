package commands

import (
	"fmt"

	"ariaAgent/internal/cli/ui"
	"ariaAgent/internal/database"
)

const recentLogLimit = 10

// LogsHandler показывает аудит вызовов фильтрации из БД.
type LogsHandler struct {
	repo *database.FilterLogRepository
}

func NewLogsHandler(repo *database.FilterLogRepository) *LogsHandler {
	return &LogsHandler{repo: repo}
}

// Recent выводит последние записи аудита, новые сверху.
func (h *LogsHandler) Recent() error {
	if h.repo == nil {
		return fmt.Errorf("база данных не настроена, аудит недоступен")
	}

	logs, err := h.repo.Recent(recentLogLimit)
	if err != nil {
		return fmt.Errorf("ошибка чтения логов: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println(ui.ColorGray + "Логов пока нет" + ui.ColorReset)
		return nil
	}

	fmt.Println(ui.ColorYellow + ui.IconChart + " Последние вызовы фильтрации:" + ui.ColorReset)
	for _, entry := range logs {
		icon, color, status := ui.FormatFallback(entry.Fallback)
		fmt.Printf("  %s%s%s [%s] %q: чанков %d, совпадений %d, %dms (%s)\n",
			color, icon, ui.ColorReset,
			entry.Source, entry.Query,
			entry.ChunkCount, entry.MatchCount, entry.DurationMs, status)
	}
	return nil
}
