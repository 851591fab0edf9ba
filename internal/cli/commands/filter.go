package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ariaAgent/internal/cli/ui"
	"ariaAgent/internal/semantic"
)

// FilterHandler держит параметры фильтрации между вызовами и гоняет
// конвейер через движок. Источником снимков служит PageHandler.
type FilterHandler struct {
	engine *semantic.Engine
	page   *PageHandler
	opts   semantic.Options
}

func NewFilterHandler(engine *semantic.Engine, page *PageHandler, opts semantic.Options) *FilterHandler {
	return &FilterHandler{engine: engine, page: page, opts: opts}
}

// Tree выводит дерево доступности с учётом текущих структурных фильтров,
// без семантического поиска.
func (h *FilterHandler) Tree(ctx context.Context) error {
	snapshot := h.page.Snapshot()
	if snapshot == "" {
		return fmt.Errorf("snapshot не загружен, выполните open или load")
	}

	opts := h.opts
	opts.Query = ""
	fmt.Println(h.engine.FilterSnapshot(ctx, snapshot, opts))
	return nil
}

// Filter выполняет семантический поиск по дереву доступности.
func (h *FilterHandler) Filter(ctx context.Context, query string) error {
	if query == "" {
		return fmt.Errorf("укажите запрос: filter <запрос>")
	}
	snapshot := h.page.Snapshot()
	if snapshot == "" {
		return fmt.Errorf("snapshot не загружен, выполните open или load")
	}

	opts := h.opts
	opts.Query = query
	fmt.Println(ui.ColorCyan + ui.IconSearch + " Поиск: " + ui.ColorReset + query)
	fmt.Println(h.engine.FilterSnapshot(ctx, snapshot, opts))
	return nil
}

// FilterHTML выполняет семантический поиск по HTML страницы.
func (h *FilterHandler) FilterHTML(ctx context.Context, query string) error {
	if query == "" {
		return fmt.Errorf("укажите запрос: html <запрос>")
	}
	html := h.page.HTML()
	if html == "" {
		return fmt.Errorf("HTML не загружен, выполните open или loadhtml")
	}

	opts := h.opts
	opts.Query = query
	fmt.Println(ui.ColorCyan + ui.IconSearch + " Поиск по HTML: " + ui.ColorReset + query)
	fmt.Println(h.engine.FilterHTML(ctx, html, opts))
	return nil
}

// Set меняет один параметр фильтрации. Пустое значение для roles и states
// сбрасывает фильтр.
func (h *FilterHandler) Set(param, value string) error {
	switch strings.ToLower(param) {
	case "threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("threshold должен быть числом в [0, 1]")
		}
		h.opts.Threshold = f
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("limit должен быть положительным числом")
		}
		h.opts.MaxResults = n
	case "depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("depth должен быть числом, 0 без ограничений")
		}
		h.opts.MaxDepth = n
	case "strategy":
		s := semantic.Strategy(strings.ToLower(value))
		if s != semantic.StrategyIndividualNodes && s != semantic.StrategySubtrees {
			return fmt.Errorf("strategy: individual_nodes или subtrees")
		}
		h.opts.Strategy = s
	case "roles":
		h.opts.FilterRoles = splitList(value)
	case "states":
		h.opts.FilterStates = splitList(value)
	default:
		return fmt.Errorf("неизвестный параметр: %s", param)
	}

	fmt.Println(ui.ColorGreen + ui.IconCheckmark + " Параметр обновлён" + ui.ColorReset)
	return nil
}

// Settings выводит текущие параметры фильтрации.
func (h *FilterHandler) Settings() {
	fmt.Println(ui.ColorYellow + ui.IconCog + " Параметры фильтрации:" + ui.ColorReset)
	fmt.Printf("  threshold: %.2f\n", h.opts.Threshold)
	fmt.Printf("  limit:     %d\n", h.opts.MaxResults)
	fmt.Printf("  depth:     %s\n", depthLabel(h.opts.MaxDepth))
	fmt.Printf("  strategy:  %s\n", h.opts.Strategy)
	fmt.Printf("  roles:     %s\n", listLabel(h.opts.FilterRoles))
	fmt.Printf("  states:    %s\n", listLabel(h.opts.FilterStates))
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(parts) == 0 {
		return nil
	}
	return parts
}

func depthLabel(depth int) string {
	if depth <= 0 {
		return "без ограничений"
	}
	return strconv.Itoa(depth)
}

func listLabel(items []string) string {
	if len(items) == 0 {
		return "нет"
	}
	return strings.Join(items, ", ")
}
