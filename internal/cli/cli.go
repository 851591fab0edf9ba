// Package cli реализует интерактивную консоль: загрузка снимков страниц,
// семантическая фильтрация и настройка параметров конвейера.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"ariaAgent/internal/cli/commands"
	"ariaAgent/internal/cli/ui"
	"ariaAgent/internal/logger"
)

type CLI struct {
	page   *commands.PageHandler
	filter *commands.FilterHandler
	logs   *commands.LogsHandler
	log    *logger.Zap
}

func New(page *commands.PageHandler, filter *commands.FilterHandler, logs *commands.LogsHandler, log *logger.Zap) *CLI {
	return &CLI{
		page:   page,
		filter: filter,
		logs:   logs,
		log:    log,
	}
}

// Run запускает цикл чтения команд. Возврат по exit, Ctrl+D или отмене контекста.
func (c *CLI) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.ColorBold + "aria> " + ui.ColorReset,
		HistoryFile:     "/tmp/aria-agent-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("ошибка инициализации readline: %w", err)
	}
	defer rl.Close()
	defer c.page.Close()

	ui.PrintWelcome()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println(ui.IconWave + " До встречи!")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, args := splitCommand(line)
		if cmd == "exit" || cmd == "quit" {
			fmt.Println(ui.IconWave + " До встречи!")
			return nil
		}

		if err := c.dispatch(ctx, cmd, args); err != nil {
			fmt.Println(ui.ColorRed + ui.IconCross + " " + err.Error() + ui.ColorReset)
			c.log.Debug("Ошибка команды", zap.String("command", cmd), zap.Error(err))
		}
	}
}

func (c *CLI) dispatch(ctx context.Context, cmd, args string) error {
	switch cmd {
	case "open":
		return c.page.Open(ctx, args)
	case "load":
		return c.page.LoadSnapshot(args)
	case "loadhtml":
		return c.page.LoadHTML(args)
	case "tree":
		return c.filter.Tree(ctx)
	case "filter":
		return c.filter.Filter(ctx, args)
	case "html":
		return c.filter.FilterHTML(ctx, args)
	case "set":
		param, value := splitCommand(args)
		if param == "" || value == "" {
			return fmt.Errorf("формат: set <параметр> <значение>")
		}
		return c.filter.Set(param, value)
	case "settings":
		c.filter.Settings()
		return nil
	case "logs":
		return c.logs.Recent()
	case "help":
		ui.PrintHelp()
		return nil
	case "clear":
		ui.ClearScreen()
		return nil
	default:
		return fmt.Errorf("неизвестная команда: %s, введите help", cmd)
	}
}

// splitCommand отделяет первое слово от остатка строки.
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(parts[1])
}
