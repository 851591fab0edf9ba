package main

import (
	"context"
	"os/signal"
	"syscall"

	"ariaAgent/internal/browser"
	"ariaAgent/internal/cli"
	"ariaAgent/internal/cli/commands"
	"ariaAgent/internal/config"
	"ariaAgent/internal/database"
	"ariaAgent/internal/embedding"
	"ariaAgent/internal/logger"
	"ariaAgent/internal/migrations"
	"ariaAgent/internal/sanitizer"
	"ariaAgent/internal/semantic"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// БД опциональна: без неё работает кэш в памяти, аудит недоступен
	var embeddingRepo *database.EmbeddingRepository
	var filterLogRepo *database.FilterLogRepository
	if cfg.Database.Enabled() {
		if err := migrations.Run(cfg, log); err != nil {
			log.Fatal("Ошибка миграций", zap.Error(err))
		}

		db, err := database.New(cfg, log)
		if err != nil {
			log.Fatal("Ошибка подключения к БД", zap.Error(err))
		}
		defer db.Close(log)

		embeddingRepo = database.NewEmbeddingRepository(db.DB)
		filterLogRepo = database.NewFilterLogRepository(db.DB)
	} else {
		log.Info("БД не настроена, кэш эмбеддингов только в памяти")
	}

	embedder := embedding.New(embedding.Config{
		APIKey:       cfg.OpenAI.Key,
		Model:        cfg.OpenAI.EmbeddingModel,
		MaxBatchSize: cfg.Filter.MaxBatchSize,
		Workers:      cfg.Filter.Workers,
	}, log)
	if embeddingRepo != nil {
		embedder.SetStore(embeddingRepo)
	}
	if cfg.Filter.SanitizePII {
		embedder.SetSanitizer(sanitizer.New())
	}

	engine := semantic.NewEngine(embedder, log)
	if filterLogRepo != nil {
		engine.SetFilterLog(filterLogRepo)
	}

	br := browser.New(browser.Config{
		Headless:     cfg.Browser.Headless,
		UserDataDir:  cfg.Browser.UserDataDir,
		BrowsersPath: cfg.Browser.BrowsersPath,
		Display:      cfg.Browser.Display,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	page := commands.NewPageHandler(br, log)
	filter := commands.NewFilterHandler(engine, page, semantic.Options{
		Threshold:   cfg.Filter.Threshold,
		MaxResults:  cfg.Filter.MaxResults,
		MaxDepth:    cfg.Filter.MaxDepth,
		Strategy:    semantic.Strategy(cfg.Filter.Strategy),
		MaxElements: cfg.Filter.MaxElements,
	})
	logs := commands.NewLogsHandler(filterLogRepo)

	console := cli.New(page, filter, logs, log)
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("Ошибка консоли", zap.Error(err))
	}
}
