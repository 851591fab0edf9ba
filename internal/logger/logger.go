// Package logger настраивает структурированное логирование на базе zap.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap оборачивает *zap.Logger, чтобы пакеты зависели от одного типа.
type Zap struct {
	*zap.Logger
}

// New создаёт логгер: dev окружение использует человекочитаемый вывод,
// prod — JSON. Уровень задаётся строкой (debug, info, warn, error).
func New(env, level string) (*Zap, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера: %w", err)
	}

	return &Zap{l}, nil
}

// NewNop возвращает логгер, отбрасывающий все записи. Используется в тестах.
func NewNop() *Zap {
	return &Zap{zap.NewNop()}
}
