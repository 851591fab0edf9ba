package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Cfg struct {
	Database   Database
	Logger     Logger
	OpenAI     OpenAI
	Browser    Browser
	Filter     Filter
	Migrations Migrations
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроено ли персистентное хранилище.
// Без БД работает только кэш эмбеддингов в памяти.
func (d Database) Enabled() bool {
	return d.Host != ""
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type OpenAI struct {
	Key            string
	EmbeddingModel string
}

type Browser struct {
	Display      string
	Headless     bool
	UserDataDir  string
	BrowsersPath string
}

// Filter задаёт дефолты конвейера семантической фильтрации.
type Filter struct {
	Threshold    float64 // Минимальная косинусная близость
	MaxResults   int     // Максимум результатов на запрос
	MaxDepth     int     // Глубина дерева, 0 без ограничений
	Strategy     string  // individual_nodes или subtrees
	MaxElements  int     // Лимит элементов HTML разбора
	MaxBatchSize int     // Максимум текстов в одном запросе к эмбеддеру
	Workers      int     // Параллельные батчи эмбеддинга
	SanitizePII  bool    // Редактировать PII перед отправкой провайдеру
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		OpenAI: OpenAI{
			Key:            os.Getenv("OPENAI_API_KEY"),
			EmbeddingModel: env("EMBEDDING_MODEL", "text-embedding-3-small"),
		},
		Browser: Browser{
			Display:      env("DISPLAY", ":0"),
			Headless:     envBool("PW_HEADLESS"),
			UserDataDir:  env("PW_USER_DATA_DIR", "./userdata"),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
		},
		Filter: Filter{
			Threshold:    envFloat("FILTER_THRESHOLD", 0.3),
			MaxResults:   envInt("FILTER_MAX_RESULTS", 20),
			MaxDepth:     envInt("FILTER_MAX_DEPTH", 0),
			Strategy:     env("FILTER_STRATEGY", "subtrees"),
			MaxElements:  envInt("FILTER_MAX_ELEMENTS", 500),
			MaxBatchSize: envInt("EMBED_MAX_BATCH", 96),
			Workers:      envInt("EMBED_WORKERS", 4),
			SanitizePII:  envBool("FILTER_SANITIZE_PII"),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
