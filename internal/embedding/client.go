// Package embedding реализует клиент эмбеддинг-провайдера с батчингом,
// кэшем и ограниченным параллелизмом запросов.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ariaAgent/internal/database"
	"ariaAgent/internal/logger"
)

// maxProviderBatch — жёсткий потолок текстов в одном запросе к провайдеру.
const maxProviderBatch = 96

const defaultWorkers = 4

// Sanitizer редактирует чувствительные данные перед отправкой провайдеру.
type Sanitizer interface {
	Sanitize(text string) string
}

type Config struct {
	APIKey       string
	Model        string
	MaxBatchSize int // <= 0 или больше потолка: используется потолок
	Workers      int // Параллельные батчи, <= 0: дефолт
}

// Client — явный объект клиента: создаётся один раз вызывающей стороной
// и передаётся по ссылке, без глобальных синглтонов. Кэш разделяется между
// вызовами: одинаковые тексты чанков не эмбеддятся повторно при переборе
// комбинаций фильтров на одной странице. Кэш не вытесняется — ключи живут
// не дольше одной страницы браузера.
type Client struct {
	api          *openai.Client
	model        string
	maxBatchSize int
	workers      int
	log          *logger.Zap
	sanitizer    Sanitizer

	mu    sync.RWMutex
	cache map[string][]float32
	store *database.EmbeddingRepository
}

func New(cfg Config, log *logger.Zap) *Client {
	if cfg.MaxBatchSize <= 0 || cfg.MaxBatchSize > maxProviderBatch {
		cfg.MaxBatchSize = maxProviderBatch
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}

	return &Client{
		api:          openai.NewClient(cfg.APIKey),
		model:        cfg.Model,
		maxBatchSize: cfg.MaxBatchSize,
		workers:      cfg.Workers,
		log:          log,
		cache:        make(map[string][]float32),
	}
}

// SetStore включает персистентный кэш эмбеддингов. Опционально.
func (c *Client) SetStore(store *database.EmbeddingRepository) {
	c.store = store
}

// SetSanitizer включает редактирование PII перед отправкой провайдеру.
func (c *Client) SetSanitizer(s Sanitizer) {
	c.sanitizer = s
}

// EmbedBatch возвращает по одному вектору на каждый входной текст,
// с сохранением порядка. Тексты бьются на батчи не больше максимального
// размера; батчи выполняются параллельно с ограничением воркеров.
// Любая ошибка провайдера отменяет всю операцию целиком.
func (c *Client) EmbedBatch(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if c.sanitizer != nil {
		sanitized := make([]string, len(texts))
		for i, t := range texts {
			sanitized[i] = c.sanitizer.Sanitize(t)
		}
		texts = sanitized
	}

	result := make([][]float32, len(texts))

	// Сбор промахов кэша: одинаковые тексты эмбеддятся один раз
	var missing []string
	positions := make(map[string][]int)
	for i, text := range texts {
		key := cacheKey(inputType, text)
		if vec, ok := c.cachedVector(key, text, inputType); ok {
			result[i] = vec
			continue
		}
		if _, seen := positions[text]; !seen {
			missing = append(missing, text)
		}
		positions[text] = append(positions[text], i)
	}

	if len(missing) == 0 {
		return result, nil
	}

	vectors := make([][]float32, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for offset := 0; offset < len(missing); offset += c.maxBatchSize {
		end := offset + c.maxBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		offset := offset
		batch := missing[offset:end]

		g.Go(func() error {
			embedded, err := c.embedOnce(gctx, batch)
			if err != nil {
				return err
			}
			// Батчи пишут в непересекающиеся диапазоны
			copy(vectors[offset:], embedded)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, text := range missing {
		c.cache[cacheKey(inputType, text)] = vectors[i]
	}
	c.mu.Unlock()

	if c.store != nil {
		for i, text := range missing {
			if err := c.store.Save(database.HashText(text), c.model, inputType, vectors[i]); err != nil {
				c.log.Warn("Не удалось сохранить эмбеддинг в кэш БД", zap.Error(err))
				break
			}
		}
	}

	for i, text := range missing {
		for _, pos := range positions[text] {
			result[pos] = vectors[i]
		}
	}

	return result, nil
}

// embedOnce выполняет один запрос к провайдеру и проверяет, что ответ
// содержит ровно по вектору на каждый текст.
func (c *Client) embedOnce(ctx context.Context, batch []string) ([][]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: batch,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка эмбеддинг-провайдера: %w", err)
	}

	if len(resp.Data) != len(batch) {
		return nil, fmt.Errorf("провайдер вернул %d векторов вместо %d", len(resp.Data), len(batch))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for j := range d.Embedding {
			vec[j] = float32(d.Embedding[j])
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// cachedVector ищет вектор в памяти, затем в персистентном кэше.
func (c *Client) cachedVector(key, text, inputType string) ([]float32, bool) {
	c.mu.RLock()
	vec, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return vec, true
	}

	if c.store == nil {
		return nil, false
	}

	vec, err := c.store.Get(database.HashText(text), c.model, inputType)
	if err != nil {
		c.log.Warn("Ошибка чтения кэша эмбеддингов из БД", zap.Error(err))
		return nil, false
	}
	if vec == nil {
		return nil, false
	}

	c.mu.Lock()
	c.cache[key] = vec
	c.mu.Unlock()
	return vec, true
}

// cacheKey включает тип входа: документ и запрос с одинаковым текстом
// могут иметь разные векторы.
func cacheKey(inputType, text string) string {
	return inputType + "\x00" + text
}
