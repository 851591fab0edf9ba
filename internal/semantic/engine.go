package semantic

import (
	"context"
	"fmt"
	"time"

	"ariaAgent/internal/aria"
	"ariaAgent/internal/database"
	"ariaAgent/internal/htmlparse"
	"ariaAgent/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Типы входа для эмбеддинг-провайдера: документы и поисковые запросы
// эмбеддятся по-разному.
const (
	InputTypeDocument = "search_document"
	InputTypeQuery    = "search_query"
)

// Embedder превращает пакет текстов в векторы, по одному на текст,
// с сохранением порядка.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string, inputType string) ([][]float32, error)
}

// Options задаёт параметры одного вызова фильтрации.
type Options struct {
	Query        string   // Пустой запрос: эмбеддинги не вызываются
	MaxDepth     int      // Максимальная глубина дерева, <= 0 без ограничений
	MaxResults   int      // Максимум результатов, <= 0 означает дефолт
	Threshold    float64  // Минимальная косинусная близость [0, 1]
	Strategy     Strategy // Стратегия нарезки на чанки
	FilterStates []string // Фильтры состояний: '+state' требует, '-state' исключает
	FilterRoles  []string // Фильтр ролей, без учёта регистра
	MaxElements  int      // Лимит элементов для HTML пути, <= 0 означает дефолт
}

const defaultMaxResults = 20

// Engine выполняет полный конвейер фильтрации: разбор, структурные фильтры,
// нарезка, эмбеддинг, ранжирование, форматирование. Любой сбой этапа
// деградирует к сырому входу: LLM способна разобрать шумное дерево,
// но не брошенную ошибку.
type Engine struct {
	embedder Embedder
	log      *logger.Zap
	logs     *database.FilterLogRepository
}

func NewEngine(embedder Embedder, log *logger.Zap) *Engine {
	return &Engine{embedder: embedder, log: log}
}

// SetFilterLog включает аудит вызовов фильтрации в БД. Репозиторий опционален.
func (e *Engine) SetFilterLog(repo *database.FilterLogRepository) {
	e.logs = repo
}

// FilterSnapshot фильтрует ARIA snapshot дерева доступности.
// Без запроса возвращается сырой snapshot либо, при наличии структурных
// фильтров, отформатированное отфильтрованное дерево. С запросом выполняется
// полный конвейер; при сбое возвращается сырой snapshot без аннотаций.
func (e *Engine) FilterSnapshot(ctx context.Context, snapshot string, opts Options) string {
	start := time.Now()
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}

	e.log.Info("Фильтрация дерева доступности",
		zap.String("query", opts.Query),
		zap.Float64("threshold", opts.Threshold),
		zap.String("strategy", string(opts.Strategy)),
		zap.Strings("filter_states", opts.FilterStates),
		zap.Strings("filter_roles", opts.FilterRoles),
	)

	parseStart := time.Now()
	nodes := aria.ParseSnapshot(snapshot)
	if len(nodes) == 0 {
		e.log.Warn("Snapshot не разобран, возвращается сырой текст")
		e.record("snapshot", opts, 0, 0, "parse_failure", start)
		return snapshot
	}
	totalNodes := aria.CountNodes(nodes)
	e.log.Debug("Snapshot разобран",
		zap.Int("nodes", totalNodes),
		zap.Duration("elapsed", time.Since(parseStart)),
	)

	structural := len(opts.FilterStates) > 0 || len(opts.FilterRoles) > 0
	if structural {
		nodes = aria.FilterNodes(nodes, opts.FilterStates, opts.FilterRoles)
		e.log.Debug("Структурная фильтрация",
			zap.Int("remaining", aria.CountNodes(nodes)),
			zap.Int("total", totalNodes),
		)
		if len(nodes) == 0 {
			e.record("snapshot", opts, 0, 0, "no_structural_matches", start)
			return fmt.Sprintf("No nodes matched filters: states=%v, roles=%v", opts.FilterStates, opts.FilterRoles)
		}
	}

	if opts.Query == "" {
		e.record("snapshot", opts, 0, aria.CountNodes(nodes), "", start)
		if structural {
			return FormatFilteredTree(nodes)
		}
		return snapshot
	}

	nodes = aria.LimitDepth(nodes, opts.MaxDepth)

	chunkStart := time.Now()
	chunks, flat := NewChunker(opts.Strategy).CreateChunks(nodes)
	e.log.Debug("Чанки созданы",
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(chunkStart)),
	)
	if len(chunks) == 0 {
		e.log.Warn("Нет чанков для эмбеддинга, возвращается сырой текст")
		e.record("snapshot", opts, 0, 0, "no_chunks", start)
		return snapshot
	}

	ranked, ok := e.rank(ctx, chunks, opts)
	if !ok {
		e.record("snapshot", opts, len(chunks), 0, "embedding_failure", start)
		return snapshot
	}

	e.log.Info("Фильтрация завершена",
		zap.Int("matches", len(ranked)),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)),
	)
	e.record("snapshot", opts, len(chunks), len(ranked), "", start)

	return FormatResults(ranked, flat, opts.Query)
}

// FilterHTML фильтрует сырой HTML. Семантика сбоев совпадает с FilterSnapshot:
// пустой разбор или ошибка эмбеддинга возвращают исходный HTML.
func (e *Engine) FilterHTML(ctx context.Context, rawHTML string, opts Options) string {
	start := time.Now()
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}

	e.log.Info("Фильтрация HTML",
		zap.String("query", opts.Query),
		zap.Float64("threshold", opts.Threshold),
	)

	elements := htmlparse.Parse(rawHTML, opts.MaxElements)
	if len(elements) == 0 {
		e.log.Warn("HTML не дал элементов, возвращается сырой текст")
		e.record("html", opts, 0, 0, "parse_failure", start)
		return rawHTML
	}
	e.log.Debug("HTML разобран", zap.Int("elements", len(elements)))

	if opts.Query == "" {
		e.record("html", opts, 0, len(elements), "", start)
		return FormatElements(elements)
	}

	chunks := CreateHTMLChunks(elements)
	if len(chunks) == 0 {
		e.log.Warn("Нет чанков для эмбеддинга, возвращается сырой HTML")
		e.record("html", opts, 0, 0, "no_chunks", start)
		return rawHTML
	}

	ranked, ok := e.rank(ctx, chunks, opts)
	if !ok {
		e.record("html", opts, len(chunks), 0, "embedding_failure", start)
		return rawHTML
	}

	e.log.Info("Фильтрация HTML завершена",
		zap.Int("matches", len(ranked)),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)),
	)
	e.record("html", opts, len(chunks), len(ranked), "", start)

	return FormatHTMLResults(ranked, elements, opts.Query)
}

// rank эмбеддит чанки и запрос параллельно и ранжирует результат.
// Любая ошибка провайдера или расхождение длин отменяет всю операцию:
// частичное ранжирование хуже сырого дерева, оно вводит агента в заблуждение.
func (e *Engine) rank(ctx context.Context, chunks []Chunk, opts Options) ([]Chunk, bool) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embedStart := time.Now()
	var docEmbeddings [][]float32
	var queryEmbedding []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docEmbeddings, err = e.embedder.EmbedBatch(gctx, texts, InputTypeDocument)
		return err
	})
	g.Go(func() error {
		result, err := e.embedder.EmbedBatch(gctx, []string{opts.Query}, InputTypeQuery)
		if err != nil {
			return err
		}
		if len(result) > 0 {
			queryEmbedding = result[0]
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		e.log.Error("Ошибка эмбеддинга, возвращается нефильтрованный результат", zap.Error(err))
		return nil, false
	}

	if len(docEmbeddings) != len(texts) {
		e.log.Warn("Эмбеддер вернул неожиданное количество векторов",
			zap.Int("got", len(docEmbeddings)),
			zap.Int("expected", len(texts)),
		)
		return nil, false
	}
	e.log.Debug("Эмбеддинг завершён",
		zap.Int("texts", len(texts)),
		zap.Duration("elapsed", time.Since(embedStart)),
	)

	for i := range chunks {
		chunks[i].Embedding = docEmbeddings[i]
	}

	return RankChunks(chunks, queryEmbedding, opts.Threshold, opts.MaxResults), true
}

// record пишет запись аудита в БД, если репозиторий настроен. Ошибки аудита
// не влияют на результат фильтрации.
func (e *Engine) record(source string, opts Options, chunkCount, matchCount int, fallback string, start time.Time) {
	if e.logs == nil {
		return
	}

	entry := &database.FilterLog{
		Source:     source,
		Query:      opts.Query,
		Strategy:   string(opts.Strategy),
		Threshold:  opts.Threshold,
		MaxResults: opts.MaxResults,
		ChunkCount: chunkCount,
		MatchCount: matchCount,
		Fallback:   fallback,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := e.logs.Create(entry); err != nil {
		e.log.Warn("Не удалось записать лог фильтрации", zap.Error(err))
	}
}
