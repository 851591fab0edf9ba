// Package database предоставляет модели данных и репозитории для PostgreSQL.
// Хранилище опционально: без него кэш эмбеддингов живёт только в памяти,
// а аудит вызовов фильтрации не ведётся.
package database

import "time"

// CachedEmbedding представляет закэшированный вектор эмбеддинга.
// Ключ кэша: sha256 текста + модель + тип входа.
type CachedEmbedding struct {
	ID        uint      `gorm:"primaryKey"`
	TextHash  string    `gorm:"type:varchar(64);uniqueIndex:idx_embedding_key;not null"` // sha256 текста чанка
	Model     string    `gorm:"type:varchar(64);uniqueIndex:idx_embedding_key;not null"` // Модель эмбеддинга
	InputType string    `gorm:"type:varchar(32);uniqueIndex:idx_embedding_key;not null"` // search_document или search_query
	Vector    string    `gorm:"type:text;not null"`                                      // Вектор в JSON
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// FilterLog представляет одну запись аудита вызова фильтрации.
type FilterLog struct {
	ID         uint      `gorm:"primaryKey"`
	Source     string    `gorm:"type:varchar(16);not null"` // snapshot или html
	Query      string    `gorm:"type:text"`                 // Поисковый запрос
	Strategy   string    `gorm:"type:varchar(32)"`          // Стратегия нарезки
	Threshold  float64   // Порог близости
	MaxResults int       // Лимит результатов
	ChunkCount int       // Количество чанков
	MatchCount int       // Количество совпадений
	Fallback   string    `gorm:"type:varchar(32)"` // Причина деградации, пусто при успехе
	DurationMs int64     // Длительность вызова в миллисекундах
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
