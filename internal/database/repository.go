package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EmbeddingRepository хранит векторы эмбеддингов между запусками процесса.
type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// HashText возвращает ключ кэша для текста чанка.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get возвращает вектор по ключу или nil, если записи нет.
func (r *EmbeddingRepository) Get(textHash, model, inputType string) ([]float32, error) {
	var rec CachedEmbedding
	err := r.db.
		Where("text_hash = ? AND model = ? AND input_type = ?", textHash, model, inputType).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vector []float32
	if err := json.Unmarshal([]byte(rec.Vector), &vector); err != nil {
		return nil, fmt.Errorf("повреждённый вектор в кэше: %w", err)
	}
	return vector, nil
}

// Save сохраняет вектор. Конфликт по ключу игнорируется: два конкурентных
// вызова могут закэшировать один и тот же текст.
func (r *EmbeddingRepository) Save(textHash, model, inputType string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}

	rec := CachedEmbedding{
		TextHash:  textHash,
		Model:     model,
		InputType: inputType,
		Vector:    string(data),
	}
	err = r.db.Create(&rec).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// FilterLogRepository пишет и читает аудит вызовов фильтрации.
type FilterLogRepository struct {
	db *gorm.DB
}

func NewFilterLogRepository(db *gorm.DB) *FilterLogRepository {
	return &FilterLogRepository{db: db}
}

func (r *FilterLogRepository) Create(entry *FilterLog) error {
	return r.db.Create(entry).Error
}

func (r *FilterLogRepository) Recent(limit int) ([]FilterLog, error) {
	var logs []FilterLog
	if err := r.db.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
