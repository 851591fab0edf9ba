package semantic

import (
	"math"
	"sort"
)

// CosineSimilarity считает косинусную близость двух векторов.
// Для пустых векторов, разной размерности или нулевой нормы возвращает 0.0,
// деления на ноль не бывает.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankChunks проставляет чанкам близость к запросу, отбрасывает результаты
// ниже порога, сортирует по убыванию и усекает до maxResults.
// Сортировка стабильная: при равных скорах сохраняется порядок документа,
// поэтому результат полностью детерминирован.
func RankChunks(chunks []Chunk, queryEmbedding []float32, threshold float64, maxResults int) []Chunk {
	ranked := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		c.Score = CosineSimilarity(queryEmbedding, c.Embedding)
		if c.Score >= threshold {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if maxResults >= 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	return ranked
}
