package semantic

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"empty", nil, []float32{1}, 0.0},
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
	}

	for _, tt := range tests {
		got := CosineSimilarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestRankChunks_ThresholdAndOrder(t *testing.T) {
	query := []float32{1, 0}
	chunks := []Chunk{
		{Text: "low", Source: 0, Embedding: []float32{1, 3}},
		{Text: "high", Source: 1, Embedding: []float32{1, 0}},
		{Text: "mid", Source: 2, Embedding: []float32{1, 1}},
	}

	ranked := RankChunks(chunks, query, 0.5, 10)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 chunks above threshold, got %d", len(ranked))
	}
	if ranked[0].Text != "high" || ranked[1].Text != "mid" {
		t.Errorf("expected descending order [high mid], got [%s %s]", ranked[0].Text, ranked[1].Text)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %v, %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankChunks_StableTies(t *testing.T) {
	query := []float32{1, 0}
	chunks := []Chunk{
		{Source: 0, Embedding: []float32{2, 0}},
		{Source: 1, Embedding: []float32{5, 0}},
		{Source: 2, Embedding: []float32{1, 0}},
	}

	ranked := RankChunks(chunks, query, 0.0, -1)
	if len(ranked) != 3 {
		t.Fatalf("expected all 3 chunks, got %d", len(ranked))
	}
	// Все скоры равны 1.0: порядок документа сохраняется
	for i, wantSource := range []int{0, 1, 2} {
		if ranked[i].Source != wantSource {
			t.Errorf("position %d: expected source %d, got %d", i, wantSource, ranked[i].Source)
		}
	}
}

func TestRankChunks_MaxResults(t *testing.T) {
	query := []float32{1}
	var chunks []Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, Chunk{Source: i, Embedding: []float32{1}})
	}

	ranked := RankChunks(chunks, query, 0.0, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(ranked))
	}

	ranked = RankChunks(chunks, query, 0.0, 0)
	if len(ranked) != 0 {
		t.Fatalf("expected maxResults=0 to return nothing, got %d", len(ranked))
	}
}

func TestRankChunks_Empty(t *testing.T) {
	if got := RankChunks(nil, []float32{1}, 0.0, 10); len(got) != 0 {
		t.Errorf("expected empty result for no chunks, got %d", len(got))
	}
}
