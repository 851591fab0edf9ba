package semantic

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"ariaAgent/internal/logger"
)

// stubEmbedder строит детерминированные векторы по наличию ключевых слов:
// близость предсказуема без внешнего провайдера.
type stubEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

var stubKeywords = []string{"seat", "row 10", "free", "taken", "button", "email", "оплатить"}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string, _ string) ([][]float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := make([]float32, len(stubKeywords))
		for j, kw := range stubKeywords {
			if strings.Contains(lower, kw) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

const seatSnapshot = `- button "10A"
- button "10B" [disabled]
- textbox "Email"
`

func newTestEngine(stub *stubEmbedder) *Engine {
	return NewEngine(stub, logger.NewNop())
}

func TestFilterSnapshot_RanksSeats(t *testing.T) {
	engine := newTestEngine(&stubEmbedder{})

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{
		Query:     "free seat row 10",
		Threshold: 0.1,
		Strategy:  StrategyIndividualNodes,
	})

	lines := strings.Split(out, "\n")
	if lines[0] != "Filtered Accessibility Tree (2 matches for: 'free seat row 10')" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// Свободное место ранжируется выше занятого, textbox ниже порога
	if !strings.Contains(lines[2], `button "10A"`) {
		t.Errorf("expected 10A first: %s", lines[2])
	}
	if !strings.Contains(lines[3], `button "10B" [disabled]`) {
		t.Errorf("expected 10B second: %s", lines[3])
	}
	if strings.Contains(out, "textbox") {
		t.Errorf("textbox should fall below threshold: %s", out)
	}
}

func TestFilterSnapshot_MalformedReturnsRaw(t *testing.T) {
	stub := &stubEmbedder{}
	engine := newTestEngine(stub)

	raw := "%%% not valid %%%"
	out := engine.FilterSnapshot(context.Background(), raw, Options{Query: "seat"})
	if out != raw {
		t.Errorf("expected raw input back, got: %s", out)
	}
	if stub.callCount() != 0 {
		t.Errorf("embedder should not be called on parse failure, got %d calls", stub.callCount())
	}
}

func TestFilterSnapshot_NoQueryReturnsRaw(t *testing.T) {
	stub := &stubEmbedder{}
	engine := newTestEngine(stub)

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{})
	if out != seatSnapshot {
		t.Errorf("expected raw snapshot back, got: %s", out)
	}
	if stub.callCount() != 0 {
		t.Errorf("embedder should not be called without query, got %d calls", stub.callCount())
	}
}

func TestFilterSnapshot_StructuralWithoutQuery(t *testing.T) {
	engine := newTestEngine(&stubEmbedder{})

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{
		FilterRoles: []string{"button"},
	})
	if !strings.HasPrefix(out, "Filtered Accessibility Tree (2 nodes):") {
		t.Errorf("expected formatted filtered tree: %s", out)
	}
	if strings.Contains(out, "textbox") {
		t.Errorf("textbox should be filtered out: %s", out)
	}
}

func TestFilterSnapshot_StructuralNoMatches(t *testing.T) {
	engine := newTestEngine(&stubEmbedder{})

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{
		FilterRoles: []string{"checkbox"},
	})
	if !strings.HasPrefix(out, "No nodes matched filters:") {
		t.Errorf("expected no-match message, got: %s", out)
	}
}

func TestFilterSnapshot_EmbedderFailureReturnsRaw(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("провайдер недоступен")}
	engine := newTestEngine(stub)

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{
		Query:     "seat",
		Threshold: 0.1,
	})
	if out != seatSnapshot {
		t.Errorf("expected raw snapshot on embedding failure, got: %s", out)
	}
}

func TestFilterSnapshot_MaxResults(t *testing.T) {
	engine := newTestEngine(&stubEmbedder{})

	out := engine.FilterSnapshot(context.Background(), seatSnapshot, Options{
		Query:      "free seat row 10",
		Threshold:  0.1,
		MaxResults: 1,
		Strategy:   StrategyIndividualNodes,
	})
	if !strings.Contains(out, "(1 matches") {
		t.Errorf("expected truncation to 1 result: %s", out)
	}
	if strings.Contains(out, "10B") {
		t.Errorf("second result should be cut: %s", out)
	}
}

func TestFilterHTML_RanksElements(t *testing.T) {
	engine := newTestEngine(&stubEmbedder{})

	html := `<html><body><button id="pay">Оплатить</button><a href="/home">Домой</a></body></html>`
	out := engine.FilterHTML(context.Background(), html, Options{
		Query:     "кнопка оплатить",
		Threshold: 0.1,
	})
	if !strings.Contains(out, "Filtered HTML Elements") {
		t.Fatalf("expected ranked HTML output: %s", out)
	}
	if !strings.Contains(out, "Оплатить") {
		t.Errorf("expected pay button in results: %s", out)
	}
}

func TestFilterHTML_EmptyReturnsRaw(t *testing.T) {
	stub := &stubEmbedder{}
	engine := newTestEngine(stub)

	raw := "   "
	out := engine.FilterHTML(context.Background(), raw, Options{Query: "seat"})
	if out != raw {
		t.Errorf("expected raw input back, got: %q", out)
	}
	if stub.callCount() != 0 {
		t.Errorf("embedder should not be called, got %d calls", stub.callCount())
	}
}

func TestFilterHTML_NoQueryListsElements(t *testing.T) {
	stub := &stubEmbedder{}
	engine := newTestEngine(stub)

	html := `<html><body><h1>Выбор мест</h1></body></html>`
	out := engine.FilterHTML(context.Background(), html, Options{})
	if !strings.HasPrefix(out, "HTML Elements (") {
		t.Errorf("expected element listing: %s", out)
	}
	if stub.callCount() != 0 {
		t.Errorf("embedder should not be called without query, got %d calls", stub.callCount())
	}
}
