// Package semantic реализует семантическую фильтрацию элементов страницы:
// нарезку дерева доступности и HTML элементов на чанки, ранжирование по
// косинусной близости к запросу и форматирование результата для LLM.
package semantic

import (
	"fmt"
	"regexp"
	"strings"

	"ariaAgent/internal/aria"
	"ariaAgent/internal/htmlparse"
)

// Strategy определяет способ нарезки дерева на чанки для эмбеддинга.
type Strategy string

const (
	// StrategyIndividualNodes — один чанк на узел, текст описывает только узел.
	StrategyIndividualNodes Strategy = "individual_nodes"
	// StrategySubtrees — один чанк на узел, текст включает всех потомков.
	// Поддеревья намеренно перекрываются: ищутся и крупные, и точечные совпадения.
	StrategySubtrees Strategy = "subtrees"
)

// Chunk представляет единицу текста для эмбеддинга.
// Source — индекс исходного узла/элемента в плоском pre-order списке,
// а не живая ссылка: список чанков может жить дольше дерева.
type Chunk struct {
	Text      string
	Embedding []float32
	Source    int
	Score     float64
}

// Chunker нарезает дерево доступности на чанки по выбранной стратегии.
type Chunker struct {
	strategy Strategy
}

func NewChunker(strategy Strategy) *Chunker {
	if strategy != StrategyIndividualNodes {
		strategy = StrategySubtrees
	}
	return &Chunker{strategy: strategy}
}

// CreateChunks возвращает чанки и плоский pre-order список узлов,
// в который указывают индексы Source.
func (c *Chunker) CreateChunks(nodes []*aria.Node) ([]Chunk, []*aria.Node) {
	flat := aria.Flatten(nodes)

	var chunks []Chunk
	for i, node := range flat {
		var text string
		if c.strategy == StrategyIndividualNodes {
			text = nodeText(node, "")
		} else {
			text = subtreeText(node)
		}
		if text == "" {
			continue
		}
		chunks = append(chunks, Chunk{Text: text, Source: i})
	}

	return chunks, flat
}

// nodeText строит текст одного узла: семантический контекст, затем роль,
// имя и атрибуты, через " | ".
func nodeText(node *aria.Node, parentContext string) string {
	var parts []string

	if ctx := inferSemanticContext(node, parentContext); ctx != "" {
		parts = append(parts, ctx)
	}

	if node.Role != "" {
		parts = append(parts, "Role: "+node.Role)
	}
	if node.Name != "" {
		parts = append(parts, "Name: "+node.Name)
	}
	if len(node.Attrs) > 0 {
		attrs := make([]string, 0, len(node.Attrs))
		for _, a := range node.Attrs {
			attrs = append(attrs, a.Name+"="+a.Value)
		}
		parts = append(parts, "Attributes: "+strings.Join(attrs, ", "))
	}

	return strings.Join(parts, " | ")
}

// subtreeText объединяет текст узла и всех потомков через пробел.
func subtreeText(node *aria.Node) string {
	texts := []string{nodeText(node, "")}
	for _, child := range node.Children {
		if t := subtreeText(child); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}

// Шаблон места: номер ряда из 1-2 цифр и буква A-K, как в схемах салона
var seatPattern = regexp.MustCompile(`(?i)^(\d{1,2})([A-K])$`)

var (
	submitKeywords = []string{"submit", "continue", "next", "confirm"}
	cancelKeywords = []string{"cancel", "back", "previous"}
)

// inferSemanticContext выводит доменный контекст из узла. Фразы нужны только
// для смещения косинусной близости к доменным понятиям: голое имя "10A"
// лексически не похоже на "seat", и без контекста эмбеддинг его не найдёт.
func inferSemanticContext(node *aria.Node, parentContext string) string {
	var parts []string

	if node.Name != "" {
		if m := seatPattern.FindStringSubmatch(node.Name); m != nil {
			parts = append(parts, "seat row "+m[1])
			parts = append(parts, "seat "+node.Name)

			if v, _ := node.Attr("disabled"); v == "true" {
				parts = append(parts, "unavailable occupied taken")
			} else {
				parts = append(parts, "available free selectable")
			}
		}
	}

	switch node.Role {
	case "textbox", "combobox", "searchbox":
		parts = append(parts, "input field form")
	case "link":
		parts = append(parts, "navigation link clickable")
	case "button":
		if node.Name != "" {
			nameLower := strings.ToLower(node.Name)
			if containsAny(nameLower, submitKeywords) {
				parts = append(parts, "submit action confirm")
			} else if containsAny(nameLower, cancelKeywords) {
				parts = append(parts, "cancel navigation back")
			}
		}
	}

	if parentContext != "" {
		parts = append(parts, parentContext)
	}

	return strings.Join(parts, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// CreateHTMLChunks строит чанки из плоского списка HTML элементов,
// по одному чанку на элемент.
func CreateHTMLChunks(elements []htmlparse.Element) []Chunk {
	var chunks []Chunk
	for i, el := range elements {
		if text := elementText(el); text != "" {
			chunks = append(chunks, Chunk{Text: text, Source: i})
		}
	}
	return chunks
}

// Значимые атрибуты HTML элементов в фиксированном порядке
var importantAttrs = []string{"id", "class", "name", "type", "value", "placeholder", "href", "title", "aria-label"}

func elementText(el htmlparse.Element) string {
	parts := []string{"Tag: " + el.Tag}

	if el.Text != "" {
		parts = append(parts, "Text: "+el.Text)
	}
	for _, attr := range importantAttrs {
		if v, ok := el.Attributes[attr]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", attr, v))
		}
	}

	return strings.Join(parts, " | ")
}
