package semantic

import (
	"fmt"
	"math"
	"strings"

	"ariaAgent/internal/aria"
	"ariaAgent/internal/htmlparse"
)

// FormatTree выводит дерево в исходной строчной форме с отступами.
func FormatTree(nodes []*aria.Node) string {
	var lines []string
	var format func(n *aria.Node, indent int)
	format = func(n *aria.Node, indent int) {
		lines = append(lines, strings.Repeat("  ", indent)+"- "+n.Line())
		for _, child := range n.Children {
			format(child, indent+1)
		}
	}
	for _, n := range nodes {
		format(n, 0)
	}
	return strings.Join(lines, "\n")
}

// FormatFilteredTree выводит структурно отфильтрованное дерево
// с заголовком-счётчиком узлов.
func FormatFilteredTree(nodes []*aria.Node) string {
	if len(nodes) == 0 {
		return "No nodes to display"
	}

	header := fmt.Sprintf("Filtered Accessibility Tree (%d nodes):", aria.CountNodes(nodes))
	return header + "\n\n" + FormatTree(nodes)
}

// FormatResults выводит ранжированные результаты по дереву доступности:
// строка на результат с номером, процентом близости и строчной формой узла.
func FormatResults(chunks []Chunk, flat []*aria.Node, query string) string {
	if len(chunks) == 0 {
		return fmt.Sprintf("No elements matched query: '%s'", query)
	}

	lines := []string{
		fmt.Sprintf("Filtered Accessibility Tree (%d matches for: '%s')", len(chunks), query),
		"",
	}

	for i, chunk := range chunks {
		if chunk.Source < 0 || chunk.Source >= len(flat) {
			continue
		}
		node := flat[chunk.Source]
		lines = append(lines, fmt.Sprintf("%d. [%d%%] %s", i+1, scorePercent(chunk.Score), node.Line()))
	}

	return strings.Join(lines, "\n")
}

// FormatElements выводит плоский список HTML элементов без ранжирования.
func FormatElements(elements []htmlparse.Element) string {
	if len(elements) == 0 {
		return "No elements to display"
	}

	lines := []string{fmt.Sprintf("HTML Elements (%d):", len(elements)), ""}
	for i, el := range elements {
		line := fmt.Sprintf("%d. <%s>", i+1, el.Tag)
		if el.Text != "" {
			line += " " + el.Text
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// FormatHTMLResults выводит ранжированные HTML результаты: строка на результат
// с процентом близости и усечённым outerHTML.
func FormatHTMLResults(chunks []Chunk, elements []htmlparse.Element, query string) string {
	if len(chunks) == 0 {
		return fmt.Sprintf("No HTML elements matched query: '%s'", query)
	}

	lines := []string{
		fmt.Sprintf("Filtered HTML Elements (%d matches for: '%s')", len(chunks), query),
		"",
	}

	for i, chunk := range chunks {
		if chunk.Source < 0 || chunk.Source >= len(elements) {
			continue
		}
		preview := elements[chunk.Source].OuterHTML
		if r := []rune(preview); len(r) > 200 {
			preview = string(r[:200]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%d. [%d%%] %s", i+1, scorePercent(chunk.Score), preview))
	}

	return strings.Join(lines, "\n")
}

func scorePercent(score float64) int {
	return int(math.Round(score * 100))
}
