// Package htmlparse разбирает сырой HTML в плоский список элементов для
// семантической фильтрации. Дерево не строится: элементы идут в порядке
// документа, текст и outerHTML усекаются для ограничения размера эмбеддингов.
package htmlparse

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultMaxElements ограничивает стоимость разбора больших страниц.
const DefaultMaxElements = 500

const (
	maxTextLen      = 200
	maxOuterHTMLLen = 500
)

// Element представляет один HTML элемент. Depth всегда 0 в плоской модели.
type Element struct {
	Tag        string
	Text       string
	Attributes map[string]string
	OuterHTML  string
	Depth      int
}

// Включаются только интерактивные и структурные теги
var includedTags = map[string]struct{}{
	"button": {}, "a": {}, "input": {}, "select": {}, "textarea": {}, "form": {},
	"label": {}, "option": {}, "nav": {}, "menu": {}, "menuitem": {},
	"div": {}, "span": {}, "p": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"li": {}, "ul": {}, "ol": {}, "table": {}, "tr": {}, "td": {}, "th": {},
	"img": {}, "header": {}, "footer": {}, "section": {}, "article": {}, "aside": {},
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Parse разбирает HTML в список элементов, не более maxElements.
// html.Parse терпим к несбалансированной разметке, поэтому битый HTML
// никогда не прерывает разбор целиком. maxElements <= 0 включает дефолт.
func Parse(rawHTML string, maxElements int) []Element {
	if maxElements <= 0 {
		maxElements = DefaultMaxElements
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var elements []Element

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(elements) >= maxElements {
			return
		}

		if n.Type == html.ElementNode {
			if _, ok := includedTags[n.Data]; ok {
				if el, ok := buildElement(n); ok {
					elements = append(elements, el)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return elements
}

// buildElement собирает Element из узла. Элемент без текста и без
// value/placeholder отбрасывается: пустые декоративные контейнеры — шум.
func buildElement(n *html.Node) (Element, bool) {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}

	text := collapseWhitespace(textContent(n))
	if text == "" && attrs["value"] == "" && attrs["placeholder"] == "" {
		return Element{}, false
	}

	return Element{
		Tag:        n.Data,
		Text:       truncate(text, maxTextLen),
		Attributes: attrs,
		OuterHTML:  truncate(renderOuterHTML(n), maxOuterHTMLLen),
	}, true
}

// textContent собирает текст узла и потомков, пропуская script/style.
func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func renderOuterHTML(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// truncate обрезает строку до limit символов. Усечение намеренно с потерями:
// оно ограничивает вход эмбеддера и не является ошибкой.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
