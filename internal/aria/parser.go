package aria

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Формат строки узла: role "name" [attr1] [attr2=value]
var (
	nodePattern = regexp.MustCompile(`^(?P<role>[a-zA-Z]+)(?:\s+"(?P<name>[^"]*)")?(?P<attrs>(?:\s+\[[^\]]+\])*)$`)
	attrPattern = regexp.MustCompile(`\[([^\]=]+)(?:=([^\]]+))?\]`)

	roleIdx  = nodePattern.SubexpIndex("role")
	nameIdx  = nodePattern.SubexpIndex("name")
	attrsIdx = nodePattern.SubexpIndex("attrs")
)

// ParseSnapshot разбирает YAML-вывод aria_snapshot() в список корневых узлов.
// Некорректный YAML даёт пустой результат, а не ошибку: вызывающая сторона
// трактует пустой список как «ничего не разобрано» и возвращает сырой текст.
func ParseSnapshot(snapshot string) []*Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(snapshot), &doc); err != nil {
		return nil
	}
	return parseYAML(&doc, 0)
}

// parseYAML рекурсивно обходит yaml.Node, сохраняя порядок документа.
// Вложенный список под ключом становится Children с глубиной depth+1.
func parseYAML(n *yaml.Node, depth int) []*Node {
	switch n.Kind {
	case yaml.DocumentNode:
		var nodes []*Node
		for _, c := range n.Content {
			nodes = append(nodes, parseYAML(c, depth)...)
		}
		return nodes

	case yaml.SequenceNode:
		var nodes []*Node
		for _, item := range n.Content {
			nodes = append(nodes, parseYAML(item, depth)...)
		}
		return nodes

	case yaml.ScalarNode:
		if node := parseNodeLine(n.Value, depth); node != nil {
			return []*Node{node}
		}
		return nil

	case yaml.MappingNode:
		var nodes []*Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			node := parseNodeLine(key.Value, depth)
			if node == nil {
				continue
			}
			if !isNullNode(value) {
				node.Children = parseYAML(value, depth+1)
			}
			nodes = append(nodes, node)
		}
		return nodes

	case yaml.AliasNode:
		if n.Alias != nil {
			return parseYAML(n.Alias, depth)
		}
	}

	return nil
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Value == "")
}

// parseNodeLine разбирает строку вида `role "name" [attrs]`. Строка, не
// подходящая под грамматику, сохраняется как текстовый узел без потери данных.
func parseNodeLine(text string, depth int) *Node {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	m := nodePattern.FindStringSubmatch(text)
	if m == nil {
		return &Node{Role: "text", Name: text, Depth: depth}
	}

	node := &Node{
		Role:  m[roleIdx],
		Name:  m[nameIdx],
		Depth: depth,
	}

	for _, am := range attrPattern.FindAllStringSubmatch(m[attrsIdx], -1) {
		value := am[2]
		if value == "" {
			value = "true"
		}
		node.Attrs = append(node.Attrs, Attribute{Name: am[1], Value: value})
	}

	return node
}
