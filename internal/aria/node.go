// Package aria реализует разбор и структурную фильтрацию ARIA snapshot
// дерева доступности, которое браузер возвращает в YAML-подобном формате.
package aria

import (
	"fmt"
	"strings"
)

// Attribute представляет ARIA состояние или свойство узла.
// Булевы состояния ([disabled]) хранятся со значением "true".
type Attribute struct {
	Name  string
	Value string
}

// Node представляет один узел дерева доступности.
// Children принадлежат исключительно родителю, Depth корня равен 0.
type Node struct {
	Role     string
	Name     string
	Attrs    []Attribute
	Children []*Node
	Depth    int
}

// Attr возвращает значение атрибута по точному имени.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Line восстанавливает строковую форму узла: role "name" [attr] [attr=value].
func (n *Node) Line() string {
	parts := []string{n.Role}
	if n.Name != "" {
		parts = append(parts, fmt.Sprintf("%q", n.Name))
	}
	for _, a := range n.Attrs {
		if a.Value == "true" {
			parts = append(parts, "["+a.Name+"]")
		} else {
			parts = append(parts, "["+a.Name+"="+a.Value+"]")
		}
	}
	return strings.Join(parts, " ")
}

// CountNodes считает узлы дерева вместе с потомками.
func CountNodes(nodes []*Node) int {
	count := len(nodes)
	for _, n := range nodes {
		count += CountNodes(n.Children)
	}
	return count
}

// Flatten возвращает узлы в порядке pre-order обхода.
// Индексы в результате используются как ссылки из чанков на узлы.
func Flatten(nodes []*Node) []*Node {
	var flat []*Node
	var walk func([]*Node)
	walk = func(list []*Node) {
		for _, n := range list {
			flat = append(flat, n)
			walk(n.Children)
		}
	}
	walk(nodes)
	return flat
}

// LimitDepth обрезает дерево до максимальной глубины. Узлы глубже maxDepth
// отбрасываются вместе с поддеревьями. maxDepth <= 0 означает без ограничений.
// Возвращаются копии, исходное дерево не изменяется.
func LimitDepth(nodes []*Node, maxDepth int) []*Node {
	if maxDepth <= 0 {
		return nodes
	}

	var limit func(list []*Node, depth int) []*Node
	limit = func(list []*Node, depth int) []*Node {
		result := make([]*Node, 0, len(list))
		for _, n := range list {
			copied := &Node{
				Role:  n.Role,
				Name:  n.Name,
				Attrs: append([]Attribute(nil), n.Attrs...),
				Depth: n.Depth,
			}
			if depth+1 < maxDepth {
				copied.Children = limit(n.Children, depth+1)
			}
			result = append(result, copied)
		}
		return result
	}

	return limit(nodes, 0)
}
