package aria

import "strings"

// StateFilter описывает фильтры ARIA состояний, разобранные из токенов
// '+state' (состояние обязательно) и '-state' (состояние исключается).
// Токен без префикса трактуется как обязательное состояние.
type StateFilter struct {
	Required map[string]struct{}
	Excluded map[string]struct{}
}

// ParseStateFilters разбирает токены фильтров состояний.
// Имена состояний нормализуются к нижнему регистру.
func ParseStateFilters(filterStates []string) StateFilter {
	sf := StateFilter{
		Required: make(map[string]struct{}),
		Excluded: make(map[string]struct{}),
	}

	for _, token := range filterStates {
		switch {
		case strings.HasPrefix(token, "+"):
			sf.Required[strings.ToLower(token[1:])] = struct{}{}
		case strings.HasPrefix(token, "-"):
			sf.Excluded[strings.ToLower(token[1:])] = struct{}{}
		default:
			sf.Required[strings.ToLower(token)] = struct{}{}
		}
	}

	return sf
}

func (sf StateFilter) empty() bool {
	return len(sf.Required) == 0 && len(sf.Excluded) == 0
}

// FilterNodes фильтрует дерево по ролям и ARIA состояниям. Узел, не прошедший
// предикат, заменяется своими подходящими потомками на той же позиции, поэтому
// подходящий потомок никогда не теряется из-за отбракованного предка.
// Возвращаются копии узлов, исходное дерево не изменяется.
// Без фильтров функция возвращает вход без изменений.
func FilterNodes(nodes []*Node, filterStates, filterRoles []string) []*Node {
	if len(filterStates) == 0 && len(filterRoles) == 0 {
		return nodes
	}

	sf := ParseStateFilters(filterStates)

	allowedRoles := make(map[string]struct{}, len(filterRoles))
	for _, r := range filterRoles {
		allowedRoles[strings.ToLower(r)] = struct{}{}
	}

	var filter func(list []*Node) []*Node
	filter = func(list []*Node) []*Node {
		var result []*Node
		for _, node := range list {
			filteredChildren := filter(node.Children)

			if matchesFilters(node, sf, allowedRoles) {
				result = append(result, &Node{
					Role:     node.Role,
					Name:     node.Name,
					Attrs:    append([]Attribute(nil), node.Attrs...),
					Children: filteredChildren,
					Depth:    node.Depth,
				})
			} else {
				// Продвижение детей на место отбракованного узла
				result = append(result, filteredChildren...)
			}
		}
		return result
	}

	return filter(nodes)
}

// matchesFilters проверяет узел по фильтрам ролей и состояний.
// Булево состояние считается установленным при значении "true" или пустом.
func matchesFilters(node *Node, sf StateFilter, allowedRoles map[string]struct{}) bool {
	if len(allowedRoles) > 0 {
		if _, ok := allowedRoles[strings.ToLower(node.Role)]; !ok {
			return false
		}
	}

	if sf.empty() {
		return true
	}

	attrs := make(map[string]string, len(node.Attrs))
	for _, a := range node.Attrs {
		attrs[strings.ToLower(a.Name)] = strings.ToLower(a.Value)
	}

	for state := range sf.Required {
		v, ok := attrs[state]
		if !ok {
			return false
		}
		if v != "true" && v != "" {
			return false
		}
	}

	for state := range sf.Excluded {
		if v, ok := attrs[state]; ok && (v == "true" || v == "") {
			return false
		}
	}

	return true
}
