// Package sanitizer редактирует чувствительные данные в текстах чанков
// перед отправкой внешнему эмбеддинг-провайдеру. Страница может содержать
// введённые пользователем email, телефоны и платёжные данные — они не должны
// покидать процесс.
package sanitizer

// Rule редактирует один класс чувствительных данных.
type Rule interface {
	Sanitize(text string) string
}

type DataSanitizer struct {
	rules []Rule
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []Rule{
			&CardSanitizer{},
			&EmailSanitizer{},
			&PhoneSanitizer{},
		},
	}
}

// Sanitize прогоняет текст через все правила. Порядок имеет значение:
// номера карт фильтруются до телефонов, иначе общий телефонный шаблон
// съедает часть номера карты.
func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}

	return result
}
