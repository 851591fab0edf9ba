package ui

import "fmt"

// FormatFallback возвращает иконку, цвет и текст для причины деградации
func FormatFallback(fallback string) (icon, color, text string) {
	switch fallback {
	case "":
		return IconCheckmark, ColorGreen, "успех"
	case "parse_failure":
		return IconCross, ColorYellow, "не разобрано"
	case "no_chunks":
		return IconCross, ColorYellow, "нет чанков"
	case "no_structural_matches":
		return IconCross, ColorYellow, "нет совпадений по фильтрам"
	case "embedding_failure":
		return IconCross, ColorRed, "ошибка эмбеддинга"
	default:
		return IconCross, ColorYellow, fallback
	}
}

// ClearScreen очищает терминал
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
