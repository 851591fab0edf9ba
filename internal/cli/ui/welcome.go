package ui

import "fmt"

// PrintWelcome выводит приветствие
func PrintWelcome() {
	fmt.Println(ColorBold + IconRobot + " Aria-Agent v0.1.0" + ColorReset)
	fmt.Println(ColorGray + "Семантическая фильтрация дерева доступности для LLM агента" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorCyan + IconBulb + " Совет:" + ColorReset + " Откройте страницу командой " + ColorYellow + "open" + ColorReset + ", затем ищите элементы: " + ColorYellow + "filter выбрать место 10A" + ColorReset)
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "open" + ColorReset + " <url>           - Открыть URL и снять снимок страницы")
	fmt.Println("  " + ColorGreen + "load" + ColorReset + " <файл>          - Загрузить ARIA snapshot из файла")
	fmt.Println("  " + ColorGreen + "loadhtml" + ColorReset + " <файл>      - Загрузить HTML из файла")
	fmt.Println("  " + ColorGreen + "tree" + ColorReset + "                 - Показать дерево (с учётом ролей/состояний)")
	fmt.Println("  " + ColorGreen + "filter" + ColorReset + " <запрос>      - Семантический поиск по дереву доступности")
	fmt.Println("  " + ColorGreen + "html" + ColorReset + " <запрос>        - Семантический поиск по HTML")
	fmt.Println("  " + ColorGreen + "set" + ColorReset + " <параметр> <значение> - threshold, limit, depth, strategy, roles, states")
	fmt.Println("  " + ColorGreen + "settings" + ColorReset + "             - Текущие параметры фильтрации")
	fmt.Println("  " + ColorGreen + "logs" + ColorReset + "                 - Последние вызовы фильтрации")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "                - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                 - Выход")
	fmt.Println()
}
