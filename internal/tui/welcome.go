package tui

type welcomeModel struct {
	items []string
	idx   int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{
		"Войти (пароль)",
		"Войти (OPAQUE)",
		"Завершить регистрацию (OAuth)",
		"Восстановление по фразе",
	}}
}

func (m welcomeModel) View() string {
	out := "zkvault\n\nВыберите действие:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	return renderPage("ВХОД В ХРАНИЛИЩЕ", out, "enter: выбрать │ ↑/↓: навигация")
}
