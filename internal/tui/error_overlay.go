package tui

// errorOverlayModel blocks the current screen until the user acknowledges
// a failure. Trust failures get their own banner: a wrong password and a
// server that cannot prove itself must not look alike.
type errorOverlayModel struct {
	message  string
	security bool
}

func (m errorOverlayModel) View() string {
	title := "Ошибка"
	if m.security {
		title = "Предупреждение безопасности"
	}
	content := title + "\n\n" + m.message + "\n\nenter / esc закрыть"
	return overlayBoxStyle.Render(content)
}
