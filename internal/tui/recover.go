// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// recoverModel collects the 12-word phrase and the replacement password.
type recoverModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRecoverModel() recoverModel {
	phrase := textinput.New()
	phrase.Placeholder = "12 слов через пробел"
	phrase.CharLimit = 512
	phrase.Width = 60
	phrase.Focus()

	password := textinput.New()
	password.Placeholder = "новый пароль"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "повтор пароля"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return recoverModel{inputs: []textinput.Model{phrase, password, repeat}}
}

func (m recoverModel) View() string {
	var b strings.Builder
	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼───────────────────────────────────────────\n")
	b.WriteString("Фраза    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Пароль   │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Повтор   │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Восстановление...]\n")
	} else {
		b.WriteString("\n[Восстановить доступ]\n")
	}

	return renderPage("ВОССТАНОВЛЕНИЕ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
