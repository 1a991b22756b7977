// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// signupModel finishes an OAuth registration: the provisional token comes
// from the browser redirect, the password is chosen here and never sent
// to the server in the clear.
type signupModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newSignupModel() signupModel {
	token := textinput.New()
	token.Placeholder = "токен из браузера"
	token.CharLimit = 2048
	token.Width = 40
	token.Focus()

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

	return signupModel{inputs: []textinput.Model{token, password, repeat}}
}

func (m signupModel) View() string {
	var b strings.Builder
	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼───────────────────────────────────────────\n")
	b.WriteString("Токен    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Пароль   │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Повтор   │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Создание ключей... это может занять несколько секунд]\n")
	} else {
		b.WriteString("\n[Продолжить]\n")
	}

	return renderPage("ЗАВЕРШЕНИЕ РЕГИСТРАЦИИ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
