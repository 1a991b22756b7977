// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// loginModel is the shared form for both direct-login protocols. The
// opaque flag selects which service call the submit dispatches.
type loginModel struct {
	inputs     []textinput.Model
	focus      int
	opaque     bool
	submitting bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "пароль"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginModel{inputs: []textinput.Model{email, password}}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("Email   │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Вход...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	title := "ВХОД (SRP)"
	if m.opaque {
		title = "ВХОД (OPAQUE)"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: войти")
}
