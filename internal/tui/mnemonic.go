// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"fmt"
	"strings"
)

// mnemonicModel shows the recovery phrase exactly once, before the
// confirmation quiz discards it.
type mnemonicModel struct {
	phrase string
	status string
}

func (m mnemonicModel) View() string {
	var b strings.Builder
	b.WriteString("Запишите фразу восстановления и храните её оффлайн.\n")
	b.WriteString("Она показывается только один раз; без неё забытый\n")
	b.WriteString("пароль означает потерю всех данных.\n\n")

	words := strings.Fields(m.phrase)
	var box strings.Builder
	for i, w := range words {
		box.WriteString(fmt.Sprintf("%2d. %-12s", i+1, w))
		if (i+1)%3 == 0 {
			box.WriteString("\n")
		}
	}
	b.WriteString(phraseBoxStyle.Render(strings.TrimRight(box.String(), "\n")))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	return renderPage("ФРАЗА ВОССТАНОВЛЕНИЯ", strings.TrimRight(b.String(), "\n"), "enter: я записал(а) │ c: копировать │ esc: отложить")
}
