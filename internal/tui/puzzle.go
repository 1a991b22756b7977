// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mkarpenko/zkvault/internal/service"
)

// puzzleModel renders the backup confirmation quiz. All policy lives in
// [service.BackupPuzzle]; this model only draws slots and feeds entries.
type puzzleModel struct {
	puzzle *service.BackupPuzzle
	input  textinput.Model
	errMsg string
}

func newPuzzleModel(puzzle *service.BackupPuzzle) puzzleModel {
	in := textinput.New()
	in.Placeholder = "слово"
	in.CharLimit = 16
	in.Width = 20
	in.Focus()
	return puzzleModel{puzzle: puzzle, input: in}
}

// submitWord feeds the typed word into the focused hidden slot.
func (m *puzzleModel) submitWord() {
	focus := m.puzzle.Focus()
	if focus < 0 {
		return
	}
	if err := m.puzzle.Fill(focus, m.input.Value()); err != nil {
		m.errMsg = humanizeError(err)
		return
	}
	m.input.SetValue("")
	m.errMsg = ""
}

func (m puzzleModel) View() string {
	var b strings.Builder
	b.WriteString("Восстановите скрытые слова по своей записи.\n\n")

	hidden := map[int]bool{}
	for _, i := range m.puzzle.Hidden() {
		hidden[i] = true
	}
	focus := m.puzzle.Focus()

	for i := 0; i < service.PuzzleWordCount; i++ {
		marker := "  "
		if i == focus {
			marker = "> "
		}
		slot := m.puzzle.Slot(i)
		switch {
		case hidden[i] && slot == "":
			slot = "______"
		case hidden[i]:
			slot = "[" + slot + "]"
		}
		b.WriteString(fmt.Sprintf("%s%2d. %-16s", marker, i+1, slot))
		if (i+1)%3 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\nСлово: [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if focus < 0 {
		b.WriteString("\nВсе слова заполнены — подтвердите ввод.\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("ПРОВЕРКА ФРАЗЫ", strings.TrimRight(b.String(), "\n"), "enter: слово/подтвердить │ r: перемешать │ esc: отложить")
}
