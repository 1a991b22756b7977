// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"strings"

	"github.com/mkarpenko/zkvault/models"
)

// homeModel is the post-login screen: the account summary and the state of
// the in-memory keyring.
type homeModel struct {
	user          models.UserRecord
	backupPending bool
}

func (m homeModel) View() string {
	var b strings.Builder
	b.WriteString("Аккаунт  │ " + m.user.Email + "\n")
	if m.user.Name != "" {
		b.WriteString("Имя      │ " + m.user.Name + "\n")
	}
	b.WriteString("Ключи    │ 4 пары расшифрованы, мастер-ключ в памяти\n")
	if m.backupPending {
		b.WriteString("\nФраза восстановления не подтверждена.\n")
		b.WriteString("Нажмите b, чтобы вернуться к резервной копии.\n")
	}

	return renderPage("СЕАНС ОТКРЫТ", strings.TrimRight(b.String(), "\n"), "l: выйти из аккаунта │ b: резервная копия")
}
