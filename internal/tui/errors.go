// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package tui

import (
	"errors"

	"github.com/mkarpenko/zkvault/internal/service"
)

// humanizeError maps the service error taxonomy to a short user-facing
// message. Credential errors never name the protocol layer that failed;
// server-trust errors warn explicitly, since they indicate interception.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrCredential):
		return "Неверный пароль или фраза восстановления"
	case errors.Is(err, service.ErrServerTrust):
		return "ВНИМАНИЕ: сервер не смог подтвердить подлинность. Возможен перехват соединения"
	case errors.Is(err, service.ErrCorruption):
		return "Данные ключей повреждены, выполните вход заново"
	case errors.Is(err, service.ErrTransport):
		return "Отсутствует сеть или сервер недоступен"
	case errors.Is(err, service.ErrKeySetupRequired):
		return "Аккаунт ещё не завершил настройку ключей"
	default:
		return err.Error()
	}
}
