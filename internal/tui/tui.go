// Package tui implements the terminal client: welcome/login/signup and
// recovery forms, the one-time recovery-phrase display, and the backup
// confirmation quiz. All account logic lives in the service layer; models
// here only render state and dispatch async commands.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/internal/service"
	"github.com/mkarpenko/zkvault/internal/session"
)

type TUI struct {
	services *service.ClientServices
	session  *session.Manager
	logger   *logger.Logger
}

func New(services *service.ClientServices, sess *session.Manager, log *logger.Logger) (*TUI, error) {
	return &TUI{services: services, session: sess, logger: log}, nil
}

// Run drives one full session: authentication, optional backup
// confirmation, and the open-session screen. It returns logout=true when
// the user logged out and wants to authenticate again.
func (t *TUI) Run(ctx context.Context) (logout bool, err error) {
	model := newAppModel(ctx, t.services, t.session)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.err != nil {
		return false, result.err
	}
	return result.logout, nil
}
