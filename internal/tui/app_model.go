package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/internal/service"
	"github.com/mkarpenko/zkvault/internal/session"
	"github.com/mkarpenko/zkvault/models"
)

var ErrUserQuit = errors.New("user quit")

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenSignup
	screenRecover
	screenMnemonic
	screenPuzzle
	screenHome
)

type appModel struct {
	ctx      context.Context
	services *service.ClientServices
	session  *session.Manager

	currentScreen screen
	welcome       welcomeModel
	login         loginModel
	signup        signupModel
	recovery      recoverModel
	mnemonic      mnemonicModel
	puzzle        puzzleModel
	home          homeModel

	user models.UserRecord
	ring *crypto.SessionKeyring

	err          error
	showError    bool
	errorOverlay errorOverlayModel
	logout       bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, sess *session.Manager) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		session:       sess,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		signup:        newSignupModel(),
		recovery:      newRecoverModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.err = ErrUserQuit
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay = errorOverlayModel{}
			}
			return m, nil
		}
	case authDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			m.errorOverlay.security = errors.Is(msg.err, service.ErrServerTrust)
			return m, nil
		}
		m.user = msg.user
		m.ring = msg.ring
		return m.afterAuth()
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf("Не удалось скопировать: " + msg.err.Error())
			return m, nil
		}
		m.mnemonic.status = "Скопировано!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.mnemonic.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenSignup:
		return m.updateSignup(msg)
	case screenRecover:
		return m.updateRecover(msg)
	case screenMnemonic:
		return m.updateMnemonic(msg)
	case screenPuzzle:
		return m.updatePuzzle(msg)
	case screenHome:
		return m.updateHome(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenSignup:
		body = m.signup.View()
	case screenRecover:
		body = m.recovery.View()
	case screenMnemonic:
		body = m.mnemonic.View()
	case screenPuzzle:
		body = m.puzzle.View()
	case screenHome:
		body = m.home.View()
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

// afterAuth routes an authenticated user: to the one-time phrase display
// when a fresh mnemonic waits for backup, straight home otherwise.
func (m appModel) afterAuth() (tea.Model, tea.Cmd) {
	if phrase, ok := m.session.PeekMnemonic(); ok {
		m.mnemonic = mnemonicModel{phrase: phrase}
		m.currentScreen = screenMnemonic
		return m, nil
	}
	m.home = homeModel{user: m.user}
	m.currentScreen = screenHome
	return m, nil
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay = errorOverlayModel{message: message}
}

func (m *appModel) setSubmitting(v bool) {
	m.login.submitting = v
	m.signup.submitting = v
	m.recovery.submitting = v
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		switch m.welcome.idx {
		case 0:
			m.login = newLoginModel()
			m.currentScreen = screenLogin
		case 1:
			m.login = newLoginModel()
			m.login.opaque = true
			m.currentScreen = screenLogin
		case 2:
			m.signup = newSignupModel()
			m.currentScreen = screenSignup
		case 3:
			m.recovery = newRecoverModel()
			m.currentScreen = screenRecover
		}
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if email == "" || pass == "" {
				m.showErrorf("Email и пароль обязательны")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(email, pass, m.login.opaque)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateSignup(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.signup = focusNextSignup(m.signup)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.signup = focusPrevSignup(m.signup)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.signup.submitting {
				return m, nil
			}
			token := strings.TrimSpace(m.signup.inputs[0].Value())
			pass := m.signup.inputs[1].Value()
			repeat := m.signup.inputs[2].Value()
			if token == "" || pass == "" {
				m.showErrorf("Токен и пароль обязательны")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.signup.submitting = true
			return m, m.cmdSignup(token, pass)
		}
	}

	var cmd tea.Cmd
	m.signup.inputs[m.signup.focus], cmd = m.signup.inputs[m.signup.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRecover(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.recovery = focusNextRecover(m.recovery)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.recovery = focusPrevRecover(m.recovery)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.recovery.submitting {
				return m, nil
			}
			phrase := strings.TrimSpace(m.recovery.inputs[0].Value())
			pass := m.recovery.inputs[1].Value()
			repeat := m.recovery.inputs[2].Value()
			if phrase == "" || pass == "" {
				m.showErrorf("Фраза и новый пароль обязательны")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.recovery.submitting = true
			return m, m.cmdRecover(phrase, pass)
		}
	}

	var cmd tea.Cmd
	m.recovery.inputs[m.recovery.focus], cmd = m.recovery.inputs[m.recovery.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateMnemonic(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.mnemonic.phrase)
	case key.Matches(keyMsg, keys.enter):
		puzzle, err := service.NewBackupPuzzle(m.mnemonic.phrase)
		if err != nil {
			m.showErrorf(humanizeError(err))
			return m, nil
		}
		if err := puzzle.StartVerification(); err != nil {
			m.showErrorf(humanizeError(err))
			return m, nil
		}
		m.puzzle = newPuzzleModel(puzzle)
		m.currentScreen = screenPuzzle
		return m, nil
	case key.Matches(keyMsg, keys.esc):
		// Deferred: the phrase stays in the session until logout.
		m.home = homeModel{user: m.user, backupPending: true}
		m.currentScreen = screenHome
		return m, nil
	}
	return m, nil
}

func (m appModel) updatePuzzle(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.home = homeModel{user: m.user, backupPending: true}
			m.currentScreen = screenHome
			return m, nil
		case key.Matches(keyMsg, keys.reshuffle):
			if err := m.puzzle.puzzle.Reshuffle(); err != nil {
				m.puzzle.errMsg = humanizeError(err)
			} else {
				m.puzzle.errMsg = ""
				m.puzzle.input.SetValue("")
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.puzzle.puzzle.Focus() >= 0 {
				m.puzzle.submitWord()
				return m, nil
			}
			return m.confirmPuzzle()
		}
	}

	var cmd tea.Cmd
	m.puzzle.input, cmd = m.puzzle.input.Update(msg)
	return m, cmd
}

func (m appModel) confirmPuzzle() (tea.Model, tea.Cmd) {
	err := m.puzzle.puzzle.Confirm()
	switch {
	case err == nil:
		// Proof accepted: the phrase is discarded for good.
		m.session.TakeMnemonic()
		m.home = homeModel{user: m.user}
		m.currentScreen = screenHome
		return m, nil
	case errors.Is(err, service.ErrPuzzleMismatch):
		m.puzzle.errMsg = "Слова не совпали, попробуйте ещё раз"
		if rerr := m.puzzle.puzzle.StartVerification(); rerr != nil {
			m.showErrorf(humanizeError(rerr))
		}
		m.puzzle.input.SetValue("")
		return m, nil
	default:
		m.puzzle.errMsg = humanizeError(err)
		return m, nil
	}
}

func (m appModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.logout):
		m.services.AuthService.Logout(m.ctx)
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.backup):
		if phrase, ok := m.session.PeekMnemonic(); ok {
			m.mnemonic = mnemonicModel{phrase: phrase}
			m.currentScreen = screenMnemonic
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) cmdLogin(email, password string, opaque bool) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		var (
			user models.UserRecord
			ring *crypto.SessionKeyring
			err  error
		)
		if opaque {
			user, ring, err = auth.OpaqueLogin(ctx, email, []byte(password))
		} else {
			user, ring, err = auth.PasswordLogin(ctx, email, []byte(password))
		}
		return authDoneMsg{user: user, ring: ring, err: err}
	}
}

func (m appModel) cmdSignup(token, password string) tea.Cmd {
	ctx := m.ctx
	onboard := m.services.OnboardService
	return func() tea.Msg {
		user, ring, err := onboard.CompleteOAuthSignup(ctx, token, []byte(password))
		return authDoneMsg{user: user, ring: ring, err: err}
	}
}

func (m appModel) cmdRecover(phrase, newPassword string) tea.Cmd {
	ctx := m.ctx
	recovery := m.services.RecoveryService
	return func() tea.Msg {
		user, ring, err := recovery.RecoverWithMnemonic(ctx, phrase, []byte(newPassword))
		return authDoneMsg{user: user, ring: ring, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextSignup(m signupModel) signupModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevSignup(m signupModel) signupModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRecover(m recoverModel) recoverModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRecover(m recoverModel) recoverModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
