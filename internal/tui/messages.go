package tui

import (
	"github.com/mkarpenko/zkvault/internal/crypto"
	"github.com/mkarpenko/zkvault/models"
)

// authDoneMsg closes any of the three authentication flows: login, OAuth
// signup completion, recovery.
type authDoneMsg struct {
	user models.UserRecord
	ring *crypto.SessionKeyring
	err  error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
