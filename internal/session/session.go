// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package session keeps per-login client state: the bearer token issued
// by the server and, for the window between signup and backup
// confirmation, the recovery phrase awaiting display. Everything here is
// memory only.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkarpenko/zkvault/models"
)

// ErrNoToken is returned when no valid bearer token is held.
var ErrNoToken = errors.New("session: not authenticated")

// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	token    models.SessionToken
	mnemonic string
}

// NewManager returns an empty session.
func NewManager() *Manager {
	return &Manager{}
}

// SetToken stores the bearer token. The expiry is peeked from the token's
// exp claim without verifying the signature; verification is the server's
// job, the client only needs to know when to prompt for re-login.
func (m *Manager) SetToken(raw string) error {
	if raw == "" {
		return ErrNoToken
	}

	var expires time.Time
	if token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{}); err == nil {
		if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
			expires = exp.Time
		}
	}

	m.mu.Lock()
	m.token = models.SessionToken{Value: raw, ExpiresAt: expires}
	m.mu.Unlock()
	return nil
}

// Token returns the current bearer token, or ErrNoToken when none is held
// or the held one has expired.
func (m *Manager) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.token.Valid() {
		return "", ErrNoToken
	}
	return m.token.Value, nil
}

// IsAuthenticated reports whether a non-expired token is held.
func (m *Manager) IsAuthenticated() bool {
	_, err := m.Token()
	return err == nil
}

// StashMnemonic holds the recovery phrase until the backup flow consumes
// it. Overwrites any previous stash.
func (m *Manager) StashMnemonic(phrase string) {
	m.mu.Lock()
	m.mnemonic = phrase
	m.mu.Unlock()
}

// PeekMnemonic returns the stashed phrase without consuming it, for
// re-display while the backup flow is still open.
func (m *Manager) PeekMnemonic() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mnemonic, m.mnemonic != ""
}

// TakeMnemonic returns the stashed phrase and clears it. Called once the
// user has confirmed their backup.
func (m *Manager) TakeMnemonic() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	phrase := m.mnemonic
	m.mnemonic = ""
	return phrase, phrase != ""
}

// Clear drops the token and any stashed phrase. Called on logout.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.token = models.SessionToken{}
	m.mnemonic = ""
	m.mu.Unlock()
}
