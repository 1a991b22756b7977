// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package keyring holds the decrypted master key for the lifetime of an
// authenticated session. The key lives only in memory and is zeroed on
// logout; nothing in this package ever touches disk.
package keyring

import (
	"errors"
	"sync"

	"github.com/mkarpenko/zkvault/internal/crypto"
)

// ErrNoKey is returned by Get when no master key has been cached yet, or
// after Clear has run.
var ErrNoKey = errors.New("no master key cached")

// Manager caches the master key and the account salt it was derived under.
// Safe for concurrent use; concurrent writers are last-write-wins.
type Manager struct {
	mu      sync.RWMutex
	key     []byte
	salt    []byte
	deriver crypto.KeyDeriver
}

// NewManager constructs an empty Manager.
func NewManager(deriver crypto.KeyDeriver) *Manager {
	return &Manager{deriver: deriver}
}

// DeriveAndCache derives the master key from the password and account salt
// and caches it, replacing any previously cached key. The derived key is
// also returned so callers can immediately unwrap keypairs with it.
func (m *Manager) DeriveAndCache(password, accountSalt []byte) ([]byte, error) {
	key, err := m.deriver.DeriveKey(password, accountSalt)
	if err != nil {
		return nil, err
	}
	m.cache(key, accountSalt)
	return key, nil
}

// CacheExisting stores an already-derived master key, e.g. one produced by
// the recovery path rather than a password.
func (m *Manager) CacheExisting(key, accountSalt []byte) error {
	if len(key) != crypto.KeySize {
		return crypto.ErrBadKeySize
	}
	if len(accountSalt) != crypto.SaltSize {
		return crypto.ErrBadSaltSize
	}
	m.cache(key, accountSalt)
	return nil
}

func (m *Manager) cache(key, salt []byte) {
	keyCopy := append([]byte(nil), key...)
	saltCopy := append([]byte(nil), salt...)

	m.mu.Lock()
	zero(m.key)
	m.key = keyCopy
	m.salt = saltCopy
	m.mu.Unlock()
}

// Get returns a copy of the cached master key.
func (m *Manager) Get() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.key == nil {
		return nil, ErrNoKey
	}
	return append([]byte(nil), m.key...), nil
}

// AccountSalt returns a copy of the salt the cached key was derived under,
// or nil when nothing is cached.
func (m *Manager) AccountSalt() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.salt == nil {
		return nil
	}
	return append([]byte(nil), m.salt...)
}

// HasKey reports whether a master key is currently cached.
func (m *Manager) HasKey() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key != nil
}

// Clear zeroes and drops the cached key material. Safe to call repeatedly.
func (m *Manager) Clear() {
	m.mu.Lock()
	zero(m.key)
	zero(m.salt)
	m.key = nil
	m.salt = nil
	m.mu.Unlock()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
