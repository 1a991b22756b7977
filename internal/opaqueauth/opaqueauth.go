// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package opaqueauth wraps the OPAQUE aPAKE for accounts that sign up
// through an OAuth provider and therefore have no SRP verifier. All
// message framing is opaque byte slices; the transport layer never needs
// to know the protocol internals.
package opaqueauth

import (
	"errors"
	"fmt"

	"github.com/bytemare/opaque"
)

var (
	// ErrServerMessage means the server sent bytes that do not decode as
	// the expected protocol message.
	ErrServerMessage = errors.New("opaqueauth: malformed server message")

	// ErrAuthFailed means the key exchange completed but the server could
	// not prove knowledge of the registered credential file.
	ErrAuthFailed = errors.New("opaqueauth: authentication failed")
)

// Flow is one OPAQUE exchange, registration or login. Single use: the
// underlying protocol state machine cannot be rewound.
type Flow struct {
	client   *opaque.Client
	clientID []byte
	serverID []byte
}

// NewFlow builds a flow for the given identities using the default
// configuration (ristretto255 with SHA-512).
func NewFlow(clientIdentity, serverIdentity string) (*Flow, error) {
	conf := opaque.DefaultConfiguration()
	client, err := conf.Client()
	if err != nil {
		return nil, fmt.Errorf("instantiate opaque client: %w", err)
	}
	return &Flow{
		client:   client,
		clientID: []byte(clientIdentity),
		serverID: []byte(serverIdentity),
	}, nil
}

// RegisterInit produces the serialized registration request.
func (f *Flow) RegisterInit(password []byte) []byte {
	return f.client.RegistrationInit(password).Serialize()
}

// RegisterFinalize consumes the server's registration response and
// returns the serialized client record to upload, plus the export key.
// The export key never leaves the client; the server cannot derive it.
func (f *Flow) RegisterFinalize(serverResponse []byte) (record, exportKey []byte, err error) {
	response, err := f.client.Deserialize.RegistrationResponse(serverResponse)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrServerMessage, err)
	}
	rec, export := f.client.RegistrationFinalize(response, opaque.ClientRegistrationFinalizeOptions{
		ClientIdentity: f.clientID,
		ServerIdentity: f.serverID,
	})
	return rec.Serialize(), export, nil
}

// LoginInit produces the serialized KE1 message.
func (f *Flow) LoginInit(password []byte) []byte {
	return f.client.LoginInit(password).Serialize()
}

// LoginFinish consumes the server's KE2 and returns the serialized KE3
// to send back, the export key, and the shared session key. An
// ErrAuthFailed here means wrong password or an impostor server; the
// caller must abort without sending KE3.
func (f *Flow) LoginFinish(serverKE2 []byte) (ke3, exportKey, sessionKey []byte, err error) {
	message, err := f.client.Deserialize.KE2(serverKE2)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrServerMessage, err)
	}
	out, export, err := f.client.LoginFinish(message, opaque.ClientLoginFinishOptions{
		ClientIdentity: f.clientID,
		ServerIdentity: f.serverID,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	return out.Serialize(), export, f.client.SessionKey(), nil
}
