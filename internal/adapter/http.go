// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/mkarpenko/zkvault/internal/config"
	"github.com/mkarpenko/zkvault/internal/logger"
	"github.com/mkarpenko/zkvault/models"
)

type httpIdentityAPI struct {
	client *resty.Client
	token  string
	logger *logger.Logger
}

// NewHTTPIdentityAPI constructs an HTTP/REST implementation of
// [IdentityAPI]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying client with the
// resolved base URL and request timeout. Every outgoing request carries a
// fresh X-Request-Id so that server logs can be correlated with client logs.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed
// as a valid URL.
func NewHTTPIdentityAPI(adapterCfg config.ClientAdapter, log *logger.Logger) (IdentityAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	h := &httpIdentityAPI{client: client, logger: log}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-Id", uuid.NewString())
		if h.token != "" {
			req.SetHeader("Authorization", "Bearer "+h.token)
		}
		return nil
	})

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [IdentityAPI]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpIdentityAPI) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [IdentityAPI].
func (h *httpIdentityAPI) Token() string {
	return h.token
}

// SRPChallenge implements [IdentityAPI]. It POSTs the client ephemeral to
// POST /api/auth/srp/challenge and returns the server's challenge.
func (h *httpIdentityAPI) SRPChallenge(ctx context.Context, req models.SRPChallengeRequest) (models.SRPChallengeResponse, error) {
	var challenge models.SRPChallengeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&challenge).
		Post("/api/auth/srp/challenge")
	if err != nil {
		return models.SRPChallengeResponse{}, fmt.Errorf("srp challenge request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SRPChallengeResponse{}, err
	}

	return challenge, nil
}

// SRPVerify implements [IdentityAPI]. It POSTs the client proof to
// POST /api/auth/srp/verify. On success the returned token is NOT stored
// automatically; the caller stores it only after verifying the server proof.
func (h *httpIdentityAPI) SRPVerify(ctx context.Context, req models.SRPVerifyRequest) (models.SRPVerifyResponse, error) {
	var result models.SRPVerifyResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/srp/verify")
	if err != nil {
		return models.SRPVerifyResponse{}, fmt.Errorf("srp verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SRPVerifyResponse{}, err
	}

	return result, nil
}

// CompleteOAuthRegistration implements [IdentityAPI]. It POSTs the bundle
// to POST /api/auth/oauth/complete under the provisional OAuth token.
func (h *httpIdentityAPI) CompleteOAuthRegistration(ctx context.Context, bundle models.OAuthRegistrationBundle) (models.UserRecord, error) {
	var user models.UserRecord

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(bundle).
		SetResult(&user).
		Post("/api/auth/oauth/complete")
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("oauth complete request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserRecord{}, err
	}

	return user, nil
}

// GetProfile implements [IdentityAPI]. It GETs /api/profile and returns
// the authenticated account record.
func (h *httpIdentityAPI) GetProfile(ctx context.Context) (models.UserRecord, error) {
	var user models.UserRecord

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/api/profile")
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserRecord{}, err
	}

	return user, nil
}

// UpdateCryptoProfile implements [IdentityAPI]. It PUTs the replacement
// profile to PUT /api/profile/crypto.
func (h *httpIdentityAPI) UpdateCryptoProfile(ctx context.Context, profile models.AccountCryptoProfile) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(profile).
		Put("/api/profile/crypto")
	if err != nil {
		return fmt.Errorf("update crypto profile request: %w", err)
	}
	return mapHTTPError(resp)
}

// OpaqueRegisterInit implements [IdentityAPI].
func (h *httpIdentityAPI) OpaqueRegisterInit(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
	return h.opaqueExchange(ctx, "/api/auth/opaque/register/init", msg)
}

// OpaqueRegisterFinalize implements [IdentityAPI].
func (h *httpIdentityAPI) OpaqueRegisterFinalize(ctx context.Context, msg models.OpaqueMessage) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/api/auth/opaque/register/finalize")
	if err != nil {
		return fmt.Errorf("opaque register finalize request: %w", err)
	}
	return mapHTTPError(resp)
}

// OpaqueLoginInit implements [IdentityAPI].
func (h *httpIdentityAPI) OpaqueLoginInit(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
	return h.opaqueExchange(ctx, "/api/auth/opaque/login/init", msg)
}

// OpaqueLoginFinish implements [IdentityAPI]. The server only issues a
// token after it has verified KE3.
func (h *httpIdentityAPI) OpaqueLoginFinish(ctx context.Context, msg models.OpaqueMessage) (models.OpaqueLoginResult, error) {
	var result models.OpaqueLoginResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		SetResult(&result).
		Post("/api/auth/opaque/login/finish")
	if err != nil {
		return models.OpaqueLoginResult{}, fmt.Errorf("opaque login finish request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OpaqueLoginResult{}, err
	}

	return result, nil
}

func (h *httpIdentityAPI) opaqueExchange(ctx context.Context, path string, msg models.OpaqueMessage) (models.OpaqueMessage, error) {
	var reply models.OpaqueMessage

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		SetResult(&reply).
		Post(path)
	if err != nil {
		return models.OpaqueMessage{}, fmt.Errorf("opaque exchange request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OpaqueMessage{}, err
	}

	return reply, nil
}
