// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package tokenmanager owns the bearer credential for an API session.

It decodes access token claims locally, tracks expiry, and proactively
refreshes the token before mutating calls when expiry is closer than a
configurable deadline. Claims are decoded WITHOUT verifying the token
signature: the client trusts TLS plus the issuing server, and only needs
the claims for bookkeeping, never for an authorization decision.
*/
package tokenmanager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrMalformedToken is returned when an access token cannot be decoded
// as a structured claims object.
var ErrMalformedToken = errors.New("access token claims cannot be decoded")

// Token is the current credential with fields derived from its claims.
//
// A Token is immutable once stored; a refresh replaces the whole value,
// so Subject and ExpiresAt can never be stale relative to Value.
type Token struct {
	// Value is the opaque bearer string sent in the Authorization header.
	Value string

	// RefreshToken is the separate opaque string used to mint new access tokens.
	RefreshToken string

	// Subject is the user identifier extracted from the claims.
	Subject string

	// ExpiresAt is the absolute expiry extracted from the claims.
	ExpiresAt time.Time
}

// RefreshFunc mints a new token pair from the current subject and refresh
// token. It is issued through the transport with response caching bypassed.
// The returned refresh token may be empty when the server rotates only the
// access token.
type RefreshFunc func(ctx context.Context, subject, refreshToken string) (accessToken, newRefreshToken string, err error)

// TokenManager holds the session credential and decides when to refresh it.
type TokenManager struct {
	refresh  RefreshFunc
	deadline time.Duration
	now      func() time.Time

	mu    sync.Mutex
	token *Token // nil until a token is first set

	// refreshGroup collapses concurrent EnsureFresh calls into a single
	// refresh round-trip.
	refreshGroup singleflight.Group
}

// New creates a TokenManager in the unauthenticated state.
//
// deadline is how close to expiry a proactive refresh triggers.
func New(refresh RefreshFunc, deadline time.Duration) *TokenManager {
	return &TokenManager{
		refresh:  refresh,
		deadline: deadline,
		now:      time.Now,
	}
}

// SetToken decodes the access token's claims and installs it as the
// current credential, keeping the previously stored refresh token.
//
// Returns an error wrapping [ErrMalformedToken] when the claims cannot be
// decoded; the previously held token is left untouched in that case.
func (tm *TokenManager) SetToken(accessToken string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	refreshToken := ""
	if tm.token != nil {
		refreshToken = tm.token.RefreshToken
	}

	return tm.install(accessToken, refreshToken)
}

// SetTokenPair installs a freshly issued access and refresh token pair,
// as returned by the login, registration, and refresh endpoints.
//
// An empty refreshToken keeps the previously stored one.
func (tm *TokenManager) SetTokenPair(accessToken, refreshToken string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if refreshToken == "" && tm.token != nil {
		refreshToken = tm.token.RefreshToken
	}

	return tm.install(accessToken, refreshToken)
}

// install decodes and swaps in the new token. Callers hold tm.mu.
func (tm *TokenManager) install(accessToken, refreshToken string) error {
	subject, expiresAt, err := DecodeUnverified(accessToken)
	if err != nil {
		return err
	}

	// Single pointer assignment: token, subject, and expiry replace atomically.
	tm.token = &Token{
		Value:        accessToken,
		RefreshToken: refreshToken,
		Subject:      subject,
		ExpiresAt:    expiresAt,
	}

	return nil
}

// Bearer returns the current access token value, or the empty string when
// no session is held. It implements the transport's TokenSource.
func (tm *TokenManager) Bearer() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token == nil {
		return ""
	}

	return tm.token.Value
}

// Current returns a copy of the held token and whether one is set.
func (tm *TokenManager) Current() (Token, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token == nil {
		return Token{}, false
	}

	return *tm.token, true
}

// Authenticated reports whether a token has been set.
func (tm *TokenManager) Authenticated() bool {
	_, ok := tm.Current()

	return ok
}

// EnsureFresh refreshes the token when expiry is closer than the deadline,
// or when no token has ever been set.
//
// Every operation that mutates server state must call this before issuing
// its request. With no prior session, the refresh is still attempted with
// empty subject and refresh token fields; the server rejects it with an
// authentication error, which is surfaced to the caller. Callers of
// mutating methods must hold a session, so failing loudly here beats
// silently skipping the refresh.
//
// A failed refresh leaves the previously held token untouched.
func (tm *TokenManager) EnsureFresh(ctx context.Context) error {
	tm.mu.Lock()

	var subject, refreshToken string

	needsRefresh := tm.token == nil
	if tm.token != nil {
		needsRefresh = tm.token.ExpiresAt.Sub(tm.now()) < tm.deadline
		subject = tm.token.Subject
		refreshToken = tm.token.RefreshToken
	}

	tm.mu.Unlock()

	if !needsRefresh {
		return nil
	}

	// Concurrent mutating calls near the expiry boundary would each observe
	// "needs refresh"; singleflight lets them share one round-trip.
	_, err, _ := tm.refreshGroup.Do("refresh", func() (any, error) {
		accessToken, newRefreshToken, err := tm.refresh(ctx, subject, refreshToken)
		if err != nil {
			return nil, err
		}

		return nil, tm.SetTokenPair(accessToken, newRefreshToken)
	})

	return err
}

// DecodeUnverified extracts the subject and expiry claims from an access
// token without verifying its signature.
//
// Signature verification is deliberately skipped: the token is only
// decoded for bookkeeping. A stricter implementation can replace this
// single function with a verifying parse without touching call sites.
func DecodeUnverified(accessToken string) (subject string, expiresAt time.Time, err error) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	subject, err = claims.GetSubject()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return "", time.Time{}, fmt.Errorf("%w: missing or invalid exp claim", ErrMalformedToken)
	}

	return subject, expiry.Time, nil
}
