// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package tokenmanager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

// mintToken creates a signed access token for a subject expiring at exp.
// The signature key is irrelevant to the manager, which never verifies it.
func mintToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
	}).SignedString(testSigningKey)
	require.NoError(t, err)

	return token
}

// fakeRefresher records refresh calls and serves scripted token pairs.
type fakeRefresher struct {
	mu       sync.Mutex
	calls    int
	subjects []string
	tokens   []string
	access   string
	refresh  string
	err      error
}

func (f *fakeRefresher) fn(_ context.Context, subject, refreshToken string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.subjects = append(f.subjects, subject)
	f.tokens = append(f.tokens, refreshToken)

	if f.err != nil {
		return "", "", f.err
	}

	return f.access, f.refresh, nil
}

func TestSetTokenPairExtractsClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access := mintToken(t, "user-1", exp)

	tm := New(nil, 30*time.Second)
	require.NoError(t, tm.SetTokenPair(access, "refresh-1"))

	token, ok := tm.Current()
	require.True(t, ok)
	assert.Equal(t, access, token.Value)
	assert.Equal(t, "refresh-1", token.RefreshToken)
	assert.Equal(t, "user-1", token.Subject)
	assert.True(t, token.ExpiresAt.Equal(exp))
	assert.Equal(t, access, tm.Bearer())
}

func TestSetTokenRejectsMalformedToken(t *testing.T) {
	t.Parallel()

	tm := New(nil, 30*time.Second)

	err := tm.SetToken("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)

	// The manager stays unauthenticated.
	assert.False(t, tm.Authenticated())
	assert.Empty(t, tm.Bearer())
}

func TestSetTokenRejectsMissingExpiry(t *testing.T) {
	t.Parallel()

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
	}).SignedString(testSigningKey)
	require.NoError(t, err)

	tm := New(nil, 30*time.Second)
	require.ErrorIs(t, tm.SetToken(noExp), ErrMalformedToken)
}

func TestSetTokenKeepsStoredRefreshToken(t *testing.T) {
	t.Parallel()

	tm := New(nil, 30*time.Second)
	require.NoError(t, tm.SetTokenPair(mintToken(t, "user-1", time.Now().Add(time.Hour)), "refresh-1"))

	// Installing a bare access token keeps the refresh token around.
	require.NoError(t, tm.SetToken(mintToken(t, "user-1", time.Now().Add(2*time.Hour))))

	token, ok := tm.Current()
	require.True(t, ok)
	assert.Equal(t, "refresh-1", token.RefreshToken)
}

func TestEnsureFreshRefreshPolicy(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deadline := 30 * time.Second

	tests := []struct {
		name        string
		expiresIn   time.Duration
		wantRefresh bool
	}{
		{"expires well in the future", time.Hour, false},
		{"expires exactly at the deadline", deadline, false},
		{"expires just inside the deadline", deadline - time.Second, true},
		{"already expired", -time.Minute, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			refresher := &fakeRefresher{
				access: mintToken(t, "user-1", now.Add(time.Hour)),
			}

			tm := New(refresher.fn, deadline)
			tm.now = func() time.Time { return now }

			require.NoError(t, tm.SetTokenPair(mintToken(t, "user-1", now.Add(tt.expiresIn)), "refresh-1"))
			require.NoError(t, tm.EnsureFresh(context.Background()))

			if tt.wantRefresh {
				assert.Equal(t, 1, refresher.calls)
				assert.Equal(t, []string{"user-1"}, refresher.subjects)
				assert.Equal(t, []string{"refresh-1"}, refresher.tokens)
			} else {
				assert.Zero(t, refresher.calls)
			}
		})
	}
}

func TestEnsureFreshWithoutSessionFailsLoudly(t *testing.T) {
	t.Parallel()

	authErr := errors.New("status code: 401")
	refresher := &fakeRefresher{err: authErr}

	tm := New(refresher.fn, 30*time.Second)

	// No token was ever set: the refresh is still attempted, with empty
	// subject and refresh token, and the server's rejection surfaces.
	err := tm.EnsureFresh(context.Background())
	require.ErrorIs(t, err, authErr)
	assert.Equal(t, []string{""}, refresher.subjects)
	assert.Equal(t, []string{""}, refresher.tokens)
}

func TestEnsureFreshReplacesTokenAtomically(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newExp := now.Add(time.Hour).Truncate(time.Second)
	newAccess := mintToken(t, "user-1", newExp)

	refresher := &fakeRefresher{access: newAccess, refresh: "refresh-2"}

	tm := New(refresher.fn, 30*time.Second)
	tm.now = func() time.Time { return now }

	require.NoError(t, tm.SetTokenPair(mintToken(t, "user-1", now.Add(5*time.Second)), "refresh-1"))
	require.NoError(t, tm.EnsureFresh(context.Background()))

	token, ok := tm.Current()
	require.True(t, ok)
	assert.Equal(t, newAccess, token.Value)
	assert.Equal(t, "refresh-2", token.RefreshToken)
	assert.True(t, token.ExpiresAt.Equal(newExp), "expiry must match the new token's claims")
}

func TestEnsureFreshFailureKeepsOldToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	refreshErr := errors.New("status code: 503")
	refresher := &fakeRefresher{err: refreshErr}

	tm := New(refresher.fn, 30*time.Second)
	tm.now = func() time.Time { return now }

	oldAccess := mintToken(t, "user-1", now.Add(5*time.Second))
	require.NoError(t, tm.SetTokenPair(oldAccess, "refresh-1"))

	require.ErrorIs(t, tm.EnsureFresh(context.Background()), refreshErr)

	// The previously held token is untouched; the caller may retry.
	token, ok := tm.Current()
	require.True(t, ok)
	assert.Equal(t, oldAccess, token.Value)
	assert.Equal(t, "refresh-1", token.RefreshToken)
}

func TestEnsureFreshRefreshWithoutRotatedRefreshToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	refresher := &fakeRefresher{access: mintToken(t, "user-1", now.Add(time.Hour))}

	tm := New(refresher.fn, 30*time.Second)
	tm.now = func() time.Time { return now }

	require.NoError(t, tm.SetTokenPair(mintToken(t, "user-1", now.Add(time.Second)), "refresh-1"))
	require.NoError(t, tm.EnsureFresh(context.Background()))

	// The server rotated only the access token; the stored refresh token survives.
	token, ok := tm.Current()
	require.True(t, ok)
	assert.Equal(t, "refresh-1", token.RefreshToken)
}

func TestEnsureFreshFreshTokenIsNoOp(t *testing.T) {
	t.Parallel()

	refresher := &fakeRefresher{}
	tm := New(refresher.fn, 30*time.Second)

	require.NoError(t, tm.SetTokenPair(mintToken(t, "user-1", time.Now().Add(time.Hour)), "refresh-1"))

	for n := 0; n < 5; n++ {
		require.NoError(t, tm.EnsureFresh(context.Background()))
	}

	assert.Zero(t, refresher.calls)
}

func TestDecodeUnverifiedIgnoresSignature(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	// Sign with a key this client never sees; decoding must still work.
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-9",
		"exp": exp.Unix(),
	}).SignedString([]byte("a-key-the-client-does-not-know"))
	require.NoError(t, err)

	subject, expiresAt, err := DecodeUnverified(access)
	require.NoError(t, err)
	assert.Equal(t, "user-9", subject)
	assert.True(t, expiresAt.Equal(exp))
}
