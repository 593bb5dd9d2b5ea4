package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 42, "alice", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), tok.Exp, 5*time.Second)

	userID, username, err := ParseSessionToken("topsecret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, "alice", username)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 42, "alice", 30)
	require.NoError(t, err)

	_, _, err = ParseSessionToken("othersecret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, _, err := ParseSessionToken("topsecret", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 42, "alice", -1)
	require.NoError(t, err)

	_, _, err = ParseSessionToken("topsecret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCookies(t *testing.T) {
	tok, err := NewSessionToken("topsecret", 1, "alice", 30)
	require.NoError(t, err)

	ck := NewSessionCookie(tok)
	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, tok.Token, ck.Value)
	assert.True(t, ck.HttpOnly)

	gone := ExpiredSessionCookie()
	assert.Equal(t, SessionCookieName, gone.Name)
	assert.Empty(t, gone.Value)
	assert.Negative(t, gone.MaxAge)
}
