package service

import (
	"testing"
	"time"

	"github.com/innoforms/admission-portal/internal/apperr"
	"github.com/innoforms/admission-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	f := newFixture(t)

	signed, record, err := f.tokens.Issue(42, model.TokenAccess)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, record.JTI)

	claims, err := f.tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.TokenAccess, claims.Kind)
	assert.Equal(t, record.JTI, claims.ID)
	assert.True(t, f.tokens.IsValid(claims.ID))
}

func TestParseRejectsGarbageAndForeignSignature(t *testing.T) {
	f := newFixture(t)

	_, err := f.tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	other := newFixture(t)
	other.tokens.(*tokenService).secret = []byte("different-secret")
	signed, _, err := other.tokens.Issue(1, model.TokenAccess)
	require.NoError(t, err)

	_, err = f.tokens.Parse(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRevokeTakesEffectImmediately(t *testing.T) {
	f := newFixture(t)

	_, record, err := f.tokens.Issue(7, model.TokenAccess)
	require.NoError(t, err)
	require.True(t, f.tokens.IsValid(record.JTI))

	revoked, err := f.tokens.Revoke(record.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, f.tokens.IsValid(record.JTI))

	// Revoking again reports the same success; the record stays revoked.
	revoked, err = f.tokens.Revoke(record.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, f.tokens.IsValid(record.JTI))
}

func TestIsValidFailsClosedOnUnknownJTI(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.tokens.IsValid("never-issued"))
}

func TestExpiredTokenIsInvalid(t *testing.T) {
	f := newFixture(t)

	signed, record, err := f.tokens.Issue(7, model.TokenAccess)
	require.NoError(t, err)

	// Jump past the access TTL.
	f.tokens.(*tokenService).now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	assert.False(t, f.tokens.IsValid(record.JTI))
	_, err = f.tokens.Parse(signed)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	f := newFixture(t)

	_, access, err := f.tokens.Issue(7, model.TokenAccess)
	require.NoError(t, err)
	_, refresh, err := f.tokens.Issue(7, model.TokenRefresh)
	require.NoError(t, err)

	f.tokens.(*tokenService).now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	assert.False(t, f.tokens.IsValid(access.JTI))
	assert.True(t, f.tokens.IsValid(refresh.JTI))
}
