package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("", "hunter22"))
	assert.False(t, CheckPassword("not-a-hash", "hunter22"))
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer("s3cret", time.Hour)
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return now })

	token, err := issuer.Issue("u1", domain.RoleEmployee)
	require.NoError(t, err)

	sub, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)
}

func TestTokenIssuer_Expired(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer("s3cret", time.Hour)
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return now })

	token, err := issuer.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindAuth))
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	a, err := NewTokenIssuer("secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewTokenIssuer("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := a.Issue("u1", domain.RoleEmployee)
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.True(t, domain.IsKind(err, domain.KindAuth))

	_, err = a.Verify("garbage")
	assert.True(t, domain.IsKind(err, domain.KindAuth))
}

func TestTokenIssuer_RejectsNoneAlgorithm(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cret", time.Hour)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(unsigned)
	assert.True(t, domain.IsKind(err, domain.KindAuth))
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewTokenIssuer("x", 0)
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := Identity{UserID: "u1", Role: domain.RoleAdmin}
	got, ok := FromContext(WithIdentity(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.True(t, got.IsAdmin())
	assert.True(t, got.CanSee("someone-else"))

	emp := Identity{UserID: "u2", Role: domain.RoleEmployee}
	assert.True(t, emp.CanSee("u2"))
	assert.False(t, emp.CanSee("u1"))
}
