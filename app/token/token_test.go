package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), Issuer: "taskboard"}

	tok, err := s.Sign(42, "admin")
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "taskboard", claims.Issuer)

	ident := claims.Identity()
	assert.Equal(t, uint(42), ident.UserID)
	assert.True(t, ident.IsAdmin())
}

func TestParseDefaultExpiryIsSevenDays(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret")}

	tok, err := s.Sign(1, "user")
	require.NoError(t, err)
	claims, err := s.Parse(tok)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, DefaultTTL, ttl)
}

func TestParseRejectsUniformly(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret")}
	other := &Signer{Secret: []byte("other-secret")}
	expired := &Signer{Secret: []byte("test-secret"), TTL: -time.Hour}

	badSig, err := other.Sign(1, "user")
	require.NoError(t, err)
	expiredTok, err := expired.Sign(1, "user")
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		reason Reason
	}{
		{"malformed", "not-a-token", ReasonMalformed},
		{"bad signature", badSig, ReasonBadSignature},
		{"expired", expiredTok, ReasonExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Parse(tc.token)
			// every failure collapses to the same external error
			require.ErrorIs(t, err, ErrInvalid)

			ie, ok := AsInvalid(err)
			require.True(t, ok)
			assert.Equal(t, tc.reason, ie.Reason)
		})
	}
}

func TestIdentityRole(t *testing.T) {
	assert.False(t, Identity{UserID: 1, Role: "user"}.IsAdmin())
	assert.True(t, Identity{UserID: 1, Role: "admin"}.IsAdmin())
}
