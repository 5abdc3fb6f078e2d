package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-secret"

type fakeSessions struct {
	revoked map[string]bool
	err     error
}

func (f fakeSessions) IsRevoked(_ context.Context, sid string) (bool, error) {
	return f.revoked[sid], f.err
}

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + s
}

func claimsFor(userID uuid.UUID, role, sid string, ttl time.Duration) Claims {
	return Claims{
		Role:      role,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "kilat-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func TestJWTGateway_ResolveCaller(t *testing.T) {
	userID := uuid.New()
	gw := NewHMACGateway(testSecret, "kilat-auth", fakeSessions{}, zaptest.NewLogger(t))

	caller, err := gw.ResolveCaller(context.Background(), sign(t, testSecret, claimsFor(userID, "accommodation_owner", "s1", time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, userID, caller.UserID)
	assert.Equal(t, authz.RoleAccommodationOwner, caller.Role)
}

func TestJWTGateway_Rejects(t *testing.T) {
	userID := uuid.New()
	logger := zaptest.NewLogger(t)
	gw := NewHMACGateway(testSecret, "kilat-auth", fakeSessions{revoked: map[string]bool{"gone": true}}, logger)

	wrongIssuer := claimsFor(userID, "customer", "", time.Hour)
	wrongIssuer.Issuer = "someone-else"
	noExpiry := claimsFor(userID, "customer", "", time.Hour)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name       string
		credential string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", sign(t, "other", claimsFor(userID, "customer", "", time.Hour))},
		{"expired", sign(t, testSecret, claimsFor(userID, "customer", "", -time.Minute))},
		{"no expiry", sign(t, testSecret, noExpiry)},
		{"wrong issuer", sign(t, testSecret, wrongIssuer)},
		{"typo role", sign(t, testSecret, claimsFor(userID, "super_admin", "", time.Hour))},
		{"revoked session", sign(t, testSecret, claimsFor(userID, "customer", "gone", time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gw.ResolveCaller(context.Background(), tt.credential)
			require.Error(t, err)
			assert.ErrorIs(t, err, authz.ErrInvalidCredential)
		})
	}

	t.Run("subject is not a uuid", func(t *testing.T) {
		c := claimsFor(userID, "customer", "", time.Hour)
		c.Subject = "42"
		_, err := gw.ResolveCaller(context.Background(), sign(t, testSecret, c))
		assert.ErrorIs(t, err, authz.ErrInvalidCredential)
	})
}

func TestJWTGateway_SessionStoreDown(t *testing.T) {
	gw := NewHMACGateway(testSecret, "", fakeSessions{err: errors.New("connection refused")}, zaptest.NewLogger(t))

	_, err := gw.ResolveCaller(context.Background(), sign(t, testSecret, claimsFor(uuid.New(), "customer", "s1", time.Hour)))
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstreamUnavailable, domain.KindOf(err))
}
