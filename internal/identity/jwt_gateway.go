package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Claims are the access-token claims issued by the identity provider.
type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// JWTGateway resolves callers from bearer access tokens.
type JWTGateway struct {
	keyfunc  jwt.Keyfunc
	methods  []string
	issuer   string
	sessions SessionStore
	logger   *zap.Logger
}

// NewHMACGateway verifies HS256 tokens signed with a shared secret.
// sessions may be nil, in which case revocation is not checked.
func NewHMACGateway(secret, issuer string, sessions SessionStore, logger *zap.Logger) *JWTGateway {
	key := []byte(secret)
	return &JWTGateway{
		keyfunc:  func(*jwt.Token) (interface{}, error) { return key, nil },
		methods:  []string{jwt.SigningMethodHS256.Alg()},
		issuer:   issuer,
		sessions: sessions,
		logger:   logger,
	}
}

// NewJWKSGateway verifies asymmetric tokens against the provider's JWKS
// endpoint. Keys are refreshed in the background until ctx is cancelled.
func NewJWKSGateway(ctx context.Context, jwksURL, issuer string, sessions SessionStore, logger *zap.Logger) (*JWTGateway, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &JWTGateway{
		keyfunc:  k.Keyfunc,
		methods:  []string{"RS256", "ES256"},
		issuer:   issuer,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// ResolveCaller implements authz.IdentityGateway.
func (g *JWTGateway) ResolveCaller(ctx context.Context, credential string) (authz.Caller, error) {
	raw, ok := bearerToken(credential)
	if !ok {
		return authz.Caller{}, authz.ErrInvalidCredential
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(g.methods), jwt.WithExpirationRequired()}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, g.keyfunc, opts...)
	if err != nil || !token.Valid {
		return authz.Caller{}, fmt.Errorf("%w: %v", authz.ErrInvalidCredential, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authz.Caller{}, fmt.Errorf("%w: subject is not a user ID", authz.ErrInvalidCredential)
	}
	role, err := authz.ParseRole(claims.Role)
	if err != nil {
		return authz.Caller{}, fmt.Errorf("%w: %v", authz.ErrInvalidCredential, err)
	}

	if g.sessions != nil && claims.SessionID != "" {
		revoked, err := g.sessions.IsRevoked(ctx, claims.SessionID)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return authz.Caller{}, ctx.Err()
			}
			g.logger.Error("session store unreachable", zap.Error(err))
			return authz.Caller{}, domain.NewUpstreamError("session store", err)
		}
		if revoked {
			return authz.Caller{}, fmt.Errorf("%w: session revoked", authz.ErrInvalidCredential)
		}
	}

	return authz.Caller{UserID: userID, Role: role}, nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
