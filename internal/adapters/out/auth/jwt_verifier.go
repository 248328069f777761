// Package auth provides credential verification for API and live-connection
// callers. Tokens are JWTs signed with a shared secret; the claims carry the
// caller's identity and role, which both the HTTP middleware and the
// notification gateway resolve through the same verifier.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// ErrSecretIsRequired is returned when the verifier is created without a signing secret.
var ErrSecretIsRequired = errors.New("signing secret is required")

// accessClaims is the internal claims type used for JWT parsing.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// JWTVerifier validates HS256-signed access tokens and resolves the actor
// they encode. It implements ports.CredentialVerifier.
//
// Example:
//
//	verifier, err := auth.NewJWTVerifier(cfg.JWTSecret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	actor, err := verifier.Verify(ctx, token)
//	if errors.Is(err, errs.ErrUnauthenticated) {
//	    // reject the caller
//	}
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
// Returns ErrSecretIsRequired if the secret is empty.
func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}

	return &JWTVerifier{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Verify validates the raw token and returns the actor it encodes.
// Returns errs.UnauthenticatedError when the token is missing, malformed,
// expired, carries an unexpected signing method, or encodes an invalid
// identity or role.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (kernel.Actor, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return kernel.Actor{}, errs.NewUnauthenticatedError("credential is required")
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return kernel.Actor{}, mapJWTError(err)
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthenticatedErrorWithCause("token subject is invalid", err)
	}

	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthenticatedErrorWithCause("token role is invalid", err)
	}

	actor, err := kernel.NewActor(userID, role)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthenticatedErrorWithCause("token identity is invalid", err)
	}

	return actor, nil
}

// IssueToken signs an access token for the actor valid for the given lifetime.
// Primarily used by tooling and tests; production tokens come from the
// identity provider that shares the secret.
func (v *JWTVerifier) IssueToken(actor kernel.Actor, lifetime time.Duration) (string, error) {
	if err := actor.Validate(); err != nil {
		return "", err
	}

	now := v.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		UserID: actor.ID().String(),
		Role:   actor.Role().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// mapJWTError translates jwt library errors to authentication errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errs.NewUnauthenticatedErrorWithCause("token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errs.NewUnauthenticatedErrorWithCause("token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return errs.NewUnauthenticatedErrorWithCause("token signing method is invalid", err)
	default:
		return errs.NewUnauthenticatedErrorWithCause("token is invalid", err)
	}
}
