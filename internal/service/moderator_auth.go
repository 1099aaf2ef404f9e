package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

// ModeratorIssuer is the iss claim of moderator tokens.
const ModeratorIssuer = "igaming-events-api"

// ModeratorAuth issues and validates HS256 moderator tokens.
type ModeratorAuth struct {
	secret []byte
	now    func() time.Time
}

// NewModeratorAuth returns an authenticator keyed by secret.
func NewModeratorAuth(secret string) (*ModeratorAuth, error) {
	if secret == "" {
		return nil, errors.New("moderator auth: JWT_SECRET is empty")
	}
	return &ModeratorAuth{secret: []byte(secret), now: time.Now}, nil
}

// IssueToken signs a moderator token for subject valid for ttl.
func (a *ModeratorAuth) IssueToken(subject, email string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := a.now().UTC()
	expiresAt := issuedAt.Add(ttl)
	claims := &models.ModeratorClaims{
		Email: email,
		Role:  models.RoleModerator,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ModeratorIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses tokenString and requires the moderator role.
func (a *ModeratorAuth) ValidateToken(tokenString string) (*models.ModeratorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.ModeratorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(ModeratorIssuer), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.ModeratorClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.Role != models.RoleModerator {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "moderator role required")
	}
	return claims, nil
}
