// internal/app/system/auth/token.go
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the signed payload of the session cookie:
// sub (user id), iat, exp, and a random jti.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the numeric user id carried in sub.
func (c SessionClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errMalformedSub
	}
	return id, nil
}

// IssueToken mints a session token for userID valid for the configured
// session duration. It returns the token and its expiry.
func (sm *SessionManager) IssueToken(userID int64) (string, time.Time, error) {
	now := sm.now()
	if now.Before(time.Unix(0, 0)) {
		return "", time.Time{}, ErrClock
	}
	exp := now.Add(sm.duration)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies the signature, algorithm, and expiry of raw and
// returns its claims.
func (sm *SessionManager) ParseToken(raw string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			return sm.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(sm.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return SessionClaims{}, fmt.Errorf("parse session token: %w", err)
	}
	if claims.IssuedAt == nil || claims.IssuedAt.After(claims.ExpiresAt.Time) {
		return SessionClaims{}, errIssuedAfterExpiry
	}
	if _, err := claims.UserID(); err != nil {
		return SessionClaims{}, err
	}
	return claims, nil
}
