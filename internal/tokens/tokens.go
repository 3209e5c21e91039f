package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for any token that fails verification: bad
// signature, malformed token, or expired. Callers get no finer detail.
var ErrInvalid = errors.New("invalid token")

// UserClaim identifies the account a token was issued for.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims is the JWT payload. The user id sits under a nested "user" object
// to stay wire-compatible with existing clients.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Issue creates a signed HS256 token for the given user id with
// exp = now + ttl.
func Issue(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify parses and validates a token and returns the embedded user id.
// Expiry is checked with zero leeway.
func Verify(raw, secret string) (string, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalid
	}
	if claims.User.ID == "" {
		return "", ErrInvalid
	}
	return claims.User.ID, nil
}
