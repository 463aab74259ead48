package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims of an application-issued session token.
type SessionClaims struct {
	Method string `json:"method"`
	jwt.RegisteredClaims
}

// GenerateSessionJWT signs a session token for userID. sessionID becomes the jti.
func GenerateSessionJWT(userID, sessionID, method, secret, issuer string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Method: method,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionJWT parses a session token, validating its signature, expiry and issuer.
func ParseSessionJWT(tokenString, secret, issuer string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err // expired, bad signature, wrong issuer ...
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("session token is missing subject or id")
	}

	return claims, nil
}
