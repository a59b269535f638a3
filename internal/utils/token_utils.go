package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT generates a new HS256 token whose subject is the user id.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAndValidateJWT verifies the signature, the standard time claims and,
// when issuer is not empty, the issuer. It returns the token's claims.
func ParseAndValidateJWT(tokenString string, secret string, issuer string) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
