package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// twoFactorAudience marks a pending token issued after password verification
// but before the TOTP code has been checked. Such a token must never be
// accepted by the normal auth middleware.
const twoFactorAudience = "2fa-pending"

// GenerateJWT generates a new access token for the given user.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims. Tokens carrying the two-factor pending audience are
// rejected here; they are only usable on the 2FA verification endpoint.
func ParseAndValidateJWT(tokenString string, secretKey string) (*jwt.RegisteredClaims, error) {
	claims, err := parseHMACClaims(tokenString, secretKey)
	if err != nil {
		return nil, err
	}
	for _, aud := range claims.Audience {
		if aud == twoFactorAudience {
			return nil, fmt.Errorf("pending two-factor token is not a valid access token")
		}
	}
	return claims, nil
}

// GenerateTwoFactorPendingJWT issues the short-lived token returned by login
// when the account has TOTP enabled.
func GenerateTwoFactorPendingJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		Audience:  jwt.ClaimStrings{twoFactorAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseTwoFactorPendingJWT validates a pending token and returns its claims.
func ParseTwoFactorPendingJWT(tokenString string, secretKey string) (*jwt.RegisteredClaims, error) {
	claims, err := parseHMACClaims(tokenString, secretKey)
	if err != nil {
		return nil, err
	}
	found := false
	for _, aud := range claims.Audience {
		if aud == twoFactorAudience {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("token is not a two-factor pending token")
	}
	return claims, nil
}

func parseHMACClaims(tokenString string, secretKey string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
