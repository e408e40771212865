// Package auth issues the HS256 session tokens validated by the middleware.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs session tokens.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
}

func NewIssuer(secret, issuer, audience string) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret key not set")
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience}, nil
}

// CreateToken signs a token for sessionID owned by userID that expires at expiresAt.
func (i *Issuer) CreateToken(sessionID, userID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		Issuer:    i.issuer,
		Audience:  jwt.ClaimStrings{i.audience},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses tokenString and returns its claims.
func (i *Issuer) VerifyToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ValidateToken adapts VerifyToken to the jwtmiddleware validation hook. The
// returned value is a *jwt.RegisteredClaims.
func (i *Issuer) ValidateToken(_ context.Context, tokenString string) (interface{}, error) {
	return i.VerifyToken(tokenString)
}
