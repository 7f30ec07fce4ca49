// ABOUTME: JWT token issuing and verification for owner identities
// ABOUTME: Uses HS256 signing with the configured token secret

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrMissingSecret       = errors.New("token secret is not configured")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenMissingSubject = errors.New("token carries no owner id")
)

// Identity is the verified content of a token.
type Identity struct {
	OwnerID  string
	Username string
}

// tokenClaims is the JWT payload. Tokens have no expiry.
type tokenClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 signed tokens.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec for the given secret. An empty secret is a
// configuration error.
func NewTokenCodec(secret []byte) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &TokenCodec{secret: secret}, nil
}

// Issue signs a token over the owner's id and username.
func (c *TokenCodec) Issue(ownerID, username string) (string, error) {
	claims := tokenClaims{
		ID:       ownerID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and returns the identity the token encodes.
// A token that verifies but has no owner id fails with both ErrInvalidToken
// and ErrTokenMissingSubject.
func (c *TokenCodec) Verify(tokenString string) (*Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenMissingSubject)
	}

	return &Identity{OwnerID: claims.ID, Username: claims.Username}, nil
}
