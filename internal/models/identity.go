package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role distinguishes the two account kinds the platform knows about.
type Role int64

const (
	RoleAuthor Role = 0
	RoleAdmin  Role = 1
)

// Identity is the account behind a bearer token, as decoded from the token
// payload. Decoding is purely syntactic: an Identity must not be trusted for
// access decisions until the token has been confirmed live against the API.
type Identity struct {
	ID       int64
	Username string
	Role     Role
	Expiry   time.Time
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type tokenClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     int64  `json:"role"`
	jwt.RegisteredClaims
}

// DecodeIdentity extracts the identity claims from a bearer token without
// verifying its signature. Signature verification is the server's job; the
// client only needs the claims for display and routing, and confirms liveness
// with a separate API call.
func DecodeIdentity(token string) (*Identity, error) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	identity := &Identity{
		ID:       claims.ID,
		Username: claims.Username,
		Role:     Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		identity.Expiry = claims.ExpiresAt.Time
	}
	return identity, nil
}
