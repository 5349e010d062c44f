package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the identity baked into an access token.
type JWTClaims struct {
	UserID   int    `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginResponse bundles the issued token with a user summary.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
