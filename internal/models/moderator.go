package models

import "github.com/golang-jwt/jwt/v5"

// RoleModerator is the only role allowed to bulk import events.
const RoleModerator = "moderator"

// ModeratorClaims is the JWT payload presented on moderation routes.
type ModeratorClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
