package models

import "github.com/golang-jwt/jwt/v5"

// Access levels; a lower number grants more.
const (
	LevelAdmin   = 1
	LevelManager = 2
)

// Actor is the verified security context passed into every lesson operation.
type Actor struct {
	UserID string
	Email  string
	Level  int
}

// Authenticated reports whether the actor came from a verified token.
func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// HasLevel reports whether the actor's level is at or below max. Levels
// below LevelAdmin are never granted.
func (a Actor) HasLevel(max int) bool {
	return a.Authenticated() && a.Level >= LevelAdmin && a.Level <= max
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Level  int    `json:"level"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into a security context.
func (c *JWTClaims) Actor() Actor {
	if c == nil {
		return Actor{}
	}
	id := c.UserID
	if id == "" {
		id = c.Subject
	}
	return Actor{UserID: id, Email: c.Email, Level: c.Level}
}
